// Package service runs the crawl workers. Three loops drain the shared
// queues: git sync, svn sync, and repository deletion. Each loop polls
// on a short ticker so shutdown stays responsive even when everything
// is idle.
package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"codesift/internal/adapters/index"
	"codesift/internal/adapters/scm"
	"codesift/internal/core/langhint"
	"codesift/internal/platform/logger"
	"codesift/internal/services/crawl/domain"
	"codesift/internal/services/enqueue/queue"
	reposdom "codesift/internal/services/repos/domain"
)

// batchSize bounds how many documents one index batch carries
const batchSize = 500

// unknownOwner matches what the facet shows when authorship is unreadable
const unknownOwner = "Unknown"

// Config tunes the worker loops
type Config struct {
	// Poll is the queue poll cadence when idle
	Poll time.Duration
	// Root is where working copies live; deletion removes checkouts from here
	Root string
}

// Svc drains the crawl queues into the index
type Svc struct {
	queues *queue.Set
	ctl    *queue.Control
	git    domain.Syncer
	svn    domain.Syncer
	idx    domain.Indexer
	repos  reposdom.WriterPort
	cfg    Config
}

// New wires the crawl workers. The repos writer may be nil when no
// descriptor store cleanup is wanted, everything else is required
func New(queues *queue.Set, ctl *queue.Control, git, svn domain.Syncer, idx domain.Indexer, repos reposdom.WriterPort, cfg Config) *Svc {
	switch {
	case queues == nil:
		panic("crawl.Svc requires a non nil queue set")
	case ctl == nil:
		panic("crawl.Svc requires a non nil control")
	case git == nil:
		panic("crawl.Svc requires a non nil git syncer")
	case svn == nil:
		panic("crawl.Svc requires a non nil svn syncer")
	case idx == nil:
		panic("crawl.Svc requires a non nil indexer")
	}
	if cfg.Poll <= 0 {
		cfg.Poll = 500 * time.Millisecond
	}
	return &Svc{queues: queues, ctl: ctl, git: git, svn: svn, idx: idx, repos: repos, cfg: cfg}
}

// Run blocks until ctx is done, draining all three queues
func (s *Svc) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.loop(ctx, "crawl-git", s.queues.Git, s.syncWith(s.git)) })
	g.Go(func() error { return s.loop(ctx, "crawl-svn", s.queues.Svn, s.syncWith(s.svn)) })
	g.Go(func() error { return s.loop(ctx, "crawl-delete", s.queues.Delete, s.remove) })
	return g.Wait()
}

func (s *Svc) loop(ctx context.Context, name string, q *queue.UniqueQueue[reposdom.RepoDescriptor], handle func(context.Context, reposdom.RepoDescriptor) error) error {
	log := logger.Named(name)
	ticker := time.NewTicker(s.cfg.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.ctl.Paused() {
				continue
			}
			for {
				d, ok := q.Poll()
				if !ok {
					break
				}
				if err := handle(ctx, d); err != nil {
					log.Warn().Err(err).Str("repo", d.Name).Msg("crawl failed")
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
		}
	}
}

func (s *Svc) syncWith(client domain.Syncer) func(context.Context, reposdom.RepoDescriptor) error {
	return func(ctx context.Context, d reposdom.RepoDescriptor) error {
		return s.sync(ctx, client, d)
	}
}

// sync refreshes one working copy and, when it moved, rewrites the
// repository's documents wholesale. Whole-repo replace keeps deleted
// files from lingering in the index
func (s *Svc) sync(ctx context.Context, client domain.Syncer, d reposdom.RepoDescriptor) error {
	log := logger.Named("crawl")
	start := time.Now()

	res, err := client.Sync(ctx, d)
	if err != nil {
		return err
	}
	if !res.Changed {
		log.Debug().Str("repo", d.Name).Msg("unchanged, skipping index")
		return nil
	}

	owner := unknownOwner
	if al, ok := client.(domain.AuthorLookup); ok {
		if a := al.LatestAuthor(d.Name); a != "" {
			owner = a
		}
	}

	if err := s.idx.DeleteRepo(ctx, d.Name); err != nil {
		return err
	}

	var (
		batch []index.Document
		total int
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.idx.Index(ctx, batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}
	err = scm.Walk(res.Path, func(f scm.SourceFile) error {
		batch = append(batch, index.Document{
			CodeID:    codeID(d.Name, f.RelPath),
			RepoName:  d.Name,
			FileName:  filepath.Base(f.RelPath),
			Location:  f.RelPath,
			Language:  langhint.Detect(f.RelPath),
			CodeOwner: owner,
			Content:   f.Content,
			Lines:     f.Lines,
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	log.Info().
		Str("repo", d.Name).
		Int("documents", total).
		Dur("took", time.Since(start)).
		Msg("indexed")
	return nil
}

// remove tears one repository down: index documents, descriptor row,
// then the checkout directory
func (s *Svc) remove(ctx context.Context, d reposdom.RepoDescriptor) error {
	log := logger.Named("crawl-delete")

	if err := s.idx.DeleteRepo(ctx, d.Name); err != nil {
		return err
	}
	if s.repos != nil {
		if err := s.repos.Delete(ctx, d.Name); err != nil {
			return err
		}
	}
	if s.cfg.Root != "" {
		if err := os.RemoveAll(filepath.Join(s.cfg.Root, d.Name)); err != nil {
			log.Warn().Err(err).Str("repo", d.Name).Msg("checkout cleanup failed")
		}
	}
	log.Info().Str("repo", d.Name).Msg("repository deleted")
	return nil
}

// codeID is stable across crawls so reindexing a file upserts in place
func codeID(repoName, relPath string) string {
	sum := sha1.Sum([]byte(repoName + ":" + relPath))
	return hex.EncodeToString(sum[:])
}
