// Package service runs the enqueue scheduler and the admin job control
package service

import (
	"context"
	"time"

	"codesift/internal/platform/logger"
	"codesift/internal/services/enqueue/domain"
	"codesift/internal/services/enqueue/queue"
	reposdom "codesift/internal/services/repos/domain"
)

// Config controls scheduler pacing
type Config struct {
	// Interval between enqueue passes
	Interval time.Duration
}

// Service owns the periodic enqueue pass and implements domain.ControlPort
type Service struct {
	Repos  reposdom.ReaderPort
	Queues *queue.Set
	Ctl    *queue.Control
	Purger domain.IndexPurger
	Cfg    Config
}

// New constructs the enqueue service
func New(repos reposdom.ReaderPort, qs *queue.Set, ctl *queue.Control, purger domain.IndexPurger, cfg Config) *Service {
	if repos == nil {
		panic("enqueue.Service requires a non nil repos reader")
	}
	if qs == nil {
		panic("enqueue.Service requires a non nil queue set")
	}
	if ctl == nil {
		panic("enqueue.Service requires a non nil control")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Service{Repos: repos, Queues: qs, Ctl: ctl, Purger: purger, Cfg: cfg}
}

// Run drives enqueue passes until ctx is done. A tick that fires while a
// pass is still in flight is skipped outright, never queued behind it
func (s *Service) Run(ctx context.Context) error {
	l := logger.Named("enqueue")
	t := time.NewTicker(s.Cfg.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if s.Ctl.Paused() {
				l.Debug().Msg("enqueue: paused, skipping pass")
				continue
			}
			if !s.Ctl.TryRun() {
				l.Debug().Msg("enqueue: pass in flight, tick skipped")
				continue
			}
			s.runPass(ctx, l)
			s.Ctl.Done()
		}
	}
}

// runPass fills the crawl queues from the repository store. Failures on a
// single descriptor are logged and do not stop the pass; a panic is caught
// at the pass boundary so one bad cycle cannot kill the scheduler
func (s *Service) runPass(ctx context.Context, l *logger.Logger) {
	defer func() {
		if r := recover(); r != nil {
			l.Error().Interface("panic", r).Msg("enqueue: pass panicked")
		}
	}()

	all, err := s.Repos.All(ctx)
	if err != nil {
		l.Error().Err(err).Msg("enqueue: listing repositories failed")
		return
	}

	var added int
	for _, d := range all {
		switch reposdom.ParseSCM(d.SCM) {
		case reposdom.SCMGit:
			if s.Queues.Git.Add(d) {
				added++
			}
		case reposdom.SCMSvn:
			if s.Queues.Svn.Add(d) {
				added++
			}
		case reposdom.SCMFile, reposdom.SCMUnsupported:
			// save normalizes to a supported type, so this only shows up
			// for rows written outside the service
			l.Warn().Str("repo", d.Name).Str("scm", d.SCM).Msg("enqueue: unsupported scm, skipped")
		}
	}
	l.Info().Int("repos", len(all)).Int("queued", added).Msg("enqueue: pass complete")
}

// ForceEnqueue implements domain.ControlPort
func (s *Service) ForceEnqueue(ctx context.Context) bool {
	if !s.Ctl.TryRun() {
		return false
	}
	defer s.Ctl.Done()
	if s.Ctl.Paused() {
		// lock was free, so the request "succeeded" even though paused
		// processing means nothing was queued
		return true
	}
	s.runPass(ctx, logger.Named("enqueue"))
	return true
}

// RebuildAll implements domain.ControlPort
func (s *Service) RebuildAll(ctx context.Context) bool {
	l := logger.Named("enqueue")
	if s.Purger == nil {
		l.Error().Msg("rebuild: no index purger wired")
		return false
	}
	if err := s.Purger.PurgeAll(ctx); err != nil {
		l.Error().Err(err).Msg("rebuild: index purge failed")
		return false
	}
	l.Info().Msg("rebuild: index purged, forcing enqueue")
	s.ForceEnqueue(ctx)
	return true
}

// TogglePause implements domain.ControlPort
func (s *Service) TogglePause() bool { return s.Ctl.Toggle() }

// Paused implements domain.ControlPort
func (s *Service) Paused() bool { return s.Ctl.Paused() }

// EnqueueDelete implements domain.ControlPort
func (s *Service) EnqueueDelete(d reposdom.RepoDescriptor) bool {
	return s.Queues.Delete.Add(d)
}

// DeleteQueueSize implements domain.ControlPort
func (s *Service) DeleteQueueSize() int { return s.Queues.Delete.Size() }

var _ domain.ControlPort = (*Service)(nil)
