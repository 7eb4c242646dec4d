package scm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	reposdom "codesift/internal/services/repos/domain"
)

// Git syncs git repositories under Root, one directory per descriptor name
type Git struct {
	Root string
}

// NewGit builds a git client rooted at dir
func NewGit(dir string) *Git {
	if dir == "" {
		panic("scm.Git requires a non empty root")
	}
	return &Git{Root: dir}
}

// Sync clones the repository on first contact and pulls after that.
// Changed is false only when the pull reported nothing new
func (g *Git) Sync(ctx context.Context, d reposdom.RepoDescriptor) (CheckoutResult, error) {
	dir := filepath.Join(g.Root, d.Name)
	res := CheckoutResult{Path: dir, Changed: true}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		changed, pullErr := g.pull(ctx, dir, d)
		if pullErr != nil {
			return res, pullErr
		}
		res.Changed = changed
		return res, nil
	}

	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           d.URL,
		Auth:          auth(d),
		ReferenceName: plumbing.NewBranchReferenceName(d.Branch),
		SingleBranch:  true,
	})
	if err != nil {
		// a half written clone poisons the next attempt
		_ = os.RemoveAll(dir)
		return res, fmt.Errorf("scm: clone %s: %w", d.Name, err)
	}
	return res, nil
}

func (g *Git) pull(ctx context.Context, dir string, d reposdom.RepoDescriptor) (bool, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return false, fmt.Errorf("scm: open %s: %w", d.Name, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("scm: worktree %s: %w", d.Name, err)
	}
	err = wt.PullContext(ctx, &git.PullOptions{
		Auth:          auth(d),
		ReferenceName: plumbing.NewBranchReferenceName(d.Branch),
		SingleBranch:  true,
		Force:         true,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("scm: pull %s: %w", d.Name, err)
	}
	return true, nil
}

// LatestAuthor returns the author name of the checkout's head commit, or
// empty when history is unreadable
func (g *Git) LatestAuthor(name string) string {
	repo, err := git.PlainOpen(filepath.Join(g.Root, name))
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return ""
	}
	return commit.Author.Name
}

func auth(d reposdom.RepoDescriptor) transport.AuthMethod {
	if d.Username == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: d.Username, Password: d.Password}
}
