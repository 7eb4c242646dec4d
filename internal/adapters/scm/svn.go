package scm

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	reposdom "codesift/internal/services/repos/domain"
)

// Svn shells out to the svn binary; go has no native subversion client
// worth depending on
type Svn struct {
	Root string
}

// NewSvn builds an svn client rooted at dir
func NewSvn(dir string) *Svn {
	if dir == "" {
		panic("scm.Svn requires a non empty root")
	}
	return &Svn{Root: dir}
}

// Sync checks out on first contact and updates after that. Change
// detection compares the working copy revision before and after
func (s *Svn) Sync(ctx context.Context, d reposdom.RepoDescriptor) (CheckoutResult, error) {
	dir := filepath.Join(s.Root, d.Name)
	res := CheckoutResult{Path: dir, Changed: true}

	if _, err := os.Stat(filepath.Join(dir, ".svn")); err != nil {
		args := append([]string{"checkout", d.URL, dir}, s.credArgs(d)...)
		if err := s.run(ctx, "", args...); err != nil {
			_ = os.RemoveAll(dir)
			return res, fmt.Errorf("scm: svn checkout %s: %w", d.Name, err)
		}
		return res, nil
	}

	before := s.revision(ctx, dir)
	args := append([]string{"update"}, s.credArgs(d)...)
	if err := s.run(ctx, dir, args...); err != nil {
		return res, fmt.Errorf("scm: svn update %s: %w", d.Name, err)
	}
	after := s.revision(ctx, dir)
	res.Changed = before == "" || before != after
	return res, nil
}

func (s *Svn) credArgs(d reposdom.RepoDescriptor) []string {
	args := []string{"--non-interactive"}
	if d.Username != "" {
		args = append(args, "--username", d.Username, "--password", d.Password)
	}
	return args
}

func (s *Svn) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "svn", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

func (s *Svn) revision(ctx context.Context, dir string) string {
	cmd := exec.CommandContext(ctx, "svn", "info", "--show-item", "revision", "--non-interactive")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
