// Package service contains repository descriptor workflows
package service

import (
	"context"

	"codesift/internal/modkit/repokit"
	perr "codesift/internal/platform/errors"
	"codesift/internal/services/repos/domain"
	"codesift/internal/services/repos/repo"
)

// Service defines the service contract for repos
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new repos service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("repos.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("repos.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// All returns every descriptor. The enqueue scheduler calls this each cycle
func (s *Svc) All(ctx context.Context) ([]domain.RepoDescriptor, error) {
	return s.Repo.All(ctx)
}

// ByName returns one descriptor, or nil when the name is unknown
func (s *Svc) ByName(ctx context.Context, name string) (*domain.RepoDescriptor, error) {
	return s.Repo.ByName(ctx, name)
}

// Count returns the number of tracked repositories
func (s *Svc) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}

// Search matches descriptors by name or url substring
func (s *Svc) Search(ctx context.Context, text string) ([]domain.RepoDescriptor, error) {
	return s.Repo.Search(ctx, text)
}

// Paged returns a window of descriptors ordered by name
func (s *Svc) Paged(ctx context.Context, offset, limit int) ([]domain.RepoDescriptor, error) {
	return s.Repo.Paged(ctx, offset, limit)
}

// Create normalizes and stores a new descriptor
// duplicate names are rejected; the scm type is coerced to a supported one
// and a blank branch becomes the default branch
func (s *Svc) Create(ctx context.Context, d domain.RepoDescriptor) error {
	d = d.Normalize()
	if d.Name == "" {
		return perr.InvalidArgf("repository name is required")
	}
	if d.URL == "" {
		return perr.InvalidArgf("repository url is required")
	}
	return s.Repo.Insert(ctx, d)
}

// Delete removes a descriptor row. Index cleanup happens lazily through the
// delete queue, not here
func (s *Svc) Delete(ctx context.Context, name string) error {
	return s.Repo.Delete(ctx, name)
}
