// Package service contains the search log workflows
package service

import (
	"context"

	"codesift/internal/services/searchlog/domain"
	"codesift/internal/services/searchlog/repo"
)

// Service defines the service contract for searchlog
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
}

// New creates a new searchlog service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("searchlog.Service requires a non nil Repo")
	}
	return &Svc{Repo: r}
}

// Record writes one search event
func (s *Svc) Record(ctx context.Context, e domain.Entry) error {
	return s.Repo.Insert(ctx, e)
}

// SearchCount reports the total searches served
func (s *Svc) SearchCount(ctx context.Context) (uint64, error) {
	return s.Repo.Count(ctx)
}
