// Package domain holds the search analytics log types
package domain

import (
	"context"
	"time"
)

// Entry is one recorded search
type Entry struct {
	At         time.Time
	Query      string
	Page       int
	Filters    int
	TotalHits  int
	Cached     bool
	DurationMS int64
}

// ServicePort is the searchlog contract
type ServicePort interface {
	// Record writes one entry, best effort for callers
	Record(ctx context.Context, e Entry) error

	// SearchCount reports how many searches were served since install
	SearchCount(ctx context.Context) (uint64, error)
}
