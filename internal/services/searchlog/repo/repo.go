// Package repo provides clickhouse access for the search log
package repo

import (
	"context"
	"time"

	"codesift/internal/platform/store"
	"codesift/internal/services/searchlog/domain"
)

// Repo defines the storage contract for search events
type Repo interface {
	Insert(ctx context.Context, e domain.Entry) error
	Count(ctx context.Context) (uint64, error)
}

// NewCH constructs the clickhouse backed search log store
func NewCH(ch store.Clickhouse) Repo {
	if ch == nil {
		panic("searchlog.Repo requires a non nil clickhouse seam")
	}
	return &chStore{ch: ch}
}

type chStore struct{ ch store.Clickhouse }

func (s *chStore) Insert(ctx context.Context, e domain.Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	cached := uint8(0)
	if e.Cached {
		cached = 1
	}
	row := []any{at, e.Query, int32(e.Page), int32(e.Filters), int64(e.TotalHits), cached, e.DurationMS}
	return s.ch.Insert(ctx,
		"search_log (at, query, page, filters, total_hits, cached, duration_ms)",
		[][]any{row})
}

func (s *chStore) Count(ctx context.Context) (uint64, error) {
	rows, err := s.ch.Query(ctx, `SELECT count() FROM search_log`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		return 0, rows.Err()
	}
	var n uint64
	if err := rows.Scan(&n); err != nil {
		return 0, err
	}
	return n, rows.Err()
}
