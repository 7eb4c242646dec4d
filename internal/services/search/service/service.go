// Package service implements query building, result caching, and search execution
package service

import (
	"context"
	"sort"
	"time"

	perr "codesift/internal/platform/errors"
	"codesift/internal/platform/logger"
	"codesift/internal/services/search/domain"
)

// Service defines the service contract for search
type Service interface{ domain.ServicePort }

// Svc runs built queries against the index engine and serves repeats from
// the result cache
type Svc struct {
	Index    domain.IndexPort
	Cache    *ResultCache
	Recorder domain.RecorderPort
}

// New creates a new search service. Recorder may be nil; events are then
// dropped
func New(index domain.IndexPort, cache *ResultCache, recorder domain.RecorderPort) *Svc {
	if index == nil {
		panic("search.Service requires a non nil index port")
	}
	if cache == nil {
		panic("search.Service requires a non nil result cache")
	}
	return &Svc{Index: index, Cache: cache, Recorder: recorder}
}

// Search executes one query page. Identical requests inside the cache
// window never touch the index engine
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (*domain.SearchResult, error) {
	start := time.Now()

	built := BuildQuery(in)
	if built.Raw == "" {
		return nil, perr.InvalidArgf("query is required")
	}

	key := built.Signature()
	if cached, ok := s.Cache.Get(key); ok {
		s.record(ctx, built, cached.TotalHits, true, start)
		return cached, nil
	}

	page, err := s.Index.Search(ctx, domain.IndexQuery{
		Base:   built.Clean,
		Page:   built.Page,
		Repos:  built.Repos,
		Langs:  built.Langs,
		Owners: built.Owners,
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "index unavailable")
	}

	result := &domain.SearchResult{
		Query:      built.Raw,
		AltQueries: AlternateQueries(built.Raw),
		Page:       built.Page,
		Pages:      pageList(page.TotalHits),
		TotalHits:  page.TotalHits,
		Matches:    page.Matches,
		RepoFacets: facetEntries(page.RepoCounts),
		LangFacets: facetEntries(page.LangCounts),
		OwnFacets:  facetEntries(page.OwnCounts),
	}
	ApplySelection(result, built.Repos, built.Langs, built.Owners)

	s.Cache.Put(key, result)
	s.record(ctx, built, result.TotalHits, false, start)
	return result, nil
}

// ApplySelection marks facet entries the caller filtered on. This is UI
// state; the filtering itself happened in the query
func ApplySelection(res *domain.SearchResult, repos, langs, owners []string) {
	mark := func(entries []domain.FacetEntry, wanted []string) {
		if len(wanted) == 0 {
			return
		}
		set := make(map[string]bool, len(wanted))
		for _, w := range wanted {
			set[w] = true
		}
		for i := range entries {
			if set[entries[i].Value] {
				entries[i].Selected = true
			}
		}
	}
	mark(res.RepoFacets, repos)
	mark(res.LangFacets, langs)
	mark(res.OwnFacets, owners)
}

// pageList enumerates the reachable page indexes for a hit count
func pageList(totalHits int) []int {
	n := (totalHits + domain.PageSize - 1) / domain.PageSize
	if n > domain.MaxPage+1 {
		n = domain.MaxPage + 1
	}
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i
	}
	return pages
}

// facetEntries orders aggregate counts by count descending, value ascending
// for equal counts, so responses are deterministic
func facetEntries(counts map[string]int) []domain.FacetEntry {
	out := make([]domain.FacetEntry, 0, len(counts))
	for v, c := range counts {
		out = append(out, domain.FacetEntry{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func (s *Svc) record(ctx context.Context, built domain.BuiltQuery, hits int, cached bool, start time.Time) {
	if s.Recorder == nil {
		return
	}
	var filters int
	for _, f := range []string{built.RepoFilter, built.LangFilter, built.OwnerFilter} {
		if f != "" {
			filters++
		}
	}
	ev := domain.SearchEvent{
		Query:      built.Raw,
		Page:       built.Page,
		Filters:    filters,
		TotalHits:  hits,
		Cached:     cached,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err := s.Recorder.Record(ctx, ev); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("search: event record failed")
	}
}
