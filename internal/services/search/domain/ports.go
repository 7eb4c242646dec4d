package domain

import "context"

// IndexQuery is what the engine needs to run one page of search.
// Filters arrive as raw values so the engine can express them natively
// instead of reparsing the clause strings
type IndexQuery struct {
	Base   string
	Page   int
	Repos  []string
	Langs  []string
	Owners []string
}

// IndexPage is the engine's answer for one query page
type IndexPage struct {
	TotalHits  int
	Matches    []CodeMatch
	RepoCounts map[string]int
	LangCounts map[string]int
	OwnCounts  map[string]int
}

// IndexPort is the black-box search index
type IndexPort interface {
	Search(ctx context.Context, q IndexQuery) (*IndexPage, error)
	TotalDocuments(ctx context.Context) (int, error)
	ByCodeID(ctx context.Context, id string) (*CodeMatch, error)
}

// RecorderPort receives search events, best effort
type RecorderPort interface {
	Record(ctx context.Context, ev SearchEvent) error
}

// ServicePort is what the HTTP surface calls
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (*SearchResult, error)
}
