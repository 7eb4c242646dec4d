// Package domain holds the search types and the index engine contract
package domain

import "strconv"

const (
	// PageSize is the number of matches on one result page
	PageSize = 20

	// MaxPage is the highest page a caller may request
	MaxPage = 19
)

// SearchInput is one search request after parameter parsing
type SearchInput struct {
	Query  string
	Page   int
	Repos  []string
	Langs  []string
	Owners []string
}

// BuiltQuery is the escaped query plus its facet filter clauses.
// The clause strings keep the engine's boolean syntax so the cache
// signature captures exactly what was asked
type BuiltQuery struct {
	Raw         string
	Clean       string
	Page        int
	RepoFilter  string
	LangFilter  string
	OwnerFilter string

	Repos  []string
	Langs  []string
	Owners []string
}

// Signature is the cache key: raw query, page, then the three clauses in
// fixed order. Identical searches collide, different ones never do
func (b BuiltQuery) Signature() string {
	return b.Raw + strconv.Itoa(b.Page) + b.RepoFilter + b.LangFilter + b.OwnerFilter
}

// String renders the full query handed to the index engine
func (b BuiltQuery) String() string {
	return b.Clean + b.RepoFilter + b.LangFilter + b.OwnerFilter
}

// MatchedLine is one highlighted line within a match
type MatchedLine struct {
	LineNumber int    `json:"lineNumber"`
	Line       string `json:"line"`
}

// CodeMatch is one document on a result page. Raw file content stays in
// the index; only the highlighted lines travel over the API
type CodeMatch struct {
	CodeID       string        `json:"codeId"`
	RepoName     string        `json:"repoName"`
	FileName     string        `json:"fileName"`
	Location     string        `json:"fileLocation"`
	LanguageName string        `json:"languageName"`
	CodeOwner    string        `json:"codeOwner"`
	Lines        int           `json:"codeLines"`
	Matches      []MatchedLine `json:"matchingResults"`
}

// FacetEntry is one value of an aggregate dimension with its match count.
// Selected mirrors whether the caller filtered on the value; it is UI
// state only, filtering already happened in the query
type FacetEntry struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// SearchResult is the full response for one query page, immutable once
// built apart from cache bookkeeping
type SearchResult struct {
	Query      string       `json:"query"`
	AltQueries []string     `json:"altQuery"`
	Page       int          `json:"page"`
	Pages      []int        `json:"pages"`
	TotalHits  int          `json:"totalHits"`
	Matches    []CodeMatch  `json:"codeResultList"`
	RepoFacets []FacetEntry `json:"repoFacetResults"`
	LangFacets []FacetEntry `json:"languageFacetResults"`
	OwnFacets  []FacetEntry `json:"ownerFacetResults"`
}

// SearchEvent is the analytics record written after a served search
type SearchEvent struct {
	Query      string
	Page       int
	Filters    int
	TotalHits  int
	Cached     bool
	DurationMS int64
}
