package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"

	searchdom "codesift/internal/services/search/domain"
)

const (
	// facetLimit bounds how many values one facet dimension returns
	facetLimit = 200

	// maxMatchedLines caps highlighted lines per hit
	maxMatchedLines = 5
)

// Document is one indexed source file
type Document struct {
	CodeID    string `json:"codeid"`
	RepoName  string `json:"reponame"`
	FileName  string `json:"filename"`
	Location  string `json:"location"`
	Language  string `json:"languagename"`
	CodeOwner string `json:"codeowner"`
	Content   string `json:"content"`
	Lines     int    `json:"lines"`
}

// Engine is the bleve backed index. It satisfies the search service's
// IndexPort and the enqueue service's purge contract
type Engine struct {
	mu  sync.RWMutex
	idx bleve.Index
}

// Open opens or creates the index at path. An empty path builds an in
// memory index, which tests use
func Open(path string) (*Engine, error) {
	m := buildMapping()

	var idx bleve.Index
	var err error
	if path == "" {
		idx, err = bleve.NewMemOnly(m)
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, fmt.Errorf("index: mkdir: %w", mkErr)
		}
		idx, err = bleve.Open(path)
		if err == bleve.ErrorIndexPathDoesNotExist {
			idx, err = bleve.New(path, m)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("index: open: %w", err)
	}
	return &Engine{idx: idx}, nil
}

// buildMapping keeps content full text while the facet dimensions are
// keyword analyzed so values aggregate whole, not tokenized
func buildMapping() mapping.IndexMapping {
	kw := bleve.NewTextFieldMapping()
	kw.Analyzer = keyword.Name

	content := bleve.NewTextFieldMapping()
	content.Store = true
	content.IncludeTermVectors = true

	text := bleve.NewTextFieldMapping()
	text.Store = true

	num := bleve.NewNumericFieldMapping()
	num.Store = true

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("content", content)
	doc.AddFieldMappingsAt("filename", text)
	doc.AddFieldMappingsAt("location", text)
	doc.AddFieldMappingsAt("reponame", kw)
	doc.AddFieldMappingsAt("languagename", kw)
	doc.AddFieldMappingsAt("codeowner", kw)
	doc.AddFieldMappingsAt("lines", num)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Close releases the underlying index
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.idx.Close()
}

// Index upserts a batch of documents keyed by CodeID
func (e *Engine) Index(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	batch := e.idx.NewBatch()
	for _, d := range docs {
		if err := batch.Index(d.CodeID, d); err != nil {
			return fmt.Errorf("index: batch add %s: %w", d.CodeID, err)
		}
	}
	return e.idx.Batch(batch)
}

// Search implements searchdom.IndexPort
func (e *Engine) Search(ctx context.Context, q searchdom.IndexQuery) (*searchdom.IndexPage, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(
		buildQuery(q),
		searchdom.PageSize,
		q.Page*searchdom.PageSize,
		false,
	)
	req.Fields = []string{"reponame", "filename", "location", "languagename", "codeowner", "lines", "content"}
	req.IncludeLocations = true
	req.AddFacet("repos", bleve.NewFacetRequest("reponame", facetLimit))
	req.AddFacet("langs", bleve.NewFacetRequest("languagename", facetLimit))
	req.AddFacet("owners", bleve.NewFacetRequest("codeowner", facetLimit))

	res, err := e.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}

	page := &searchdom.IndexPage{
		TotalHits:  int(res.Total),
		RepoCounts: facetCounts(res, "repos"),
		LangCounts: facetCounts(res, "langs"),
		OwnCounts:  facetCounts(res, "owners"),
	}
	for _, hit := range res.Hits {
		m := matchFromFields(hit.ID, hit.Fields)
		m.Matches = matchedLines(fieldString(hit.Fields, "content"), hit.Locations)
		page.Matches = append(page.Matches, m)
	}
	return page, nil
}

// buildQuery combines the escaped base query with native term filters
// for each requested facet dimension
func buildQuery(q searchdom.IndexQuery) query.Query {
	base := bleve.NewQueryStringQuery(q.Base)

	must := []query.Query{query.Query(base)}
	for _, f := range []struct {
		field  string
		values []string
	}{
		{"reponame", q.Repos},
		{"languagename", q.Langs},
		{"codeowner", q.Owners},
	} {
		if len(f.values) == 0 {
			continue
		}
		should := bleve.NewBooleanQuery()
		for _, v := range f.values {
			tq := bleve.NewTermQuery(v)
			tq.SetField(f.field)
			should.AddShould(tq)
		}
		should.SetMinShould(1)
		must = append(must, should)
	}
	if len(must) == 1 {
		return base
	}
	b := bleve.NewBooleanQuery()
	for _, m := range must {
		b.AddMust(m)
	}
	return b
}

// TotalDocuments implements searchdom.IndexPort
func (e *Engine) TotalDocuments(ctx context.Context) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n, err := e.idx.DocCount()
	if err != nil {
		return 0, fmt.Errorf("index: doc count: %w", err)
	}
	return int(n), nil
}

// ByCodeID implements searchdom.IndexPort; a missing id returns nil, nil
func (e *Engine) ByCodeID(ctx context.Context, id string) (*searchdom.CodeMatch, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	req := bleve.NewSearchRequest(query.NewDocIDQuery([]string{id}))
	req.Fields = []string{"reponame", "filename", "location", "languagename", "codeowner", "lines"}
	res, err := e.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("index: by code id: %w", err)
	}
	if len(res.Hits) == 0 {
		return nil, nil
	}
	m := matchFromFields(res.Hits[0].ID, res.Hits[0].Fields)
	return &m, nil
}

// DeleteRepo drops every document belonging to one repository
func (e *Engine) DeleteRepo(ctx context.Context, repoName string) error {
	tq := bleve.NewTermQuery(repoName)
	tq.SetField("reponame")
	return e.deleteMatching(ctx, tq)
}

// PurgeAll drops every document; the rebuild flow re-crawls afterwards
func (e *Engine) PurgeAll(ctx context.Context) error {
	return e.deleteMatching(ctx, bleve.NewMatchAllQuery())
}

func (e *Engine) deleteMatching(ctx context.Context, q query.Query) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// page through ids so a huge index never loads all hits at once
	const chunk = 1000
	for {
		req := bleve.NewSearchRequestOptions(q, chunk, 0, false)
		res, err := e.idx.SearchInContext(ctx, req)
		if err != nil {
			return fmt.Errorf("index: delete scan: %w", err)
		}
		if len(res.Hits) == 0 {
			return nil
		}
		batch := e.idx.NewBatch()
		for _, hit := range res.Hits {
			batch.Delete(hit.ID)
		}
		if err := e.idx.Batch(batch); err != nil {
			return fmt.Errorf("index: delete batch: %w", err)
		}
	}
}

func facetCounts(res *bleve.SearchResult, name string) map[string]int {
	fr, ok := res.Facets[name]
	if !ok || fr.Terms == nil {
		return nil
	}
	out := make(map[string]int)
	for _, t := range fr.Terms.Terms() {
		out[t.Term] = t.Count
	}
	return out
}

func matchFromFields(id string, fields map[string]any) searchdom.CodeMatch {
	return searchdom.CodeMatch{
		CodeID:       id,
		RepoName:     fieldString(fields, "reponame"),
		FileName:     fieldString(fields, "filename"),
		Location:     fieldString(fields, "location"),
		LanguageName: fieldString(fields, "languagename"),
		CodeOwner:    fieldString(fields, "codeowner"),
		Lines:        int(fieldFloat(fields, "lines")),
	}
}

func fieldString(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func fieldFloat(fields map[string]any, key string) float64 {
	if v, ok := fields[key].(float64); ok {
		return v
	}
	return 0
}

// matchedLines maps term hit offsets in the stored content back onto
// source lines, keeping each line once in document order
func matchedLines(content string, locations search.FieldTermLocationMap) []searchdom.MatchedLine {
	if content == "" {
		return nil
	}
	terms, ok := locations["content"]
	if !ok {
		return nil
	}

	lineStarts := lineOffsets(content)
	seen := make(map[int]bool)
	var hitLines []int
	for _, locs := range terms {
		for _, loc := range locs {
			n := lineForOffset(lineStarts, int(loc.Start))
			if !seen[n] {
				seen[n] = true
				hitLines = append(hitLines, n)
			}
		}
	}
	sort.Ints(hitLines)
	if len(hitLines) > maxMatchedLines {
		hitLines = hitLines[:maxMatchedLines]
	}

	lines := strings.Split(content, "\n")
	out := make([]searchdom.MatchedLine, 0, len(hitLines))
	for _, n := range hitLines {
		if n < 0 || n >= len(lines) {
			continue
		}
		out = append(out, searchdom.MatchedLine{
			LineNumber: n + 1,
			Line:       strings.TrimRight(lines[n], "\r"),
		})
	}
	return out
}

// lineOffsets returns the byte offset each line starts at
func lineOffsets(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineForOffset finds the line containing the byte offset
func lineForOffset(starts []int, off int) int {
	i := sort.SearchInts(starts, off+1)
	return i - 1
}
