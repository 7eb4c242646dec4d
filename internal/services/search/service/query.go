package service

import (
	"strconv"
	"strings"

	"codesift/internal/services/search/domain"
)

// querySpecials are the characters the index query syntax assigns meaning to
const querySpecials = `\+-!():^[]"{}~*?|&/`

// EscapeTerm backslash-escapes every query-syntax character in one term so
// user input can never change query semantics
func EscapeTerm(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(querySpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CleanQuery splits the raw query on whitespace, escapes each term, and
// requires all of them to match
func CleanQuery(raw string) string {
	fields := strings.Fields(raw)
	for i, f := range fields {
		fields[i] = EscapeTerm(f)
	}
	return strings.Join(fields, " AND ")
}

// ParsePage turns the raw page parameter into a valid page index.
// Non-numeric input and anything below zero become 0, anything above
// MaxPage is pinned to MaxPage. Never errors
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return ClampPage(n)
}

// ClampPage bounds a numeric page to [0, MaxPage]
func ClampPage(n int) int {
	if n < 0 {
		return 0
	}
	if n > domain.MaxPage {
		return domain.MaxPage
	}
	return n
}

// facetClause renders one ` && (field:v1 || field:v2)` filter, empty input
// producing no clause at all
func facetClause(field string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = field + ":" + EscapeTerm(v)
	}
	return " && (" + strings.Join(parts, " || ") + ")"
}

// BuildQuery assembles the escaped query and filter clauses from one input.
// The input query is trimmed first; page is clamped
func BuildQuery(in domain.SearchInput) domain.BuiltQuery {
	raw := strings.TrimSpace(in.Query)
	return domain.BuiltQuery{
		Raw:         raw,
		Clean:       CleanQuery(raw),
		Page:        ClampPage(in.Page),
		RepoFilter:  facetClause("reponame", in.Repos),
		LangFilter:  facetClause("languagename", in.Langs),
		OwnerFilter: facetClause("codeowner", in.Owners),
		Repos:       in.Repos,
		Langs:       in.Langs,
		Owners:      in.Owners,
	}
}
