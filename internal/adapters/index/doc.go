// Package index implements the full text code index on bleve.
//
// Documents carry the raw file content plus keyword facet fields for
// repository, language, and owner. Search serves fixed pages of twenty
// hits with term facet aggregates and line level highlights; the search
// service layers caching and query building on top.
package index
