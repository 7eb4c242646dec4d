// Package domain holds the crawl worker contracts
package domain

import (
	"context"

	"codesift/internal/adapters/index"
	"codesift/internal/adapters/scm"
	reposdom "codesift/internal/services/repos/domain"
)

// Syncer brings one repository's working copy up to date
type Syncer interface {
	Sync(ctx context.Context, d reposdom.RepoDescriptor) (scm.CheckoutResult, error)
}

// Indexer is the slice of the index engine the crawler writes through
type Indexer interface {
	Index(ctx context.Context, docs []index.Document) error
	DeleteRepo(ctx context.Context, repoName string) error
}

// AuthorLookup names the most recent committer of a checkout; clients
// that cannot answer simply do not implement it
type AuthorLookup interface {
	LatestAuthor(name string) string
}
