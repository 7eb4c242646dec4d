package domain

import "context"

// ReaderPort is the read surface other services depend on
// the enqueue scheduler drains All on every cycle
type ReaderPort interface {
	All(ctx context.Context) ([]RepoDescriptor, error)
	ByName(ctx context.Context, name string) (*RepoDescriptor, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, text string) ([]RepoDescriptor, error)
	Paged(ctx context.Context, offset, limit int) ([]RepoDescriptor, error)
}

// WriterPort mutates the descriptor store
// only admin paths hold this port
type WriterPort interface {
	Create(ctx context.Context, d RepoDescriptor) error
	Delete(ctx context.Context, name string) error
}

// ServicePort is the full repos contract
type ServicePort interface {
	ReaderPort
	WriterPort
}
