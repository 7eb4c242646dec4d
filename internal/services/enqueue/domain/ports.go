// Package domain defines the enqueue control contracts
package domain

import (
	"context"

	reposdom "codesift/internal/services/repos/domain"
)

// ControlPort is the admin-facing surface over scheduling
type ControlPort interface {
	// ForceEnqueue runs one enqueue pass immediately. It reports false when
	// a pass already holds the run lock; pausing makes it a successful no-op
	ForceEnqueue(ctx context.Context) bool

	// RebuildAll purges the index and reports whether the rebuild started.
	// The next enqueue pass re-crawls everything
	RebuildAll(ctx context.Context) bool

	// TogglePause flips background processing and returns the new pause state
	TogglePause() bool

	// Paused reports the pause flag
	Paused() bool

	// EnqueueDelete schedules lazy removal of a repository
	EnqueueDelete(d reposdom.RepoDescriptor) bool

	// DeleteQueueSize reports pending deletions
	DeleteQueueSize() int
}

// IndexPurger is the slice of the index engine RebuildAll needs
type IndexPurger interface {
	PurgeAll(ctx context.Context) error
}
