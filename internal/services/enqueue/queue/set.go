package queue

import (
	"sync/atomic"

	reposdom "codesift/internal/services/repos/domain"
)

// Set groups the three crawl queues. One Set is shared by the scheduler,
// the crawl workers, and the admin surface
type Set struct {
	Git    *UniqueQueue[reposdom.RepoDescriptor]
	Svn    *UniqueQueue[reposdom.RepoDescriptor]
	Delete *UniqueQueue[reposdom.RepoDescriptor]
}

// NewSet builds the queue set, all keyed by repository name
func NewSet() *Set {
	byName := func(d reposdom.RepoDescriptor) string { return d.Name }
	return &Set{
		Git:    NewUnique(byName),
		Svn:    NewUnique(byName),
		Delete: NewUnique(byName),
	}
}

// Control owns the pause flag and the single-flight lock for enqueue runs.
// It is an explicit handle passed to whoever needs it, never a package global
type Control struct {
	paused  atomic.Bool
	running atomic.Bool
}

// NewControl returns an unpaused, idle control
func NewControl() *Control { return &Control{} }

// Paused reports the pause flag
func (c *Control) Paused() bool { return c.paused.Load() }

// SetPaused sets the pause flag
func (c *Control) SetPaused(v bool) { c.paused.Store(v) }

// Toggle flips the pause flag and returns the new state
func (c *Control) Toggle() bool {
	for {
		cur := c.paused.Load()
		if c.paused.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// TryRun attempts to take the enqueue run lock. Callers that get true must
// call Done when their run finishes; false means a run is already in flight
func (c *Control) TryRun() bool { return c.running.CompareAndSwap(false, true) }

// Done releases the run lock
func (c *Control) Done() { c.running.Store(false) }
