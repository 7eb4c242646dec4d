// Package queue provides the dedup crawl queues and the shared pause/run control
package queue

import "sync"

// UniqueQueue is a FIFO that refuses items whose key is already queued
// every method holds the lock, so add/poll/size agree under contention
type UniqueQueue[T any] struct {
	mu    sync.Mutex
	key   func(T) string
	seen  map[string]struct{}
	items []T
}

// NewUnique builds a queue keyed by the given function
func NewUnique[T any](key func(T) string) *UniqueQueue[T] {
	if key == nil {
		panic("queue: nil key func")
	}
	return &UniqueQueue[T]{key: key, seen: make(map[string]struct{})}
}

// Add appends item unless its key is already present
// returns true when the item was actually queued
func (q *UniqueQueue[T]) Add(item T) bool {
	k := q.key(item)
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, dup := q.seen[k]; dup {
		return false
	}
	q.seen[k] = struct{}{}
	q.items = append(q.items, item)
	return true
}

// Poll removes and returns the head, reporting false on an empty queue
// once polled the key may be re-added
func (q *UniqueQueue[T]) Poll() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	delete(q.seen, q.key(item))
	return item, true
}

// Size reports the number of queued items
func (q *UniqueQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Contains reports whether an item with the given key is queued
func (q *UniqueQueue[T]) Contains(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.seen[key]
	return ok
}

// Clear drops everything
func (q *UniqueQueue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
	q.seen = make(map[string]struct{})
}
