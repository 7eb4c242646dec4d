package queue

import (
	"fmt"
	"sync"
	"testing"

	reposdom "codesift/internal/services/repos/domain"
)

func strQueue() *UniqueQueue[string] {
	return NewUnique(func(s string) string { return s })
}

func TestUniqueQueue_DedupesByKey(t *testing.T) {
	t.Parallel()

	q := strQueue()
	if !q.Add("a") {
		t.Fatal("first add rejected")
	}
	if q.Add("a") {
		t.Fatal("duplicate add accepted")
	}
	if q.Size() != 1 {
		t.Fatalf("size = %d, want 1", q.Size())
	}
}

func TestUniqueQueue_FIFOAndReAddAfterPoll(t *testing.T) {
	t.Parallel()

	q := strQueue()
	q.Add("a")
	q.Add("b")

	got, ok := q.Poll()
	if !ok || got != "a" {
		t.Fatalf("Poll = %q,%v want a,true", got, ok)
	}
	// polled key is free again
	if !q.Add("a") {
		t.Fatal("re-add after poll rejected")
	}

	got, _ = q.Poll()
	if got != "b" {
		t.Fatalf("order broken, got %q want b", got)
	}
}

func TestUniqueQueue_PollEmpty(t *testing.T) {
	t.Parallel()

	q := strQueue()
	if _, ok := q.Poll(); ok {
		t.Fatal("Poll on empty reported ok")
	}
}

func TestUniqueQueue_ConcurrentAddStorm(t *testing.T) {
	t.Parallel()

	q := strQueue()
	const workers = 16
	const keys = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < keys; i++ {
				q.Add(fmt.Sprintf("repo-%d", i))
			}
		}()
	}
	wg.Wait()

	if q.Size() != keys {
		t.Fatalf("size = %d after storm, want %d", q.Size(), keys)
	}
	seen := make(map[string]bool)
	for {
		it, ok := q.Poll()
		if !ok {
			break
		}
		if seen[it] {
			t.Fatalf("duplicate %q survived the storm", it)
		}
		seen[it] = true
	}
}

func TestControl_TryRunSingleFlight(t *testing.T) {
	t.Parallel()

	c := NewControl()
	if !c.TryRun() {
		t.Fatal("idle control refused the lock")
	}
	if c.TryRun() {
		t.Fatal("second TryRun succeeded while held")
	}
	c.Done()
	if !c.TryRun() {
		t.Fatal("lock not reusable after Done")
	}
}

func TestControl_Toggle(t *testing.T) {
	t.Parallel()

	c := NewControl()
	if c.Paused() {
		t.Fatal("new control starts paused")
	}
	if got := c.Toggle(); !got {
		t.Fatal("first toggle should report paused")
	}
	if got := c.Toggle(); got {
		t.Fatal("second toggle should report unpaused")
	}
}

func TestSet_IndependentQueues(t *testing.T) {
	t.Parallel()

	s := NewSet()
	d := reposdom.RepoDescriptor{Name: "x"}
	s.Git.Add(d)
	if s.Svn.Size() != 0 || s.Delete.Size() != 0 {
		t.Fatal("queues share state")
	}
	// same name may sit in different queues at once
	if !s.Delete.Add(d) {
		t.Fatal("delete queue rejected name held by git queue")
	}
}
