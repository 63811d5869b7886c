// Package testutil provides allocator doubles for builder tests.
package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/joshuapare/slabkit/sb/alloc"
)

// ErrInjected is returned by a TrackingAllocator once its acquisition budget is spent.
var ErrInjected = errors.New("testutil: injected allocation failure")

// TrackingAllocator hands out heap regions and records every acquisition and
// release, so tests can assert that teardown returned exactly what it took.
//
// Example:
//
//	ta := testutil.NewTracking()
//	ta.FailAfter(2)
//	b, _ := sb.New(&sb.Options{Capacity: 16, Allocator: ta})
type TrackingAllocator struct {
	heap alloc.HeapAllocator

	live     map[*byte]int
	acquired int
	released int
	sizes    []int

	// budget < 0 means unlimited.
	budget int
}

// NewTracking returns a TrackingAllocator without a failure budget.
func NewTracking() *TrackingAllocator {
	return &TrackingAllocator{live: make(map[*byte]int), budget: -1}
}

// FailAfter lets n more acquisitions succeed; every later one fails with ErrInjected.
func (ta *TrackingAllocator) FailAfter(n int) {
	ta.budget = n
}

// Acquire implements alloc.Allocator.
func (ta *TrackingAllocator) Acquire(size int) ([]byte, error) {
	if ta.budget == 0 {
		return nil, fmt.Errorf("%w: %w", alloc.ErrAcquire, ErrInjected)
	}
	region, err := ta.heap.Acquire(size)
	if err != nil {
		return nil, err
	}
	if ta.budget > 0 {
		ta.budget--
	}
	ta.live[&region[0]] = size
	ta.acquired++
	ta.sizes = append(ta.sizes, size)
	return region, nil
}

// Release implements alloc.Allocator.
func (ta *TrackingAllocator) Release(region []byte, size int) error {
	if err := ta.heap.Release(region, size); err != nil {
		return err
	}
	want, ok := ta.live[&region[0]]
	if !ok {
		return fmt.Errorf("%w: region not live", alloc.ErrBadRegion)
	}
	if want != size {
		return fmt.Errorf("%w: acquired %d, released %d", alloc.ErrSizeMismatch, want, size)
	}
	delete(ta.live, &region[0])
	ta.released++
	return nil
}

// Live reports how many regions are acquired and not yet released.
func (ta *TrackingAllocator) Live() int { return len(ta.live) }

// Acquired reports the number of successful acquisitions.
func (ta *TrackingAllocator) Acquired() int { return ta.acquired }

// Released reports the number of successful releases.
func (ta *TrackingAllocator) Released() int { return ta.released }

// Sizes returns the size of every successful acquisition in order.
func (ta *TrackingAllocator) Sizes() []int { return append([]int(nil), ta.sizes...) }

// RequireNoLeaks fails the test if any region is still live.
func (ta *TrackingAllocator) RequireNoLeaks(t testing.TB) {
	t.Helper()
	if n := ta.Live(); n != 0 {
		t.Fatalf("%d region(s) still live after teardown (acquired %d, released %d)", n, ta.acquired, ta.released)
	}
}

// ReleaseFailing wraps an allocator and fails every release.
type ReleaseFailing struct {
	alloc.Allocator
}

// Release always fails with alloc.ErrRelease.
func (ReleaseFailing) Release([]byte, int) error {
	return fmt.Errorf("%w: %w", alloc.ErrRelease, ErrInjected)
}
