//go:build !unix && !windows

package alloc

// OSAllocator falls back to the Go heap when no mapping primitive is available.
type OSAllocator struct {
	heap HeapAllocator
}

// NewOS returns an OSAllocator.
func NewOS() *OSAllocator {
	return &OSAllocator{}
}

// Acquire allocates size bytes on the Go heap.
func (a *OSAllocator) Acquire(size int) ([]byte, error) {
	return a.heap.Acquire(size)
}

// Release validates region against size.
func (a *OSAllocator) Release(region []byte, size int) error {
	return a.heap.Release(region, size)
}
