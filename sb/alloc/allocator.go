package alloc

import "fmt"

// Allocator acquires and releases fixed-size regions for slab storage.
type Allocator interface {
	// Acquire returns a zeroed, writable region of exactly size bytes.
	Acquire(size int) ([]byte, error)

	// Release returns a region obtained from Acquire. size must equal the
	// size passed to Acquire; a mismatch leaves the region mapped.
	Release(region []byte, size int) error
}

// Default returns the allocator used when a builder is not given one.
func Default() Allocator {
	return NewOS()
}

// HeapAllocator hands out ordinary Go slices. Release only validates the
// request; the garbage collector reclaims the memory.
type HeapAllocator struct{}

// NewHeap returns a HeapAllocator.
func NewHeap() *HeapAllocator {
	return &HeapAllocator{}
}

// Acquire allocates size bytes on the Go heap.
func (*HeapAllocator) Acquire(size int) ([]byte, error) {
	if err := checkAcquire(size); err != nil {
		return nil, err
	}
	return make([]byte, size), nil
}

// Release validates region against size.
func (*HeapAllocator) Release(region []byte, size int) error {
	return checkRelease(region, size)
}

func checkAcquire(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	return nil
}

func checkRelease(region []byte, size int) error {
	if len(region) == 0 {
		return ErrBadRegion
	}
	if len(region) != size {
		return fmt.Errorf("%w: region is %d bytes, release asked for %d", ErrSizeMismatch, len(region), size)
	}
	return nil
}
