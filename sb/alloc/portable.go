package alloc

import (
	"fmt"

	"github.com/edsrzf/mmap-go"
)

// PortableAllocator creates anonymous mappings through mmap-go, which covers
// the platforms the OS allocator handles with one code path.
type PortableAllocator struct{}

// NewPortable returns a PortableAllocator.
func NewPortable() *PortableAllocator {
	return &PortableAllocator{}
}

// Acquire maps size bytes of anonymous read-write memory.
func (*PortableAllocator) Acquire(size int) ([]byte, error) {
	if err := checkAcquire(size); err != nil {
		return nil, err
	}
	m, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: anonymous map %d bytes: %w", ErrAcquire, size, err)
	}
	return m, nil
}

// Release unmaps a region returned by Acquire.
func (*PortableAllocator) Release(region []byte, size int) error {
	if err := checkRelease(region, size); err != nil {
		return err
	}
	m := mmap.MMap(region)
	if err := m.Unmap(); err != nil {
		return fmt.Errorf("%w: unmap %d bytes: %w", ErrRelease, size, err)
	}
	return nil
}
