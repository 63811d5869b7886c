//go:build unix

package alloc

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// OSAllocator maps anonymous private pages with mmap and unmaps them with munmap.
type OSAllocator struct{}

// NewOS returns an OSAllocator.
func NewOS() *OSAllocator {
	return &OSAllocator{}
}

// Acquire maps size bytes of zeroed, read-write memory.
func (*OSAllocator) Acquire(size int) ([]byte, error) {
	if err := checkAcquire(size); err != nil {
		return nil, err
	}
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrAcquire, size, err)
	}
	return region, nil
}

// Release unmaps a region returned by Acquire.
func (*OSAllocator) Release(region []byte, size int) error {
	if err := checkRelease(region, size); err != nil {
		return err
	}
	if err := unix.Munmap(region); err != nil {
		// x/sys tracks its own mappings; anything it did not create is EINVAL.
		if errors.Is(err, unix.EINVAL) {
			return fmt.Errorf("%w: region was not mapped by this allocator", ErrBadRegion)
		}
		return fmt.Errorf("%w: munmap %d bytes: %w", ErrRelease, size, err)
	}
	return nil
}
