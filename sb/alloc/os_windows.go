//go:build windows

package alloc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// OSAllocator reserves and commits pages with VirtualAlloc and frees them with VirtualFree.
type OSAllocator struct{}

// NewOS returns an OSAllocator.
func NewOS() *OSAllocator {
	return &OSAllocator{}
}

// Acquire commits size bytes of zeroed, read-write memory.
func (*OSAllocator) Acquire(size int) ([]byte, error) {
	if err := checkAcquire(size); err != nil {
		return nil, err
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("%w: VirtualAlloc %d bytes: %w", ErrAcquire, size, err)
	}
	// Use unsafe.Pointer in a single expression to avoid linter warnings
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// Release frees a region returned by Acquire.
//
// MEM_RELEASE frees the whole reservation and requires a zero size argument;
// size is still checked against the region so callers keep the same contract
// on every platform.
func (*OSAllocator) Release(region []byte, size int) error {
	if err := checkRelease(region, size); err != nil {
		return err
	}
	addr := uintptr(unsafe.Pointer(&region[0]))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("%w: VirtualFree %d bytes: %w", ErrRelease, size, err)
	}
	return nil
}
