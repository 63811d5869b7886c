// Package alloc provides the slab allocators that back a string builder's chain.
//
// # Overview
//
// A builder never grows one contiguous buffer. Every slab after the first is a
// fixed-size region acquired from an Allocator and handed back with the exact
// same size when the builder is torn down. Keeping the allocator behind an
// interface lets the chain logic stay independent of any OS primitive.
//
// # Allocator Interface
//
//   - Acquire(size): obtain a zeroed, writable region of exactly size bytes
//   - Release(region, size): return a region; size must match the acquisition
//
// Failures are always returned as errors wrapping the sentinels in errors.go.
//
// # Implementations
//
// OSAllocator: maps pages directly from the operating system
//
//   - Unix: anonymous private mmap / munmap (golang.org/x/sys/unix)
//   - Windows: VirtualAlloc / VirtualFree (golang.org/x/sys/windows)
//   - Other platforms: Go heap fallback
//
// PortableAllocator: anonymous mappings through github.com/edsrzf/mmap-go
//
// HeapAllocator: plain Go slices, release is bookkeeping only
//
// Instrumented: wraps any allocator and exports Prometheus counters
//
// # Usage Example
//
//	a := alloc.Default()
//	region, err := a.Acquire(16384)
//	if err != nil {
//	    return err
//	}
//	defer a.Release(region, 16384)
//
// # Thread Safety
//
// OSAllocator, PortableAllocator and HeapAllocator are stateless and safe for
// concurrent use. Instrumented is safe as long as the wrapped allocator is.
package alloc
