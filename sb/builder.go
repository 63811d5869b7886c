package sb

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/slabkit/sb/alloc"
)

// slab is one fixed-capacity region of the chain. len(data) is always the
// builder's capacity; only data[:length] holds content.
type slab struct {
	data   []byte
	length int
}

// Builder accumulates bytes in a chain of fixed-capacity slabs.
//
// Slab 0 lives inside the Builder itself (or in a Builder-owned slice when
// the capacity exceeds DefaultCapacity) and is never handed to the allocator.
// Every later slab comes from the configured alloc.Allocator and goes back to
// it in Free. Every slab except the last is full.
//
// A Builder must not be copied after Init and is not safe for concurrent use.
type Builder struct {
	// addr detects copies by value, which would share allocated slabs.
	addr *Builder

	inline [DefaultCapacity]byte
	large  []byte

	slabs []slab
	last  int

	capacity int
	alloc    alloc.Allocator
	eager    bool
	strict   bool
	log      *slog.Logger
}

// New returns an initialized Builder configured by opts.
func New(opts *Options) (*Builder, error) {
	o := opts.withDefaults()
	if o.Capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCapacity, o.Capacity)
	}
	b := &Builder{}
	b.configure(o)
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Builder) configure(o Options) {
	b.capacity = o.Capacity
	b.alloc = o.Allocator
	b.eager = o.EagerGrowth
	b.strict = o.StrictDirectives
	b.log = o.Logger
}

// Init resets b to a single empty embedded slab. A zero Builder is configured
// with default Options. If b still owns allocated slabs from earlier use they
// are released first and any release failure is returned; b is reset either way.
func (b *Builder) Init() error {
	if b == nil {
		return ErrNotInitialized
	}

	var err error
	if b.addr == b {
		err = b.Free()
	} else {
		// Fresh or copied: nothing here is ours to release.
		b.large = nil
	}
	b.addr = b

	if b.capacity == 0 {
		b.configure((*Options)(nil).withDefaults())
	}

	b.slabs = []slab{{data: b.firstRegion()}}
	b.last = 0
	return err
}

// firstRegion returns storage for slab 0 that the allocator never sees.
func (b *Builder) firstRegion() []byte {
	if b.capacity <= DefaultCapacity {
		return b.inline[:b.capacity:b.capacity]
	}
	if len(b.large) != b.capacity {
		b.large = make([]byte, b.capacity)
	}
	return b.large
}

// check reports whether b may be used.
func (b *Builder) check() error {
	if b == nil || b.slabs == nil {
		return ErrNotInitialized
	}
	if b.addr != b {
		return ErrCopied
	}
	return nil
}

// Free releases every slab except the embedded first one, last slab first,
// each with its exact acquisition size. Release failures are collected and
// teardown continues. Slab 0 keeps its content, so IsEmpty still reports
// whether anything was appended since Init. Free on a nil or uninitialized
// builder is a no-op.
func (b *Builder) Free() error {
	if b == nil || b.slabs == nil {
		return nil
	}
	if b.addr != b {
		return ErrCopied
	}

	var errs []error
	released := 0
	for len(b.slabs) > 1 {
		i := len(b.slabs) - 1
		if err := b.alloc.Release(b.slabs[i].data, b.capacity); err != nil {
			errs = append(errs, fmt.Errorf("release slab %d: %w", i, err))
		} else {
			released++
		}
		b.slabs[i] = slab{}
		b.slabs = b.slabs[:i]
	}
	b.last = 0

	b.log.Debug("slab chain torn down", "released", released, "failed", len(errs))
	return errors.Join(errs...)
}

// IsEmpty reports whether the embedded first slab holds no bytes. A nil or
// uninitialized builder is empty.
func (b *Builder) IsEmpty() bool {
	if b == nil || len(b.slabs) == 0 {
		return true
	}
	return b.slabs[0].length == 0
}

// Len returns the number of bytes accumulated across the chain.
func (b *Builder) Len() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, s := range b.slabs {
		n += s.length
	}
	return n
}

// SlabCount returns the number of slabs in the chain, or 0 before Init.
func (b *Builder) SlabCount() int {
	if b == nil {
		return 0
	}
	return len(b.slabs)
}

// Capacity returns the fixed size of each slab.
func (b *Builder) Capacity() int {
	if b == nil {
		return 0
	}
	return b.capacity
}

// SlabLengths returns the used length of every slab in chain order.
func (b *Builder) SlabLengths() []int {
	if b == nil {
		return nil
	}
	out := make([]int, len(b.slabs))
	for i, s := range b.slabs {
		out[i] = s.length
	}
	return out
}

// grow acquires a fresh slab and makes it the last one.
func (b *Builder) grow() error {
	region, err := b.alloc.Acquire(b.capacity)
	if err != nil {
		b.log.Debug("slab acquire failed", "slabs", len(b.slabs), "capacity", b.capacity, "error", err)
		return fmt.Errorf("%w: %w", ErrGrow, err)
	}
	if len(region) != b.capacity {
		_ = b.alloc.Release(region, len(region))
		return fmt.Errorf("%w: allocator returned %d bytes, want %d", ErrGrow, len(region), b.capacity)
	}

	b.slabs = append(b.slabs, slab{data: region})
	b.last = len(b.slabs) - 1
	b.log.Debug("slab acquired", "slabs", len(b.slabs), "capacity", b.capacity)
	return nil
}
