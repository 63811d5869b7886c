package sb

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/slabkit/internal/buf"
	"github.com/joshuapare/slabkit/sb/alloc"
)

// Materialized is the flat, NUL-terminated copy of a builder's content. It is
// owned by the caller and independent of the builder; Release returns its
// storage to the allocator that produced it.
type Materialized struct {
	region []byte // n content bytes followed by NUL
	n      int
	alloc  alloc.Allocator
}

// Bytes returns the content without the terminator. The slice aliases the
// materialized storage and must not be used after Release.
func (m *Materialized) Bytes() []byte {
	if m == nil || m.region == nil {
		return nil
	}
	return m.region[:m.n:m.n]
}

// CString returns the content followed by its NUL terminator.
func (m *Materialized) CString() []byte {
	if m == nil || m.region == nil {
		return nil
	}
	return m.region[: m.n+1 : m.n+1]
}

// Len returns the content length, excluding the terminator.
func (m *Materialized) Len() int {
	if m == nil {
		return 0
	}
	return m.n
}

// String returns a Go string copy of the content.
func (m *Materialized) String() string {
	return string(m.Bytes())
}

// Release hands the storage back to the allocator with its exact size.
// Calling Release again is a no-op.
func (m *Materialized) Release() error {
	if m == nil || m.region == nil {
		return nil
	}
	if err := m.alloc.Release(m.region, m.n+1); err != nil {
		return fmt.Errorf("release materialized region: %w", err)
	}
	m.region = nil
	return nil
}

// Materialize walks the chain once to size the result, acquires exactly
// Len()+1 bytes from the builder's allocator and copies every slab into it in
// chain order, followed by a NUL byte. The builder is not modified.
func (b *Builder) Materialize() (*Materialized, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	total, err := buf.SumLengths(b.SlabLengths())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}
	size, ok := buf.AddOverflowSafe(total, 1)
	if !ok {
		return nil, fmt.Errorf("%w: %d bytes leaves no room for terminator", ErrMaterialize, total)
	}

	region, err := b.alloc.Acquire(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}
	if len(region) != size {
		_ = b.alloc.Release(region, len(region))
		return nil, fmt.Errorf("%w: allocator returned %d bytes, want %d", ErrMaterialize, len(region), size)
	}

	off := 0
	for _, s := range b.slabs {
		off += copy(region[off:], s.data[:s.length])
	}
	region[total] = 0

	return &Materialized{region: region, n: total, alloc: b.alloc}, nil
}

// String returns the accumulated content as a Go string. Unlike Materialize
// it allocates on the Go heap and needs no release. An unusable builder
// yields "".
func (b *Builder) String() string {
	if b.check() != nil {
		return ""
	}
	var out strings.Builder
	out.Grow(b.Len())
	for _, s := range b.slabs {
		out.Write(s.data[:s.length])
	}
	return out.String()
}

// WriteTo implements io.WriterTo, streaming each slab in chain order without
// flattening.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	if err := b.check(); err != nil {
		return 0, err
	}
	var total int64
	for _, s := range b.slabs {
		if s.length == 0 {
			continue
		}
		n, err := w.Write(s.data[:s.length])
		total += int64(n)
		if err != nil {
			return total, err
		}
		if n != s.length {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}
