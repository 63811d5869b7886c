package sb

import (
	"bytes"

	"github.com/joshuapare/slabkit/internal/buf"
)

// AppendBytes copies p into the chain, filling the last slab and acquiring
// new slabs as needed. If a slab cannot be acquired the bytes already copied
// stay in the chain and the error wraps ErrGrow.
func (b *Builder) AppendBytes(p []byte) error {
	if err := b.check(); err != nil {
		return err
	}
	_, err := appendTo(b, p)
	return err
}

// AppendString copies s into the chain. See AppendBytes.
func (b *Builder) AppendString(s string) error {
	if err := b.check(); err != nil {
		return err
	}
	_, err := appendTo(b, s)
	return err
}

// AppendCString appends p up to, not including, its first NUL byte. Without a
// NUL the whole of p is appended.
func (b *Builder) AppendCString(p []byte) error {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	return b.AppendBytes(p)
}

// Write implements io.Writer. On failure n is the number of bytes that made
// it into the chain.
func (b *Builder) Write(p []byte) (int, error) {
	if err := b.check(); err != nil {
		return 0, err
	}
	return appendTo(b, p)
}

// WriteString implements io.StringWriter.
func (b *Builder) WriteString(s string) (int, error) {
	if err := b.check(); err != nil {
		return 0, err
	}
	return appendTo(b, s)
}

// WriteByte implements io.ByteWriter.
func (b *Builder) WriteByte(c byte) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.appendByte(c)
}

func (b *Builder) appendByte(c byte) error {
	one := [1]byte{c}
	_, err := appendTo(b, one[:])
	return err
}

// appendTo is the slab-splitting copy loop shared by every append entry point.
func appendTo[T string | []byte](b *Builder, p T) (int, error) {
	written := 0
	last := &b.slabs[b.last]
	remaining := b.capacity - last.length

	for b.overflows(last.length, remaining, len(p)) {
		copy(last.data[last.length:], p[:remaining])
		last.length = b.capacity
		written += remaining
		p = p[remaining:]

		if err := b.grow(); err != nil {
			return written, err
		}
		last = &b.slabs[b.last]
		remaining = b.capacity
	}

	dst, _ := buf.Window(last.data, last.length, len(p))
	copy(dst, p)
	last.length += len(p)
	return written + len(p), nil
}

// overflows reports whether n more bytes force the last slab to be filled and
// a new one acquired. In eager mode input that exactly fills the slab counts
// as overflowing, which leaves an empty trailing slab.
func (b *Builder) overflows(used, remaining, n int) bool {
	if b.eager {
		return remaining-n <= 0
	}
	return !buf.Fits(b.capacity, used, n)
}
