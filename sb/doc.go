// Package sb implements an append-only string builder backed by a chain of
// fixed-capacity slabs.
//
// # Overview
//
// A naive growable string reallocates and copies its whole content every time
// it runs out of room. A Builder never moves what it has written: it appends
// into the current slab and, once that slab is full, acquires another one
// from an alloc.Allocator (direct OS mappings by default). Materialize
// flattens the chain into one NUL-terminated region when a contiguous result
// is needed.
//
// # Usage Example
//
//	b, err := sb.New(nil)
//	if err != nil {
//	    return err
//	}
//	defer b.Free()
//
//	_ = b.AppendString("hello")
//	_ = b.Appendf(" %s #%d%c", sb.Str("world"), sb.Int(42), sb.Char('!'))
//
//	m, err := b.Materialize()
//	if err != nil {
//	    return err
//	}
//	defer m.Release()
//	fmt.Println(m.String()) // hello world #42!
//
// # Slab Ownership
//
// The first slab is stored inside the Builder and is never acquired from or
// released to the allocator. Every other slab is acquired with the builder's
// capacity and released with exactly that size by Free.
//
// # Formatting
//
// Appendf understands exactly four directives: %s, %d, %c and %%. There are
// no widths, flags or other bases. Arguments are typed values built with Str,
// Bytes, Int, Int64 and Char.
//
// # Thread Safety
//
// Builder instances are not thread-safe. Callers must synchronize access
// externally.
package sb
