// Package buf holds overflow-checked size arithmetic for slab bookkeeping.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// SumLengths adds up non-negative lengths, failing on a negative entry or overflow.
//
// Used when flattening a chain so that the final allocation size is never
// computed from a wrapped total:
//
//	total, err := buf.SumLengths(lengths)
//	if err != nil {
//	    return fmt.Errorf("materialize: %w", err)
//	}
func SumLengths(lengths []int) (int, error) {
	total := 0
	for i, n := range lengths {
		if n < 0 {
			return 0, fmt.Errorf("negative length at %d: %d", i, n)
		}
		var ok bool
		total, ok = AddOverflowSafe(total, n)
		if !ok {
			return 0, fmt.Errorf("overflow: length sum exceeds int at %d", i)
		}
	}
	return total, nil
}

// Window returns b[off:off+n] if it fits within len(b).
func Window(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Fits reports whether n more bytes fit after used bytes of a capacity-sized region.
func Fits(capacity, used, n int) bool {
	if used < 0 || n < 0 || used > capacity {
		return false
	}
	end, ok := AddOverflowSafe(used, n)
	return ok && end <= capacity
}
