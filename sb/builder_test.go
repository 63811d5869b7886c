package sb

import (
	"bytes"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/slabkit/internal/testutil"
	"github.com/joshuapare/slabkit/sb/alloc"
)

// newTestBuilder returns a builder with a small capacity backed by a tracking
// allocator, and checks for leaked slabs when the test ends.
func newTestBuilder(t *testing.T, capacity int, eager bool) (*Builder, *testutil.TrackingAllocator) {
	t.Helper()
	ta := testutil.NewTracking()
	b, err := New(&Options{Capacity: capacity, Allocator: ta, EagerGrowth: eager})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, b.Free())
		ta.RequireNoLeaks(t)
	})
	return b, ta
}

// TestBuilder_HelloWorld tests the basic append and materialize round.
func TestBuilder_HelloWorld(t *testing.T) {
	b, _ := newTestBuilder(t, DefaultCapacity, false)

	require.NoError(t, b.AppendString("hello"))
	require.NoError(t, b.AppendString(" "))
	require.NoError(t, b.AppendString("world"))

	m, err := b.Materialize()
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Release()) }()

	assert.Equal(t, "hello world", m.String())
	assert.Equal(t, 11, m.Len())
	assert.Equal(t, []byte("hello world\x00"), m.CString())
	assert.Equal(t, 1, b.SlabCount(), "everything fits in the embedded slab")
}

// TestBuilder_IsEmpty tests emptiness after init, empty appends and real appends.
func TestBuilder_IsEmpty(t *testing.T) {
	b, ta := newTestBuilder(t, 8, false)
	assert.True(t, b.IsEmpty(), "empty right after New")

	require.NoError(t, b.AppendString(""))
	require.NoError(t, b.AppendBytes(nil))
	assert.True(t, b.IsEmpty(), "zero-length appends keep it empty")
	assert.Equal(t, 0, ta.Acquired(), "zero-length appends never allocate")

	require.NoError(t, b.AppendString("x"))
	assert.False(t, b.IsEmpty())
}

// TestBuilder_IsEmptyLooksAtFirstSlabOnly tests that emptiness is defined by
// slab 0 alone, even in the state the chain invariants rule out.
func TestBuilder_IsEmptyLooksAtFirstSlabOnly(t *testing.T) {
	b, _ := newTestBuilder(t, 4, false)
	require.NoError(t, b.AppendString("abcdef"))
	require.Equal(t, 2, b.SlabCount())

	b.slabs[0].length = 0
	assert.True(t, b.IsEmpty(), "a non-empty later slab is not consulted")
	b.slabs[0].length = 4
}

// TestBuilder_Uninitialized tests that nil and zero builders report ErrNotInitialized.
func TestBuilder_Uninitialized(t *testing.T) {
	var nilB *Builder
	require.ErrorIs(t, nilB.AppendString("x"), ErrNotInitialized)
	require.ErrorIs(t, nilB.AppendBytes([]byte("x")), ErrNotInitialized)
	require.ErrorIs(t, nilB.Appendf("%d", Int(1)), ErrNotInitialized)
	require.ErrorIs(t, nilB.Init(), ErrNotInitialized)
	_, err := nilB.Materialize()
	require.ErrorIs(t, err, ErrNotInitialized)
	require.NoError(t, nilB.Free())
	assert.True(t, nilB.IsEmpty())
	assert.Zero(t, nilB.Len())
	assert.Zero(t, nilB.SlabCount())
	assert.Equal(t, "", nilB.String())

	var zero Builder
	require.ErrorIs(t, zero.AppendString("x"), ErrNotInitialized)
	_, err = zero.Write([]byte("x"))
	require.ErrorIs(t, err, ErrNotInitialized)
	require.ErrorIs(t, zero.WriteByte('x'), ErrNotInitialized)
	_, err = zero.Materialize()
	require.ErrorIs(t, err, ErrNotInitialized)
}

// TestBuilder_ZeroValueInit tests that Init configures a zero Builder with defaults.
func TestBuilder_ZeroValueInit(t *testing.T) {
	var b Builder
	require.NoError(t, b.Init())
	defer func() { require.NoError(t, b.Free()) }()

	assert.Equal(t, DefaultCapacity, b.Capacity())
	assert.Equal(t, 1, b.SlabCount())
	assert.True(t, b.IsEmpty())

	// Crosses into an OS-mapped slab.
	big := strings.Repeat("z", DefaultCapacity+10)
	require.NoError(t, b.AppendString(big))
	assert.Equal(t, 2, b.SlabCount())
	assert.Equal(t, big, b.String())
}

// TestBuilder_CopyDetected tests that using a copy made after Init is refused.
func TestBuilder_CopyDetected(t *testing.T) {
	b, _ := newTestBuilder(t, 8, false)
	require.NoError(t, b.AppendString("0123456789"))

	c := *b
	require.ErrorIs(t, c.AppendString("x"), ErrCopied)
	require.ErrorIs(t, c.Free(), ErrCopied)
	_, err := c.Materialize()
	require.ErrorIs(t, err, ErrCopied)

	// Re-initializing the copy detaches it without touching b's slabs.
	require.NoError(t, c.Init())
	require.NoError(t, c.AppendString("copy"))
	assert.Equal(t, "copy", c.String())
	assert.Equal(t, "0123456789", b.String())
}

// TestNew_BadCapacity tests option validation.
func TestNew_BadCapacity(t *testing.T) {
	_, err := New(&Options{Capacity: -1})
	require.ErrorIs(t, err, ErrBadCapacity)
}

// TestBuilder_SplitAcrossSlabs tests slab splitting and per-slab fill.
func TestBuilder_SplitAcrossSlabs(t *testing.T) {
	b, ta := newTestBuilder(t, 16, false)

	data := strings.Repeat("0123456789", 4) // 40 bytes
	require.NoError(t, b.AppendString(data))

	assert.Equal(t, 3, b.SlabCount(), "ceil(40/16)")
	assert.Equal(t, []int{16, 16, 8}, b.SlabLengths())
	assert.Equal(t, 40, b.Len())
	assert.Equal(t, data, b.String())
	assert.Equal(t, []int{16, 16}, ta.Sizes(), "every slab is acquired with the capacity")
}

// TestBuilder_ExactBoundary tests both growth modes when input ends exactly on a slab boundary.
func TestBuilder_ExactBoundary(t *testing.T) {
	tests := []struct {
		name      string
		eager     bool
		appends   []string
		wantSlabs []int
	}{
		{"lazy single fill", false, []string{"0123456789abcdef"}, []int{16}},
		{"eager single fill", true, []string{"0123456789abcdef"}, []int{16, 0}},
		{"lazy two slabs", false, []string{strings.Repeat("x", 32)}, []int{16, 16}},
		{"eager two slabs", true, []string{strings.Repeat("x", 32)}, []int{16, 16, 0}},
		{"lazy fill in pieces", false, []string{"01234567", "89abcdef"}, []int{16}},
		{"eager fill in pieces", true, []string{"01234567", "89abcdef"}, []int{16, 0}},
		{"lazy then one more", false, []string{"0123456789abcdef", "g"}, []int{16, 1}},
		{"eager then one more", true, []string{"0123456789abcdef", "g"}, []int{16, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ta := newTestBuilder(t, 16, tt.eager)
			for _, s := range tt.appends {
				require.NoError(t, b.AppendString(s))
			}
			assert.Equal(t, tt.wantSlabs, b.SlabLengths())
			assert.Equal(t, len(tt.wantSlabs)-1, ta.Acquired())
			assert.Equal(t, strings.Join(tt.appends, ""), b.String())
		})
	}
}

// TestBuilder_EagerZeroLengthIntoFullSlab tests that eager growth treats an
// empty append into a full slab as overflowing, like the classic loop.
func TestBuilder_EagerZeroLengthIntoFullSlab(t *testing.T) {
	b, ta := newTestBuilder(t, 4, true)
	require.NoError(t, b.AppendString("abcd"))
	require.Equal(t, 2, b.SlabCount())

	// Free keeps slab 0 full and drops its successor.
	require.NoError(t, b.Free())
	require.Equal(t, []int{4}, b.SlabLengths())

	require.NoError(t, b.AppendString(""))
	assert.Equal(t, []int{4, 0}, b.SlabLengths())
	assert.Equal(t, 2, ta.Acquired())
}

// TestBuilder_RandomAppends checks content and slab count for seeded random append sequences.
func TestBuilder_RandomAppends(t *testing.T) {
	rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility

	for _, eager := range []bool{false, true} {
		for round := range 50 {
			capacity := 1 + rng.Intn(64)
			b, _ := newTestBuilder(t, capacity, eager)

			var want strings.Builder
			for range rng.Intn(40) {
				chunk := make([]byte, rng.Intn(3*capacity))
				rng.Read(chunk)
				want.Write(chunk)
				require.NoError(t, b.AppendBytes(chunk))
			}

			total := want.Len()
			require.Equal(t, total, b.Len(), "round %d", round)
			require.Equal(t, want.String(), b.String(), "round %d", round)

			wantSlabs := 1
			switch {
			case eager:
				wantSlabs = total/capacity + 1
			case total > 0:
				wantSlabs = (total + capacity - 1) / capacity
			}
			require.Equal(t, wantSlabs, b.SlabCount(), "round %d eager=%v cap=%d total=%d", round, eager, capacity, total)

			lengths := b.SlabLengths()
			for i := 0; i < len(lengths)-1; i++ {
				require.Equal(t, capacity, lengths[i], "slab %d of %d must be full", i, len(lengths))
			}
		}
	}
}

// TestBuilder_GrowFailure tests that a failed acquisition keeps the copied prefix.
func TestBuilder_GrowFailure(t *testing.T) {
	b, ta := newTestBuilder(t, 8, false)
	ta.FailAfter(1)

	data := "abcdefghijklmnopqrstuvwxyz0123"
	err := b.AppendString(data)
	require.ErrorIs(t, err, ErrGrow)
	require.ErrorIs(t, err, alloc.ErrAcquire)
	require.ErrorIs(t, err, testutil.ErrInjected)

	assert.Equal(t, 16, b.Len())
	assert.Equal(t, data[:16], b.String())
	assert.Equal(t, []int{8, 8}, b.SlabLengths())

	// The allocator budget is spent, so Materialize fails while String still reads the prefix.
	m, err := b.Materialize()
	require.ErrorIs(t, err, ErrMaterialize)
	require.Nil(t, m)
}

// TestBuilder_WriteReportsPartialCount tests io.Writer semantics on failure.
func TestBuilder_WriteReportsPartialCount(t *testing.T) {
	b, ta := newTestBuilder(t, 4, false)
	ta.FailAfter(2)

	n, err := b.Write([]byte("0123456789abcdef"))
	require.ErrorIs(t, err, ErrGrow)
	assert.Equal(t, 12, n)
	assert.Equal(t, "0123456789ab", b.String())
}

// TestBuilder_Free tests that teardown releases every allocated slab exactly once.
func TestBuilder_Free(t *testing.T) {
	b, ta := newTestBuilder(t, 8, false)
	require.NoError(t, b.AppendString(strings.Repeat("q", 50)))
	require.Equal(t, 7, b.SlabCount())

	require.NoError(t, b.Free())
	assert.Equal(t, 1, b.SlabCount())
	assert.Equal(t, 6, ta.Released())
	ta.RequireNoLeaks(t)
	assert.False(t, b.IsEmpty(), "slab 0 keeps what was appended")

	// Freeing twice is harmless.
	require.NoError(t, b.Free())
	assert.Equal(t, 6, ta.Released())
}

// TestBuilder_FreeUnused tests teardown when nothing was appended.
func TestBuilder_FreeUnused(t *testing.T) {
	b, ta := newTestBuilder(t, 8, false)
	require.NoError(t, b.Free())
	assert.Equal(t, 1, b.SlabCount())
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, ta.Released())
}

// TestBuilder_FreeReleaseErrors tests that release failures are joined and teardown completes.
func TestBuilder_FreeReleaseErrors(t *testing.T) {
	b, err := New(&Options{Capacity: 4, Allocator: testutil.ReleaseFailing{Allocator: alloc.NewHeap()}})
	require.NoError(t, err)
	require.NoError(t, b.AppendString("0123456789"))
	require.Equal(t, 3, b.SlabCount())

	err = b.Free()
	require.ErrorIs(t, err, alloc.ErrRelease)
	assert.Contains(t, err.Error(), "release slab 2")
	assert.Contains(t, err.Error(), "release slab 1")
	assert.Equal(t, 1, b.SlabCount())
}

// TestBuilder_InitReleasesLeftovers tests that re-initializing returns slabs to the allocator.
func TestBuilder_InitReleasesLeftovers(t *testing.T) {
	b, ta := newTestBuilder(t, 4, false)
	require.NoError(t, b.AppendString("0123456789"))
	require.Equal(t, 2, ta.Live())

	require.NoError(t, b.Init())
	assert.Equal(t, 0, ta.Live())
	assert.Equal(t, 1, b.SlabCount())
	assert.True(t, b.IsEmpty())
	assert.Equal(t, "", b.String())
}

// TestBuilder_LargeCapacity tests a first slab bigger than the inline array.
func TestBuilder_LargeCapacity(t *testing.T) {
	const capacity = DefaultCapacity * 2
	b, ta := newTestBuilder(t, capacity, false)

	data := strings.Repeat("L", DefaultCapacity+1)
	require.NoError(t, b.AppendString(data))
	assert.Equal(t, 1, b.SlabCount())
	assert.Equal(t, 0, ta.Acquired(), "slab 0 never comes from the allocator")

	require.NoError(t, b.AppendString(strings.Repeat("M", capacity)))
	assert.Equal(t, 2, b.SlabCount())
	assert.Equal(t, []int{capacity}, ta.Sizes())
}

// TestBuilder_WriteByte tests single-byte appends across a boundary.
func TestBuilder_WriteByte(t *testing.T) {
	b, _ := newTestBuilder(t, 2, false)
	for _, c := range []byte("abcde") {
		require.NoError(t, b.WriteByte(c))
	}
	assert.Equal(t, "abcde", b.String())
	assert.Equal(t, []int{2, 2, 1}, b.SlabLengths())
}

// TestBuilder_AppendCString tests strlen-style appends.
func TestBuilder_AppendCString(t *testing.T) {
	b, _ := newTestBuilder(t, 8, false)
	require.NoError(t, b.AppendCString([]byte("abc\x00def")))
	require.NoError(t, b.AppendCString([]byte("ghi")))
	require.NoError(t, b.AppendCString([]byte("\x00ignored")))
	assert.Equal(t, "abcghi", b.String())
}

// TestBuilder_DebugLogging tests that growth and teardown are logged at debug level.
func TestBuilder_DebugLogging(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b, err := New(&Options{Capacity: 4, Allocator: alloc.NewHeap(), Logger: logger})
	require.NoError(t, err)
	require.NoError(t, b.AppendString("0123456789"))
	require.NoError(t, b.Free())

	logs := out.String()
	assert.Contains(t, logs, "slab acquired")
	assert.Contains(t, logs, "slab chain torn down")
	assert.Contains(t, logs, "released=2")
}
