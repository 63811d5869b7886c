package sb

import (
	"log/slog"

	"github.com/joshuapare/slabkit/sb/alloc"
)

// DefaultCapacity is the size in bytes of every slab unless Options says otherwise.
const DefaultCapacity = 16384

// Options configures a Builder. A nil *Options means all defaults.
type Options struct {
	// Capacity is the fixed size of each slab in bytes.
	// Default: DefaultCapacity
	Capacity int

	// Allocator supplies every slab after the first.
	// Default: alloc.Default() (direct OS mappings)
	Allocator alloc.Allocator

	// EagerGrowth acquires the next slab as soon as an append fills the current
	// one, even when no byte is left to write. This reproduces the classic
	// behaviour where input ending exactly on a slab boundary leaves an empty
	// trailing slab. When false, slabs are acquired only when needed.
	// Default: false
	EagerGrowth bool

	// StrictDirectives makes Appendf reject unknown directives and a trailing
	// '%' instead of silently dropping them.
	// Default: false
	StrictDirectives bool

	// Logger receives debug records for slab growth and teardown.
	// Default: discard
	Logger *slog.Logger
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Capacity == 0 {
		out.Capacity = DefaultCapacity
	}
	if out.Allocator == nil {
		out.Allocator = alloc.Default()
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.DiscardHandler)
	}
	return out
}
