package sb

import "errors"

var (
	// ErrNotInitialized indicates an operation on a nil builder or one that was never initialized.
	ErrNotInitialized = errors.New("sb: builder not initialized")

	// ErrCopied indicates a builder value was copied after Init and the copy was used.
	ErrCopied = errors.New("sb: illegal use of copied builder")

	// ErrGrow indicates a new slab could not be acquired during an append.
	ErrGrow = errors.New("sb: could not grow slab chain")

	// ErrMaterialize indicates the flat result could not be allocated.
	ErrMaterialize = errors.New("sb: could not materialize")

	// ErrBadCapacity indicates a non-positive slab capacity in Options.
	ErrBadCapacity = errors.New("sb: slab capacity must be positive")

	// ErrMissingArg indicates a directive with no argument left to consume.
	ErrMissingArg = errors.New("sb: missing argument for directive")

	// ErrArgKind indicates an argument of the wrong kind for its directive.
	ErrArgKind = errors.New("sb: wrong argument kind for directive")

	// ErrUnknownDirective indicates a directive character outside %s %d %c %% (strict mode only).
	ErrUnknownDirective = errors.New("sb: unknown directive")

	// ErrTrailingPercent indicates a template ending in a lone '%' (strict mode only).
	ErrTrailingPercent = errors.New("sb: template ends with '%'")
)
