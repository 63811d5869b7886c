package alloc

import "errors"

var (
	// ErrAcquire indicates the backing primitive could not provide a region.
	ErrAcquire = errors.New("alloc: acquire failed")

	// ErrRelease indicates the backing primitive refused to release a region.
	ErrRelease = errors.New("alloc: release failed")

	// ErrBadSize indicates a non-positive acquisition size.
	ErrBadSize = errors.New("alloc: size must be positive")

	// ErrSizeMismatch indicates Release was given a size other than the one acquired.
	ErrSizeMismatch = errors.New("alloc: release size does not match region")

	// ErrBadRegion indicates a nil, empty or foreign region was passed to Release.
	ErrBadRegion = errors.New("alloc: bad region")
)
