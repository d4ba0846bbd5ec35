package isospectrum

import "errors"

// Errors returned by the reducer. All of them are detected before any
// arithmetic runs, so a failed call never yields a partial spectrum.
var (
	// ErrInvalidShape is returned when a field's rank is neither 1 nor 2,
	// or when its declared shape cannot be folded into shells.
	ErrInvalidShape = errors.New("isospectrum: invalid shape")

	// ErrInvalidWavenumberGrid is returned when explicit k/l axes are too
	// short, not strictly increasing, or inconsistent with the grid extent.
	ErrInvalidWavenumberGrid = errors.New("isospectrum: invalid wavenumber grid")

	// ErrEmptyInput is returned for zero-length signals and grids.
	ErrEmptyInput = errors.New("isospectrum: empty input")
)
