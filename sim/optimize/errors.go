package optimize

import "errors"

var (
	// ErrInterrupted is returned when the progress callback asks to stop or
	// the context is cancelled. No partial result accompanies it.
	ErrInterrupted = errors.New("optimize: interrupted")
	// ErrOptimumNotFound is returned when the search exhausts its iteration
	// budget or settles outside the search interval. Callers should fall
	// back to a default retention.
	ErrOptimumNotFound = errors.New("optimize: optimum not found")
	// ErrInvalidSampleSize is returned when fewer than one simulation per
	// evaluation is requested.
	ErrInvalidSampleSize = errors.New("optimize: sample size must be positive")
)
