package selection

import "errors"

var (
	// ErrNotEnoughInstances is returned by Reset when the training set is empty
	ErrNotEnoughInstances = errors.New("not enough instances: training set has no rows")

	// ErrInvalidK is returned when the number of nearest neighbors is less than 1
	ErrInvalidK = errors.New("number of nearest neighbors must be at least 1")

	// ErrInvalidMu is returned when mu lies outside the open interval (0, 1)
	ErrInvalidMu = errors.New("mu must lie strictly between 0 and 1")

	// ErrInvalidAlpha is returned when alpha lies outside its algorithm-specific range
	ErrInvalidAlpha = errors.New("alpha out of range")

	// ErrNotReset is returned by Step before a successful Reset
	ErrNotReset = errors.New("algorithm has not been reset with a training set")

	// ErrUnknownAlgorithm is returned by New for an unrecognized algorithm name
	ErrUnknownAlgorithm = errors.New("unknown selection algorithm")
)
