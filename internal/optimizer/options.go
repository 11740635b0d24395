package optimizer

import "fmt"

const (
	// DefaultExactThreshold is the largest stop count solved by exhaustive search.
	DefaultExactThreshold = 10

	// MaxExactThreshold caps exhaustive search: 11! orderings of the
	// non-origin stops at N=12 is the worst case this package accepts.
	MaxExactThreshold = 12

	// DefaultMaxTwoOptPasses bounds 2-opt local search.
	DefaultMaxTwoOptPasses = 1000
)

// Options configures a solve.
//
// The zero value is usable but disables the exact phase; callers usually
// start from DefaultOptions.
type Options struct {
	// ClosedTour adds the return leg from the last stop to the origin.
	ClosedTour bool

	// ExactThreshold is the largest N solved exactly. 0 sends every
	// instance with more than one stop to the heuristic phase.
	ExactThreshold int

	// MaxTwoOptPasses caps full 2-opt scans. 0 selects DefaultMaxTwoOptPasses.
	MaxTwoOptPasses int
}

// DefaultOptions returns an open-tour configuration with the package defaults.
func DefaultOptions() Options {
	return Options{
		ClosedTour:      false,
		ExactThreshold:  DefaultExactThreshold,
		MaxTwoOptPasses: DefaultMaxTwoOptPasses,
	}
}

// normalize validates opts and fills zero values that have defaults.
func (o Options) normalize() (Options, error) {
	if o.ExactThreshold < 0 || o.ExactThreshold > MaxExactThreshold {
		return Options{}, fmt.Errorf("%w: exact threshold %d outside [0,%d]", ErrInvalidOptions, o.ExactThreshold, MaxExactThreshold)
	}
	if o.MaxTwoOptPasses < 0 {
		return Options{}, fmt.Errorf("%w: max 2-opt passes %d must not be negative", ErrInvalidOptions, o.MaxTwoOptPasses)
	}
	if o.MaxTwoOptPasses == 0 {
		o.MaxTwoOptPasses = DefaultMaxTwoOptPasses
	}

	return o, nil
}
