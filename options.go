package quadsplit

// DefaultMaxFragments is the active-fragment bound used when no
// WithMaxFragments option is given.
const DefaultMaxFragments = 2000

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default configuration
//	eng := quadsplit.New()
//
//	// Smaller fragment budget, parallel child statistics
//	eng := quadsplit.New(
//		quadsplit.WithMaxFragments(500),
//		quadsplit.WithParallelStats(),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	maxFragments  int
	parallelStats bool
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		maxFragments: DefaultMaxFragments,
	}
}

// WithMaxFragments sets the maximum active-fragment count. Once the engine
// holds this many fragments, Step becomes a permanent no-op until the next
// Reset. Non-positive values fall back to DefaultMaxFragments.
func WithMaxFragments(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.maxFragments = n
		}
	}
}

// WithParallelStats computes the statistics of a step's four children on
// separate goroutines. The children read disjoint rectangles of an immutable
// buffer, so this is safe; it pays off on large regions early in a
// decomposition and is overhead once regions shrink.
func WithParallelStats() Option {
	return func(o *engineOptions) {
		o.parallelStats = true
	}
}
