package hierseg

import "math"

type options struct {
	threshold  float64
	minRegions int
	logger     *Logger
	logEvery   int
}

// Option configures an Agglomerator.
type Option func(*options)

// WithThreshold stops agglomeration once the best edge's score exceeds
// threshold. Edges with score equal to the threshold still merge. The
// default threshold is +Inf: merge until no edges are left or another
// criterion stops the run.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithMinRegions stops agglomeration once the number of live regions
// reaches n. The default is 1.
func WithMinRegions(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.minRegions = n
	}
}

// WithLogger configures the logger. The default logs nothing.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogInterval logs merge-loop progress at Debug every n merges.
// Zero disables progress logging; the run summary is always logged at Info.
func WithLogInterval(n int) Option {
	return func(o *options) {
		o.logEvery = n
	}
}

func defaultOptions() options {
	return options{
		threshold:  math.Inf(1),
		minRegions: 1,
		logger:     NoopLogger(),
	}
}
