package CuckooSet

import "github.com/sirupsen/logrus"

// config holds the configurable parameters for a new CuckooSet, set via
// functional options passed to New.
type config struct {
	logger  *logrus.Logger
	stripes int // 0 means "use capacity"
}

// Option configures a CuckooSet at construction time.
type Option func(*config)

// WithLogger attaches a logrus.Logger used for resize/retry diagnostics.
// If omitted, a silent logger (output discarded) is used: the hot path
// never logs regardless of this setting.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithInitialStripes overrides the lock stripe count L (otherwise equal to
// the constructor's capacity argument). L is fixed for the lifetime of the
// set regardless of how capacity grows via Resize (invariant I4). n must
// evenly divide the constructor's capacity argument — every stripe/bucket
// mapping in the package assumes bucket index mod L is well-defined
// regardless of row or current table size, which only holds when L
// divides C. New rejects an n that doesn't divide capacity.
func WithInitialStripes(n int) Option {
	return func(c *config) {
		c.stripes = n
		if n == 0 {
			// An explicit 0 must not read as "use capacity"; store a count New rejects.
			c.stripes = -1
		}
	}
}
