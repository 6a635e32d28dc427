package CuckooSet

import "github.com/pkg/errors"

// ErrInvalidCapacity is returned by New when the requested capacity cannot
// back a table: at least one bucket per row is required.
var ErrInvalidCapacity = errors.New("CuckooSet: capacity must be a positive integer")

// ErrInvalidStripes is returned by New when WithInitialStripes is given a
// non-positive stripe count, or one that doesn't evenly divide capacity.
var ErrInvalidStripes = errors.New("CuckooSet: initial stripe count must be a positive integer dividing capacity")
