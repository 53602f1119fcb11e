package locks

import "errors"

var (
	// ErrReferendumNotFound is returned when a vote references a referendum
	// that is missing from the supplied referendum set.
	ErrReferendumNotFound = errors.New("referendum not found")
	// ErrReferendumMismatch is returned when a vote is computed against the
	// wrong referendum.
	ErrReferendumMismatch = errors.New("vote does not reference referendum")
	// ErrArithmeticOverflow is returned when balance or block arithmetic
	// leaves the chain's native integer width.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
