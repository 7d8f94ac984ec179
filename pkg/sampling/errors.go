package sampling

import (
	"errors"
	"fmt"
)

// Bake failure classes. Detailed errors wrap one of these.
var (
	// ErrConfig reports bad caller parameters, detected before sampling starts.
	ErrConfig = errors.New("bake configuration error")
	// ErrDegenerateMesh reports a mesh that has no area to sample.
	ErrDegenerateMesh = errors.New("degenerate mesh")
	// ErrInternal reports a broken invariant; it indicates a bug, not bad input.
	ErrInternal = errors.New("internal invariant violation")
	// ErrMismatch reports a previously baked array that does not fit the configured count.
	ErrMismatch = errors.New("baked sample count mismatch")
)

// Validate checks that a previously baked array still matches count.
// A mismatched array must be rebaked, not reused.
func Validate(samples []Record, count int) error {
	if len(samples) != count {
		return fmt.Errorf("%w: %d baked vs %d configured", ErrMismatch, len(samples), count)
	}
	return nil
}
