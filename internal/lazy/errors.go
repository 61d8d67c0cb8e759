package lazy

import (
	"errors"
	"fmt"
)

var (
	// ErrStartOutOfBounds means a window starts past the end of its source.
	ErrStartOutOfBounds = errors.New("start out of bounds")
	// ErrEndOutOfBounds means a window ends past the end of its source.
	ErrEndOutOfBounds = errors.New("end out of bounds")
	// ErrStartEndMessedBounds means a window starts after it ends.
	ErrStartEndMessedBounds = errors.New("start after end")
	// ErrRangeOutOfBounds means a request does not fit inside the operation.
	ErrRangeOutOfBounds = errors.New("requested range out of bounds")
)

// BoundsError carries the offending range of a rejected window or request.
type BoundsError struct {
	Kind   error
	Start  int
	End    int
	Length int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: [%d, %d) with length %d", e.Kind, e.Start, e.End, e.Length)
}

// Unwrap exposes the kind to errors.Is.
func (e *BoundsError) Unwrap() error {
	return e.Kind
}
