package lazy

// Operation is a range-queryable producer of frames.
type Operation[T any] interface {
	// Length is the number of frames along the leading dimension.
	Length() int
	// RequestRange materializes frames [start, end).
	RequestRange(start, end int) (T, error)
}

// OverheadEstimator is implemented by operations that can estimate the work
// a request would cost. Operations without it cost end-start.
type OverheadEstimator interface {
	CalculateOverhead(start, end int) int
}

// Frames is the set of frame operations the combinators need from a value.
// *ndarray.Array[E] satisfies Frames[*ndarray.Array[E]].
type Frames[T any] interface {
	CutFront(n int) T
	CutEnd(n int) T
	Append(other T) T
	Prepend(other T) T
}

// Box is an opaque handle around an Operation. The zero Box is empty: it has
// no frames and every non-empty request fails.
type Box[T any] struct {
	op Operation[T]
}

// NewBox wraps op.
func NewBox[T any](op Operation[T]) Box[T] {
	return Box[T]{op: op}
}

// IsZero reports whether the box wraps nothing.
func (b Box[T]) IsZero() bool {
	return b.op == nil
}

// Length is the number of frames the box can produce.
func (b Box[T]) Length() int {
	if b.op == nil {
		return 0
	}
	return b.op.Length()
}

// RequestRange returns exactly end-start frames starting at start.
func (b Box[T]) RequestRange(start, end int) (T, error) {
	if start < 0 || start > end || end > b.Length() {
		var zero T
		return zero, &BoundsError{Kind: ErrRangeOutOfBounds, Start: start, End: end, Length: b.Length()}
	}
	if b.op == nil {
		var zero T
		return zero, nil
	}
	return b.op.RequestRange(start, end)
}

// CalculateOverhead estimates the cost of RequestRange(start, end).
func (b Box[T]) CalculateOverhead(start, end int) int {
	if b.op == nil {
		return 0
	}
	if est, ok := b.op.(OverheadEstimator); ok {
		return est.CalculateOverhead(start, end)
	}
	return end - start
}
