package lazy

type cutter[T any] struct {
	src   Box[T]
	start int
	end   int
}

// NewCutter restricts src to frames [start, end).
func NewCutter[T any](src Box[T], start, end int) (Box[T], error) {
	n := src.Length()
	switch {
	case start < 0 || start > n:
		return Box[T]{}, &BoundsError{Kind: ErrStartOutOfBounds, Start: start, End: end, Length: n}
	case end > n:
		return Box[T]{}, &BoundsError{Kind: ErrEndOutOfBounds, Start: start, End: end, Length: n}
	case start > end:
		return Box[T]{}, &BoundsError{Kind: ErrStartEndMessedBounds, Start: start, End: end, Length: n}
	}
	return NewBox[T](&cutter[T]{src: src, start: start, end: end}), nil
}

func (c *cutter[T]) Length() int {
	return c.end - c.start
}

func (c *cutter[T]) RequestRange(start, end int) (T, error) {
	return c.src.RequestRange(c.start+start, c.start+end)
}

func (c *cutter[T]) CalculateOverhead(start, end int) int {
	return c.src.CalculateOverhead(c.start+start, c.start+end)
}
