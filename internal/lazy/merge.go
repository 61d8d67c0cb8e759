package lazy

type merge[T Frames[T]] struct {
	a Box[T]
	b Box[T]
}

// NewMerge concatenates a and b along the frame dimension. The split point
// is a.Length() at construction time.
func NewMerge[T Frames[T]](a, b Box[T]) Box[T] {
	return NewBox[T](&merge[T]{a: a, b: b})
}

func (m *merge[T]) Length() int {
	return m.a.Length() + m.b.Length()
}

func (m *merge[T]) RequestRange(start, end int) (T, error) {
	split := m.a.Length()
	switch {
	case end <= split:
		return m.a.RequestRange(start, end)
	case start >= split:
		return m.b.RequestRange(start-split, end-split)
	}

	head, err := m.a.RequestRange(start, split)
	if err != nil {
		var zero T
		return zero, err
	}
	tail, err := m.b.RequestRange(0, end-split)
	if err != nil {
		var zero T
		return zero, err
	}
	return head.Append(tail), nil
}

func (m *merge[T]) CalculateOverhead(start, end int) int {
	split := m.a.Length()
	switch {
	case end <= split:
		return m.a.CalculateOverhead(start, end)
	case start >= split:
		return m.b.CalculateOverhead(start-split, end-split)
	}
	return m.a.CalculateOverhead(start, split) + m.b.CalculateOverhead(0, end-split)
}
