package ndarray

// Number is the set of element types Cast converts between.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Cast converts every element of a to U using Go's numeric conversion rules.
func Cast[U, T Number](a *Array[T]) *Array[U] {
	src := a.Flat()
	dst := make([]U, len(src))
	for i, v := range src {
		dst[i] = U(v)
	}
	return &Array[U]{
		shape: a.Shape(),
		st:    &storage[U]{data: dst, hi: len(dst)},
	}
}
