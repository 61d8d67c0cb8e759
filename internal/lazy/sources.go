package lazy

import (
	"github.com/specialistvlad/lazyflow/internal/ndarray"
)

type arraySource[E any] struct {
	arr *ndarray.Array[E]
}

// FromArray serves frames of an in-memory array without copying.
func FromArray[E any](arr *ndarray.Array[E]) Box[*ndarray.Array[E]] {
	return NewBox[*ndarray.Array[E]](&arraySource[E]{arr: arr})
}

func (s *arraySource[E]) Length() int {
	return s.arr.Frames()
}

func (s *arraySource[E]) RequestRange(start, end int) (*ndarray.Array[E], error) {
	return s.arr.Slice(start, end), nil
}

func (s *arraySource[E]) CalculateOverhead(start, end int) int {
	return 0
}

// GeneratorFunc computes frames [start, end) on demand.
type GeneratorFunc[T any] func(start, end int) (T, error)

type generator[T any] struct {
	length int
	fn     GeneratorFunc[T]
}

// Generate builds a producer of length frames backed by fn.
func Generate[T any](length int, fn GeneratorFunc[T]) Box[T] {
	return NewBox[T](&generator[T]{length: length, fn: fn})
}

func (g *generator[T]) Length() int {
	return g.length
}

func (g *generator[T]) RequestRange(start, end int) (T, error) {
	return g.fn(start, end)
}

type mapped[E any] struct {
	src Box[*ndarray.Array[E]]
	fn  func(E) E
}

// Map applies fn to every element of the frames src produces.
func Map[E any](src Box[*ndarray.Array[E]], fn func(E) E) Box[*ndarray.Array[E]] {
	return NewBox[*ndarray.Array[E]](&mapped[E]{src: src, fn: fn})
}

func (m *mapped[E]) Length() int {
	return m.src.Length()
}

func (m *mapped[E]) RequestRange(start, end int) (*ndarray.Array[E], error) {
	in, err := m.src.RequestRange(start, end)
	if err != nil {
		return nil, err
	}
	flat := in.Flat()
	out := make([]E, len(flat))
	for i, v := range flat {
		out[i] = m.fn(v)
	}
	return ndarray.FromFlat(in.Shape(), out)
}

func (m *mapped[E]) CalculateOverhead(start, end int) int {
	return m.src.CalculateOverhead(start, end) + (end - start)
}
