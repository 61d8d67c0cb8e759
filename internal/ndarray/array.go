package ndarray

import (
	"errors"
	"fmt"
	"sync"
)

// ErrShapeMismatch is returned when a flat buffer does not hold exactly
// product(shape) elements.
var ErrShapeMismatch = errors.New("flat data length does not match shape")

// minHeadroom is the smallest spare capacity reserved on each side of a
// buffer when it has to be reallocated during Append or Prepend.
const minHeadroom = 64

// storage is the backing buffer shared by views. The range [lo, hi) has been
// handed out to at least one view and is never written by Append or Prepend;
// growth only claims spare capacity outside of it.
type storage[T any] struct {
	mu   sync.Mutex
	data []T
	lo   int
	hi   int
}

// Array is an n-dimensional, row-major array.
type Array[T any] struct {
	shape []int
	st    *storage[T]
	off   int
}

// New returns a zero-filled array of the given shape.
func New[T any](shape ...int) *Array[T] {
	n := product(shape)
	return &Array[T]{
		shape: cloneShape(shape),
		st:    &storage[T]{data: make([]T, n), hi: n},
	}
}

// FromFlat wraps data as an array of the given shape. The array takes
// ownership of data; the caller must not modify it afterwards.
func FromFlat[T any](shape []int, data []T) (*Array[T], error) {
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension in shape %v", shape)
		}
	}
	if n := product(shape); n != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrShapeMismatch, shape, n, len(data))
	}
	return &Array[T]{
		shape: cloneShape(shape),
		st:    &storage[T]{data: data[:len(data):len(data)], hi: len(data)},
	}, nil
}

// Shape returns a copy of the array's dimensions.
func (a *Array[T]) Shape() []int {
	return cloneShape(a.shape)
}

// Rank is the number of dimensions.
func (a *Array[T]) Rank() int {
	return len(a.shape)
}

// Len is the total number of elements.
func (a *Array[T]) Len() int {
	return product(a.shape)
}

// Frames is the extent of the leading dimension. Rank-0 arrays have no frames.
func (a *Array[T]) Frames() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

// FrameSize is the number of elements in one frame: product(shape[1:]).
func (a *Array[T]) FrameSize() int {
	if len(a.shape) == 0 {
		return 1
	}
	return product(a.shape[1:])
}

// Flat returns the elements in row-major order. The returned slice shares
// storage with the array and must not be modified.
func (a *Array[T]) Flat() []T {
	n := a.Len()
	return a.st.data[a.off : a.off+n : a.off+n]
}

// Compatible reports whether a and b have the same rank and the same
// trailing dimensions. The number of frames is ignored.
func (a *Array[T]) Compatible(b *Array[T]) bool {
	return ShapeCompatible(a.shape, b.shape)
}

// ShapeCompatible reports whether two shapes agree on rank and on every
// dimension except the first.
func ShapeCompatible(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 1; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Get returns the element at idx. It reports false when idx has the wrong
// rank or any coordinate is out of range.
func (a *Array[T]) Get(idx ...int) (T, bool) {
	pos, ok := a.offset(idx)
	if !ok {
		var zero T
		return zero, false
	}
	return a.st.data[a.off+pos], true
}

// Set stores v at idx and reports whether idx was valid. Set writes into
// storage shared with every view of the same buffer, so it is only meant
// for filling an array before it is handed out.
func (a *Array[T]) Set(v T, idx ...int) bool {
	pos, ok := a.offset(idx)
	if !ok {
		return false
	}
	a.st.data[a.off+pos] = v
	return true
}

func (a *Array[T]) offset(idx []int) (int, bool) {
	if len(idx) != len(a.shape) {
		return 0, false
	}
	pos := 0
	for i, c := range idx {
		if c < 0 || c >= a.shape[i] {
			return 0, false
		}
		pos = pos*a.shape[i] + c
	}
	return pos, true
}

// Slice returns a view of frames [start, end). It panics if the range is
// invalid.
func (a *Array[T]) Slice(start, end int) *Array[T] {
	a.mustHaveFrames()
	if start < 0 || end < start || end > a.shape[0] {
		panic(fmt.Sprintf("ndarray: slice [%d, %d) out of range for %d frames", start, end, a.shape[0]))
	}
	return a.view(a.off+start*a.FrameSize(), end-start)
}

// CutFront drops the first n frames.
func (a *Array[T]) CutFront(n int) *Array[T] {
	return a.Slice(n, a.Frames())
}

// CutEnd drops the last n frames.
func (a *Array[T]) CutEnd(n int) *Array[T] {
	return a.Slice(0, a.Frames()-n)
}

// Append returns a followed by other. It panics if the shapes are not
// compatible.
func (a *Array[T]) Append(other *Array[T]) *Array[T] {
	a.mustJoin(other)
	add := other.Flat()
	if len(add) == 0 {
		return a.view(a.off, a.shape[0])
	}
	frames := a.shape[0] + other.shape[0]

	st := a.st
	st.mu.Lock()
	end := a.off + a.Len()
	if end == st.hi && len(add) <= len(st.data)-st.hi {
		copy(st.data[end:], add)
		st.hi += len(add)
		st.mu.Unlock()
		return a.view(a.off, frames)
	}
	st.mu.Unlock()

	return a.regrow(frames, a.Flat(), add)
}

// Prepend returns other followed by a. It panics if the shapes are not
// compatible.
func (a *Array[T]) Prepend(other *Array[T]) *Array[T] {
	a.mustJoin(other)
	add := other.Flat()
	if len(add) == 0 {
		return a.view(a.off, a.shape[0])
	}
	frames := a.shape[0] + other.shape[0]

	st := a.st
	st.mu.Lock()
	if a.off == st.lo && len(add) <= st.lo {
		start := st.lo - len(add)
		copy(st.data[start:], add)
		st.lo = start
		st.mu.Unlock()
		return a.view(start, frames)
	}
	st.mu.Unlock()

	return a.regrow(frames, add, a.Flat())
}

// regrow copies head followed by tail into a fresh buffer with spare
// capacity on both sides.
func (a *Array[T]) regrow(frames int, head, tail []T) *Array[T] {
	total := len(head) + len(tail)
	room := total + minHeadroom
	data := make([]T, room+total+room)
	copy(data[room:], head)
	copy(data[room+len(head):], tail)
	st := &storage[T]{data: data, lo: room, hi: room + total}
	shape := cloneShape(a.shape)
	shape[0] = frames
	return &Array[T]{shape: shape, st: st, off: room}
}

func (a *Array[T]) view(off, frames int) *Array[T] {
	shape := cloneShape(a.shape)
	shape[0] = frames
	return &Array[T]{shape: shape, st: a.st, off: off}
}

func (a *Array[T]) mustHaveFrames() {
	if len(a.shape) == 0 {
		panic("ndarray: frame operation on a rank-0 array")
	}
}

func (a *Array[T]) mustJoin(other *Array[T]) {
	a.mustHaveFrames()
	if !a.Compatible(other) {
		panic(fmt.Sprintf("ndarray: cannot join shapes %v and %v", a.shape, other.shape))
	}
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func cloneShape(shape []int) []int {
	out := make([]int, len(shape))
	copy(out, shape)
	return out
}
