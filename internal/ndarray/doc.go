// Package ndarray implements a dense, row-major n-dimensional array whose
// leading dimension is time. One slice along that dimension is a "frame".
//
// Arrays are cheap views over a shared backing buffer. Cutting frames off
// either end never copies, and Append/Prepend grow into spare capacity on
// the matching side of the buffer when they can, so their cost is
// proportional to the number of frames added rather than the total length.
// Values handed out by an Array are treated as immutable; Set exists for
// building an array before it is shared.
package ndarray
