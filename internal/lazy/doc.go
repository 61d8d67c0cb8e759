// Package lazy provides pull-based array producers that compute frames only
// when a caller asks for a specific range.
//
// A Box is a cheap, copyable handle around an Operation. Boxes compose:
// NewCutter restricts a source to a window, NewMerge concatenates two
// sources, NewCache remembers the last requested interval, and Map applies
// an elementwise function. None of them touch data until RequestRange is
// called, and each only requests the frames it needs from its source.
package lazy
