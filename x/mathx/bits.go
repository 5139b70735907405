package mathx

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// LowMask returns a value of T with the low n bits set.
// n at or beyond the width of T yields all ones.
func LowMask[T constraints.Unsigned](n uint) T {
	var zero T
	if n >= uint(unsafe.Sizeof(zero))*8 {
		return ^zero
	}
	return T(1)<<n - 1
}

// Field extracts the width-bit field starting at shift.
func Field[T constraints.Unsigned](v T, shift, width uint) T {
	return (v >> shift) & LowMask[T](width)
}

// WithField replaces the width-bit field at shift with f (truncated to width).
func WithField[T constraints.Unsigned](v T, shift, width uint, f T) T {
	m := LowMask[T](width) << shift
	return (v &^ m) | ((f << shift) & m)
}
