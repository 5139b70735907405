package conv

import "golang.org/x/exp/constraints"

// Dec writes n in decimal at the end of buf, zero-padded to at least width
// digits, and returns the used slice. A buf too short for the result yields
// an empty slice.
func Dec[T constraints.Unsigned](buf []byte, n T, width int) []byte {
	i := len(buf)
	for d := 0; n > 0 || d < width || d == 0; d++ {
		if i == 0 {
			return buf[:0]
		}
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}
