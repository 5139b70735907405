package conv

import "rp1-go/x/mathx"

const hexd = "0123456789ABCDEF"

// Hex writes the low digits nibbles of n as uppercase hex without 0x,
// zero-padded, at the end of buf. digits is clamped to 1..16. A buf shorter
// than digits yields an empty slice.
func Hex(buf []byte, n uint64, digits int) []byte {
	digits = mathx.Clamp(digits, 1, 16)
	if len(buf) < digits {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < digits; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}

// U32Hex writes 8-digit uppercase hex without 0x, zero-padded.
func U32Hex(buf []byte, n uint32) []byte { return Hex(buf, uint64(n), 8) }

// HexDigits is the number of hex digits needed to show a bits-wide value.
func HexDigits(bits uint) int {
	return int(mathx.Clamp(mathx.CeilDiv(bits, 4), 1, 16))
}
