package pl011

import (
	"math"

	"rp1-go/errcode"
)

// LineControl computes the LCR_H value for c. BRK (bit 0) is always clear.
func LineControl(c Config) uint8 {
	var v uint8
	switch c.parity {
	case ParityEven:
		v |= LCRParityEn | LCREvenParity
	case ParityOdd:
		v |= LCRParityEn
	}
	if c.stopBits == StopBitsTwo {
		v |= LCRTwoStop
	}
	if c.fifo {
		v |= LCRFIFOEnable
	}
	// WLEN: 8 bits = 0b11, 7 = 0b10, 6 = 0b01, 5 = 0b00.
	v |= (uint8(c.wordLength-WordLength5) & 0b11) << LCRWordLenPos
	if c.stickParity {
		v |= LCRStickParity
	}
	return v
}

// Divisors returns the integer (IBRD) and fractional (FBRD) baud-rate
// divisors for clockHz / (16 * baud). The fraction is rounded to the nearest
// 1/64; a fraction that rounds up to 64/64 carries into the integer part.
// Divisors beyond the 16.6 register range saturate at 0xFFFF / 0x3F.
func Divisors(clockHz, baud uint32) (ibrd uint16, fbrd uint8, err error) {
	if baud == 0 {
		return 0, 0, &errcode.E{C: errcode.InvalidBaudRate, Op: "pl011.baud", Msg: "baud rate must be non-zero"}
	}
	div := float64(clockHz) / (16 * float64(baud))
	ip := math.Floor(div)
	fp := math.Floor((div-ip)*64 + 0.5)
	if fp >= 64 {
		ip++
		fp = 0
	}
	if ip > math.MaxUint16 {
		return math.MaxUint16, 0x3F, nil
	}
	return uint16(ip), uint8(fp), nil
}
