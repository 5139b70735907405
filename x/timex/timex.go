package timex

import "time"

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// Periods returns the duration of n cycles at freqHz, rounded down to the
// nanosecond per cycle.
func Periods(freqHz, n uint32) time.Duration {
	return time.Duration(PeriodFromHz(freqHz) * uint64(n))
}
