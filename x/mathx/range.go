package mathx

import "golang.org/x/exp/constraints"

// InRange reports lo <= v <= hi. An inverted range holds nothing.
func InRange[T constraints.Ordered](v, lo, hi T) bool { return lo <= v && v <= hi }

// Clamp limits v to [lo, hi]. When the range is inverted lo wins.
func Clamp[T constraints.Ordered](v, lo, hi T) T { return max(lo, min(v, hi)) }
