package containers

import "golang.org/x/exp/constraints"

// Clamp returns f clamped to the range [low, high]. Works for any
// ordered numeric type.
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}
