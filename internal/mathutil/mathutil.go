// Package mathutil provides common mathematical utility functions.
package mathutil

import "cmp"

// Clamp restricts a value to be within a specified range.
// Returns low if val < low, high if val > high, otherwise returns val.
func Clamp[T cmp.Ordered](val, low, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}

// CeilDiv returns ceil(n / d) for non-negative n and positive d.
// A non-positive divisor yields 0.
func CeilDiv(n, d int) int {
	if d <= 0 || n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
