// Package safeconv converts between integer types without silent wrap-around.
package safeconv

import "math"

// Uint64ToInt converts v to int, reporting false when it does not fit.
func Uint64ToInt(v uint64) (int, bool) {
	if v > math.MaxInt {
		return 0, false
	}

	return int(v), true
}

// MustInt64ToUint64 converts a count that cannot be negative, panics otherwise.
// Use only for sizes and counters.
func MustInt64ToUint64(v int64) uint64 {
	if v < 0 {
		panic("safeconv: negative int64 to uint64 conversion")
	}

	return uint64(v)
}
