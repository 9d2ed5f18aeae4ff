package ml

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Limits returns the range of a signed integer type of at most 32 bits.
func Limits[T constraints.Signed]() (lo, hi float64) {
	var bits = unsafe.Sizeof(T(0)) * 8
	hi = float64(uint64(1)<<(bits-1) - 1)
	return -hi - 1, hi
}

// Clamp limits x to the range of T.
func Clamp[T constraints.Signed](x float64) float64 {
	var lo, hi = Limits[T]()
	return math.Max(lo, math.Min(hi, x))
}

// RoundClamp rounds x to the nearest value representable by T.
func RoundClamp[T constraints.Signed](x float64) T {
	return T(math.Round(Clamp[T](x)))
}
