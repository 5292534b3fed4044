package sizeof

import (
	"math"
	"math/bits"
	"unsafe"
)

const sliceHeader = 24

// Elems returns the bytes backing n values of T, saturating on overflow.
func Elems[T any](n int) uint64 {
	if n <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(unsafe.Sizeof(*new(T))), uint64(n))
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func Slice[T any](v []T) uint64 {
	return sliceHeader + Elems[T](len(v))
}
