package utils

import (
	"golang.org/x/exp/constraints"
)

// Returns an all ones bitmask of n bits of the given unsigned integer type
func AllOnes[T constraints.Unsigned](bits int) T {
	return (T(1) << bits) - T(1)
}

// Extracts a range of bits given a first bit and a width
func BitRange[T constraints.Unsigned](value T, bit int, width int) T {
	return (value >> bit) & AllOnes[T](width)
}

// Returns whether the given bit is set
func Bit[T constraints.Unsigned](value T, bit int) bool {
	return BitRange(value, bit, 1) != 0
}

// Sign-extends the low n bits of a value to the full width of the type.
// Bits above the sign bit are discarded first, so callers can pass a raw
// instruction word without masking the field themselves.
func SignExtend[T constraints.Unsigned](value T, bits int) T {
	sign := value & (T(1) << (bits - 1))
	value &= AllOnes[T](bits)
	// A set sign bit fills every bit at and above it with ones
	return value | (^sign + 1)
}
