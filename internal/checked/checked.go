// Package checked provides overflow-checked integer arithmetic and casts.
//
// Every size the library derives from header-controlled values (element
// sizes, element counts, data sizes, tag list lengths, block index ranges)
// goes through this package so that hostile input fails with
// errs.ErrOverflow instead of wrapping and corrupting memory.
package checked

import (
	"fmt"
	"math"

	"github.com/gta-format/gta/errs"
)

// Integer is the constraint for all integer types supported by Cast.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Mul returns a*b, or errs.ErrOverflow if the product does not fit in uint64.
func Mul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, fmt.Errorf("%w: %d * %d exceeds uint64", errs.ErrOverflow, a, b)
	}

	return a * b, nil
}

// MulN multiplies all values, checking each pairwise product.
// An empty argument list yields 1, matching the empty product.
func MulN(vals ...uint64) (uint64, error) {
	result := uint64(1)
	for _, v := range vals {
		var err error
		result, err = Mul(result, v)
		if err != nil {
			return 0, err
		}
	}

	return result, nil
}

// Add returns a+b, or errs.ErrOverflow if the sum does not fit in uint64.
func Add(a, b uint64) (uint64, error) {
	if b > math.MaxUint64-a {
		return 0, fmt.Errorf("%w: %d + %d exceeds uint64", errs.ErrOverflow, a, b)
	}

	return a + b, nil
}

// Cast converts v to Dst, failing with errs.ErrOverflow if the value is
// outside the destination range. Signedness is handled explicitly: negative
// values never convert to unsigned destinations, and large unsigned values
// never convert to smaller signed destinations.
func Cast[Dst, Src Integer](v Src) (Dst, error) {
	converted := Dst(v)
	// Round-tripping detects both truncation and sign flips.
	if Src(converted) != v || (v < 0) != (converted < 0) {
		return 0, fmt.Errorf("%w: value %d does not fit destination type", errs.ErrOverflow, v)
	}

	return converted, nil
}

// ToInt converts v to int, failing with errs.ErrOverflow when it does not fit.
func ToInt(v uint64) (int, error) {
	return Cast[int](v)
}

// ToInt64 converts v to int64, failing with errs.ErrOverflow when it does not fit.
func ToInt64(v uint64) (int64, error) {
	return Cast[int64](v)
}

// ToUint64 converts a signed value to uint64, failing on negative input.
func ToUint64(v int64) (uint64, error) {
	return Cast[uint64](v)
}
