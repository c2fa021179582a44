// Package intcast provides a range-checked integer narrowing cast, the Go
// counterpart of ultim8's integral_cast<To, From>.
package intcast

import "fmt"

// Integer is any built-in signed or unsigned integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// BadRangeError is returned when a value does not fit in the destination
// type without loss.
type BadRangeError struct {
	Value  int64
	Target string
}

func (e *BadRangeError) Error() string {
	return fmt.Sprintf("bad_range: value %d out of range for %s", e.Value, e.Target)
}

// boundsFor returns the inclusive [min, max] range representable by To,
// using a zero value of To only to drive type inference at the call site.
func boundsFor[To Integer]() (min, max int64) {
	var zero To
	switch any(zero).(type) {
	case int8:
		return -128, 127
	case int16:
		return -32768, 32767
	case int32:
		return -2147483648, 2147483647
	case int64, int:
		return -9223372036854775808, 9223372036854775807
	case uint8:
		return 0, 255
	case uint16:
		return 0, 65535
	case uint32:
		return 0, 4294967295
	case uint64, uint:
		return 0, 9223372036854775807 // conservative: fits int64 range
	default:
		return 0, 0
	}
}

// Cast narrows From to To, returning a *BadRangeError if x does not fit.
func Cast[To Integer, From Integer](x From) (To, error) {
	v := int64(x)
	min, max := boundsFor[To]()
	if v < min || v > max {
		var zero To
		return zero, &BadRangeError{Value: v, Target: fmt.Sprintf("%T", zero)}
	}
	return To(x), nil
}

// MustCast is Cast but panics on range failure; used only where the caller
// has already validated the value is in range (e.g. constant-folded code).
func MustCast[To Integer, From Integer](x From) To {
	v, err := Cast[To](x)
	if err != nil {
		panic(err)
	}
	return v
}

// CastBits narrows value to an unsigned field bits wide, returning a
// *BadRangeError if it doesn't fit. This is the variable-width counterpart
// of Cast, for narrowing into bitfields (opcode operands, packed flags)
// rather than a fixed Go integer type.
func CastBits(value int, bitWidth int) (int, error) {
	max := int64(1)<<uint(bitWidth) - 1
	v := int64(value)
	if v < 0 || v > max {
		return 0, &BadRangeError{Value: v, Target: fmt.Sprintf("uint%d", bitWidth)}
	}
	return value, nil
}
