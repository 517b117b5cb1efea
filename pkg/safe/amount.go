// Package safe provides helpers for numeric arithmetic with overflow checks.
package safe

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a result does not fit the target type.
var ErrOverflow = errors.New("numeric overflow")

// AddUint64 returns a+b or ErrOverflow.
func AddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return a + b, nil
}

// SumUint64 adds every value with overflow checks.
func SumUint64(values ...uint64) (uint64, error) {
	var total uint64
	for _, v := range values {
		next, err := AddUint64(total, v)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}

// Int64 converts an unsigned value to int64 with range validation.
func Int64[T ~uint | ~uint32 | ~uint64](v T) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range: %w", v, ErrOverflow)
	}
	return int64(v), nil
}
