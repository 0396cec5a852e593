package calculator

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrDivisionByZero is returned by Divide when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnknownOperation is returned when an operation name is not one of
	// add, subtract, multiply or divide.
	ErrUnknownOperation = errors.New("unknown operation")
)

// The engine works on float64 with Go's native IEEE-754 semantics: no
// rounding is applied and overflow saturates to ±Inf.

// Add returns a + b.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns a - b.
func Subtract(a, b float64) float64 {
	return a - b
}

// Multiply returns a * b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Divide returns a / b, or ErrDivisionByZero when b is zero (including -0).
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errors.Wrapf(ErrDivisionByZero, "%g / %g", a, b)
	}
	return a / b, nil
}
