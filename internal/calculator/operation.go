package calculator

import (
	"github.com/cockroachdb/errors"
)

// Op names one of the four arithmetic operations.
type Op string

const (
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpMultiply Op = "multiply"
	OpDivide   Op = "divide"
)

// Ops lists the supported operations in route order.
var Ops = []Op{OpAdd, OpSubtract, OpMultiply, OpDivide}

// ParseOp resolves the wire name of an operation.
func ParseOp(name string) (Op, error) {
	switch op := Op(name); op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return op, nil
	default:
		return "", errors.Wrapf(ErrUnknownOperation, "%q", name)
	}
}

func (o Op) String() string {
	return string(o)
}

// Operation is a single binary operation with its two operands.
type Operation struct {
	Op Op
	A  float64
	B  float64
}

// Apply evaluates the operation.
func (o Operation) Apply() (float64, error) {
	switch o.Op {
	case OpAdd:
		return Add(o.A, o.B), nil
	case OpSubtract:
		return Subtract(o.A, o.B), nil
	case OpMultiply:
		return Multiply(o.A, o.B), nil
	case OpDivide:
		return Divide(o.A, o.B)
	default:
		return 0, errors.Wrapf(ErrUnknownOperation, "%q", string(o.Op))
	}
}
