package calculator

// Accumulator applies a sequence of operations to a running total and keeps
// the last result. It is not safe for concurrent use; each request owns its own.
type Accumulator struct {
	result float64
}

func NewAccumulator(initial float64) *Accumulator {
	return &Accumulator{result: initial}
}

// Apply combines the running total with value using op. On error the running
// total is left unchanged.
func (acc *Accumulator) Apply(op Op, value float64) (float64, error) {
	result, err := Operation{Op: op, A: acc.result, B: value}.Apply()
	if err != nil {
		return acc.result, err
	}
	acc.result = result
	return result, nil
}

// Result returns the last result.
func (acc *Accumulator) Result() float64 {
	return acc.result
}
