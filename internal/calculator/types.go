package calculator

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
// Operands are pointers so a missing field is rejected rather than read as zero.
type CalcRequest struct {
	A *float64 `json:"a" validate:"required"`
	B *float64 `json:"b" validate:"required"`
}

// CalcResponse is the JSON response for the binary operation endpoints.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string   `json:"op" validate:"required"` // checked by ParseOp
	Value *float64 `json:"value" validate:"required"` // applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"`
	Steps   []ChainStep `json:"steps" validate:"dive"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial float64       `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  float64       `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string  `json:"op"`
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
}
