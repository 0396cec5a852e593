package calculator

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrNonFiniteResult is returned when a computation overflows to ±Inf or
// yields NaN. JSON has no encoding for either, so the HTTP facade refuses them.
var ErrNonFiniteResult = errors.New("result out of range")

// bind decodes the JSON request body into dst and validates it.
func bind(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "decode body")
	}
	if err := validate.Struct(dst); err != nil {
		return errors.Wrap(err, "validate body")
	}
	return nil
}

func checkResult(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrNonFiniteResult, "%g", v)
	}
	return nil
}

// statusFor maps an engine error to the HTTP status and client message used
// in the error response.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return http.StatusUnprocessableEntity, ErrDivisionByZero.Error()
	case errors.Is(err, ErrNonFiniteResult):
		return http.StatusUnprocessableEntity, ErrNonFiniteResult.Error()
	case errors.Is(err, ErrUnknownOperation):
		return http.StatusBadRequest, ErrUnknownOperation.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
