package calculator

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calculator-service/internal/observability"
	"calculator-service/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newCalculatorRouter(t *testing.T) http.Handler {
	t.Helper()

	observability.Logger = zap.NewNop()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r)
	return r
}

func TestBinaryHandlers(t *testing.T) {
	h := newCalculatorRouter(t)

	tests := []struct {
		op   string
		body string
		want float64
	}{
		{"add", `{"a":2,"b":3}`, 5},
		{"subtract", `{"a":5,"b":2}`, 3},
		{"multiply", `{"a":4,"b":3}`, 12},
		{"divide", `{"a":10,"b":2}`, 5},
		{"add", `{"a":-1.5,"b":0}`, -1.5},
	}

	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			w := testutil.PostJSON(t, h, "/calculator/"+tc.op, tc.body)
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var resp CalcResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)

			if resp.Operation != tc.op {
				t.Fatalf("expected operation %q, got %q", tc.op, resp.Operation)
			}
			if resp.Result != tc.want {
				t.Fatalf("expected result %v, got %v", tc.want, resp.Result)
			}
		})
	}
}

func TestBinaryHandlerRejectsBadInput(t *testing.T) {
	h := newCalculatorRouter(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		msg    string
	}{
		{"malformed json", "/calculator/add", `{"a":`, http.StatusBadRequest, "invalid request body"},
		{"missing operand", "/calculator/multiply", `{"a":4}`, http.StatusBadRequest, "invalid request body"},
		{"string operand", "/calculator/subtract", `{"a":"4","b":1}`, http.StatusBadRequest, "invalid request body"},
		{"division by zero", "/calculator/divide", `{"a":1,"b":0}`, http.StatusUnprocessableEntity, "division by zero"},
		{"out of range literal", "/calculator/add", `{"a":1e999,"b":1}`, http.StatusBadRequest, "invalid request body"},
		{"multiply overflow", "/calculator/multiply", `{"a":1e308,"b":10}`, http.StatusUnprocessableEntity, "result out of range"},
		{"divide overflow", "/calculator/divide", `{"a":1e308,"b":1e-308}`, http.StatusUnprocessableEntity, "result out of range"},
		{"add overflow", "/calculator/add", `{"a":1.7e308,"b":1.7e308}`, http.StatusUnprocessableEntity, "result out of range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(t, h, tc.path, tc.body)
			testutil.CheckResponseCode(t, tc.status, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["error"] != tc.msg {
				t.Fatalf("expected error %q, got %q", tc.msg, body["error"])
			}
		})
	}
}

func TestChainHandler(t *testing.T) {
	h := newCalculatorRouter(t)

	w := testutil.PostJSON(t, h, "/calculator/chain", `{
		"initial": 10,
		"steps": [
			{"op": "add", "value": 5},
			{"op": "multiply", "value": 2},
			{"op": "subtract", "value": 6},
			{"op": "divide", "value": 4}
		]
	}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp ChainResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.Initial != 10 || resp.Result != 6 {
		t.Fatalf("expected 10 -> 6, got %v -> %v", resp.Initial, resp.Result)
	}

	want := []float64{15, 30, 24, 6}
	if len(resp.Steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(resp.Steps))
	}
	for i, step := range resp.Steps {
		if step.Result != want[i] {
			t.Fatalf("step %d: expected %v, got %v", i, want[i], step.Result)
		}
	}
}

func TestChainHandlerErrors(t *testing.T) {
	h := newCalculatorRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"no steps", `{"initial":1,"steps":[]}`, http.StatusBadRequest, "no steps provided"},
		{"unknown op", `{"initial":1,"steps":[{"op":"pow","value":2}]}`, http.StatusBadRequest, "unknown operation at step 0"},
		{"empty op", `{"initial":1,"steps":[{"op":"","value":2}]}`, http.StatusBadRequest, "invalid request body"},
		{"overflow", `{"initial":1e308,"steps":[{"op":"add","value":1},{"op":"multiply","value":10}]}`, http.StatusUnprocessableEntity, "result out of range at step 1"},
		{"missing value", `{"initial":1,"steps":[{"op":"add"}]}`, http.StatusBadRequest, "invalid request body"},
		{"division by zero", `{"initial":1,"steps":[{"op":"add","value":1},{"op":"divide","value":0}]}`, http.StatusUnprocessableEntity, "division by zero at step 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(t, h, "/calculator/chain", tc.body)
			testutil.CheckResponseCode(t, tc.status, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["error"] != tc.msg {
				t.Fatalf("expected error %q, got %q", tc.msg, body["error"])
			}
		})
	}
}

func TestOperationsHandlerListsOps(t *testing.T) {
	h := newCalculatorRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator", nil), h)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var body map[string][]string
	testutil.DecodeJSONBody(t, w.Body, &body)

	got := strings.Join(body["operations"], ",")
	if got != "add,subtract,multiply,divide" {
		t.Fatalf("unexpected operations %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	_, err := Divide(1, 0)
	if status, msg := statusFor(err); status != http.StatusUnprocessableEntity || msg != "division by zero" {
		t.Fatalf("division by zero mapped to %d %q", status, msg)
	}

	_, err = ParseOp("pow")
	if status, _ := statusFor(err); status != http.StatusBadRequest {
		t.Fatalf("unknown operation mapped to %d", status)
	}

	if status, msg := statusFor(checkResult(math.Inf(-1))); status != http.StatusUnprocessableEntity || msg != "result out of range" {
		t.Fatalf("non-finite result mapped to %d %q", status, msg)
	}

	if err := checkResult(math.MaxFloat64); err != nil {
		t.Fatalf("expected finite result to pass, got %v", err)
	}

	if status, _ := statusFor(fmt.Errorf("boom")); status != http.StatusInternalServerError {
		t.Fatalf("unexpected error mapped to %d", status)
	}
}
