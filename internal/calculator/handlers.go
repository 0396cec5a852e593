package calculator

import (
	"fmt"
	"net/http"
	"time"

	"calculator-service/internal/handlers"
	"calculator-service/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// ---------------------------------------------------------------------------
// Handlers — binary operations
// ---------------------------------------------------------------------------

// AddHandler handles POST /calculator/add
func AddHandler(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpAdd)
}

// SubtractHandler handles POST /calculator/subtract
func SubtractHandler(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpSubtract)
}

// MultiplyHandler handles POST /calculator/multiply
func MultiplyHandler(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpMultiply)
}

// DivideHandler handles POST /calculator/divide. A zero divisor is answered with 422.
func DivideHandler(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpDivide)
}

// handleBinaryOp is the shared implementation for all binary calculator operations:
// it binds the request, evaluates it with the engine, and records span, metrics
// and a trace-correlated log line for the outcome.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op Op) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := op.String()

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := bind(r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	a, b := *req.A, *req.B

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", a),
		attribute.Float64("calculator.operand.b", b),
	)

	start := time.Now()
	result, err := Operation{Op: op, A: a, B: b}.Apply()
	if err == nil {
		err = checkResult(result)
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		status, msg := statusFor(err)
		observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	writeJSON(w, CalcResponse{
		Operation: opName,
		A:         a,
		B:         b,
		Result:    result,
	})
}

// ---------------------------------------------------------------------------
// Handler — chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. It runs the steps on a request-scoped
// Accumulator, opening a child span per step.
func Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := bind(r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", fmt.Errorf("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Float64("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	acc := NewAccumulator(req.Initial)
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		value := *step.Value
		prev := acc.Result()

		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.Float64("chain.step.input", prev),
				attribute.Float64("chain.step.value", value),
			),
		)

		stepStart := time.Now()
		op, err := ParseOp(step.Op)
		if err == nil {
			var next float64
			if next, err = acc.Apply(op, value); err == nil {
				err = checkResult(next)
			}
		}
		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			status, msg := statusFor(err)
			observability.RecordError(ctx, span, logger, errorCounter, step.Op,
				fmt.Sprintf("%s at step %d", msg, i), err, status, w)
			return
		}

		running := acc.Result()
		attrs := metric.WithAttributes(attribute.String("operation", step.Op))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Float64("input", prev),
			attribute.Float64("result", running),
		))
		stepSpan.SetAttributes(attribute.Float64("chain.step.result", running))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op),
			zap.Float64("input", prev),
			zap.Float64("value", value),
			zap.Float64("result", running),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:     step.Op,
			Value:  value,
			Result: running,
		})
	}

	final := acc.Result()
	resultGauge.Record(ctx, final, metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", final),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", final))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.Float64("result", final),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	writeJSON(w, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  final,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	handlers.WriteJSON(w, http.StatusOK, v)
}
