package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricOperationsTotal = "nanovc.operations.total"
	metricOperationDur    = "nanovc.operation.duration.seconds"
	metricErrorsTotal     = "nanovc.errors.total"
	metricInflightOps     = "nanovc.inflight.operations"

	attrOp     = "op"
	attrStatus = "status"

	// StatusOK and StatusError are the two RecordOperation status labels.
	StatusOK    = "ok"
	StatusError = "error"
)

// durationBucketBoundaries covers sub-millisecond lookups up to multi-second
// merges over large content areas.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// REDMetrics holds the Rate/Error/Duration instruments recorded around every
// RepoHandler operation (commit, checkout, compare, diff, merge, search).
type REDMetrics struct {
	operationsTotal metric.Int64Counter
	operationDur    metric.Float64Histogram
	errorsTotal     metric.Int64Counter
	inflightOps     metric.Int64UpDownCounter
}

// NewREDMetrics creates the RED instrument set from mt. mt may be a no-op
// meter (go.opentelemetry.io/otel/metric/noop), in which case every recorded
// value is discarded at negligible cost.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	b := newMetricBuilder(mt)

	rm := &REDMetrics{
		operationsTotal: b.counter(metricOperationsTotal, "Total number of RepoHandler operations", "{operation}"),
		operationDur: b.histogram(metricOperationDur, "RepoHandler operation duration in seconds", "s",
			durationBucketBoundaries...),
		errorsTotal: b.counter(metricErrorsTotal, "Total number of RepoHandler operation errors", "{error}"),
		inflightOps: b.upDownCounter(metricInflightOps, "Number of in-flight RepoHandler operations", "{operation}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return rm, nil
}

// RecordOperation records one completed operation with its name, status
// (StatusOK or StatusError), and duration.
func (rm *REDMetrics) RecordOperation(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.operationsTotal.Add(ctx, 1, attrs)
	rm.operationDur.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
	}
}

// TrackInflight increments the in-flight gauge for op and returns a function
// that decrements it; callers defer the returned function.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflightOps.Add(ctx, 1, attrs)

	return func() {
		rm.inflightOps.Add(ctx, -1, attrs)
	}
}
