package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer   trace.Tracer
	initOnce sync.Once
)

// InitTracer installs a global tracer provider using the given
// span processor (e.g. one built around stdouttrace.New() for
// cmd/casamap's --trace flag). Safe to call once; later calls are no-ops.
func InitTracer(sp sdktrace.SpanProcessor) {
	initOnce.Do(func() {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sp))
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer("casa-arrow")
	})
}

func getTracer() trace.Tracer {
	if tracer == nil {
		tracer = otel.Tracer("casa-arrow")
	}
	return tracer
}

// StartPlanSpan starts a span around one ColumnMapping.Make call.
func StartPlanSpan(ctx context.Context, columnName string) (context.Context, trace.Span) {
	ctx, span := getTracer().Start(ctx, "colmap.Make")
	span.SetAttributes(attribute.String("casaarrow.column", columnName))
	return ctx, span
}

// StartSortSpan starts a span around one GroupSortData Sort or Merge
// call. operation is "sort" or "merge".
func StartSortSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	ctx, span := getTracer().Start(ctx, "groupsort."+operation)
	span.SetAttributes(attribute.String("casaarrow.operation", operation))
	return ctx, span
}

// TimeOperation runs fn, recording its duration under
// GroupsortDuration{operation}, and returns fn's error.
func TimeOperation(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	GroupsortDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	return err
}
