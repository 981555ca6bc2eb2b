package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// TestTraceContextCapture tests that an active span's IDs end up in
// the task payload the way the producer records them.
func TestTraceContextCapture(t *testing.T) {
	tp := tracesdk.NewTracerProvider()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("test")

	ctx, span := tracer.Start(context.Background(), "enqueue-test")
	defer span.End()

	payload := AnalyzeDocumentPayload{
		ReportID:   "test-report-1",
		Text:       "Sample text for analysis",
		EnqueuedAt: time.Now().UnixNano(),
	}
	if s := trace.SpanFromContext(ctx); s.SpanContext().IsValid() {
		spanCtx := s.SpanContext()
		payload.TraceID = spanCtx.TraceID().String()
		payload.SpanID = spanCtx.SpanID().String()
	}

	require.NotEmpty(t, payload.TraceID)
	require.NotEmpty(t, payload.SpanID)
	assert.Equal(t, span.SpanContext().TraceID().String(), payload.TraceID)
}

// TestConsumerSpanReconstruction tests that the worker resumes the
// producer's trace from payload IDs.
func TestConsumerSpanReconstruction(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := tracesdk.NewTracerProvider(tracesdk.WithSyncer(exporter))
	otel.SetTracerProvider(tp)

	_, producerSpan := tp.Tracer("test").Start(context.Background(), "producer")
	producerCtx := producerSpan.SpanContext()
	producerSpan.End()

	w := newTestWorker(&memorySink{})
	payload := &AnalyzeDocumentPayload{
		ReportID:   "test-report-2",
		Text:       "Body text",
		TraceID:    producerCtx.TraceID().String(),
		SpanID:     producerCtx.SpanID().String(),
		EnqueuedAt: time.Now().Add(-2 * time.Second).UnixNano(),
	}

	_, span := w.startConsumerSpan(context.Background(), TypeAnalyzeDocument, payload, 2*time.Second)
	require.NotNil(t, span)
	span.End()

	spans := exporter.GetSpans()
	var consumer tracetest.SpanStub
	for _, s := range spans {
		if s.Name == "asynq.task.process" {
			consumer = s
		}
	}
	require.Equal(t, "asynq.task.process", consumer.Name)
	assert.Equal(t, producerCtx.TraceID(), consumer.SpanContext.TraceID(),
		"consumer span should continue the producer trace")
	assert.Equal(t, producerCtx.SpanID(), consumer.Parent.SpanID(),
		"consumer span should parent to the enqueue span")
	assert.Equal(t, trace.SpanKindConsumer, consumer.SpanKind)
}

// TestConsumerSpanWithoutTrace tests the no-trace path returns nil.
func TestConsumerSpanWithoutTrace(t *testing.T) {
	w := newTestWorker(&memorySink{})
	payload := &AnalyzeDocumentPayload{ReportID: "r", Text: "t"}

	ctx, span := w.startConsumerSpan(context.Background(), TypeAnalyzeDocument, payload, 0)
	assert.Nil(t, span)
	assert.Equal(t, context.Background(), ctx)
}

// TestConsumerSpanBadIDs tests that malformed hex IDs are ignored.
func TestConsumerSpanBadIDs(t *testing.T) {
	w := newTestWorker(&memorySink{})
	payload := &AnalyzeDocumentPayload{
		ReportID: "r",
		Text:     "t",
		TraceID:  "not-hex",
		SpanID:   "also-not-hex",
	}

	_, span := w.startConsumerSpan(context.Background(), TypeAnalyzeDocument, payload, 0)
	assert.Nil(t, span)
}
