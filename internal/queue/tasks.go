package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zombar/writelens/internal/humanizer"
	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/pkg/tracing"
)

// handleAnalyzeDocument runs the full analysis pipeline over one
// document and hands the finished report to the sink.
func (w *Worker) handleAnalyzeDocument(ctx context.Context, t *asynq.Task) error {
	var payload AnalyzeDocumentPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		w.logger.Error("failed to unmarshal task payload", "error", err)
		return fmt.Errorf("invalid task payload: %w", err)
	}

	// Calculate queue wait time
	var queueWaitTime time.Duration
	if payload.EnqueuedAt > 0 {
		enqueuedTime := time.Unix(0, payload.EnqueuedAt)
		queueWaitTime = time.Since(enqueuedTime)
		w.businessMetrics.QueueWaitDuration.Observe(queueWaitTime.Seconds())
	}

	w.logger.Info("analyzing document",
		"report_id", payload.ReportID,
		"text_length", len(payload.Text),
		"queue_wait_seconds", queueWaitTime.Seconds(),
	)

	ctx, span := w.startConsumerSpan(ctx, TypeAnalyzeDocument, &payload, queueWaitTime)
	if span != nil {
		defer span.End()
	}

	timer := time.Now()
	var analysisStatus string
	defer func() {
		if analysisStatus != "" {
			duration := time.Since(timer).Seconds()
			// Record duration with exemplar linking to trace ID
			w.businessMetrics.ObserveDurationWithExemplar(ctx, w.businessMetrics.AnalysisDuration, duration, analysisStatus)
			w.businessMetrics.AnalysesTotal.WithLabelValues(analysisStatus).Inc()
		}
	}()

	report := w.BuildReport(payload.ReportID, payload.Text, payload.Seed)
	w.businessMetrics.AIScore.Observe(report.AI.Score)

	if err := w.sink.SaveReport(ctx, report); err != nil {
		analysisStatus = "error"
		if isRetriableError(err) {
			w.logger.Warn("retriable sink error, will retry",
				"report_id", payload.ReportID,
				"error", err,
			)
			return err // Let Asynq retry
		}
		w.logger.Error("permanent error saving report",
			"report_id", payload.ReportID,
			"error", err,
		)
		return fmt.Errorf("failed to save report: %w", err)
	}

	analysisStatus = "success"
	w.logger.Info("analysis complete",
		"report_id", payload.ReportID,
		"trace_id", tracing.TraceIDFromContext(ctx),
		"ai_score", report.AI.Score,
		"similarity_score", report.Similarity.Score,
		"changes", len(report.Humanize.Changes),
	)
	return nil
}

// BuildReport runs every engine over the text and assembles the
// report. Exported so the CLI can run the same pipeline inline.
func (w *Worker) BuildReport(reportID, text string, seed int64) *models.Report {
	hum := w.humanizer
	if seed != 0 {
		hum = humanizer.New(rand.New(rand.NewSource(seed)))
	}

	ai := w.detector.Analyze(text)
	now := time.Now()
	return &models.Report{
		ID:         reportID,
		Text:       text,
		AI:         ai,
		Similarity: w.engine.Analyze(text),
		Humanize:   hum.Humanize(text, ai),
		Breakdown:  humanizer.Breakdown(text),
		Exercises:  hum.Exercises(text, ai),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// handleAddReference adds a reference document to the live engine and,
// when a store is configured, persists it.
func (w *Worker) handleAddReference(ctx context.Context, t *asynq.Task) error {
	var payload AddReferencePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		w.logger.Error("failed to unmarshal task payload", "error", err)
		return fmt.Errorf("invalid task payload: %w", err)
	}

	w.logger.Info("adding corpus reference",
		"source", payload.Source,
		"text_length", len(payload.Text),
	)

	w.engine.AddReference(payload.Text, payload.Source)
	if w.store != nil {
		if err := w.store.AddReference(ctx, payload.Text, payload.Source); err != nil {
			if isRetriableError(err) {
				return err
			}
			return fmt.Errorf("failed to persist reference: %w", err)
		}
	}
	w.businessMetrics.ReferencesAddedTotal.Inc()
	return nil
}

// startConsumerSpan reconstructs the producer's trace context from the
// payload and opens a consumer span under it. Returns a nil span when
// the payload carries no trace.
func (w *Worker) startConsumerSpan(ctx context.Context, taskType string, payload *AnalyzeDocumentPayload, queueWait time.Duration) (context.Context, trace.Span) {
	if payload.TraceID == "" || payload.SpanID == "" {
		// No trace context in payload, annotate the current span if any.
		if existingSpan := trace.SpanFromContext(ctx); existingSpan.SpanContext().IsValid() {
			existingSpan.SetAttributes(
				attribute.String("report.id", payload.ReportID),
				attribute.Int("text.length", len(payload.Text)),
				attribute.Float64("queue.wait_time_seconds", queueWait.Seconds()),
			)
		}
		return ctx, nil
	}

	traceID, err := trace.TraceIDFromHex(payload.TraceID)
	if err != nil {
		return ctx, nil
	}
	spanID, err := trace.SpanIDFromHex(payload.SpanID)
	if err != nil {
		return ctx, nil
	}

	remoteSpanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	ctx = trace.ContextWithRemoteSpanContext(ctx, remoteSpanCtx)

	ctx, span := otel.Tracer("writelens").Start(ctx, "asynq.task.process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("task.type", taskType),
			attribute.String("report.id", payload.ReportID),
			attribute.Int("text.length", len(payload.Text)),
			attribute.Float64("queue.wait_time_seconds", queueWait.Seconds()),
			attribute.Int64("enqueued_at", payload.EnqueuedAt),
		),
	)
	span.AddEvent("task_processing_started", trace.WithAttributes(
		attribute.Float64("wait_time_seconds", queueWait.Seconds()),
	))
	return ctx, span
}

// isRetriableError determines if an error is retriable
// (connection/timeout) vs permanent (invalid input).
func isRetriableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Retriable errors: connection issues, timeouts, temporary failures
	retriablePatterns := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"temporary failure",
		"service unavailable",
		"database is locked",
		"too many requests",
		"context deadline exceeded",
		"context canceled",
		"i/o timeout",
		"no such host",
		"network is unreachable",
	}

	for _, pattern := range retriablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}
