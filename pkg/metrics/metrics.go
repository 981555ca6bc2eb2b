// Package metrics defines the Prometheus instruments shared by the
// worker and CLI.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/trace"
)

// BusinessMetrics tracks analysis throughput and outcomes.
type BusinessMetrics struct {
	AnalysesTotal        *prometheus.CounterVec
	AnalysisDuration     *prometheus.HistogramVec
	AIScore              prometheus.Histogram
	ReferencesAddedTotal prometheus.Counter
	QueueWaitDuration    prometheus.Histogram
}

// NewBusinessMetrics registers the business metrics under the given
// namespace on the default registry. Call once per process.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	return NewBusinessMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewBusinessMetricsWith registers the business metrics on a specific
// registerer. Tests use this with a fresh registry.
func NewBusinessMetricsWith(reg prometheus.Registerer, namespace string) *BusinessMetrics {
	factory := promauto.With(reg)
	return &BusinessMetrics{
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of document analyses by status.",
		}, []string{"status"}),
		AnalysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent running the full analysis pipeline.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		AIScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_score",
			Help:      "Distribution of AI-likelihood scores across analyses.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		ReferencesAddedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "references_added_total",
			Help:      "Total number of reference documents added to the corpus.",
		}),
		QueueWaitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "queue_wait_duration_seconds",
			Help:      "Time tasks spent waiting in the queue before processing.",
			Buckets:   []float64{.1, .5, 1, 5, 15, 60, 300, 900},
		}),
	}
}

// ObserveDurationWithExemplar records a duration on the histogram,
// attaching the current trace ID as an exemplar when the context
// carries a sampled span.
func (m *BusinessMetrics) ObserveDurationWithExemplar(ctx context.Context, hist *prometheus.HistogramVec, seconds float64, status string) {
	observer := hist.WithLabelValues(status)
	span := trace.SpanFromContext(ctx)
	if spanCtx := span.SpanContext(); spanCtx.IsValid() && spanCtx.IsSampled() {
		if eo, ok := observer.(prometheus.ExemplarObserver); ok {
			eo.ObserveWithExemplar(seconds, prometheus.Labels{
				"trace_id": spanCtx.TraceID().String(),
			})
			return
		}
	}
	observer.Observe(seconds)
}
