package queue

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zombar/writelens/pkg/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testMetrics builds metrics on a throwaway registry so tests never
// collide on the default one.
func testMetrics() *metrics.BusinessMetrics {
	return metrics.NewBusinessMetricsWith(prometheus.NewRegistry(), "writelens_test")
}
