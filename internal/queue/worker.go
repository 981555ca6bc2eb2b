package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/zombar/writelens/internal/corpusstore"
	"github.com/zombar/writelens/internal/detector"
	"github.com/zombar/writelens/internal/humanizer"
	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/similarity"
	"github.com/zombar/writelens/pkg/metrics"
)

// ReportSink receives completed reports. The worker stays agnostic of
// where reports end up; callers pass in a sink that writes them
// wherever the deployment wants them.
type ReportSink interface {
	SaveReport(ctx context.Context, report *models.Report) error
}

// Worker wraps the Asynq server for processing tasks
type Worker struct {
	server          *asynq.Server
	mux             *asynq.ServeMux
	detector        *detector.Detector
	engine          *similarity.Engine
	humanizer       *humanizer.Humanizer
	store           *corpusstore.Store
	sink            ReportSink
	concurrency     int
	logger          *slog.Logger
	businessMetrics *metrics.BusinessMetrics
}

// WorkerConfig contains configuration for the queue worker
type WorkerConfig struct {
	RedisAddr   string
	Concurrency int
}

// NewWorker creates a new queue worker. The corpus store may be nil
// when reference persistence is disabled.
func NewWorker(
	cfg WorkerConfig,
	det *detector.Detector,
	engine *similarity.Engine,
	hum *humanizer.Humanizer,
	store *corpusstore.Store,
	sink ReportSink,
) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr: cfg.RedisAddr,
	}

	serverCfg := asynq.Config{
		// Concurrency determines how many tasks can be processed simultaneously
		Concurrency: cfg.Concurrency,

		// Queue priority: higher value = higher priority. Document
		// analysis outranks corpus maintenance.
		Queues: map[string]int{
			"analysis": 6,
			"corpus":   3,
		},

		// StrictPriority: false means queues are processed proportionally
		StrictPriority: false,

		RetryDelayFunc: retryDelay,

		// Graceful shutdown timeout
		ShutdownTimeout: 30 * time.Second,

		// Error handler for logging
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)

			slog.Error("task processing error",
				"task_type", task.Type(),
				"error", err,
				"retry_count", retried,
				"max_retries", maxRetry,
			)
		}),
	}

	server := asynq.NewServer(redisOpt, serverCfg)
	mux := asynq.NewServeMux()

	w := &Worker{
		server:          server,
		mux:             mux,
		detector:        det,
		engine:          engine,
		humanizer:       hum,
		store:           store,
		sink:            sink,
		concurrency:     cfg.Concurrency,
		logger:          slog.Default(),
		businessMetrics: metrics.NewBusinessMetrics("writelens"),
	}

	w.registerHandlers()

	return w
}

// retryDelay backs off 1m, 5m, 15m and stays at 15m after that.
func retryDelay(n int, err error, task *asynq.Task) time.Duration {
	delays := []time.Duration{
		1 * time.Minute,
		5 * time.Minute,
		15 * time.Minute,
	}
	if n < len(delays) {
		return delays[n]
	}
	return delays[len(delays)-1]
}

// registerHandlers registers all task handlers with the worker
func (w *Worker) registerHandlers() {
	w.mux.HandleFunc(TypeAnalyzeDocument, w.handleAnalyzeDocument)
	w.mux.HandleFunc(TypeAddReference, w.handleAddReference)
}

// Start starts the worker to begin processing tasks
func (w *Worker) Start() error {
	w.logger.Info("starting asynq worker",
		"concurrency", w.concurrency,
		"queues", map[string]int{"analysis": 6, "corpus": 3},
	)

	// Run is blocking - starts processing tasks
	if err := w.server.Run(w.mux); err != nil {
		return fmt.Errorf("asynq server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the worker
func (w *Worker) Shutdown() {
	w.logger.Info("shutting down asynq worker")
	w.server.Shutdown()
}

// Server returns the underlying Asynq server (for testing)
func (w *Worker) Server() *asynq.Server {
	return w.server
}
