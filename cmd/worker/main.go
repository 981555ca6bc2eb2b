package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zombar/writelens/internal/corpusstore"
	"github.com/zombar/writelens/internal/detector"
	"github.com/zombar/writelens/internal/humanizer"
	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/queue"
	"github.com/zombar/writelens/internal/similarity"
	"github.com/zombar/writelens/pkg/tracing"
)

// fileSink appends completed reports to a JSON-lines file.
type fileSink struct {
	path string
}

func (s *fileSink) SaveReport(_ context.Context, report *models.Report) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(report)
}

func main() {
	// Setup structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("writelens worker initializing", "version", "1.0.0")

	// Initialize tracing
	tp, err := tracing.InitTracer("writelens-worker")
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
		logger.Info("tracing initialized successfully")
	}

	// Get default values from environment variables, with fallbacks
	redisAddrDefault := getEnv("REDIS_ADDR", "localhost:6379")
	dbPathDefault := getEnv("DB_PATH", "writelens.db")
	outputPathDefault := getEnv("OUTPUT_PATH", "reports.jsonl")
	metricsPortDefault := getEnv("METRICS_PORT", "9090")
	concurrencyDefault := getEnvInt("CONCURRENCY", 4)

	var (
		redisAddr   = flag.String("redis", redisAddrDefault, "Redis address (env: REDIS_ADDR)")
		dbPath      = flag.String("db", dbPathDefault, "Corpus database file path (env: DB_PATH)")
		outputPath  = flag.String("output", outputPathDefault, "Report output file, JSON lines (env: OUTPUT_PATH)")
		metricsPort = flag.String("metrics-port", metricsPortDefault, "Prometheus metrics port (env: METRICS_PORT)")
		concurrency = flag.Int("concurrency", concurrencyDefault, "Worker concurrency (env: CONCURRENCY)")
	)
	flag.Parse()

	// Initialize corpus store and load persisted references
	store, err := corpusstore.Open(*dbPath)
	if err != nil {
		logger.Error("failed to open corpus store", "error", err, "database_path", *dbPath)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	engine := similarity.NewEngine()
	entries, err := store.ListReferences(context.Background())
	if err != nil {
		logger.Error("failed to load corpus references", "error", err)
		os.Exit(1)
	}
	for _, entry := range entries {
		engine.AddReference(entry.Text, entry.Source)
	}
	logger.Info("corpus loaded", "references", len(entries))

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{
			Addr:         ":" + *metricsPort,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		logger.Info("metrics listener starting", "port", *metricsPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics listener failed", "error", err)
		}
	}()

	worker := queue.NewWorker(
		queue.WorkerConfig{
			RedisAddr:   *redisAddr,
			Concurrency: *concurrency,
		},
		detector.New(),
		engine,
		humanizer.New(nil),
		store,
		&fileSink{path: *outputPath},
	)

	// Start worker in a goroutine; Run blocks until shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- worker.Start()
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutting down worker")
		worker.Shutdown()
	case err := <-errCh:
		if err != nil {
			logger.Error("worker failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("worker stopped")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
