package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/zombar/writelens/internal/corpusstore"
	"github.com/zombar/writelens/internal/detector"
	"github.com/zombar/writelens/internal/humanizer"
	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/queue"
	"github.com/zombar/writelens/internal/similarity"
)

func main() {
	// Setup structured logging with JSON output on stderr, keeping
	// stdout clean for report output
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Get default values from environment variables, with fallbacks
	dbPathDefault := getEnv("DB_PATH", "writelens.db")
	redisAddrDefault := getEnv("REDIS_ADDR", "localhost:6379")

	var (
		filePath     = flag.String("file", "", "Input file (.txt or .pdf); reads stdin when empty")
		dbPath       = flag.String("db", dbPathDefault, "Corpus database file path (env: DB_PATH)")
		addReference = flag.Bool("add-reference", false, "Store the input as a corpus reference instead of analyzing it")
		source       = flag.String("source", "", "Source label for -add-reference")
		seed         = flag.Int64("seed", 0, "Rewrite pipeline seed; 0 uses the current time")
		enqueue      = flag.Bool("enqueue", false, "Enqueue the analysis instead of running it inline")
		redisAddr    = flag.String("redis", redisAddrDefault, "Redis address for -enqueue (env: REDIS_ADDR)")
		compare      = flag.Bool("compare", false, "Include a side-by-side original/rewritten comparison")
	)
	flag.Parse()

	text, err := readInput(*filePath)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		os.Exit(1)
	}

	if *addReference {
		if err := storeReference(*dbPath, text, *source); err != nil {
			logger.Error("failed to store reference", "error", err)
			os.Exit(1)
		}
		logger.Info("reference stored", "source", *source, "text_length", len(text))
		return
	}

	if *enqueue {
		client := queue.NewClient(queue.ClientConfig{RedisAddr: *redisAddr})
		defer client.Close()

		reportID := uuid.New().String()
		taskID, err := client.EnqueueAnalyzeDocument(context.Background(), reportID, text, *seed)
		if err != nil {
			logger.Error("failed to enqueue analysis", "error", err)
			os.Exit(1)
		}
		logger.Info("analysis enqueued", "report_id", reportID, "task_id", taskID)
		return
	}

	report, comparison, err := analyze(*dbPath, text, *seed, *compare)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if *compare {
		out := struct {
			Report     *models.Report           `json:"report"`
			Comparison *models.ComparisonResult `json:"comparison"`
		}{report, comparison}
		err = enc.Encode(out)
	} else {
		err = enc.Encode(report)
	}
	if err != nil {
		logger.Error("failed to encode report", "error", err)
		os.Exit(1)
	}
}

// analyze runs the full pipeline inline, loading any persisted corpus
// references first.
func analyze(dbPath, text string, seed int64, withCompare bool) (*models.Report, *models.ComparisonResult, error) {
	engine := similarity.NewEngine()
	if err := loadCorpus(dbPath, engine); err != nil {
		return nil, nil, err
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	hum := humanizer.New(rng)

	ai := detector.New().Analyze(text)
	now := time.Now()
	report := &models.Report{
		ID:         uuid.New().String(),
		Text:       text,
		AI:         ai,
		Similarity: engine.Analyze(text),
		Humanize:   hum.Humanize(text, ai),
		Breakdown:  humanizer.Breakdown(text),
		Exercises:  hum.Exercises(text, ai),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var comparison *models.ComparisonResult
	if withCompare {
		c := humanizer.Compare(text, report.Humanize.HumanizedText)
		comparison = &c
	}
	return report, comparison, nil
}

// loadCorpus fills the engine from the store. A missing database is
// not an error; analysis just runs without a corpus.
func loadCorpus(dbPath string, engine *similarity.Engine) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	}
	store, err := corpusstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open corpus store: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate corpus store: %w", err)
	}
	entries, err := store.ListReferences(context.Background())
	if err != nil {
		return fmt.Errorf("load corpus references: %w", err)
	}
	for _, entry := range entries {
		engine.AddReference(entry.Text, entry.Source)
	}
	return nil
}

func storeReference(dbPath, text, source string) error {
	store, err := corpusstore.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open corpus store: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate corpus store: %w", err)
	}
	return store.AddReference(context.Background(), text, source)
}

// readInput loads text from a file or stdin. PDF files are recognized
// by extension and have their text extracted page by page.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDFText(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
