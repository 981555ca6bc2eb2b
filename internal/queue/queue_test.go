package queue

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombar/writelens/internal/detector"
	"github.com/zombar/writelens/internal/humanizer"
	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/similarity"
)

// memorySink collects reports in memory for tests.
type memorySink struct {
	reports []*models.Report
	err     error
}

func (s *memorySink) SaveReport(_ context.Context, report *models.Report) error {
	if s.err != nil {
		return s.err
	}
	s.reports = append(s.reports, report)
	return nil
}

func newTestWorker(sink ReportSink) *Worker {
	return &Worker{
		detector:  detector.New(),
		engine:    similarity.NewEngine(),
		humanizer: humanizer.New(rand.New(rand.NewSource(1))),
		sink:      sink,
		logger:    testLogger(),
	}
}

// TestAnalyzeDocumentPayload tests the AnalyzeDocumentPayload structure
func TestAnalyzeDocumentPayload(t *testing.T) {
	payload := AnalyzeDocumentPayload{
		ReportID: "test-123",
		Text:     "Sample text for analysis",
		Seed:     42,
	}

	data, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	var decoded AnalyzeDocumentPayload
	err = json.Unmarshal(data, &decoded)
	assert.NoError(t, err)
	assert.Equal(t, payload.ReportID, decoded.ReportID)
	assert.Equal(t, payload.Text, decoded.Text)
	assert.Equal(t, payload.Seed, decoded.Seed)
}

// TestAddReferencePayload tests the AddReferencePayload structure
func TestAddReferencePayload(t *testing.T) {
	payload := AddReferencePayload{
		Text:   "Reference body text",
		Source: "essay collection",
	}

	data, err := json.Marshal(payload)
	assert.NoError(t, err)

	var decoded AddReferencePayload
	err = json.Unmarshal(data, &decoded)
	assert.NoError(t, err)
	assert.Equal(t, payload.Text, decoded.Text)
	assert.Equal(t, payload.Source, decoded.Source)
}

func TestBuildReport(t *testing.T) {
	w := newTestWorker(&memorySink{})
	text := "Furthermore, it is important to note that the committee reviewed every proposal. " +
		"The process took several weeks to complete. " +
		"The outcome surprised almost nobody involved."

	report := w.BuildReport("report-1", text, 7)

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, text, report.Text)
	assert.Greater(t, report.AI.Score, 0.0)
	assert.NotEmpty(t, report.Humanize.HumanizedText)
	assert.NotEmpty(t, report.Breakdown)
	assert.NotEmpty(t, report.Exercises)
	assert.False(t, report.CreatedAt.IsZero())
}

func TestBuildReportSeedDeterminism(t *testing.T) {
	w := newTestWorker(&memorySink{})
	text := "Furthermore, the vast majority of users utilize default settings every day. " +
		"The panel simply never gets opened by anyone at all."

	first := w.BuildReport("a", text, 99)
	second := w.BuildReport("b", text, 99)
	assert.Equal(t, first.Humanize.HumanizedText, second.Humanize.HumanizedText)
}

func TestHandleAnalyzeDocument(t *testing.T) {
	sink := &memorySink{}
	w := newTestWorker(sink)
	w.businessMetrics = testMetrics()

	payload, err := json.Marshal(AnalyzeDocumentPayload{
		ReportID:   "task-1",
		Text:       "The committee reviewed the proposal carefully over two sessions.",
		EnqueuedAt: time.Now().UnixNano(),
	})
	require.NoError(t, err)

	task := asynq.NewTask(TypeAnalyzeDocument, payload)
	err = w.handleAnalyzeDocument(context.Background(), task)
	require.NoError(t, err)
	require.Len(t, sink.reports, 1)
	assert.Equal(t, "task-1", sink.reports[0].ID)
}

func TestHandleAnalyzeDocumentInvalidPayload(t *testing.T) {
	w := newTestWorker(&memorySink{})
	w.businessMetrics = testMetrics()

	task := asynq.NewTask(TypeAnalyzeDocument, []byte("{not json"))
	err := w.handleAnalyzeDocument(context.Background(), task)
	assert.Error(t, err)
}

func TestHandleAnalyzeDocumentSinkError(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	w := newTestWorker(sink)
	w.businessMetrics = testMetrics()

	payload, _ := json.Marshal(AnalyzeDocumentPayload{
		ReportID: "task-2",
		Text:     "Some text worth analyzing at length today.",
	})
	err := w.handleAnalyzeDocument(context.Background(), asynq.NewTask(TypeAnalyzeDocument, payload))
	assert.Error(t, err)
}

func TestHandleAddReference(t *testing.T) {
	w := newTestWorker(&memorySink{})
	w.businessMetrics = testMetrics()

	payload, err := json.Marshal(AddReferencePayload{
		Text:   "A reference document about migratory birds and navigation.",
		Source: "biology notes",
	})
	require.NoError(t, err)

	err = w.handleAddReference(context.Background(), asynq.NewTask(TypeAddReference, payload))
	require.NoError(t, err)
	assert.Len(t, w.engine.References(), 1)
}

// TestIsRetriableError tests error classification
func TestIsRetriableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Connection refused error",
			err:      errors.New("connection refused"),
			expected: true,
		},
		{
			name:     "Timeout error",
			err:      errors.New("request timeout"),
			expected: true,
		},
		{
			name:     "Context deadline exceeded",
			err:      errors.New("context deadline exceeded"),
			expected: true,
		},
		{
			name:     "Locked database",
			err:      errors.New("database is locked"),
			expected: true,
		},
		{
			name:     "Permanent validation error",
			err:      errors.New("invalid input data"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRetriableError(tt.err))
		})
	}
}

func TestRetryDelay(t *testing.T) {
	task := asynq.NewTask(TypeAnalyzeDocument, nil)
	assert.Equal(t, 1*time.Minute, retryDelay(0, nil, task))
	assert.Equal(t, 5*time.Minute, retryDelay(1, nil, task))
	assert.Equal(t, 15*time.Minute, retryDelay(2, nil, task))
	assert.Equal(t, 15*time.Minute, retryDelay(9, nil, task))
}
