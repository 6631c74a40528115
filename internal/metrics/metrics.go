package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesFetched   int64
	FeedFailures      int64
	AnalysesCompleted int64
	AnalysesFailed    int64
	EditionsCompleted int64
	EditionsFailed    int64
	PDFsWritten       int64

	// Timings
	LastRunDuration  time.Duration
	TotalRunDuration time.Duration
	RunCount         int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

func (m *Metrics) IncrementFeedFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedFailures++
}

func (m *Metrics) IncrementAnalysesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalysesCompleted++
}

func (m *Metrics) IncrementAnalysesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalysesFailed++
}

func (m *Metrics) IncrementEditionsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EditionsCompleted++
}

func (m *Metrics) IncrementEditionsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EditionsFailed++
}

func (m *Metrics) IncrementPDFsWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PDFsWritten++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_fetched":     m.ArticlesFetched,
		"feed_failures":        m.FeedFailures,
		"analyses_completed":   m.AnalysesCompleted,
		"analyses_failed":      m.AnalysesFailed,
		"editions_completed":   m.EditionsCompleted,
		"editions_failed":      m.EditionsFailed,
		"pdfs_written":         m.PDFsWritten,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
