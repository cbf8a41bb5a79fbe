package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"salespulse/internal/analytics"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/events"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one analysis execution tracked by the service.
type Run struct {
	ID         string            `json:"id"`
	Status     string            `json:"status"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at,omitempty"`
	Error      string            `json:"error,omitempty"`
	Report     *analytics.Report `json:"report,omitempty"`
}

// ProgressSink receives progress events during a run. The websocket hub
// implements this; tests substitute their own.
type ProgressSink interface {
	BroadcastProgress(events.ProgressEvent)
}

// AnalysisService executes analyses and keeps finished runs retrievable by
// id. Runs are held in memory only.
type AnalysisService struct {
	opts    analytics.Options
	metrics *infrastructure.Metrics
	sink    ProgressSink
	logger  *slog.Logger

	// defaultToday is applied to datasets that carry no reference date;
	// zero means wall clock.
	defaultToday time.Time

	mu   sync.RWMutex
	runs map[string]*Run
}

// NewAnalysisService creates the service. Metrics and sink may be nil; a
// nil logger falls back to slog.Default.
func NewAnalysisService(opts analytics.Options, metrics *infrastructure.Metrics,
	sink ProgressSink, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		opts:    opts,
		metrics: metrics,
		sink:    sink,
		logger:  logger.With(slog.String("service", "analysis")),
		runs:    make(map[string]*Run),
	}
}

// SetDefaultToday sets the reference date applied to datasets without one.
func (s *AnalysisService) SetDefaultToday(t time.Time) {
	s.defaultToday = t
}

// Analyze runs the engine over the dataset synchronously and returns the
// finished run. Failed runs are recorded too so their error stays
// retrievable.
func (s *AnalysisService) Analyze(ctx context.Context, ds analytics.Dataset) (*Run, error) {
	if ds.Today.IsZero() {
		ds.Today = s.defaultToday
	}

	run := &Run{
		ID:        uuid.New().String(),
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()

	logger := s.logger.With(slog.String("run_id", run.ID))
	logger.InfoContext(ctx, "analysis started",
		slog.Int("orders", len(ds.Orders)),
		slog.Int("lines", len(ds.Lines)))

	// One engine per run so the progress listener can carry the run id.
	engine := analytics.NewEngine(s.opts, logger)
	if s.sink != nil {
		engine.OnProgress(func(percent int, phase string) {
			s.sink.BroadcastProgress(events.NewProgressEvent(run.ID, percent, phase))
		})
	}

	report, err := engine.Analyze(ctx, ds)
	elapsed := time.Since(run.StartedAt)

	s.mu.Lock()
	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = StatusFailed
		run.Error = err.Error()
	} else {
		run.Status = StatusCompleted
		run.Report = report
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.AnalysesTotal.WithLabelValues(run.Status).Inc()
		s.metrics.AnalysisDuration.Observe(elapsed.Seconds())
		s.metrics.DatasetOrders.Observe(float64(len(ds.Orders)))
	}

	if err != nil {
		logger.ErrorContext(ctx, "analysis failed",
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()))
		return run, err
	}

	logger.InfoContext(ctx, "analysis completed",
		slog.Duration("elapsed", elapsed),
		slog.Float64("revenue", report.Summary.TotalRevenue))
	return run, nil
}

// Get returns a run by id.
func (s *AnalysisService) Get(id string) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// List returns all runs, most recent first.
func (s *AnalysisService) List() []*Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
