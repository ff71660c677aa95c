package estimator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trainflow/trainflow/ops"
)

// ErrReportNotFound is returned when no report matches the requested ID.
var ErrReportNotFound = errors.New("report not found")

// EpochSummary aggregates one phase of one epoch: the mean of every monitored
// key across the batches the phase processed.
type EpochSummary struct {
	Epoch   int                `json:"epoch"`
	Phase   ops.Phase          `json:"phase"`
	Batches int                `json:"batches"`
	Metrics map[string]float64 `json:"metrics"`
}

// RunReport is the result of one Fit call.
type RunReport struct {
	ID          string         `json:"id"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt time.Time      `json:"completedAt"`
	Epochs      int            `json:"epochs"`
	Summaries   []EpochSummary `json:"summaries"`
	Err         *ReportError   `json:"error,omitempty"`
}

// newRunReport creates a RunReport with a fresh ID and start timestamp.
func newRunReport(epochs int) RunReport {
	return RunReport{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Epochs:    epochs,
	}
}

// ReportError carries an error message with an exported field so reports
// stay JSON-serializable; native errors cannot be marshaled.
type ReportError struct {
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ReportError) Error() string {
	return e.Message
}

// Reporter stores run reports. Implementations may keep them in memory, on
// the FS, etc.
type Reporter interface {
	AddReport(report RunReport) error
	GetReport(id string) (RunReport, error)
	GetReports() ([]RunReport, error)
}

// MemoryReporter stores reports in memory. It is thread-safe.
type MemoryReporter struct {
	reports []RunReport
	mu      sync.RWMutex
}

// MemoryReporterOption configures a MemoryReporter.
type MemoryReporterOption func(*MemoryReporter)

// WithReports initializes the MemoryReporter with existing reports.
func WithReports(reports []RunReport) MemoryReporterOption {
	return func(mr *MemoryReporter) {
		mr.reports = reports
	}
}

// NewMemoryReporter creates a new MemoryReporter.
func NewMemoryReporter(options ...MemoryReporterOption) *MemoryReporter {
	reporter := &MemoryReporter{}
	for _, opt := range options {
		opt(reporter)
	}

	return reporter
}

// AddReport adds a report.
func (m *MemoryReporter) AddReport(report RunReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = append(m.reports, report)

	return nil
}

// GetReport returns the report with the given ID, or ErrReportNotFound.
func (m *MemoryReporter) GetReport(id string) (RunReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, report := range m.reports {
		if report.ID == id {
			return report, nil
		}
	}

	return RunReport{}, fmt.Errorf("report_id %s: %w", id, ErrReportNotFound)
}

// GetReports returns all reports.
func (m *MemoryReporter) GetReports() ([]RunReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Copy to avoid data races after returning.
	reports := make([]RunReport, len(m.reports))
	copy(reports, m.reports)

	return reports, nil
}
