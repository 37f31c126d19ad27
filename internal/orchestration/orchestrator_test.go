package orchestration

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/progress"
)

// MockResultPresenter is a mock implementation of ResultPresenter for testing.
type MockResultPresenter struct{}

func (MockResultPresenter) PresentComparisonTable(results []SummationResult, out io.Writer) {}
func (MockResultPresenter) PresentResult(result SummationResult, n uint64, verbose, details, showValue bool, out io.Writer) {
}
func (MockResultPresenter) FormatDuration(d time.Duration) string { return d.String() }
func (MockResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.ExitErrorGeneric
}

// MockSummer is a mock implementation of harmonic.Summer used for testing
// the orchestration logic without invoking real engines.
type MockSummer struct {
	NameFunc func() string
	SumFunc  func(ctx context.Context, reporter progress.ProgressCallback, index int, n uint64, opts harmonic.Options) (float64, error)
}

// Name returns the mocked name of the summer.
func (m *MockSummer) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "Mock"
}

// Sum invokes the mocked SumFunc.
func (m *MockSummer) Sum(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n uint64, opts harmonic.Options) (float64, error) {
	if m.SumFunc != nil {
		// Create a dummy reporter that sends to the channel
		reporter := func(pct float64) {
			if progressChan != nil {
				progressChan <- progress.ProgressUpdate{SummerIndex: index, Value: pct}
			}
		}
		return m.SumFunc(ctx, reporter, index, n, opts)
	}
	return 0, nil
}

// TestExecuteSummations verifies that the orchestrator correctly runs engines
// and aggregates their results.
func TestExecuteSummations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		summers     []harmonic.Summer
		expectedLen int
		expectError bool
	}{
		{
			name: "Single success",
			summers: []harmonic.Summer{
				&MockSummer{
					SumFunc: func(ctx context.Context, reporter progress.ProgressCallback, index int, n uint64, opts harmonic.Options) (float64, error) {
						return 1.5, nil
					},
				},
			},
			expectedLen: 1,
			expectError: false,
		},
		{
			name: "Single failure",
			summers: []harmonic.Summer{
				&MockSummer{
					SumFunc: func(ctx context.Context, reporter progress.ProgressCallback, index int, n uint64, opts harmonic.Options) (float64, error) {
						return 0, errors.New("mock error")
					},
				},
			},
			expectedLen: 1,
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteSummations(context.Background(), tt.summers, 0, harmonic.Options{}, NullProgressReporter{}, &DiscardWriter{})
			if len(results) != tt.expectedLen {
				t.Errorf("expected %d results, got %d", tt.expectedLen, len(results))
			}
			if tt.expectError {
				if results[0].Err == nil {
					t.Errorf("expected error, got nil")
				}
			} else {
				if results[0].Err != nil {
					t.Errorf("unexpected error: %v", results[0].Err)
				}
			}
		})
	}
}

// TestExecuteSummations_RealEngines runs the orchestrator over the actual
// factory engines and checks both results agree on a known sum.
func TestExecuteSummations_RealEngines(t *testing.T) {
	t.Parallel()

	summers := GetSummersToRun("all", harmonic.NewDefaultFactory())
	results := ExecuteSummations(context.Background(), summers, 10_000,
		harmonic.Options{Tasks: 4}, NullProgressReporter{}, io.Discard)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("%s failed: %v", res.Name, res.Err)
		}
		if res.Duration < 0 {
			t.Errorf("%s reported negative duration", res.Name)
		}
	}
	if !harmonic.WithinTolerance(results[0].Value, results[1].Value, harmonic.DefaultTolerance) {
		t.Errorf("engines disagree: %v vs %v", results[0].Value, results[1].Value)
	}
}

// TestAnalyzeComparisonResults verifies the logic for comparing results from
// multiple engines. It checks for agreeing results, handling of failures,
// and detection of mismatches beyond the tolerance.
func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []SummationResult
		opts           PresentationOptions
		expectedStatus int
	}{
		{
			name: "All success",
			results: []SummationResult{
				{Name: "A", Value: 5.0, Duration: time.Millisecond, Err: nil},
				{Name: "B", Value: 5.0, Duration: time.Millisecond, Err: nil},
			},
			opts:           PresentationOptions{},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Within tolerance",
			results: []SummationResult{
				{Name: "A", Value: 5.0, Duration: time.Millisecond, Err: nil},
				{Name: "B", Value: 5.0 + 1e-12, Duration: time.Millisecond, Err: nil},
			},
			opts:           PresentationOptions{Tolerance: 1e-9},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch",
			results: []SummationResult{
				{Name: "A", Value: 5.0, Duration: time.Millisecond, Err: nil},
				{Name: "B", Value: 6.0, Duration: time.Millisecond, Err: nil},
			},
			opts:           PresentationOptions{Tolerance: 1e-9},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failure",
			results: []SummationResult{
				{Name: "A", Duration: time.Millisecond, Err: errors.New("fail")},
				{Name: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			opts:           PresentationOptions{},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Mixed success/failure",
			results: []SummationResult{
				{Name: "A", Value: 5.0, Duration: time.Millisecond, Err: nil},
				{Name: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			opts:           PresentationOptions{},
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status := AnalyzeComparisonResults(tt.results, tt.opts, MockResultPresenter{}, MockResultPresenter{}, &DiscardWriter{})
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
		})
	}
}

// DiscardWriter is a helper that implements io.Writer and discards all data.
type DiscardWriter struct{}

func (d *DiscardWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}
