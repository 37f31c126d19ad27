package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/harmcalc/internal/config"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/orchestration"
)

// TestPrintExecutionConfig tests the PrintExecutionConfig function.
func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		N:         1000,
		Timeout:   time.Minute,
		Tasks:     8,
		Workers:   4,
		Tolerance: 1e-9,
	}

	PrintExecutionConfig(cfg, &buf)

	output := buf.String()

	if !strings.Contains(output, "H(1000)") {
		t.Errorf("output should name the summation bound, got:\n%s", output)
	}
	if !strings.Contains(output, "Tasks=") || !strings.Contains(output, "Workers=") {
		t.Errorf("output should show the parallel tuning, got:\n%s", output)
	}
	if len(output) < 50 {
		t.Errorf("PrintExecutionConfig output seems too short: %s", output)
	}
}

// TestPrintExecutionMode tests the PrintExecutionMode function.
func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := harmonic.GlobalFactory()

	t.Run("Single summer mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		summers := []harmonic.Summer{factory.MustGet("sequential")}

		PrintExecutionMode(summers, &buf)

		output := buf.String()
		if !strings.Contains(output, "Single summation") {
			t.Errorf("single-engine mode not reported, got:\n%s", output)
		}
	})

	t.Run("Multiple summers mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		summers := orchestration.GetSummersToRun("all", factory)

		PrintExecutionMode(summers, &buf)

		output := buf.String()
		if !strings.Contains(output, "comparison of all algorithms") {
			t.Errorf("comparison mode not reported, got:\n%s", output)
		}
	})
}
