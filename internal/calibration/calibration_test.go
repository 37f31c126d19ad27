package calibration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agbru/harmcalc/internal/config"
)

// saveTestProfile writes a valid calibrated profile to a temp file and
// returns its path.
func saveTestProfile(t *testing.T, mutate func(*CalibrationProfile)) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "harmcalc_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	profile := NewProfile()
	profile.OptimalTasks = 12
	profile.OptimalWorkers = 4
	profile.CalibrationN = 10000000
	if mutate != nil {
		mutate(profile)
	}

	path := filepath.Join(tmpDir, "profile.json")
	if err := profile.SaveProfile(path); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	return path
}

func TestLoadCachedCalibration_AppliesProfile(t *testing.T) {
	t.Parallel()
	path := saveTestProfile(t, nil)

	cfg, loaded := LoadCachedCalibration(config.AppConfig{}, path)
	if !loaded {
		t.Fatal("Expected the cached profile to be loaded")
	}
	if cfg.Tasks != 12 {
		t.Errorf("Tasks = %d, want 12", cfg.Tasks)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestLoadCachedCalibration_ExplicitTasksWin(t *testing.T) {
	t.Parallel()
	path := saveTestProfile(t, nil)

	cfg, loaded := LoadCachedCalibration(config.AppConfig{Tasks: 3}, path)
	if !loaded {
		t.Fatal("Expected the cached profile to be loaded")
	}
	if cfg.Tasks != 3 {
		t.Errorf("Tasks = %d, want the explicit 3 to win over the profile", cfg.Tasks)
	}
}

func TestLoadCachedCalibration_MissingFile(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Tasks: 7}

	got, loaded := LoadCachedCalibration(cfg, "/nonexistent/path/profile.json")
	if loaded {
		t.Error("Expected no profile to be loaded from a missing file")
	}
	if got.Tasks != cfg.Tasks {
		t.Errorf("Tasks = %d, want the configuration unchanged", got.Tasks)
	}
}

func TestLoadCachedCalibration_StaleProfile(t *testing.T) {
	t.Parallel()
	path := saveTestProfile(t, func(p *CalibrationProfile) {
		p.CalibratedAt = time.Now().Add(-2 * DefaultProfileMaxAge)
	})

	if _, loaded := LoadCachedCalibration(config.AppConfig{}, path); loaded {
		t.Error("Expected a stale profile to be ignored")
	}
}

func TestLoadCachedCalibration_WrongHardware(t *testing.T) {
	t.Parallel()
	path := saveTestProfile(t, func(p *CalibrationProfile) {
		p.NumCPU = 999
	})

	if _, loaded := LoadCachedCalibration(config.AppConfig{}, path); loaded {
		t.Error("Expected a profile from different hardware to be ignored")
	}
}

func TestLoadCachedCalibration_UncalibratedProfile(t *testing.T) {
	t.Parallel()
	path := saveTestProfile(t, func(p *CalibrationProfile) {
		p.OptimalTasks = 0
	})

	if _, loaded := LoadCachedCalibration(config.AppConfig{}, path); loaded {
		t.Error("Expected a profile without a calibrated optimum to be ignored")
	}
}

func TestAutoCalibrate_UsesFreshCache(t *testing.T) {
	t.Parallel()
	path := saveTestProfile(t, nil)
	cfg := config.AppConfig{CalibrationProfile: path}

	// A fresh valid cache must short-circuit the benchmark: no summers are
	// provided, so reaching the measurement would fail.
	updated, ok := AutoCalibrate(context.Background(), cfg, io.Discard, nil)
	if !ok {
		t.Fatal("Expected auto-calibration to use the cached profile")
	}
	if updated.Tasks != 12 {
		t.Errorf("Tasks = %d, want 12 from the cached profile", updated.Tasks)
	}
	if updated.Workers != 4 {
		t.Errorf("Workers = %d, want 4 from the cached profile", updated.Workers)
	}
}

func TestAutoCalibrate_NoParallelEngine(t *testing.T) {
	t.Parallel()
	tmpDir, err := os.MkdirTemp("", "harmcalc_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	cfg := config.AppConfig{CalibrationProfile: filepath.Join(tmpDir, "none.json")}

	if _, ok := AutoCalibrate(context.Background(), cfg, io.Discard, nil); ok {
		t.Error("Expected auto-calibration to report failure without a parallel engine")
	}
}
