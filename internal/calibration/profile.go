// This file implements the persistent calibration profile cached between runs.

package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	// CurrentProfileVersion identifies the profile schema. Bump it whenever
	// the calibrated quantities change so older caches are discarded on load
	// instead of being misread.
	CurrentProfileVersion = 1

	// DefaultProfileFileName is the cache file that --auto-calibrate writes
	// in the user's home directory.
	DefaultProfileFileName = ".harmcalc_calibration.json"

	// DefaultProfileMaxAge is how long a cached profile stays trusted before
	// a recalibration is forced.
	DefaultProfileMaxAge = 30 * 24 * time.Hour
)

// CalibrationProfile records the benchmarked optimum for one machine. The
// hardware fields fingerprint the host so that a profile copied from, or
// restored on, different hardware is rejected instead of silently mistuning
// every subsequent run.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"`

	// OptimalTasks is the benchmarked best block count for the parallel
	// engine; OptimalWorkers the matching worker pool bound.
	OptimalTasks   int `json:"optimal_tasks"`
	OptimalWorkers int `json:"optimal_workers,omitempty"`

	// CalibrationN and CalibrationTime describe the benchmark that produced
	// the optimum, for diagnostics only.
	CalibrationN    uint64 `json:"calibration_n"`
	CalibrationTime string `json:"calibration_time"`
}

// NewProfile creates a profile describing the current hardware, with no
// calibration results yet.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
	}
}

// SaveProfile writes the profile to the given path as indented JSON.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling calibration profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing calibration profile: %w", err)
	}
	return nil
}

// loadProfile reads a profile from disk without validating it against the
// current hardware.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calibration profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// IsValid reports whether the profile was produced by the current schema on
// hardware matching this machine. The Go version is recorded but not
// enforced: a toolchain upgrade does not move the optimal block count.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge. A nil profile
// is stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// LoadOrCreateProfile loads the cached profile at path, or returns a fresh
// uncalibrated one when the file is missing, unreadable, or recorded on
// different hardware. The boolean reports whether a cached profile was
// loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the default cache location in the user's
// home directory. When the home directory cannot be resolved, the bare file
// name is returned so the profile lands in the working directory.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// String formats the profile for diagnostics.
func (p *CalibrationProfile) String() string {
	if p == nil {
		return "<nil calibration profile>"
	}
	return fmt.Sprintf("calibration profile v%d: %d tasks, %d workers (%s/%s, %d cores, calibrated %s)",
		p.ProfileVersion, p.OptimalTasks, p.OptimalWorkers,
		p.GOOS, p.GOARCH, p.NumCPU, p.CalibratedAt.Format(time.RFC3339))
}
