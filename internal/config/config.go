// Package config defines the application configuration and command-line
// parsing for harmcalc. Configuration values resolve with the priority:
// CLI flags > environment variables (HARMCALC_*) > adaptive defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/harmonic"
)

// ─────────────────────────────────────────────────────────────────────────────
// Defaults And Limits
// ─────────────────────────────────────────────────────────────────────────────

const (
	// EnvPrefix is the prefix of every environment variable override.
	EnvPrefix = "HARMCALC_"

	// DefaultN is the default upper summation bound.
	DefaultN uint64 = 10_000_000

	// DefaultAlgo runs every registered engine and compares the results.
	DefaultAlgo = "all"

	// DefaultTimeout bounds a single run.
	DefaultTimeout = 5 * time.Minute

	// DefaultListenAddr is the HTTP server bind address for --serve.
	DefaultListenAddr = ":8080"

	// MaxNValue caps n for requests accepted over the HTTP API. CLI runs
	// are not capped: the operator owns the terminal they block.
	MaxNValue uint64 = 1_000_000_000

	// MaxDecimals is the largest supported --decimals value; beyond 17
	// digits a float64 carries no further information.
	MaxDecimals = 17
)

// AppConfig holds the complete runtime configuration of the application.
type AppConfig struct {
	// N is the upper bound of the partial sum H(N).
	N uint64

	// Tasks is the number of blocks for the parallel engine. Zero selects
	// an adaptive default based on the CPU count.
	Tasks int

	// Workers bounds the goroutines reducing blocks concurrently. Zero
	// means one worker per block.
	Workers int

	// Algo selects the engine: a factory key, or "all" for a comparison run.
	Algo string

	// Timeout bounds the whole computation.
	Timeout time.Duration

	// Tolerance is the relative tolerance for cross-engine agreement.
	Tolerance float64

	// Decimals fixes the number of decimal places in displayed sums.
	// Zero means shortest round-trip formatting.
	Decimals int

	Verbose   bool
	Details   bool
	Quiet     bool
	ShowValue bool

	// Estimate prints the closed-form approximation instead of summing.
	Estimate bool

	// Exact additionally verifies the result against exact rational
	// arithmetic (bounded n).
	Exact bool

	// Stress runs the concurrency soak battery instead of a single sum.
	Stress bool

	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string

	// TUI launches the interactive dashboard.
	TUI bool

	// Interactive starts the line-oriented shell instead of a single run.
	Interactive bool

	// Serve starts the HTTP API on ListenAddr.
	Serve      bool
	ListenAddr string

	OutputFile string
	Completion string
	NoColor    bool
}

// ToSummationOptions converts the configuration into engine tuning options.
func (c AppConfig) ToSummationOptions() harmonic.Options {
	return harmonic.Options{
		Tasks:   c.Tasks,
		Workers: c.Workers,
	}
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment overrides for flags that were not set explicitly, and
// validates the result.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: Destination for usage and parse error output.
//   - availableAlgos: The engine keys accepted by --algo (besides "all").
//
// Returns the parsed configuration, or flag.ErrHelp when help was requested.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Uint64Var(&cfg.N, "n", DefaultN, "upper bound N of the partial sum H(N)")

	fs.IntVar(&cfg.Tasks, "tasks", 0, "number of parallel tasks (0 = auto-detect from CPU count)")
	fs.IntVar(&cfg.Tasks, "t", 0, "alias for -tasks")
	fs.IntVar(&cfg.Workers, "workers", 0, "max concurrent workers (0 = one per task)")

	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, "engine to run: "+strings.Join(availableAlgos, ", ")+` or "all"`)
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "global computation timeout")
	fs.Float64Var(&cfg.Tolerance, "tolerance", harmonic.DefaultTolerance, "relative tolerance for cross-engine agreement")
	fs.IntVar(&cfg.Decimals, "decimals", 0, "decimal places for displayed sums (0 = shortest round-trip)")

	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "alias for -v")
	fs.BoolVar(&cfg.Details, "d", false, "show detailed run metrics")
	fs.BoolVar(&cfg.Details, "details", false, "alias for -d")
	fs.BoolVar(&cfg.Quiet, "q", false, "print only the final value")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "alias for -q")
	fs.BoolVar(&cfg.ShowValue, "c", false, "display the computed sum")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "alias for -c")

	fs.BoolVar(&cfg.Estimate, "estimate", false, "print the Euler-Maclaurin approximation without summing")
	fs.BoolVar(&cfg.Exact, "exact", false, "verify the result against exact rational arithmetic")
	fs.BoolVar(&cfg.Stress, "stress", false, "run the concurrency stress battery")

	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "benchmark task counts and report the optimum")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "calibrate once and cache the profile for later runs")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "path of the calibration profile file")

	fs.BoolVar(&cfg.TUI, "tui", false, "launch the interactive dashboard")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "start the interactive shell")
	fs.BoolVar(&cfg.Interactive, "i", false, "alias for -interactive")
	fs.BoolVar(&cfg.Serve, "serve", false, "start the HTTP API server")
	fs.StringVar(&cfg.ListenAddr, "listen", DefaultListenAddr, "HTTP server listen address")

	fs.StringVar(&cfg.OutputFile, "output", "", "write the result to the given file")
	fs.StringVar(&cfg.OutputFile, "o", "", "alias for -output")
	fs.StringVar(&cfg.Completion, "completion", "", "generate a shell completion script (bash, zsh, fish, powershell)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable ANSI colors")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Compute the harmonic partial sum H(N) = 1 + 1/2 + ... + 1/N\n")
		fmt.Fprintf(errWriter, "sequentially, in parallel, or both with cross-validation.\n\n")
		fmt.Fprintf(errWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables with the %s prefix override unset flags,\n", EnvPrefix)
		fmt.Fprintf(errWriter, "e.g. %sN, %sALGO, %sTASKS, %sTIMEOUT.\n", EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validateConfig(&cfg, availableAlgos); err != nil {
		fmt.Fprintf(errWriter, "%s: %v\n", programName, err)
		fmt.Fprintf(errWriter, "Run '%s --help' for usage.\n", programName)
		return AppConfig{}, err
	}
	return cfg, nil
}

// validateConfig rejects configurations before any computation is
// dispatched.
func validateConfig(cfg *AppConfig, availableAlgos []string) error {
	if cfg.N < 1 {
		return apperrors.NewConfigError("N must be at least 1")
	}
	if cfg.Tasks < 0 {
		return apperrors.NewConfigError("the task count cannot be negative")
	}
	if cfg.Workers < 0 {
		return apperrors.NewConfigError("the worker count cannot be negative")
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("the timeout must be positive")
	}
	if cfg.Tolerance <= 0 {
		return apperrors.NewConfigError("the tolerance must be positive")
	}
	if cfg.Decimals < 0 || cfg.Decimals > MaxDecimals {
		return apperrors.NewConfigError("decimals must be between 0 and %d", MaxDecimals)
	}

	if err := validateAlgo(cfg.Algo, availableAlgos); err != nil {
		return err
	}

	switch cfg.Completion {
	case "", "bash", "zsh", "fish", "powershell", "ps":
	default:
		return apperrors.NewConfigError("unsupported completion shell %q (supported: bash, zsh, fish, powershell)", cfg.Completion)
	}

	if cfg.Serve && cfg.ListenAddr == "" {
		return apperrors.NewConfigError("the listen address cannot be empty in serve mode")
	}
	return nil
}

// validateAlgo checks the engine selection against the registered keys.
func validateAlgo(algo string, availableAlgos []string) error {
	if algo == "all" {
		return nil
	}
	for _, known := range availableAlgos {
		if algo == known {
			return nil
		}
	}
	sorted := make([]string, len(availableAlgos))
	copy(sorted, availableAlgos)
	sort.Strings(sorted)
	return apperrors.NewConfigError(
		"unknown algorithm %q: available algorithms are %s, or \"all\"",
		algo, strings.Join(sorted, ", "))
}
