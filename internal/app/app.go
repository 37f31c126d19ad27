package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/harmcalc/internal/calibration"
	"github.com/agbru/harmcalc/internal/cli"
	"github.com/agbru/harmcalc/internal/config"
	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/logging"
	"github.com/agbru/harmcalc/internal/orchestration"
	"github.com/agbru/harmcalc/internal/server"
	"github.com/agbru/harmcalc/internal/tui"
	"github.com/agbru/harmcalc/internal/ui"
	"github.com/rs/zerolog"
)

// Application represents the harmcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   harmonic.SummerFactory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom SummerFactory for the application.
func WithFactory(f harmonic.SummerFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = harmonic.NewDefaultFactory()
	}

	factory := app.Factory
	availableAlgos := factory.List()

	programName := "harmcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveTasks(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Estimate {
		return a.runEstimate(out)
	}

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	a.Config = a.runAutoCalibrationIfEnabled(ctx, out)

	if a.Config.Serve {
		return a.runServe(ctx, out)
	}

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}

	if a.Config.Interactive {
		return a.runInteractive(out)
	}

	if a.Config.Stress {
		return a.runStress(ctx, out)
	}

	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	availableAlgos := a.Factory.List()
	if err := cli.GenerateCompletion(out, a.Config.Completion, availableAlgos); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	return calibration.RunCalibration(ctx, out, a.Factory.GetAll(), cli.DisplayProgress, cli.CLIColorProvider{})
}

// runAutoCalibrationIfEnabled runs auto-calibration if enabled.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) config.AppConfig {
	if a.Config.AutoCalibrate {
		if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out, a.Factory.GetAll()); ok {
			return updated
		}
	}
	return a.Config
}

// runServe starts the HTTP API server and blocks until shutdown.
func (a *Application) runServe(ctx context.Context, _ io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewDefaultLogger()
	srv := server.New(a.Config.ListenAddr, a.Config.Timeout, a.Factory, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("HTTP server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	summersToRun := orchestration.GetSummersToRun(a.Config.Algo, a.Factory)
	return tui.Run(ctx, summersToRun, a.Config, Version)
}

// runInteractive starts the line-oriented shell.
func (a *Application) runInteractive(out io.Writer) int {
	registry := make(map[string]harmonic.Summer)
	for _, key := range a.Factory.List() {
		if summer, err := a.Factory.Get(key); err == nil {
			registry[key] = summer
		}
	}

	repl := cli.NewREPL(registry, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Tasks:       a.Config.Tasks,
		Workers:     a.Config.Workers,
		Tolerance:   a.Config.Tolerance,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
