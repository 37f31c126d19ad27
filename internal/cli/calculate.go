package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/harmcalc/internal/config"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the summation bound, timeout, environment details, and parallel
// tuning parameters.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing %sH(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Parallel tuning: Tasks=%s%d%s, Workers=%s%d%s, Tolerance=%s%.0e%s.\n",
		ui.ColorCyan(), cfg.Tasks, ui.ColorReset(), ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), cfg.Tolerance, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single algorithm vs comparison).
//
// Parameters:
//   - summers: The slice of engines that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(summers []harmonic.Summer, out io.Writer) {
	var modeDesc string
	if len(summers) > 1 {
		modeDesc = "Parallel comparison of all algorithms"
	} else {
		modeDesc = fmt.Sprintf("Single summation with the %s%s%s algorithm",
			ui.ColorGreen(), summers[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
