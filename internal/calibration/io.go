package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/harmcalc/internal/cli"
	"github.com/agbru/harmcalc/internal/config"
	"github.com/agbru/harmcalc/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
// The single-block rung is the speedup baseline.
func printCalibrationResults(out io.Writer, results []calibrationResult, bestTasks int) {
	var baseline float64
	for _, res := range results {
		if res.Tasks == 1 && res.Err == nil {
			baseline = float64(res.Duration)
		}
	}

	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sTasks%s    │ %sExecution Time%s    │ %sSpeedup%s\n",
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 10), strings.Repeat("─", 20), strings.Repeat("─", 10))
	for _, res := range results {
		tasksLabel := fmt.Sprintf("%d tasks", res.Tasks)
		if res.Tasks == 1 {
			tasksLabel = "1 task"
		}
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		speedupStr := "N/A"
		if res.Err == nil {
			durationStr = cli.FormatExecutionDuration(res.Duration)
			if res.Duration == 0 {
				durationStr = "< 1µs"
			}
			if baseline > 0 && res.Duration > 0 {
				speedupStr = fmt.Sprintf("%.2fx", baseline/float64(res.Duration))
			}
		}
		highlight := ""
		if res.Tasks == bestTasks && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-10s%s │ %s%s%s │ %s%s\n",
			ui.ColorCyan(), tasksLabel, ui.ColorReset(),
			ui.ColorYellow(), durationStr, ui.ColorReset(),
			speedupStr, highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the calibration values applied to the run.
//
// Parameters:
//   - cfg: The updated configuration with calibration results.
//   - out: The writer for output.
func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s: tasks=%s%d%s, workers=%s%d%s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Tasks, ui.ColorReset(),
		ui.ColorYellow(), cfg.Workers, ui.ColorReset())
}
