package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	teaprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/harmcalc/internal/config"
	"github.com/agbru/harmcalc/internal/format"
	"github.com/agbru/harmcalc/internal/orchestration"
)

// logEntry is one timestamped line in the activity log.
type logEntry struct {
	at    time.Time
	text  string
	style lipgloss.Style
}

// LogsModel renders the left panel: one progress bar per engine on top,
// followed by a scrollable activity log.
type LogsModel struct {
	algoNames []string
	bars      []teaprogress.Model
	perSummer []float64
	// lastDecile throttles progress log entries to 10% milestones so the
	// log stays readable while updates arrive hundreds of times a second.
	lastDecile []int

	entries []logEntry
	// scroll is the offset from the bottom of the log; 0 follows the tail.
	scroll int
	keymap KeyMap
	width  int
	height int
}

// NewLogsModel creates the panel for the given engine names.
func NewLogsModel(algoNames []string) LogsModel {
	bars := make([]teaprogress.Model, len(algoNames))
	for i := range bars {
		bars[i] = teaprogress.New(teaprogress.WithDefaultGradient())
	}
	return LogsModel{
		algoNames:  algoNames,
		bars:       bars,
		perSummer:  make([]float64, len(algoNames)),
		lastDecile: make([]int, len(algoNames)),
		keymap:     DefaultKeyMap(),
	}
}

// SetSize updates the panel dimensions and resizes the embedded bars.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h

	barWidth := w - barLabelWidth - 6
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	for i := range l.bars {
		l.bars[i].Width = barWidth
	}
}

// AddExecutionConfig logs the run parameters as the first entries.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	nStr := format.FormatNumberString(strconv.FormatUint(cfg.N, 10))
	l.add(fmt.Sprintf("Target: H(%s)", nStr), logTimeStyle)
	l.add(fmt.Sprintf("Engines: %s", strings.Join(l.algoNames, ", ")), logTimeStyle)
	l.add(fmt.Sprintf("Tasks: %d, workers: %d, timeout: %s", cfg.Tasks, cfg.Workers, cfg.Timeout), logTimeStyle)
}

// AddProgressEntry updates the engine's bar and logs decile milestones.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	if msg.SummerIndex < 0 || msg.SummerIndex >= len(l.perSummer) {
		return
	}
	l.perSummer[msg.SummerIndex] = msg.Value

	decile := int(msg.Value * 10)
	if decile > l.lastDecile[msg.SummerIndex] {
		l.lastDecile[msg.SummerIndex] = decile
		l.add(fmt.Sprintf("%-12s %3.0f%%", l.algoNames[msg.SummerIndex], msg.Value*100), logProgressStyle)
	}
}

// AddResults logs the outcome of every engine in a comparison run.
func (l *LogsModel) AddResults(results []orchestration.SummationResult) {
	for _, r := range results {
		if r.Err != nil {
			l.add(fmt.Sprintf("%s failed: %v", r.Name, r.Err), logErrorStyle)
			continue
		}
		l.add(fmt.Sprintf("%s finished in %s", r.Name, format.FormatExecutionDuration(r.Duration)), logSuccessStyle)
	}
}

// AddFinalResult logs the winning engine and, when requested, the value.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	l.add(fmt.Sprintf("Fastest: %s (%s)", msg.Result.Name, format.FormatExecutionDuration(msg.Result.Duration)), logSuccessStyle)

	if msg.ShowValue && msg.Result.Err == nil {
		value := format.FormatSum(msg.Result.Value)
		if msg.Verbose {
			value = format.FormatSumFixed(msg.Result.Value, 17)
		}
		l.add(fmt.Sprintf("H(%d) = %s", msg.N, value), logSuccessStyle)
	}
}

// AddError logs a summation failure.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(fmt.Sprintf("Error after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err), logErrorStyle)
}

// Reset clears the log and the per-engine progress for a restarted run.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.scroll = 0
	for i := range l.perSummer {
		l.perSummer[i] = 0
		l.lastDecile[i] = 0
	}
}

// Update handles the scroll keys.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	page := l.visibleLines()
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.scroll++
	case key.Matches(msg, l.keymap.Down):
		l.scroll--
	case key.Matches(msg, l.keymap.PageUp):
		l.scroll += page
	case key.Matches(msg, l.keymap.PageDown):
		l.scroll -= page
	}
	if l.scroll < 0 {
		l.scroll = 0
	}
	if maxScroll := len(l.entries) - page; l.scroll > maxScroll {
		l.scroll = max(maxScroll, 0)
	}
}

// renderToHeight renders the panel to exactly the given outer height, so it
// lines up with the right column regardless of rounding in the layout.
func (l LogsModel) renderToHeight(h int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Activity"))
	for i, bar := range l.bars {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(" %s %s",
			logAlgoStyle.Render(fmt.Sprintf("%-*s", barLabelWidth, l.algoNames[i])),
			bar.ViewAs(l.perSummer[i])))
	}

	for _, line := range l.visibleEntries(h) {
		b.WriteString("\n")
		b.WriteString(line)
	}

	return panelStyle.
		Width(l.width - 2).
		Height(h - 2).
		Render(b.String())
}

// visibleLines returns how many log lines fit under the title and bars.
func (l LogsModel) visibleLines() int {
	lines := l.height - 2 - 1 - len(l.bars)
	if lines < 1 {
		lines = 1
	}
	return lines
}

// visibleEntries returns the window of rendered entries selected by the
// current scroll offset, newest at the bottom.
func (l LogsModel) visibleEntries(h int) []string {
	capacity := h - 2 - 1 - len(l.bars)
	if capacity < 1 {
		capacity = 1
	}

	end := len(l.entries) - l.scroll
	if end > len(l.entries) {
		end = len(l.entries)
	}
	if end < 0 {
		end = 0
	}
	start := end - capacity
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, end-start)
	for _, e := range l.entries[start:end] {
		lines = append(lines, fmt.Sprintf(" %s %s",
			logTimeStyle.Render(e.at.Format("15:04:05")),
			e.style.Render(e.text)))
	}
	return lines
}

func (l *LogsModel) add(text string, style lipgloss.Style) {
	l.entries = append(l.entries, logEntry{at: time.Now(), text: text, style: style})
}

const (
	// barLabelWidth is the fixed column for engine names next to their bar.
	barLabelWidth = 12
	minBarWidth   = 10
)
