package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/harmcalc/internal/format"
)

// sparklineReserved is the width taken by the sparkline label and the
// trailing percentage, e.g. "CPU ... 100.0%". The history buffers hold one
// sample per remaining column.
const sparklineReserved = 17

// sparklineMinHeight is the panel height below which the CPU and memory
// sparklines are dropped to leave room for the progress bar.
const sparklineMinHeight = 10

// ChartModel renders the aggregated progress bar, the ETA, and compact
// system-load sparklines.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	done            bool
	finalElapsed    time.Duration

	cpuHistory *RingBuffer
	memHistory *RingBuffer

	width  int
	height int
}

// NewChartModel creates the chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory: NewRingBuffer(60),
		memHistory: NewRingBuffer(60),
	}
}

// SetSize updates dimensions and resizes the sample buffers so a full
// buffer exactly fills one sparkline row.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.cpuHistory.Resize(w - sparklineReserved)
	c.memHistory.Resize(w - sparklineReserved)
}

// AddDataPoint records an aggregated progress update.
func (c *ChartModel) AddDataPoint(_ float64, averageProgress float64, eta time.Duration) {
	c.averageProgress = averageProgress
	c.eta = eta
}

// UpdateSysStats appends a system CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the panel with the final elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.finalElapsed = elapsed
}

// Reset clears all samples and progress for a restarted run.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.finalElapsed = 0
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Progress Chart"))

	if bar := c.renderProgressBar(); bar != "" {
		b.WriteString("\n ")
		b.WriteString(bar)
	}

	b.WriteString("\n ")
	if c.done {
		b.WriteString(metricLabelStyle.Render("Done in: "))
		b.WriteString(metricValueStyle.Render(format.FormatExecutionDuration(c.finalElapsed)))
	} else {
		b.WriteString(metricLabelStyle.Render("ETA: "))
		b.WriteString(metricValueStyle.Render(format.FormatETA(c.eta)))
	}

	if c.height >= sparklineMinHeight {
		b.WriteString("\n\n ")
		b.WriteString(c.renderSparkline("CPU", c.cpuHistory, cpuSparklineStyle))
		b.WriteString("\n ")
		b.WriteString(c.renderSparkline("MEM", c.memHistory, memSparklineStyle))
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(b.String())
}

// renderProgressBar renders the aggregated progress as a block bar with a
// trailing percentage. Panels too narrow for a meaningful bar get nothing.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 12
	if barWidth <= 0 {
		return ""
	}

	progress := c.averageProgress
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	return chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %.1f%%", progress*100)
}

// renderSparkline renders one labeled history row, e.g. "CPU ▁▂▅▇ 62.0%".
func (c ChartModel) renderSparkline(label string, history *RingBuffer, style lipgloss.Style) string {
	return fmt.Sprintf("%s %s %s",
		metricLabelStyle.Render(label),
		style.Render(RenderSparkline(history.Slice())),
		metricValueStyle.Render(fmt.Sprintf("%.1f%%", history.Last())))
}
