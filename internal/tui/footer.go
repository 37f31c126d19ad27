package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the bottom bar: run status on the left, key help on
// the right.
type FooterModel struct {
	keymap KeyMap
	help   help.Model
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates the footer.
func NewFooterModel() FooterModel {
	return FooterModel{
		keymap: DefaultKeyMap(),
		help:   help.New(),
	}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w - statusWidth
}

// SetPaused toggles the paused status.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// SetDone toggles the done status.
func (f *FooterModel) SetDone(done bool) {
	f.done = done
}

// SetError marks the run as failed.
func (f *FooterModel) SetError(failed bool) {
	f.failed = failed
}

// View renders the footer.
func (f FooterModel) View() string {
	status := f.statusChip()
	hints := f.help.View(f.keymap)

	gap := f.width - lipgloss.Width(status) - lipgloss.Width(hints)
	if gap < 1 {
		gap = 1
	}
	return status + spaces(gap) + hints
}

// statusChip returns the styled status label. Error wins over done, done
// over paused, so a failed run never reads as merely finished.
func (f FooterModel) statusChip() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render(" ✗ ERROR ")
	case f.done:
		return statusDoneStyle.Render(" ✓ DONE ")
	case f.paused:
		return statusPausedStyle.Render(" ⏸ PAUSED ")
	default:
		return statusRunningStyle.Render(" ● RUNNING ")
	}
}

// statusWidth reserves room for the widest status chip.
const statusWidth = 11
