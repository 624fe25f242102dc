// Package app implements the watch-mode terminal UI: a bubbletea program
// that polls the platform backend on an interval and redraws the current
// track.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"nowplaying/internal/provider"
	"nowplaying/internal/ui"
)

// Model represents the watch screen's state.
type Model struct {
	Provider *provider.Provider
	Interval time.Duration
	Spinner  spinner.Model
	Width    int
	Height   int
	GotFirst bool // at least one poll has completed
}

// New builds a watch model around the given provider.
func New(p *provider.Provider, interval time.Duration) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.SubtleStyle
	return &Model{
		Provider: p,
		Interval: interval,
		Spinner:  s,
	}
}

// Init kicks off the first poll immediately and schedules the next tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.CollectCmd(), m.TickPoll())
}
