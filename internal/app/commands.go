package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// CollectedMsg is sent when a poll cycle finishes. A nil Err means the
// provider holds a fresh record.
type CollectedMsg struct {
	Err error
}

// PollTickMsg is sent when it's time for the next poll.
type PollTickMsg struct{}

// CollectCmd runs one poll cycle in the background.
func (m *Model) CollectCmd() tea.Cmd {
	return func() tea.Msg {
		return CollectedMsg{Err: m.Provider.Collect()}
	}
}

// TickPoll schedules the next poll after the configured interval.
func (m *Model) TickPoll() tea.Cmd {
	return tea.Tick(m.Interval, func(time.Time) tea.Msg {
		return PollTickMsg{}
	})
}
