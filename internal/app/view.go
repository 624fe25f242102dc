package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"nowplaying/internal/media"
	"nowplaying/internal/ui"
)

// View renders the watch screen.
func (m *Model) View() string {
	if !m.GotFirst {
		return ui.LoadingStyle.Render(m.Spinner.View() + " Looking for playing media...")
	}

	components := []string{
		"", // Top margin
		ui.TitleStyle.Render("Now Playing"),
		"",
	}

	info, ok := m.Provider.Current()
	lastErr := m.Provider.LastError()

	switch {
	case ok:
		track := "♫ " + info.Title
		if info.Artist != "" {
			track = fmt.Sprintf("♫ %s - %s", info.Artist, info.Title)
		}
		components = append(components, m.fit(ui.TrackStyle.Render(track)))

		if detail := detailLine(info); detail != "" {
			components = append(components, m.fit(ui.DetailStyle.Render(detail)))
		}
		if lastErr != nil && !errors.Is(lastErr, media.ErrNotPlaying) {
			// Stale data: the last poll failed but an older record remains
			components = append(components, m.fit(ui.SubtleStyle.Render("(last refresh failed)")))
		}

	case lastErr != nil && errors.Is(lastErr, media.ErrNotPlaying):
		components = append(components, ui.SubtleStyle.Render("Nothing playing"))

	case lastErr != nil:
		errorContent := fmt.Sprintf("✕ %s\n\n%v", media.CodeOf(lastErr), lastErr)
		components = append(components, ui.ErrorBoxStyle.Render(errorContent))

	default:
		components = append(components, ui.SubtleStyle.Render("Nothing playing"))
	}

	components = append(components,
		ui.StatusBarStyle.Render(fmt.Sprintf("refreshing every %s  │  r refresh  │  q quit", m.Interval)))

	return lipgloss.JoinVertical(lipgloss.Left, components...)
}

// detailLine builds the secondary "(Album) [player]" line.
func detailLine(info media.Info) string {
	var parts []string
	if info.Album != "" {
		parts = append(parts, "("+info.Album+")")
	}
	if info.Player != "" {
		parts = append(parts, "["+info.Player+"]")
	}
	return strings.Join(parts, " ")
}

// fit truncates a rendered line to the terminal width, preserving escape
// sequences.
func (m *Model) fit(line string) string {
	if m.Width <= 0 {
		return line
	}
	return ansi.Truncate(line, m.Width, "…")
}
