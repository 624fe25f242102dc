// Package output renders a media.Info record in the supported output
// formats. Absent fields are omitted in every format.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"nowplaying/internal/media"
)

// Format selects an output renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name from flags or configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Render serializes the record in the given format.
func Render(info media.Info, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderText(info), nil
	case FormatJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal now-playing data: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(info)
		if err != nil {
			return "", fmt.Errorf("marshal now-playing data: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	case FormatMarkdown:
		return renderMarkdown(info), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(info media.Info) string {
	if info.Artist != "" {
		return fmt.Sprintf("%s - %s", info.Artist, info.Title)
	}
	return info.Title
}

// renderMarkdown emits a "## Now Playing" section with one bullet per set
// field. The header is only written when at least one field has content.
func renderMarkdown(info media.Info) string {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- **%s**: %s\n", label, value)
		}
	}
	line("Title", info.Title)
	line("Artist", info.Artist)
	line("Album", info.Album)
	line("Player", info.Player)

	if b.Len() == 0 {
		return ""
	}
	return "## Now Playing\n\n" + b.String()
}
