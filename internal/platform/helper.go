package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"nowplaying/internal/media"
)

// The media-control helper is searched at a fixed set of install locations
// rather than $PATH so the fetch path stays deterministic.
var helperSearchPaths = []string{
	"/opt/homebrew/bin/media-control",
	"/usr/local/bin/media-control",
	"/opt/local/bin/media-control",
}

var helperPathOverride string

// SetHelperPath overrides the helper search with an explicit binary path.
// Used by configuration; an empty string restores the default search.
func SetHelperPath(path string) {
	helperPathOverride = path
}

// locateHelper returns the helper binary to run, or "" if none exists.
func locateHelper() string {
	if helperPathOverride != "" {
		if _, err := os.Stat(helperPathOverride); err == nil {
			return helperPathOverride
		}
		return ""
	}
	for _, path := range helperSearchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// helperPayload mirrors the JSON object "media-control get" prints.
// Unknown keys are ignored. The playing flag is informational only; a
// present title counts as a hit even when paused.
type helperPayload struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Playing bool   `json:"playing"`
}

// parseHelperOutput turns the helper's stdout into an Info. A literal
// "null" or empty output means no media is playing, as does a payload
// without a title.
func parseHelperOutput(out []byte) (media.Info, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return media.Info{}, fmt.Errorf("%w: helper reported no media", media.ErrNotPlaying)
	}

	var payload helperPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return media.Info{}, fmt.Errorf("%w: helper output: %v", media.ErrBadReply, err)
	}
	if payload.Title == "" {
		return media.Info{}, fmt.Errorf("%w: helper reported no title", media.ErrNotPlaying)
	}

	return media.Info{
		Title:  payload.Title,
		Artist: payload.Artist,
		Album:  payload.Album,
	}, nil
}
