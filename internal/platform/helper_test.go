package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nowplaying/internal/media"
)

func TestParseHelperOutput(t *testing.T) {
	info, err := parseHelperOutput([]byte(`{"title":"Song","artist":"Band","album":"","playing":true}`))
	require.NoError(t, err)
	assert.Equal(t, media.Info{Title: "Song", Artist: "Band"}, info)
}

func TestParseHelperOutput_NullMeansNotPlaying(t *testing.T) {
	for _, out := range []string{"null\n", "null", "", "  \n"} {
		_, err := parseHelperOutput([]byte(out))
		assert.ErrorIs(t, err, media.ErrNotPlaying, "output %q", out)
	}
}

func TestParseHelperOutput_EmptyTitle(t *testing.T) {
	_, err := parseHelperOutput([]byte(`{"title":"","artist":"Band","playing":true}`))
	assert.ErrorIs(t, err, media.ErrNotPlaying)
}

func TestParseHelperOutput_UnknownKeysIgnored(t *testing.T) {
	out := `{"title":"Song","bundleIdentifier":"com.apple.Music","elapsedTime":42.5,"playing":false}`
	info, err := parseHelperOutput([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "Song", info.Title)
}

func TestParseHelperOutput_PausedStillCounts(t *testing.T) {
	info, err := parseHelperOutput([]byte(`{"title":"Song","playing":false}`))
	require.NoError(t, err)
	assert.Equal(t, "Song", info.Title)
}

func TestParseHelperOutput_Garbage(t *testing.T) {
	_, err := parseHelperOutput([]byte("not json at all"))
	assert.ErrorIs(t, err, media.ErrBadReply)
}

func TestLocateHelper_Override(t *testing.T) {
	dir := t.TempDir()
	helper := filepath.Join(dir, "media-control")
	require.NoError(t, os.WriteFile(helper, []byte("#!/bin/sh\n"), 0755))

	SetHelperPath(helper)
	t.Cleanup(func() { SetHelperPath("") })

	assert.Equal(t, helper, locateHelper())

	SetHelperPath(filepath.Join(dir, "missing"))
	assert.Empty(t, locateHelper())
}

func TestRestrictedDarwinVersion(t *testing.T) {
	tests := []struct {
		version    string
		restricted bool
	}{
		{"15.3", false},
		{"15.3.2", false},
		{"15.4", true},
		{"15.4.1", true},
		{"15.5", true},
		{"26.0", true},
		{"14.7.2", false},
		{"13.6", false},
		{"", false},
		{"beta", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.restricted, restrictedDarwinVersion(tt.version), "version %q", tt.version)
	}
}
