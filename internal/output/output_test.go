package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nowplaying/internal/media"
)

var fullInfo = media.Info{Title: "Song", Artist: "Band", Album: "Rec", Player: "Foo"}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "json", "YAML", " markdown "} {
		_, err := ParseFormat(name)
		assert.NoError(t, err, name)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRenderJSON(t *testing.T) {
	out, err := Render(fullInfo, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Song","artist":"Band","album":"Rec","playerName":"Foo"}`, out)
}

func TestRenderJSON_OmitsAbsentFields(t *testing.T) {
	out, err := Render(media.Info{Title: "Song"}, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Song"}`, out)
	assert.NotContains(t, out, "artist")
	assert.NotContains(t, out, "playerName")
}

func TestRenderYAML(t *testing.T) {
	out, err := Render(media.Info{Title: "Song", Artist: "Band"}, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "title: Song")
	assert.Contains(t, out, "artist: Band")
	assert.NotContains(t, out, "album")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := Render(fullInfo, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "## Now Playing\n\n"+
		"- **Title**: Song\n"+
		"- **Artist**: Band\n"+
		"- **Album**: Rec\n"+
		"- **Player**: Foo\n", out)
}

func TestRenderMarkdown_EmptyRecord(t *testing.T) {
	out, err := Render(media.Info{}, FormatMarkdown)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderText(t *testing.T) {
	out, err := Render(fullInfo, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Band - Song", out)

	out, err = Render(media.Info{Title: "Song"}, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Song", out)
}
