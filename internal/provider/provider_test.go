package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nowplaying/internal/media"
)

func fixedFetch(info media.Info, err error) FetchFunc {
	return func() (media.Info, error) { return info, err }
}

func TestCollect(t *testing.T) {
	p := New(fixedFetch(media.Info{Title: "Song", Artist: "Band"}, nil), nil)

	require.NoError(t, p.Collect())

	info, ok := p.Current()
	assert.True(t, ok)
	assert.Equal(t, "Song", info.Title)
	assert.NoError(t, p.LastError())
}

func TestCollect_Idempotent(t *testing.T) {
	p := New(fixedFetch(media.Info{Title: "Song", Album: "Rec"}, nil), nil)

	require.NoError(t, p.Collect())
	first, _ := p.Current()
	require.NoError(t, p.Collect())
	second, _ := p.Current()

	assert.Equal(t, first, second)
}

func TestCollect_NormalizesMissingTitle(t *testing.T) {
	// A backend may hand back a structurally successful empty record; the
	// provider must treat it exactly like a not-found failure.
	p := New(fixedFetch(media.Info{Artist: "Band"}, nil), nil)

	err := p.Collect()
	assert.ErrorIs(t, err, media.ErrNotPlaying)
	assert.ErrorIs(t, p.LastError(), media.ErrNotPlaying)

	_, ok := p.Current()
	assert.False(t, ok)
}

func TestCollect_KeepsPreviousOnFailure(t *testing.T) {
	calls := 0
	p := New(func() (media.Info, error) {
		calls++
		if calls == 1 {
			return media.Info{Title: "Song"}, nil
		}
		return media.Info{}, fmt.Errorf("%w: bus gone", media.ErrPlatform)
	}, nil)

	require.NoError(t, p.Collect())
	require.Error(t, p.Collect())

	info, ok := p.Current()
	assert.True(t, ok)
	assert.Equal(t, "Song", info.Title)
	assert.ErrorIs(t, p.LastError(), media.ErrPlatform)
}

func TestFields(t *testing.T) {
	p := New(fixedFetch(media.Info{Title: "Song", Artist: "Band", Player: "Foo"}, nil), nil)
	require.NoError(t, p.Collect())

	assert.Equal(t, map[string]string{
		"title":  "Song",
		"artist": "Band",
		"player": "Foo",
	}, p.Fields())
}

func TestFields_Empty(t *testing.T) {
	p := New(fixedFetch(media.Info{}, errors.New("nope")), nil)
	_ = p.Collect()
	assert.Empty(t, p.Fields())
}

func TestDisplay(t *testing.T) {
	p := New(fixedFetch(media.Info{Title: "Song", Artist: "Band"}, nil), nil)
	require.NoError(t, p.Collect())

	line, err := p.Display()
	require.NoError(t, err)
	assert.Equal(t, "Band - Song", line)
}

func TestDisplay_TitleOnly(t *testing.T) {
	p := New(fixedFetch(media.Info{Title: "Song"}, nil), nil)
	require.NoError(t, p.Collect())

	line, err := p.Display()
	require.NoError(t, err)
	assert.Equal(t, "Song", line)
}

func TestDisplay_NothingCollected(t *testing.T) {
	p := New(fixedFetch(media.Info{}, nil), nil)

	_, err := p.Display()
	assert.ErrorIs(t, err, media.ErrNotPlaying)
}
