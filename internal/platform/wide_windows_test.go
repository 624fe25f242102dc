//go:build windows

package platform

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWideToUTF8(t *testing.T) {
	tests := []string{
		"Hello, World!",
		"Café del Mar",
		"日本語のタイトル",
		"mixed ascii + ünïcode",
	}
	for _, want := range tests {
		got, err := wideToUTF8(utf16.Encode([]rune(want)))
		require.NoError(t, err, "input %q", want)
		assert.Equal(t, want, got)
	}
}

func TestWideToUTF8_Empty(t *testing.T) {
	got, err := wideToUTF8(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUTF16PtrSlice(t *testing.T) {
	encoded := utf16.Encode([]rune("Song"))
	encoded = append(encoded, 0)
	got := utf16PtrSlice(&encoded[0])
	assert.Equal(t, utf16.Encode([]rune("Song")), got)

	assert.Nil(t, utf16PtrSlice(nil))

	empty := []uint16{0}
	assert.Empty(t, utf16PtrSlice(&empty[0]))
}
