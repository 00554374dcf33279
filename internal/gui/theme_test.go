package gui

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xplor/internal/errors"
)

func writeStyle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), StyleFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStyle(t *testing.T) {
	t.Run("valid stylesheet", func(t *testing.T) {
		path := writeStyle(t, `
variant: dark
colors:
  background: "#101417"
  primary: "#FFA500"
sizes:
  text: 13
`)
		style, err := LoadStyle(path)
		require.NoError(t, err)

		got := style.Color(theme.ColorNameBackground, theme.VariantLight)
		assert.Equal(t, color.NRGBA{R: 0x10, G: 0x14, B: 0x17, A: 0xFF}, got)
		assert.Equal(t, float32(13), style.Size(theme.SizeNameText))

		// Unset names fall through to the default theme
		assert.NotNil(t, style.Color(theme.ColorNameButton, theme.VariantDark))
		assert.Positive(t, style.Size(theme.SizeNamePadding))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadStyle(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsResourceMissing(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadStyle(writeStyle(t, "colors: [not, a, map"))
		require.Error(t, err)
		assert.True(t, errors.IsResourceUnreadable(err))
		assert.Contains(t, err.Error(), "malformed stylesheet")
	})

	t.Run("unknown variant", func(t *testing.T) {
		_, err := LoadStyle(writeStyle(t, "variant: solarized"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown variant "solarized"`)
	})

	t.Run("unknown color key", func(t *testing.T) {
		_, err := LoadStyle(writeStyle(t, "colors:\n  accent: \"#FFFFFF\""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown color "accent"`)
	})

	t.Run("bad hex value", func(t *testing.T) {
		_, err := LoadStyle(writeStyle(t, "colors:\n  background: \"red\""))
		require.Error(t, err)
		assert.True(t, errors.IsResourceUnreadable(err))
	})

	t.Run("non-positive size", func(t *testing.T) {
		_, err := LoadStyle(writeStyle(t, "sizes:\n  text: 0"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `size "text" must be positive`)
	})
}

func TestDefaultStyle(t *testing.T) {
	style := DefaultStyle()
	require.NotNil(t, style)

	bg := style.Color(theme.ColorNameBackground, theme.VariantLight)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x14, B: 0x17, A: 0xFF}, bg,
		"built-in palette wins over the requested variant")
	assert.Positive(t, style.Size(theme.SizeNameText))
	assert.NotNil(t, style.Font(fyne.TextStyle{}))
	assert.NotNil(t, style.Icon(theme.IconNameFolder))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{name: "short form", in: "#FA0", want: color.NRGBA{R: 0xFF, G: 0xAA, B: 0x00, A: 0xFF}},
		{name: "full form", in: "#10b2c3", want: color.NRGBA{R: 0x10, G: 0xB2, B: 0xC3, A: 0xFF}},
		{name: "with alpha", in: "#11223344", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{name: "missing hash", in: "10b2c3", wantErr: true},
		{name: "bad length", in: "#12345", wantErr: true},
		{name: "not hex", in: "#GGHHII", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
