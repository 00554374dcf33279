package gui

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"xplor/internal/errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"gopkg.in/yaml.v3"
)

// styleFile is the on-disk shape of a stylesheet. Colors and sizes are
// keyed by the names in colorNames and sizeNames; unknown keys are
// rejected so typos surface at startup instead of being silently ignored.
type styleFile struct {
	Variant string             `yaml:"variant"`
	Colors  map[string]string  `yaml:"colors"`
	Sizes   map[string]float32 `yaml:"sizes"`
}

var colorNames = map[string]fyne.ThemeColorName{
	"background":       theme.ColorNameBackground,
	"foreground":       theme.ColorNameForeground,
	"primary":          theme.ColorNamePrimary,
	"button":           theme.ColorNameButton,
	"input_background": theme.ColorNameInputBackground,
	"selection":        theme.ColorNameSelection,
	"hover":            theme.ColorNameHover,
	"separator":        theme.ColorNameSeparator,
	"scrollbar":        theme.ColorNameScrollBar,
	"success":          theme.ColorNameSuccess,
	"warning":          theme.ColorNameWarning,
	"error":            theme.ColorNameError,
}

var sizeNames = map[string]fyne.ThemeSizeName{
	"text":        theme.SizeNameText,
	"heading":     theme.SizeNameHeadingText,
	"padding":     theme.SizeNamePadding,
	"inline_icon": theme.SizeNameInlineIcon,
}

// explorerTheme overlays stylesheet colors and sizes on the default theme.
type explorerTheme struct {
	variant    fyne.ThemeVariant
	hasVariant bool
	colors     map[fyne.ThemeColorName]color.Color
	sizes      map[fyne.ThemeSizeName]float32
}

// LoadStyle reads a stylesheet from path. A missing file yields a resource
// error with kind ResourceMissing so callers can fall back to the built-in
// style; any other failure means the stylesheet exists but cannot be used.
func LoadStyle(path string) (fyne.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewResourceError("stylesheet not found", path, errors.ResourceMissing, err)
		}
		return nil, errors.NewResourceError("stylesheet unreadable", path, errors.ResourceUnreadable, err)
	}

	var sf styleFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, errors.NewResourceError("malformed stylesheet", path, errors.ResourceUnreadable, err)
	}

	t := &explorerTheme{
		colors: make(map[fyne.ThemeColorName]color.Color),
		sizes:  make(map[fyne.ThemeSizeName]float32),
	}

	switch strings.ToLower(sf.Variant) {
	case "":
	case "dark":
		t.variant = theme.VariantDark
		t.hasVariant = true
	case "light":
		t.variant = theme.VariantLight
		t.hasVariant = true
	default:
		return nil, errors.NewResourceError(
			fmt.Sprintf("unknown variant %q", sf.Variant), path, errors.ResourceUnreadable, nil)
	}

	for key, hex := range sf.Colors {
		name, ok := colorNames[key]
		if !ok {
			return nil, errors.NewResourceError(
				fmt.Sprintf("unknown color %q", key), path, errors.ResourceUnreadable, nil)
		}
		c, err := parseHexColor(hex)
		if err != nil {
			return nil, errors.NewResourceError(
				fmt.Sprintf("color %q: %v", key, err), path, errors.ResourceUnreadable, nil)
		}
		t.colors[name] = c
	}

	for key, value := range sf.Sizes {
		name, ok := sizeNames[key]
		if !ok {
			return nil, errors.NewResourceError(
				fmt.Sprintf("unknown size %q", key), path, errors.ResourceUnreadable, nil)
		}
		if value <= 0 {
			return nil, errors.NewResourceError(
				fmt.Sprintf("size %q must be positive", key), path, errors.ResourceUnreadable, nil)
		}
		t.sizes[name] = value
	}

	return t, nil
}

// DefaultStyle returns the built-in dark palette used when no stylesheet
// is shipped alongside the binary.
func DefaultStyle() fyne.Theme {
	return &explorerTheme{
		variant:    theme.VariantDark,
		hasVariant: true,
		colors: map[fyne.ThemeColorName]color.Color{
			theme.ColorNameBackground: color.NRGBA{R: 0x10, G: 0x14, B: 0x17, A: 0xFF},
			theme.ColorNameForeground: color.NRGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF},
			theme.ColorNamePrimary:    color.NRGBA{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF},
			theme.ColorNameSelection:  color.NRGBA{R: 0x2A, G: 0x35, B: 0x40, A: 0xFF},
			theme.ColorNameHover:      color.NRGBA{R: 0x23, G: 0x2B, B: 0x31, A: 0xFF},
		},
		sizes: map[fyne.ThemeSizeName]float32{},
	}
}

func (t *explorerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := t.colors[name]; ok {
		return c
	}
	if t.hasVariant {
		variant = t.variant
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *explorerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *explorerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *explorerTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := t.sizes[name]; ok {
		return s
	}
	return theme.DefaultTheme().Size(name)
}

// parseHexColor accepts "#RGB", "#RRGGBB" and "#RRGGBBAA".
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if hex == s {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: missing #", s)
	}

	parse := func(sub string) (uint8, error) {
		v, err := strconv.ParseUint(sub, 16, 8)
		return uint8(v), err
	}

	var c color.NRGBA
	var err error
	switch len(hex) {
	case 3:
		c.R, err = parse(strings.Repeat(string(hex[0]), 2))
		if err == nil {
			c.G, err = parse(strings.Repeat(string(hex[1]), 2))
		}
		if err == nil {
			c.B, err = parse(strings.Repeat(string(hex[2]), 2))
		}
		c.A = 0xFF
	case 6, 8:
		c.R, err = parse(hex[0:2])
		if err == nil {
			c.G, err = parse(hex[2:4])
		}
		if err == nil {
			c.B, err = parse(hex[4:6])
		}
		c.A = 0xFF
		if err == nil && len(hex) == 8 {
			c.A, err = parse(hex[6:8])
		}
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: bad length", s)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
