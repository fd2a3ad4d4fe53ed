// Package theme provides named styles for the stock widgets, with dark and
// light defaults and optional TOML overrides.
package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/odvcencio/cellkit/pkg/backend"
	"github.com/odvcencio/cellkit/pkg/terminal"
)

// Theme is the visual language shared by the stock widgets.
type Theme struct {
	// Text hierarchy
	Text      backend.Style
	TextMuted backend.Style

	// Chrome
	Border      backend.Style
	BorderFocus backend.Style
	Divider     backend.Style

	// Scrollbars
	ScrollTrack backend.Style
	ScrollThumb backend.Style

	// Semantic
	Accent  backend.Style
	Success backend.Style
	Warning backend.Style
	Error   backend.Style
}

// Dark returns the default dark theme.
func Dark() *Theme {
	return &Theme{
		Text:      backend.DefaultStyle().Foreground(backend.ColorRGB(240, 238, 232)),
		TextMuted: backend.DefaultStyle().Foreground(backend.ColorRGB(100, 98, 92)),

		Border:      backend.DefaultStyle().Foreground(backend.ColorRGB(50, 50, 60)),
		BorderFocus: backend.DefaultStyle().Foreground(backend.ColorRGB(255, 183, 77)),
		Divider:     backend.DefaultStyle().Foreground(backend.ColorRGB(50, 50, 60)),

		ScrollTrack: backend.DefaultStyle().Foreground(backend.ColorRGB(50, 50, 60)),
		ScrollThumb: backend.DefaultStyle().Foreground(backend.ColorRGB(100, 100, 110)),

		Accent:  backend.DefaultStyle().Foreground(backend.ColorRGB(255, 183, 77)),
		Success: backend.DefaultStyle().Foreground(backend.ColorRGB(134, 239, 172)),
		Warning: backend.DefaultStyle().Foreground(backend.ColorRGB(255, 138, 101)),
		Error:   backend.DefaultStyle().Foreground(backend.ColorRGB(255, 110, 90)),
	}
}

// Light returns the default light theme.
func Light() *Theme {
	return &Theme{
		Text:      backend.DefaultStyle().Foreground(backend.ColorRGB(30, 30, 36)),
		TextMuted: backend.DefaultStyle().Foreground(backend.ColorRGB(130, 128, 122)),

		Border:      backend.DefaultStyle().Foreground(backend.ColorRGB(180, 180, 190)),
		BorderFocus: backend.DefaultStyle().Foreground(backend.ColorRGB(180, 110, 10)),
		Divider:     backend.DefaultStyle().Foreground(backend.ColorRGB(180, 180, 190)),

		ScrollTrack: backend.DefaultStyle().Foreground(backend.ColorRGB(200, 200, 210)),
		ScrollThumb: backend.DefaultStyle().Foreground(backend.ColorRGB(120, 120, 130)),

		Accent:  backend.DefaultStyle().Foreground(backend.ColorRGB(180, 110, 10)),
		Success: backend.DefaultStyle().Foreground(backend.ColorRGB(20, 120, 60)),
		Warning: backend.DefaultStyle().Foreground(backend.ColorRGB(180, 90, 30)),
		Error:   backend.DefaultStyle().Foreground(backend.ColorRGB(190, 40, 30)),
	}
}

// ForScheme returns the default theme matching a reported color scheme.
func ForScheme(scheme terminal.ColorScheme) *Theme {
	if scheme == terminal.SchemeLight {
		return Light()
	}
	return Dark()
}

// fileStyle is the TOML shape of one style: colors as "#rrggbb" hex or a
// 0-255 palette index, attributes as booleans.
type fileStyle struct {
	FG        string `toml:"fg"`
	BG        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Italic    bool   `toml:"italic"`
	Dim       bool   `toml:"dim"`
	Underline bool   `toml:"underline"`
	Reverse   bool   `toml:"reverse"`
}

type fileTheme struct {
	Text        *fileStyle `toml:"text"`
	TextMuted   *fileStyle `toml:"text_muted"`
	Border      *fileStyle `toml:"border"`
	BorderFocus *fileStyle `toml:"border_focus"`
	Divider     *fileStyle `toml:"divider"`
	ScrollTrack *fileStyle `toml:"scroll_track"`
	ScrollThumb *fileStyle `toml:"scroll_thumb"`
	Accent      *fileStyle `toml:"accent"`
	Success     *fileStyle `toml:"success"`
	Warning     *fileStyle `toml:"warning"`
	Error       *fileStyle `toml:"error"`
}

// Load reads TOML overrides from a file on top of the base theme. Absent
// keys keep the base style.
func Load(path string, base *Theme) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	return Parse(data, base)
}

// Parse applies TOML overrides from raw bytes on top of the base theme.
func Parse(data []byte, base *Theme) (*Theme, error) {
	var ft fileTheme
	if err := toml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}

	out := *base
	overrides := []struct {
		src *fileStyle
		dst *backend.Style
	}{
		{ft.Text, &out.Text},
		{ft.TextMuted, &out.TextMuted},
		{ft.Border, &out.Border},
		{ft.BorderFocus, &out.BorderFocus},
		{ft.Divider, &out.Divider},
		{ft.ScrollTrack, &out.ScrollTrack},
		{ft.ScrollThumb, &out.ScrollThumb},
		{ft.Accent, &out.Accent},
		{ft.Success, &out.Success},
		{ft.Warning, &out.Warning},
		{ft.Error, &out.Error},
	}
	for _, o := range overrides {
		if o.src == nil {
			continue
		}
		style, err := o.src.toStyle()
		if err != nil {
			return nil, err
		}
		*o.dst = style
	}
	return &out, nil
}

func (fs *fileStyle) toStyle() (backend.Style, error) {
	style := backend.DefaultStyle()
	if fs.FG != "" {
		c, err := parseColor(fs.FG)
		if err != nil {
			return style, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(c)
	}
	if fs.BG != "" {
		c, err := parseColor(fs.BG)
		if err != nil {
			return style, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(c)
	}
	style = style.Bold(fs.Bold).
		Italic(fs.Italic).
		Dim(fs.Dim).
		Underline(fs.Underline).
		Reverse(fs.Reverse)
	return style, nil
}

// parseColor accepts "#rrggbb" hex or a decimal palette index.
func parseColor(s string) (backend.Color, error) {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return 0, fmt.Errorf("color %q: want #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		return backend.ColorRGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}

	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 || idx > 255 {
		return 0, fmt.Errorf("color %q: want #rrggbb or a palette index 0-255", s)
	}
	return backend.Color(idx), nil
}
