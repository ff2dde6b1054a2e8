package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/mp3x/internal/shared"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	cursor lipgloss.Style
	picked lipgloss.Style
	warn   lipgloss.Style
	muted  lipgloss.Style
}

// NewPalette builds a palette from accent, picked, warning and muted foreground colours.
func NewPalette(a, p, w, m string) *Palette {
	return &Palette{
		title:  NewBold(a),
		cursor: NewStyle(a),
		picked: NewBold(p).Reverse(true),
		warn:   NewStyle(w),
		muted:  NewEm(m),
	}
}

// PaletteFromConfig builds a palette from the [ui] config section, falling back to defaults for empty values.
func PaletteFromConfig(c shared.UIConfig) *Palette {
	accent, picked, muted := "#7D56F4", "#04B575", "#626262"
	if c.Accent != "" {
		accent = c.Accent
	}
	if c.Picked != "" {
		picked = c.Picked
	}
	if c.Muted != "" {
		muted = c.Muted
	}
	return NewPalette(accent, picked, "#FFA500", muted)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
