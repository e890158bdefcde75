// Package ui provides the PackView desktop application.
//
// This file defines a compact Fyne theme with a selectable light/dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PackViewTheme wraps the default Fyne theme with compact sizing overrides
// so the request form and the canvas fit side by side.
type PackViewTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewPackViewTheme creates a theme that follows the system variant.
func NewPackViewTheme() *PackViewTheme {
	return &PackViewTheme{base: theme.DefaultTheme(), system: true}
}

// NewPackViewThemeWithVariant creates a theme pinned to a light or dark variant.
func NewPackViewThemeWithVariant(variant fyne.ThemeVariant) *PackViewTheme {
	return &PackViewTheme{base: theme.DefaultTheme(), variant: variant}
}

// ThemeFromConfig maps the config theme name ("light", "dark", "system").
func ThemeFromConfig(name string) *PackViewTheme {
	switch name {
	case "light":
		return NewPackViewThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewPackViewThemeWithVariant(theme.VariantDark)
	default:
		return NewPackViewTheme()
	}
}

// Color delegates to the base theme, pinning the variant unless following the system.
func (t *PackViewTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *PackViewTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PackViewTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PackViewTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
