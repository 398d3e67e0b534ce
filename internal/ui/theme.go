// Package ui provides the FloorTrace application UI components.
//
// This file defines a custom compact Fyne theme for a dense editor layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// FloorTraceTheme wraps the default Fyne theme with compact sizing
// overrides so the zone panel and toolbars stay out of the canvas's way.
type FloorTraceTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewFloorTraceTheme creates a theme with the system default variant.
func NewFloorTraceTheme() *FloorTraceTheme {
	return &FloorTraceTheme{
		base:    theme.DefaultTheme(),
		variant: 0,
	}
}

// NewFloorTraceThemeWithVariant creates a theme with a specific light/dark variant.
func NewFloorTraceThemeWithVariant(variant fyne.ThemeVariant) *FloorTraceTheme {
	return &FloorTraceTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// SetVariant updates the theme variant (light/dark/system).
func (t *FloorTraceTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
}

// Color delegates to the base theme with the stored variant.
func (t *FloorTraceTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *FloorTraceTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *FloorTraceTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense editor layout.
func (t *FloorTraceTheme) Size(name fyne.ThemeSizeName) float32 {
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
