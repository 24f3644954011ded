package entity

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidTheme is returned for an unknown chart theme.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidPalette is returned for an unknown color palette.
	ErrInvalidPalette = errors.New("invalid palette")
)

// Theme is the chart background scheme.
type Theme string

const (
	Light Theme = "Light"
	Dark  Theme = "Dark"
)

// Palettes maps palette names to the hex color of the price line.
var Palettes = map[string]string{
	"Default": "#007bc2",
	"Red":     "#FF0000",
	"Green":   "#00FF00",
	"Blue":    "#0000FF",
	"Purple":  "#800080",
	"Orange":  "#FFA500",
}

// ChartStyle selects how a series is drawn.
type ChartStyle struct {
	Theme   Theme
	Palette string
}

// DefaultChartStyle is the Light theme with the Default palette.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{Theme: Light, Palette: "Default"}
}

// ParseTheme accepts "light" or "dark" in any case. Empty means Light.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return "", ErrInvalidTheme
}

// ParsePalette returns the canonical palette name. Empty means Default.
func ParsePalette(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Default", nil
	}
	for name := range Palettes {
		if strings.EqualFold(name, s) {
			return name, nil
		}
	}
	return "", ErrInvalidPalette
}

// Color returns the palette's hex color.
func (cs ChartStyle) Color() string {
	if c, ok := Palettes[cs.Palette]; ok {
		return c
	}
	return Palettes["Default"]
}
