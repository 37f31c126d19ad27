package ui

import (
	"testing"
)

func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name     string
		expected string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"orange", "orange"},
		{"none", "none"},
		{"unknown-falls-back-to-dark", "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTheme(tt.name)
			if got := GetCurrentTheme().Name; got != tt.expected {
				t.Errorf("SetTheme(%q) activated %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestInitTheme_NoColorFlag(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true) should activate the none theme, got %q", GetCurrentTheme().Name)
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("none theme should produce empty color sequences")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR env should activate the none theme, got %q", GetCurrentTheme().Name)
	}
}

func TestColorAccessors_DarkTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetTheme("dark")
	accessors := map[string]func() string{
		"ColorReset":     ColorReset,
		"ColorRed":       ColorRed,
		"ColorGreen":     ColorGreen,
		"ColorYellow":    ColorYellow,
		"ColorBlue":      ColorBlue,
		"ColorMagenta":   ColorMagenta,
		"ColorCyan":      ColorCyan,
		"ColorBold":      ColorBold,
		"ColorUnderline": ColorUnderline,
	}
	for name, fn := range accessors {
		if fn() == "" {
			t.Errorf("%s should be non-empty for the dark theme", name)
		}
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetTheme("dark")
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("dark theme should map to DarkTUITheme")
	}

	SetTheme("none")
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("none theme should map to NoColorTUITheme")
	}
}
