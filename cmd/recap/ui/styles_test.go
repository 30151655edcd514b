package ui

import (
	"testing"

	"recap/internal/channel"
)

func TestThemeFromName(t *testing.T) {
	if th := ThemeFromName("dark"); !th.IsDark {
		t.Error("expected dark theme for name \"dark\"")
	}
	if th := ThemeFromName("LIGHT"); th.IsDark {
		t.Error("expected light theme for name \"LIGHT\"")
	}
}

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("RECAP_DARK_MODE", "")

	if th := DetectTheme(); th.IsDark {
		t.Error("expected light theme by default")
	}

	t.Setenv("COLORFGBG", "15;0")
	if th := DetectTheme(); !th.IsDark {
		t.Error("expected dark theme for black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if th := DetectTheme(); th.IsDark {
		t.Error("expected light theme for white background")
	}

	t.Setenv("COLORFGBG", "")
	t.Setenv("RECAP_DARK_MODE", "1")
	if th := DetectTheme(); !th.IsDark {
		t.Error("expected dark theme from RECAP_DARK_MODE")
	}
}

func TestStatusGlyph(t *testing.T) {
	cases := map[channel.DeliveryStatus]string{
		channel.StatusSuccess: "✓",
		channel.StatusFailed:  "✗",
		channel.StatusSkipped: "-",
		channel.StatusPending: "…",
		"":                    " ",
	}
	for status, want := range cases {
		if got := StatusGlyph(status); got != want {
			t.Errorf("StatusGlyph(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestStatusStyleDistinct(t *testing.T) {
	s := NewStyles(LightTheme())
	success := s.StatusStyle(channel.StatusSuccess).GetForeground()
	failed := s.StatusStyle(channel.StatusFailed).GetForeground()
	if success == failed {
		t.Error("success and failed statuses should use different colors")
	}
}
