package ui

import (
	"testing"
)

func TestColorsDefined(t *testing.T) {
	colors := []string{
		string(ColorBg),
		string(ColorSurface),
		string(ColorBorder),
		string(ColorText),
		string(ColorAccent),
	}
	for _, c := range colors {
		if c == "" {
			t.Error("Color should not be empty")
		}
	}
}

func TestInitTheme(t *testing.T) {
	t.Cleanup(func() { InitTheme("dark") })

	tests := []struct {
		in      string
		want    Theme
		wantBg  string
		wantAcc string
	}{
		{"dark", ThemeDark, string(darkColors.Bg), string(darkColors.Accent)},
		{"light", ThemeLight, string(lightColors.Bg), string(lightColors.Accent)},
		{"solarized", ThemeDark, string(darkColors.Bg), string(darkColors.Accent)},
		{"", ThemeDark, string(darkColors.Bg), string(darkColors.Accent)},
	}
	for _, tt := range tests {
		InitTheme(tt.in)
		if got := GetCurrentTheme(); got != tt.want {
			t.Errorf("InitTheme(%q): theme = %q, want %q", tt.in, got, tt.want)
		}
		if string(ColorBg) != tt.wantBg {
			t.Errorf("InitTheme(%q): ColorBg = %q, want %q", tt.in, ColorBg, tt.wantBg)
		}
		if string(ColorAccent) != tt.wantAcc {
			t.Errorf("InitTheme(%q): ColorAccent = %q, want %q", tt.in, ColorAccent, tt.wantAcc)
		}
	}
}

func TestInitThemeRebuildsStyles(t *testing.T) {
	t.Cleanup(func() { InitTheme("dark") })

	InitTheme("light")
	if got := OptionSelectedStyle.GetForeground(); got != lightColors.Accent {
		t.Errorf("OptionSelectedStyle foreground = %v, want %v", got, lightColors.Accent)
	}
	InitTheme("dark")
	if got := OptionSelectedStyle.GetForeground(); got != darkColors.Accent {
		t.Errorf("OptionSelectedStyle foreground = %v, want %v", got, darkColors.Accent)
	}
}
