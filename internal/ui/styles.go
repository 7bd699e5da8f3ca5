package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color scheme of the reader chrome (panel, footer).
// The article itself is colored by the applied settings.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

var currentTheme Theme = ThemeDark

type palette struct {
	Bg, Surface, Border, Text, TextDim lipgloss.Color
	Accent, Cyan, Yellow, Red, Green   lipgloss.Color
}

// Tokyo Night
var darkColors = palette{
	Bg:      lipgloss.Color("#1a1b26"),
	Surface: lipgloss.Color("#24283b"),
	Border:  lipgloss.Color("#414868"),
	Text:    lipgloss.Color("#c0caf5"),
	TextDim: lipgloss.Color("#787fa0"),
	Accent:  lipgloss.Color("#7aa2f7"),
	Cyan:    lipgloss.Color("#7dcfff"),
	Yellow:  lipgloss.Color("#e0af68"),
	Red:     lipgloss.Color("#f7768e"),
	Green:   lipgloss.Color("#9ece6a"),
}

// Tokyo Night Light
var lightColors = palette{
	Bg:      lipgloss.Color("#d5d6db"),
	Surface: lipgloss.Color("#e9e9ec"),
	Border:  lipgloss.Color("#9699a3"),
	Text:    lipgloss.Color("#343b58"),
	TextDim: lipgloss.Color("#6a6d7c"),
	Accent:  lipgloss.Color("#34548a"),
	Cyan:    lipgloss.Color("#166775"),
	Yellow:  lipgloss.Color("#8f5e15"),
	Red:     lipgloss.Color("#8c4351"),
	Green:   lipgloss.Color("#485e30"),
}

// Active colors (set by InitTheme)
var (
	ColorBg      lipgloss.Color
	ColorSurface lipgloss.Color
	ColorBorder  lipgloss.Color
	ColorText    lipgloss.Color
	ColorTextDim lipgloss.Color
	ColorAccent  lipgloss.Color
	ColorCyan    lipgloss.Color
	ColorYellow  lipgloss.Color
	ColorRed     lipgloss.Color
	ColorGreen   lipgloss.Color
)

// themeMu guards the color and style vars during live theme switches
// triggered by the config or OS theme watchers.
var themeMu sync.RWMutex

// InitTheme sets the active palette. Anything other than "light" is dark.
func InitTheme(theme string) {
	themeMu.Lock()
	defer themeMu.Unlock()

	p := darkColors
	currentTheme = ThemeDark
	if theme == string(ThemeLight) {
		p = lightColors
		currentTheme = ThemeLight
	}

	ColorBg = p.Bg
	ColorSurface = p.Surface
	ColorBorder = p.Border
	ColorText = p.Text
	ColorTextDim = p.TextDim
	ColorAccent = p.Accent
	ColorCyan = p.Cyan
	ColorYellow = p.Yellow
	ColorRed = p.Red
	ColorGreen = p.Green

	initStyles()
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

func init() {
	InitTheme("dark")
}

// Panel styles
var (
	PanelTitleStyle      lipgloss.Style
	PanelLabelStyle      lipgloss.Style
	PanelFocusLabelStyle lipgloss.Style
	OptionStyle          lipgloss.Style
	OptionSelectedStyle  lipgloss.Style
	ButtonStyle          lipgloss.Style
	ButtonActiveStyle    lipgloss.Style
	ArrowStyle           lipgloss.Style
	ArrowActiveStyle     lipgloss.Style
	SeparatorStyle       lipgloss.Style
)

// Footer styles
var (
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	DimStyle         lipgloss.Style
)

func initStyles() {
	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorCyan)

	PanelLabelStyle = lipgloss.NewStyle().
		Foreground(ColorTextDim)

	PanelFocusLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent)

	OptionStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	OptionSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent)

	ButtonStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Padding(0, 1)

	ButtonActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBg).
		Background(ColorAccent).
		Padding(0, 1)

	ArrowStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Foreground(ColorText).
		Padding(0, 1)

	ArrowActiveStyle = ArrowStyle.
		BorderForeground(ColorAccent).
		Foreground(ColorAccent).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorGreen)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
		Foreground(ColorTextDim)
}
