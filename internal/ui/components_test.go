package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheshgoplani/article-deck/internal/article"
)

func TestRenderArrowButton(t *testing.T) {
	closed := RenderArrowButton(false)
	open := RenderArrowButton(true)

	assert.Contains(t, closed, "›")
	assert.Contains(t, open, "‹")
	assert.Equal(t, arrowButtonWidth, lipgloss.Width(closed))
	assert.Equal(t, arrowButtonHeight, lipgloss.Height(closed))
}

func TestRenderText(t *testing.T) {
	assert.Equal(t, "SET PARAMETERS", RenderText("Set parameters", true, true))
	assert.Equal(t, "Set parameters", RenderText("Set parameters", false, false))
}

func TestRenderSeparator(t *testing.T) {
	assert.Equal(t, 12, lipgloss.Width(RenderSeparator(12)))
	assert.Equal(t, 1, lipgloss.Width(RenderSeparator(0)))
}

func TestRenderOptionPicker_Closed(t *testing.T) {
	v := RenderOptionPicker(OptionPickerProps{
		Title:    "Font",
		Selected: article.FontFamilyOptions[2],
		Options:  article.FontFamilyOptions,
		Width:    30,
	})

	require.Len(t, v.Lines, 2)
	assert.Equal(t, []int{-1, -1}, v.OptionAt)
	assert.Equal(t, "Font", v.Lines[0])
	assert.Contains(t, v.Lines[1], "Cormorant Garamond")
}

func TestRenderOptionPicker_Focused(t *testing.T) {
	v := RenderOptionPicker(OptionPickerProps{
		Title:    "Font color",
		Selected: article.FontColors[6],
		Options:  article.FontColors,
		Focused:  true,
		Filter:   "ye",
		Width:    30,
	})

	require.Len(t, v.Lines, 2+pickerWindow)
	assert.Contains(t, v.Lines[0], "/ye")
	assert.Contains(t, v.Lines[1], "Yellow")
	assert.Equal(t, []int{-1, -1, 4, 5, 6, 7, 8}, v.OptionAt)
	assert.Contains(t, v.Lines[4], "● Yellow")
	assert.Contains(t, v.Lines[2], "○ Fuchsia")
}

func TestRenderOptionPicker_TruncatesLabels(t *testing.T) {
	v := RenderOptionPicker(OptionPickerProps{
		Title:    "Font",
		Selected: article.FontFamilyOptions[2],
		Options:  article.FontFamilyOptions,
		Width:    10,
	})
	assert.Contains(t, v.Lines[1], "…")
	assert.NotContains(t, v.Lines[1], "Garamond")
}

func TestOptionWindow(t *testing.T) {
	tests := []struct {
		name                  string
		total, selected, size int
		wantStart, wantEnd    int
	}{
		{"fits", 3, 1, 5, 0, 3},
		{"start", 10, 0, 5, 0, 5},
		{"middle", 10, 5, 5, 3, 8},
		{"end", 10, 9, 5, 5, 10},
		{"unknown selection", 10, -1, 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := optionWindow(tt.total, tt.selected, tt.size)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestRenderOptionGroup(t *testing.T) {
	g := RenderOptionGroup(OptionGroupProps{
		Title:    "Font size",
		Selected: article.FontSizeOptions[1],
		Options:  article.FontSizeOptions,
	})

	require.Len(t, g.Lines, 2)
	assert.Equal(t, "Font size", g.Lines[0])
	assert.Equal(t, "( ) 18px  (•) 25px  ( ) 38px", g.Lines[1])
	assert.Equal(t, []ChoiceSpan{{1, 0, 8}, {1, 10, 18}, {1, 20, 28}}, g.Spans)
}

func TestRenderOptionGroup_Wraps(t *testing.T) {
	g := RenderOptionGroup(OptionGroupProps{
		Title:    "Font size",
		Selected: article.FontSizeOptions[1],
		Options:  article.FontSizeOptions,
		Width:    23,
	})

	require.Len(t, g.Lines, 3)
	assert.Equal(t, "( ) 18px  (•) 25px", g.Lines[1])
	assert.Equal(t, "( ) 38px", g.Lines[2])
	assert.Equal(t, []ChoiceSpan{{1, 0, 8}, {1, 10, 18}, {2, 0, 8}}, g.Spans)
	for _, line := range g.Lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 23)
	}
}

func TestRenderOptionPicker_TitleFitsWidth(t *testing.T) {
	v := RenderOptionPicker(OptionPickerProps{
		Title:    "Background color",
		Selected: article.BackgroundColors[0],
		Options:  article.BackgroundColors,
		Focused:  true,
		Filter:   "a-rather-long-query",
		Width:    20,
	})
	for _, line := range v.Lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}

func TestRenderActionButtons(t *testing.T) {
	line, spans := RenderActionButtons(buttonNone)

	assert.Equal(t, " Reset    Apply ", line)
	assert.Equal(t, [2]int{0, 7}, spans[buttonReset])
	assert.Equal(t, [2]int{9, 16}, spans[buttonApply])
	assert.Equal(t, "Reset", strings.TrimSpace(line[spans[buttonReset][0]:spans[buttonReset][1]]))
	assert.Equal(t, "Apply", strings.TrimSpace(line[spans[buttonApply][0]:spans[buttonApply][1]]))
}

func TestStepOption(t *testing.T) {
	opts := article.FontSizeOptions

	assert.Equal(t, opts[1], StepOption(opts, opts[0], 1))
	assert.Equal(t, opts[2], StepOption(opts, opts[2], 1), "clamps at the end")
	assert.Equal(t, opts[0], StepOption(opts, opts[0], -1), "clamps at the start")
	assert.Equal(t, opts[0], StepOption(opts, article.OptionValue{Value: "99"}, 1))

	empty := article.OptionValue{Value: "x"}
	assert.Equal(t, empty, StepOption(nil, empty, 1))
}

func TestCycleOption(t *testing.T) {
	opts := article.ContentWidthOptions

	assert.Equal(t, opts[0], CycleOption(opts, opts[1], 1))
	assert.Equal(t, opts[1], CycleOption(opts, opts[0], -1))
	assert.Equal(t, opts[0], CycleOption(opts, opts[0], 4))
}

func TestMatchOption(t *testing.T) {
	v, ok := MatchOption(article.FontFamilyOptions, "merri")
	require.True(t, ok)
	assert.Equal(t, "merriweather", v.Value)

	v, ok = MatchOption(article.BackgroundColors, "dark")
	require.True(t, ok)
	assert.Equal(t, "dark", v.Value)

	_, ok = MatchOption(article.FontColors, "zzz")
	assert.False(t, ok)

	_, ok = MatchOption(article.FontColors, "")
	assert.False(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Open Sans", truncate("Open Sans", 20))
	assert.Equal(t, "Open…", truncate("Open Sans", 5))
	assert.Equal(t, "", truncate("Open Sans", 0))
}
