package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/asheshgoplani/article-deck/internal/article"
)

// Stateless building blocks of the parameters panel. Each takes props and
// returns rendered text; the panel owns all state and turns clicks and keys
// into new option values with StepOption and MatchOption.

const (
	arrowButtonWidth  = 5
	arrowButtonHeight = 3

	// pickerWindow is how many options an open picker lists at once.
	pickerWindow = 5
)

// RenderArrowButton draws the panel toggle. The glyph points where the panel
// will go when clicked.
func RenderArrowButton(active bool) string {
	if active {
		return ArrowActiveStyle.Render("‹")
	}
	return ArrowStyle.Render("›")
}

// RenderText renders a heading line.
func RenderText(text string, uppercase, bold bool) string {
	if uppercase {
		text = strings.ToUpper(text)
	}
	return PanelTitleStyle.Bold(bold).Render(text)
}

// RenderSeparator draws a horizontal rule of the given width.
func RenderSeparator(width int) string {
	if width < 1 {
		width = 1
	}
	return SeparatorStyle.Render(strings.Repeat("─", width))
}

// OptionPickerProps configures a dropdown.
type OptionPickerProps struct {
	Title    string
	Selected article.OptionValue
	Options  []article.OptionValue
	// Focused pickers are open: they list their options under the value.
	Focused bool
	// Filter is the type-to-jump query shown next to the title.
	Filter string
	Width  int
}

// PickerView is a rendered dropdown. OptionAt[i] is the option index a click
// on Lines[i] selects, or -1.
type PickerView struct {
	Lines    []string
	OptionAt []int
}

// RenderOptionPicker renders a dropdown: a title line, the selected value and,
// when focused, a window of options around the selection.
func RenderOptionPicker(p OptionPickerProps) PickerView {
	var v PickerView
	add := func(line string, option int) {
		v.Lines = append(v.Lines, line)
		v.OptionAt = append(v.OptionAt, option)
	}

	labelStyle := PanelLabelStyle
	if p.Focused {
		labelStyle = PanelFocusLabelStyle
	}
	title := labelStyle.Render(p.Title)
	if p.Filter != "" {
		title += DimStyle.Render(" /" + p.Filter)
	}
	if p.Width > 0 {
		title = lipgloss.NewStyle().MaxWidth(p.Width).Render(title)
	}
	add(title, -1)

	selected := article.IndexOf(p.Options, p.Selected)
	valueWidth := p.Width - 4
	value := truncate(p.Selected.Label, valueWidth)
	if p.Focused {
		add(OptionSelectedStyle.Render("‹ "+value+" ›"), -1)
	} else {
		add(OptionStyle.Render("  "+value+" ▾"), -1)
	}

	if !p.Focused {
		return v
	}

	start, end := optionWindow(len(p.Options), selected, pickerWindow)
	for i := start; i < end; i++ {
		label := truncate(p.Options[i].Label, valueWidth)
		if i == selected {
			add(OptionSelectedStyle.Render("  ● "+label), i)
		} else {
			add(OptionStyle.Render("  ○ "+label), i)
		}
	}
	return v
}

// optionWindow returns [start, end) of at most size options keeping selected
// in view, roughly centered.
func optionWindow(total, selected, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	if selected < 0 {
		selected = 0
	}
	start := selected - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}

// OptionGroupProps configures a radio group.
type OptionGroupProps struct {
	Title    string
	Selected article.OptionValue
	Options  []article.OptionValue
	Focused  bool
	// Width wraps choices onto further lines; 0 keeps them on one line.
	Width int
}

// ChoiceSpan is where option i of a group sits: Lines[Line], columns
// [Start, End).
type ChoiceSpan struct {
	Line, Start, End int
}

// GroupView is a rendered radio group: a title line and the choices.
type GroupView struct {
	Lines []string
	Spans []ChoiceSpan
}

// RenderOptionGroup renders options side by side with the selection marked.
func RenderOptionGroup(p OptionGroupProps) GroupView {
	labelStyle := PanelLabelStyle
	if p.Focused {
		labelStyle = PanelFocusLabelStyle
	}

	title := labelStyle.Render(p.Title)
	if p.Width > 0 {
		title = lipgloss.NewStyle().MaxWidth(p.Width).Render(title)
	}
	v := GroupView{Lines: []string{title}}

	var row []string
	col := 0
	flush := func() {
		v.Lines = append(v.Lines, strings.Join(row, "  "))
		row, col = nil, 0
	}
	for _, opt := range p.Options {
		var part string
		if opt.Is(p.Selected) {
			part = OptionSelectedStyle.Render("(•) " + opt.Label)
		} else {
			part = OptionStyle.Render("( ) " + opt.Label)
		}
		w := lipgloss.Width(part)
		if len(row) > 0 && p.Width > 0 && col+2+w > p.Width {
			flush()
		}
		if len(row) > 0 {
			col += 2
		}
		v.Spans = append(v.Spans, ChoiceSpan{Line: len(v.Lines), Start: col, End: col + w})
		col += w
		row = append(row, part)
	}
	if len(row) > 0 {
		flush()
	}
	return v
}

// Button indexes for RenderActionButtons.
const (
	buttonNone  = -1
	buttonReset = 0
	buttonApply = 1
)

var buttonTitles = [2]string{"Reset", "Apply"}

// RenderActionButtons renders the reset and apply triggers on one line and
// returns the column span of each.
func RenderActionButtons(focused int) (string, [2][2]int) {
	var spans [2][2]int
	var parts []string
	col := 0
	for i, title := range buttonTitles {
		style := ButtonStyle
		if i == focused {
			style = ButtonActiveStyle
		}
		part := style.Render(title)
		if i > 0 {
			col += 2
		}
		w := lipgloss.Width(part)
		spans[i] = [2]int{col, col + w}
		col += w
		parts = append(parts, part)
	}
	return strings.Join(parts, "  "), spans
}

// StepOption returns the option delta positions away from current, clamped
// to the list. A current value foreign to the list steps from the first.
func StepOption(options []article.OptionValue, current article.OptionValue, delta int) article.OptionValue {
	if len(options) == 0 {
		return current
	}
	i := article.IndexOf(options, current)
	if i < 0 {
		return options[0]
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(options) {
		i = len(options) - 1
	}
	return options[i]
}

// CycleOption is StepOption that wraps around the ends.
func CycleOption(options []article.OptionValue, current article.OptionValue, delta int) article.OptionValue {
	if len(options) == 0 {
		return current
	}
	i := article.IndexOf(options, current)
	if i < 0 {
		return options[0]
	}
	n := len(options)
	return options[((i+delta)%n+n)%n]
}

type optionLabels []article.OptionValue

func (o optionLabels) String(i int) string { return o[i].Label }
func (o optionLabels) Len() int            { return len(o) }

// MatchOption returns the best fuzzy match of query against option labels.
func MatchOption(options []article.OptionValue, query string) (article.OptionValue, bool) {
	if query == "" {
		return article.OptionValue{}, false
	}
	matches := fuzzy.FindFrom(query, optionLabels(options))
	if len(matches) == 0 {
		return article.OptionValue{}, false
	}
	return options[matches[0].Index], true
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
