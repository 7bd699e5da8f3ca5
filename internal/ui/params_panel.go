package ui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asheshgoplani/article-deck/internal/article"
	"github.com/asheshgoplani/article-deck/internal/logging"
)

var panelLog = logging.ForComponent(logging.CompPanel)

// focusTarget is a focusable element of the panel: the five settings
// (in article.Fields order) followed by the two buttons.
type focusTarget int

const (
	focusReset focusTarget = focusTarget(iota + 5)
	focusApply
)

const focusCount = 7

func (f focusTarget) field() (article.Field, bool) {
	if f >= 0 && int(f) < len(article.Fields) {
		return article.Fields[f], true
	}
	return 0, false
}

// panelTitle is shown uppercase at the top of the panel.
const panelTitle = "Set parameters"

const (
	defaultPanelWidth = 42
	minPanelWidth     = 28
	// panelPadX and panelPadY are the panel's inner padding.
	panelPadX = 2
	panelPadY = 1
)

// Rect is a cell rectangle in terminal coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// hitZone maps a clickable region (panel-relative) to a focus target.
type hitZone struct {
	y, x0, x1 int
	target    focusTarget
	option    int // option index selected by the click, -1 = none
}

// ParamsPanel is the collapsible article parameters side panel.
//
// It is Closed at creation. While Open it holds two global listeners on the
// shared Listeners registry: a pointer-down listener that closes the panel
// when the press lands outside Contains, and a key listener that closes it on
// Escape. Both are added when the panel opens and removed when it closes or
// is torn down, so a closed panel never reacts to global input.
//
// The draft settings are edited in place and handed to the apply callback
// only by Submit or Reset. Closing the panel does not discard the draft.
type ParamsPanel struct {
	open  bool
	draft article.Settings
	apply func(article.Settings)

	listeners *Listeners
	pointerID ListenerID
	keyID     ListenerID

	width  int
	height int

	focus     focusTarget
	filtering bool
	filter    string
}

// NewParamsPanel creates a closed panel with the default draft. apply is
// called with the settings to show on Submit and Reset.
func NewParamsPanel(listeners *Listeners, apply func(article.Settings)) *ParamsPanel {
	if listeners == nil {
		listeners = NewListeners()
	}
	if apply == nil {
		apply = func(article.Settings) {}
	}
	return &ParamsPanel{
		draft:     article.DefaultSettings,
		apply:     apply,
		listeners: listeners,
	}
}

// IsOpen returns whether the panel is visible.
func (p *ParamsPanel) IsOpen() bool {
	return p.open
}

// Draft returns the settings currently being edited.
func (p *ParamsPanel) Draft() article.Settings {
	return p.draft
}

// SetSize sets the area the panel and its toggle live in.
func (p *ParamsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Toggle opens a closed panel and closes an open one.
func (p *ParamsPanel) Toggle() {
	if p.open {
		p.exitOpen()
	} else {
		p.enterOpen()
	}
	panelLog.Debug("panel_toggled",
		slog.Bool("open", p.open),
		slog.Int("listeners", p.listeners.Len()))
}

// Dismiss closes the panel if it is open. It never opens it.
func (p *ParamsPanel) Dismiss() {
	if p.open {
		p.exitOpen()
		panelLog.Debug("panel_dismissed")
	}
}

// enterOpen is the Closed -> Open entry action.
func (p *ParamsPanel) enterOpen() {
	p.open = true
	p.pointerID = p.listeners.Add(EventPointerDown, p.onPointerDown)
	p.keyID = p.listeners.Add(EventKeyDown, p.onKeyDown)
}

// exitOpen is the Open -> Closed exit action.
func (p *ParamsPanel) exitOpen() {
	p.open = false
	p.removeListeners()
	p.filtering = false
	p.filter = ""
}

func (p *ParamsPanel) removeListeners() {
	if p.pointerID != 0 {
		p.listeners.Remove(p.pointerID)
		p.pointerID = 0
	}
	if p.keyID != 0 {
		p.listeners.Remove(p.keyID)
		p.keyID = 0
	}
}

// Teardown releases global listeners when the panel goes away. The panel
// ends up Closed.
func (p *ParamsPanel) Teardown() {
	p.open = false
	p.removeListeners()
}

func (p *ParamsPanel) onPointerDown(ev Event) {
	pe, ok := ev.(PointerDownEvent)
	if !ok || p.Contains(pe.X, pe.Y) {
		return
	}
	p.Dismiss()
}

func (p *ParamsPanel) onKeyDown(ev Event) {
	if ke, ok := ev.(KeyDownEvent); ok && ke.Key == "esc" {
		p.Dismiss()
	}
}

// UpdateField replaces one draft field. v must come from the field's
// option list; it is not checked here.
func (p *ParamsPanel) UpdateField(field article.Field, v article.OptionValue) {
	p.draft = p.draft.With(field, v)
}

// Submit hands the draft to apply. The panel stays as it is.
func (p *ParamsPanel) Submit() {
	applied := p.draft
	panelLog.Info("settings_submitted", settingsAttrs(applied)...)
	p.apply(applied)
}

// Reset restores the default draft and applies it right away.
func (p *ParamsPanel) Reset() {
	p.draft = article.DefaultSettings
	panelLog.Info("settings_reset")
	p.apply(article.DefaultSettings)
}

func settingsAttrs(s article.Settings) []any {
	attrs := make([]any, 0, len(article.Fields))
	for _, f := range article.Fields {
		attrs = append(attrs, slog.String(f.String(), s.Get(f).Value))
	}
	return attrs
}

// panelWidth is the total width of the open panel including its border.
func (p *ParamsPanel) panelWidth() int {
	w := defaultPanelWidth
	if p.width > 0 && p.width-arrowButtonWidth-20 < w {
		w = p.width - arrowButtonWidth - 20
	}
	if w < minPanelWidth {
		w = minPanelWidth
	}
	return w
}

// ArrowRect is where the toggle button sits: left edge when closed,
// right of the panel when open.
func (p *ParamsPanel) ArrowRect() Rect {
	x := 0
	if p.open {
		x = p.panelWidth()
	}
	return Rect{X: x, Y: 1, W: arrowButtonWidth, H: arrowButtonHeight}
}

// PanelRect is the area of the open panel; zero when closed.
func (p *ParamsPanel) PanelRect() Rect {
	if !p.open {
		return Rect{}
	}
	return Rect{X: 0, Y: 0, W: p.panelWidth(), H: p.height}
}

// Width returns the columns taken by the panel and its toggle.
func (p *ParamsPanel) Width() int {
	r := p.ArrowRect()
	return r.X + r.W
}

// Contains reports whether (x, y) is inside the panel root: the open panel
// or the toggle button.
func (p *ParamsPanel) Contains(x, y int) bool {
	return p.PanelRect().Contains(x, y) || p.ArrowRect().Contains(x, y)
}

// Update handles keys while the panel is open. It returns true when the key
// was consumed; consumed keys (including the one that submits) never reach
// the rest of the program.
func (p *ParamsPanel) Update(msg tea.Msg) (*ParamsPanel, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.open {
		return p, nil, false
	}
	key := keyMsg.String()

	if p.filtering {
		return p, nil, p.handleFilterKey(key, keyMsg)
	}

	switch key {
	case "up", "k":
		if p.focus > 0 {
			p.setFocus(p.focus - 1)
		}
	case "down", "j":
		if p.focus < focusCount-1 {
			p.setFocus(p.focus + 1)
		}
	case "shift+tab":
		p.setFocus((p.focus + focusCount - 1) % focusCount)
	case "tab":
		p.setFocus((p.focus + 1) % focusCount)
	case "left", "h":
		p.stepFocused(-1, false)
	case "right", "l":
		p.stepFocused(1, false)
	case " ":
		if _, isField := p.focus.field(); isField {
			p.stepFocused(1, true)
		} else {
			p.press(p.focus)
		}
	case "enter":
		if _, isField := p.focus.field(); isField {
			p.setFocus(p.focus + 1)
		} else {
			p.press(p.focus)
		}
	case "/":
		if field, isField := p.focus.field(); isField && field != article.FieldFontSize {
			p.filtering = true
			p.filter = ""
		}
	case "ctrl+s":
		p.Submit()
	case "ctrl+r":
		p.Reset()
	default:
		return p, nil, false
	}
	return p, nil, true
}

func (p *ParamsPanel) handleFilterKey(key string, msg tea.KeyMsg) bool {
	switch key {
	case "enter", "tab", "up", "down":
		p.filtering = false
		p.filter = ""
		return true
	case "backspace":
		if p.filter != "" {
			r := []rune(p.filter)
			p.filter = string(r[:len(r)-1])
		}
	default:
		if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
			return false
		}
		p.filter += string(msg.Runes)
	}

	if field, ok := p.focus.field(); ok {
		if v, found := MatchOption(article.Options(field), p.filter); found {
			p.UpdateField(field, v)
		}
	}
	return true
}

func (p *ParamsPanel) setFocus(f focusTarget) {
	if f < 0 || f >= focusCount {
		return
	}
	p.focus = f
	p.filtering = false
	p.filter = ""
}

func (p *ParamsPanel) stepFocused(delta int, wrap bool) {
	field, ok := p.focus.field()
	if !ok {
		// left/right moves between the two buttons
		if delta < 0 {
			p.focus = focusReset
		} else {
			p.focus = focusApply
		}
		return
	}
	opts := article.Options(field)
	if wrap {
		p.UpdateField(field, CycleOption(opts, p.draft.Get(field), delta))
	} else {
		p.UpdateField(field, StepOption(opts, p.draft.Get(field), delta))
	}
}

func (p *ParamsPanel) press(f focusTarget) {
	switch f {
	case focusApply:
		p.Submit()
	case focusReset:
		p.Reset()
	}
}

// HandleClick handles a mouse press at terminal cell (x, y). It returns
// true when the press landed on the panel root.
func (p *ParamsPanel) HandleClick(x, y int) bool {
	if p.ArrowRect().Contains(x, y) {
		p.Toggle()
		return true
	}
	if !p.open || !p.PanelRect().Contains(x, y) {
		return false
	}

	_, zones := p.render()
	relX, relY := x-panelPadX, y-panelPadY
	for _, z := range zones {
		if z.y != relY || relX < z.x0 || relX >= z.x1 {
			continue
		}
		p.clickZone(z)
		return true
	}
	return true
}

func (p *ParamsPanel) clickZone(z hitZone) {
	switch z.target {
	case focusApply, focusReset:
		p.focus = z.target
		p.press(z.target)
		return
	}

	field, _ := z.target.field()
	opts := article.Options(field)
	switch {
	case z.option >= 0 && z.option < len(opts):
		p.UpdateField(field, opts[z.option])
		if p.focus != z.target {
			p.setFocus(z.target)
		}
	case p.focus == z.target:
		p.UpdateField(field, CycleOption(opts, p.draft.Get(field), 1))
	default:
		p.setFocus(z.target)
	}
}

// innerSize is the content area inside padding and the right border.
func (p *ParamsPanel) innerSize() (int, int) {
	w := p.panelWidth() - 1 - 2*panelPadX
	h := p.height - 2*panelPadY
	if h < 0 {
		h = 0
	}
	return w, h
}

var fieldTitles = map[article.Field]string{
	article.FieldFontFamily:      "Font",
	article.FieldFontSize:        "Font size",
	article.FieldFontColor:       "Font color",
	article.FieldBackgroundColor: "Background color",
	article.FieldContentWidth:    "Content width",
}

// render lays out the panel content and the click zones for it. Zone
// coordinates are relative to the content area and every line fits innerW.
func (p *ParamsPanel) render() ([]string, []hitZone) {
	innerW, innerH := p.innerSize()
	var lines []string
	var zones []hitZone

	lines = append(lines, RenderText(panelTitle, true, true), "")

	for i, field := range article.Fields {
		target := focusTarget(i)
		focused := p.focus == target
		if field == article.FieldBackgroundColor {
			lines = append(lines, RenderSeparator(innerW), "")
		}

		if field == article.FieldFontSize {
			g := RenderOptionGroup(OptionGroupProps{
				Title:    fieldTitles[field],
				Selected: p.draft.Get(field),
				Options:  article.Options(field),
				Focused:  focused,
				Width:    innerW,
			})
			top := len(lines)
			zones = append(zones, hitZone{y: top, x0: 0, x1: innerW, target: target, option: -1})
			for idx, span := range g.Spans {
				zones = append(zones, hitZone{y: top + span.Line, x0: span.Start, x1: span.End, target: target, option: idx})
			}
			lines = append(lines, g.Lines...)
		} else {
			filter := ""
			if focused && p.filtering {
				filter = p.filter
				if filter == "" {
					filter = "…"
				}
			}
			v := RenderOptionPicker(OptionPickerProps{
				Title:    fieldTitles[field],
				Selected: p.draft.Get(field),
				Options:  article.Options(field),
				Focused:  focused,
				Filter:   filter,
				Width:    innerW,
			})
			for j, line := range v.Lines {
				zones = append(zones, hitZone{y: len(lines), x0: 0, x1: innerW, target: target, option: v.OptionAt[j]})
				lines = append(lines, line)
			}
		}
		lines = append(lines, "")
	}

	// With a known height the buttons sit on the last content row; rows
	// that do not fit above them are dropped.
	if innerH > 0 {
		last := innerH - 1
		if len(lines) > last {
			lines = lines[:last]
			kept := zones[:0]
			for _, z := range zones {
				if z.y < last {
					kept = append(kept, z)
				}
			}
			zones = kept
		}
		for len(lines) < last {
			lines = append(lines, "")
		}
	}
	buttonsY := len(lines)

	focusedButton := buttonNone
	switch p.focus {
	case focusReset:
		focusedButton = buttonReset
	case focusApply:
		focusedButton = buttonApply
	}
	buttons, spans := RenderActionButtons(focusedButton)
	zones = append(zones,
		hitZone{y: buttonsY, x0: spans[buttonReset][0], x1: spans[buttonReset][1], target: focusReset, option: -1},
		hitZone{y: buttonsY, x0: spans[buttonApply][0], x1: spans[buttonApply][1], target: focusApply, option: -1},
	)
	lines = append(lines, buttons)

	// One content line per screen row, or the zones drift below a wrap.
	clip := lipgloss.NewStyle().MaxWidth(innerW)
	for i, line := range lines {
		if lipgloss.Width(line) > innerW {
			lines[i] = clip.Render(line)
		}
	}
	return lines, zones
}

// View renders the open panel. A closed panel renders nothing; the toggle
// is drawn separately by ArrowView.
func (p *ParamsPanel) View() string {
	if !p.open || p.height <= 0 {
		return ""
	}
	lines, _ := p.render()

	style := lipgloss.NewStyle().
		Width(p.panelWidth()-1).
		Height(p.height).
		MaxHeight(p.height).
		Padding(panelPadY, panelPadX).
		Background(ColorSurface).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(ColorBorder)

	return style.Render(strings.Join(lines, "\n"))
}

// ArrowView renders the toggle column: the arrow button one row down,
// padded to the panel height.
func (p *ParamsPanel) ArrowView() string {
	return lipgloss.NewStyle().
		Width(arrowButtonWidth).
		Height(p.height).
		MaxHeight(p.height).
		Render("\n" + RenderArrowButton(p.open))
}
