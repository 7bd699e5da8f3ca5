package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asheshgoplani/article-deck/internal/article"
	"github.com/asheshgoplani/article-deck/internal/config"
	"github.com/asheshgoplani/article-deck/internal/logging"
)

var (
	uiLog    = logging.ForComponent(logging.CompUI)
	inputLog = logging.ForComponent(logging.CompInput)
)

// configChangedMsg signals that config.toml was edited on disk.
type configChangedMsg struct{}

// AppOptions wires the App to its document, config and watchers.
// Watchers may be nil.
type AppOptions struct {
	Document      article.Document
	Config        *config.Config
	ConfigWatcher *config.Watcher
	ThemeWatcher  *ThemeWatcher
	// Status is shown in the footer until the first action (e.g. a load error).
	Status    string
	StatusErr bool
	// OpenPanel starts with the parameters panel open.
	OpenPanel bool
	// PinnedDocument keeps Document across config reloads (set by -f).
	PinnedDocument bool
}

// App is the reader: the article page with the parameters panel mounted on
// its left edge. It owns the applied settings; the panel only proposes them
// through the apply callback.
type App struct {
	width  int
	height int

	listeners *Listeners
	panel     *ParamsPanel
	article   *ArticleView

	readerKeys readerKeys
	panelKeys  panelKeys
	help       help.Model

	status    string
	statusErr bool

	cfg            *config.Config
	configWatcher  *config.Watcher
	themeWatcher   *ThemeWatcher
	pinnedDocument bool
}

// NewApp builds the reader model.
func NewApp(opts AppOptions) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	doc := opts.Document
	if doc.Title == "" {
		doc = article.Builtin()
	}

	a := &App{
		listeners:     NewListeners(),
		article:       NewArticleView(doc),
		readerKeys:    newReaderKeys(),
		panelKeys:     newPanelKeys(),
		help:          help.New(),
		status:        opts.Status,
		statusErr:     opts.StatusErr,
		cfg:           cfg,
		configWatcher: opts.ConfigWatcher,
		themeWatcher:  opts.ThemeWatcher,

		pinnedDocument: opts.PinnedDocument,
	}
	a.panel = NewParamsPanel(a.listeners, a.applySettings)
	if opts.OpenPanel {
		a.panel.Toggle()
	}
	return a
}

// Applied returns the settings the article is shown with.
func (a *App) Applied() article.Settings {
	return a.article.Settings()
}

// Panel exposes the mounted parameters panel.
func (a *App) Panel() *ParamsPanel {
	return a.panel
}

// Listeners exposes the global event registry.
func (a *App) Listeners() *Listeners {
	return a.listeners
}

// applySettings is the commit callback handed to the panel.
func (a *App) applySettings(s article.Settings) {
	a.article.Apply(s)
	uiLog.Info("settings_applied", settingsAttrs(s)...)

	if s.Equal(article.DefaultSettings) {
		a.setStatus("Default parameters applied")
		return
	}
	a.setStatus(fmt.Sprintf("Applied %s · %s · %s on %s · %s",
		s.FontFamily.Label, s.FontSize.Label, s.FontColor.Label,
		s.BackgroundColor.Label, s.ContentWidth.Label))
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(msg string) {
	a.status = msg
	a.statusErr = true
}

// Init starts listening to the watchers.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("article-deck")}
	if a.configWatcher != nil {
		cmds = append(cmds, listenForConfigChange(a.configWatcher))
	}
	if cmd := listenForThemeChange(a.themeWatcher); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// listenForConfigChange waits for the next settled config edit. It returns
// nil once the watcher is closed.
func listenForConfigChange(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		select {
		case _, ok := <-w.ChangeChannel():
			if !ok {
				return nil
			}
			return configChangedMsg{}
		case <-w.Done():
			return nil
		}
	}
}

// Update handles a message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case configChangedMsg:
		a.reloadConfig()
		return a, listenForConfigChange(a.configWatcher)

	case themeChangedMsg:
		want := ThemeLight
		if msg.dark {
			want = ThemeDark
		}
		if a.cfg.GetTheme() == "system" && GetCurrentTheme() != want {
			InitTheme(string(want))
			themeLog.Info("theme_followed_os", slog.Bool("dark", msg.dark))
		}
		return a, listenForThemeChange(a.themeWatcher)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, forceQuit) {
		return a, a.quit()
	}

	wasOpen := a.panel.IsOpen()
	a.listeners.Dispatch(KeyDownEvent{Key: msg.String()})
	if wasOpen && !a.panel.IsOpen() {
		a.layout()
		return a, nil
	}

	if a.panel.IsOpen() {
		_, cmd, handled := a.panel.Update(msg)
		if handled {
			return a, cmd
		}
	}

	switch {
	case key.Matches(msg, toggleBinding):
		a.panel.Toggle()
		a.layout()
		return a, nil
	case key.Matches(msg, helpBinding):
		a.help.ShowAll = !a.help.ShowAll
		a.layout()
		return a, nil
	case key.Matches(msg, quitBinding):
		return a, a.quit()
	}

	if !a.panel.IsOpen() {
		return a, a.article.Update(msg)
	}
	return a, nil
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev := tea.MouseEvent(msg)
	switch {
	case ev.IsWheel():
		logging.TrackPointer(logging.CompInput, "wheel", msg.X, msg.Y)
		return a, a.article.Update(msg)

	case ev.Action == tea.MouseActionPress:
		inputLog.Debug("pointer_down", slog.Int("x", msg.X), slog.Int("y", msg.Y))
		wasOpen := a.panel.IsOpen()
		a.listeners.Dispatch(PointerDownEvent{X: msg.X, Y: msg.Y})
		if wasOpen && !a.panel.IsOpen() {
			a.layout()
			return a, nil
		}
		if a.panel.Contains(msg.X, msg.Y) {
			a.panel.HandleClick(msg.X, msg.Y)
			a.layout()
		}

	case ev.Action == tea.MouseActionMotion:
		logging.TrackPointer(logging.CompInput, "pointer_motion", msg.X, msg.Y)
	}
	return a, nil
}

func (a *App) reloadConfig() {
	prevPath := a.cfg.Article.Path
	cfg, err := config.Reload()
	a.cfg = cfg
	if err != nil {
		uiLog.Warn("config_reload_failed", slog.String("error", err.Error()))
		a.setError("Config error: " + err.Error())
		return
	}
	InitTheme(cfg.ResolveTheme())
	uiLog.Info("config_reloaded", slog.String("theme", cfg.GetTheme()))
	a.setStatus("Config reloaded")

	if cfg.Article.Path == prevPath || a.pinnedDocument {
		return
	}
	doc, err := article.Open(cfg.Article.Path)
	a.article.SetDocument(doc)
	if err != nil {
		uiLog.Warn("article_load_failed",
			slog.String("path", cfg.Article.Path),
			slog.String("error", err.Error()))
		a.setError("Showing built-in article: " + err.Error())
		return
	}
	uiLog.Info("article_loaded", slog.String("title", doc.Title))
	a.setStatus("Loaded " + doc.Title)
}

func (a *App) quit() tea.Cmd {
	a.Close()
	return tea.Quit
}

// Close unmounts the panel and stops the watchers.
func (a *App) Close() {
	a.panel.Teardown()
	if a.configWatcher != nil {
		a.configWatcher.Close()
	}
	a.themeWatcher.Close()
}

// layout hands each part its share of the screen.
func (a *App) layout() {
	a.help.Width = a.width
	bodyH := a.height - lipgloss.Height(a.footerView())
	if bodyH < 0 {
		bodyH = 0
	}
	a.panel.SetSize(a.width, bodyH)
	articleW := a.width - a.panel.Width()
	if articleW < 0 {
		articleW = 0
	}
	a.article.SetSize(articleW, bodyH)
}

func (a *App) footerView() string {
	var helpView string
	if a.panel.IsOpen() {
		helpView = a.help.View(a.panelKeys)
	} else {
		helpView = a.help.View(a.readerKeys)
	}

	pct := DimStyle.Render(fmt.Sprintf("%3.0f%%", a.article.ScrollPercent()*100))
	statusW := a.width - lipgloss.Width(pct) - 1
	status := truncate(a.status, statusW)
	if a.statusErr {
		status = StatusErrorStyle.Render(status)
	} else {
		status = StatusStyle.Render(status)
	}
	gapW := a.width - lipgloss.Width(status) - lipgloss.Width(pct)
	if gapW < 1 {
		gapW = 1
	}
	statusLine := status + strings.Repeat(" ", gapW) + pct

	return lipgloss.JoinVertical(lipgloss.Left, statusLine, helpView)
}

// View renders the whole screen.
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	var cols []string
	if a.panel.IsOpen() {
		cols = append(cols, a.panel.View())
	}
	cols = append(cols, a.panel.ArrowView(), a.article.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.footerView())
}
