package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheshgoplani/article-deck/internal/article"
	"github.com/asheshgoplani/article-deck/internal/config"
)

func newTestApp(t *testing.T, opts AppOptions) *App {
	t.Helper()
	a := NewApp(opts)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	t.Cleanup(a.Close)
	return a
}

func sendKeys(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = a.Update(keyMsg(k))
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestApp_InitialState(t *testing.T) {
	a := newTestApp(t, AppOptions{})

	assert.False(t, a.Panel().IsOpen())
	assert.Equal(t, article.DefaultSettings, a.Applied())
	assert.Equal(t, 0, a.Listeners().Len())
	assert.NotNil(t, a.Init())

	view := a.View()
	assert.Contains(t, view, article.Builtin().Title)
	assert.Contains(t, view, "›")
}

func TestApp_EmptyViewBeforeSize(t *testing.T) {
	a := NewApp(AppOptions{Document: shortDoc})
	assert.Empty(t, a.View())
}

func TestApp_OpenPanelOption(t *testing.T) {
	a := newTestApp(t, AppOptions{OpenPanel: true})
	assert.True(t, a.Panel().IsOpen())
	assert.Equal(t, 2, a.Listeners().Len())
}

func TestApp_ToggleKeys(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})

	sendKeys(a, "p")
	assert.True(t, a.Panel().IsOpen())
	assert.Contains(t, a.View(), "SET PARAMETERS")
	assert.Equal(t, a.Panel().Width(), 120-a.article.width)

	sendKeys(a, "p")
	assert.False(t, a.Panel().IsOpen())
	assert.Equal(t, 120-arrowButtonWidth, a.article.width)

	sendKeys(a, "o")
	assert.True(t, a.Panel().IsOpen())
}

func TestApp_EscapeClosesPanel(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	sendKeys(a, "p", "esc")

	assert.False(t, a.Panel().IsOpen())
	assert.Equal(t, 0, a.Listeners().Len())
}

func TestApp_EscapeWhileFiltering(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	sendKeys(a, "p", "/", "u", "esc")

	assert.False(t, a.Panel().IsOpen())
	assert.Equal(t, article.DefaultSettings, a.Applied())
}

func TestApp_SubmitFromKeyboard(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	sendKeys(a, "p", "j", "l", "ctrl+s")

	assert.Equal(t, "25", a.Applied().FontSize.Value)
	assert.Equal(t, a.Applied(), a.article.Settings())
	assert.True(t, a.Panel().IsOpen(), "applying keeps the panel open")
	assert.Contains(t, a.status, "25px")
	assert.False(t, a.statusErr)
}

func TestApp_ResetFromKeyboard(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	sendKeys(a, "p", "j", "l", "ctrl+s", "ctrl+r")

	assert.Equal(t, article.DefaultSettings, a.Applied())
	assert.Equal(t, article.DefaultSettings, a.Panel().Draft())
	assert.Equal(t, "Default parameters applied", a.status)
}

func TestApp_PanelKeysDoNotScrollArticle(t *testing.T) {
	a := newTestApp(t, AppOptions{})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 10})

	sendKeys(a, "p", "j", "j")
	assert.Zero(t, a.article.ScrollPercent())

	sendKeys(a, "p", "j")
	assert.Greater(t, a.article.ScrollPercent(), 0.0)
}

func TestApp_OutsideClickClosesPanel(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	sendKeys(a, "p")

	a.Update(press(100, 10))
	assert.False(t, a.Panel().IsOpen())
	assert.Equal(t, 0, a.Listeners().Len())
}

func TestApp_ArrowClickToggles(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})

	r := a.Panel().ArrowRect()
	a.Update(press(r.X+2, r.Y+1))
	assert.True(t, a.Panel().IsOpen())

	r = a.Panel().ArrowRect()
	a.Update(press(r.X+2, r.Y+1))
	assert.False(t, a.Panel().IsOpen())
}

func TestApp_ClickApply(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	sendKeys(a, "p")
	a.Panel().UpdateField(article.FieldBackgroundColor, article.BackgroundColors[1])

	x, y := zoneAt(t, a.Panel(), focusApply, -1)
	a.Update(press(x, y))

	assert.True(t, a.Panel().IsOpen())
	assert.Equal(t, "dark", a.Applied().BackgroundColor.Value)
}

func TestApp_WheelScrollsArticle(t *testing.T) {
	a := newTestApp(t, AppOptions{})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 10})

	a.Update(tea.MouseMsg{X: 60, Y: 3, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Greater(t, a.article.ScrollPercent(), 0.0)
}

func TestApp_Quit(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	assert.True(t, isQuit(sendKeys(a, "q")))

	b := newTestApp(t, AppOptions{Document: shortDoc})
	sendKeys(b, "p", "/")
	assert.True(t, isQuit(sendKeys(b, "ctrl+c")), "ctrl+c quits even while filtering")
	assert.Equal(t, 0, b.Listeners().Len())
}

func TestApp_QuitKeyIsQueryWhileFiltering(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	sendKeys(a, "p", "j", "j", "/")

	assert.False(t, isQuit(sendKeys(a, "q")))
	assert.True(t, a.Panel().IsOpen())
}

func TestApp_HelpToggle(t *testing.T) {
	a := newTestApp(t, AppOptions{Document: shortDoc})
	short := a.article.height

	sendKeys(a, "?")
	assert.True(t, a.help.ShowAll)
	assert.Less(t, a.article.height, short, "full help takes more rows")

	sendKeys(a, "?")
	assert.False(t, a.help.ShowAll)
	assert.Equal(t, short, a.article.height)
}

func TestApp_StatusFromOptions(t *testing.T) {
	a := newTestApp(t, AppOptions{Status: "cannot read article", StatusErr: true})
	assert.Contains(t, a.View(), "cannot read article")
	assert.True(t, a.statusErr)
}

func TestApp_ConfigReload(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.DirEnv, dir)
	config.ClearCache()
	t.Cleanup(func() {
		config.ClearCache()
		InitTheme("dark")
	})

	a := newTestApp(t, AppOptions{Document: shortDoc})
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("theme = \"light\"\n"), 0o644))

	_, cmd := a.Update(configChangedMsg{})
	assert.NotNil(t, cmd, "keeps listening")
	assert.Equal(t, ThemeLight, GetCurrentTheme())
	assert.Equal(t, "Config reloaded", a.status)

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("theme = \n"), 0o644))
	a.Update(configChangedMsg{})
	assert.True(t, a.statusErr)
	assert.Contains(t, a.status, "Config error")
}

func TestApp_SystemThemeFollowsOS(t *testing.T) {
	t.Cleanup(func() { InitTheme("dark") })

	a := newTestApp(t, AppOptions{Document: shortDoc, Config: &config.Config{Theme: "system"}})
	a.Update(themeChangedMsg{dark: false})
	assert.Equal(t, ThemeLight, GetCurrentTheme())

	a.Update(themeChangedMsg{dark: true})
	assert.Equal(t, ThemeDark, GetCurrentTheme())

	b := newTestApp(t, AppOptions{Document: shortDoc, Config: &config.Config{Theme: "dark"}})
	b.Update(themeChangedMsg{dark: false})
	assert.Equal(t, ThemeDark, GetCurrentTheme(), "a fixed theme ignores the OS")
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0o644))
}

func TestApp_ConfigReloadSwitchesArticle(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.DirEnv, dir)
	config.ClearCache()
	t.Cleanup(config.ClearCache)

	articlePath := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(articlePath, []byte("Notes from disk\n\nFrom a file."), 0o644))

	a := newTestApp(t, AppOptions{Document: shortDoc, Config: config.Default()})

	writeConfig(t, dir, "[article]\npath = \""+articlePath+"\"\n")
	a.Update(configChangedMsg{})
	assert.Equal(t, "Notes from disk", a.article.doc.Title)
	assert.False(t, a.statusErr)
	assert.Contains(t, a.View(), "From a file.")

	writeConfig(t, dir, "[article]\npath = \""+filepath.Join(dir, "missing.txt")+"\"\n")
	a.Update(configChangedMsg{})
	assert.Equal(t, article.Builtin().Title, a.article.doc.Title)
	assert.True(t, a.statusErr)
	assert.Contains(t, a.status, "Showing built-in article")
}

func TestApp_PinnedDocumentSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.DirEnv, dir)
	config.ClearCache()
	t.Cleanup(config.ClearCache)

	articlePath := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(articlePath, []byte("Notes from disk\n\nFrom a file."), 0o644))

	a := newTestApp(t, AppOptions{Document: shortDoc, Config: config.Default(), PinnedDocument: true})
	writeConfig(t, dir, "[article]\npath = \""+articlePath+"\"\n")
	a.Update(configChangedMsg{})

	assert.Equal(t, shortDoc.Title, a.article.doc.Title)
	assert.Equal(t, "Config reloaded", a.status)
}

func TestListenForConfigChange_StopsOnClose(t *testing.T) {
	dir := t.TempDir()
	w, err := config.NewWatcher(filepath.Join(dir, config.FileName))
	require.NoError(t, err)

	cmd := listenForConfigChange(w)
	w.Close()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("listener still blocked after Close")
	}
}
