package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// readerKeys are active while the panel is closed.
type readerKeys struct {
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Page   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// panelKeys are active while the panel is open. Most are handled inside
// ParamsPanel.Update; they are listed here for the help footer.
type panelKeys struct {
	Focus  key.Binding
	Change key.Binding
	Search key.Binding
	Apply  key.Binding
	Reset  key.Binding
	Close  key.Binding
	Toggle key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var (
	toggleBinding = key.NewBinding(key.WithKeys("p", "o"), key.WithHelp("p", "parameters"))
	helpBinding   = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help"))
	quitBinding   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	forceQuit     = key.NewBinding(key.WithKeys("ctrl+c"))
)

func newReaderKeys() readerKeys {
	return readerKeys{
		Toggle: toggleBinding,
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Page:   key.NewBinding(key.WithKeys("pgup", "pgdown", "b", "f", " "), key.WithHelp("pgup/pgdn", "page")),
		Help:   helpBinding,
		Quit:   quitBinding,
	}
}

func newPanelKeys() panelKeys {
	return panelKeys{
		Focus:  key.NewBinding(key.WithKeys("up", "down", "k", "j", "tab", "shift+tab"), key.WithHelp("↑↓/tab", "focus")),
		Change: key.NewBinding(key.WithKeys("left", "right", "h", "l", " "), key.WithHelp("←→/space", "change")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find option")),
		Apply:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "apply")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Toggle: toggleBinding,
		Help:   helpBinding,
		Quit:   quitBinding,
	}
}

func (k readerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Down, k.Up, k.Help, k.Quit}
}

func (k readerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Page},
		{k.Toggle, k.Help, k.Quit},
	}
}

func (k panelKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Change, k.Apply, k.Reset, k.Close}
}

func (k panelKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Change, k.Search},
		{k.Apply, k.Reset, k.Close},
		{k.Toggle, k.Help, k.Quit},
	}
}
