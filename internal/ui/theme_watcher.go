package ui

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	dark "github.com/thiagokokada/dark-mode-go"

	"github.com/asheshgoplani/article-deck/internal/logging"
)

var themeLog = logging.ForComponent(logging.CompTheme)

// ThemeWatcher follows the OS dark mode setting for theme = "system".
// goroutine + buffered channel + Close(), like config.Watcher.
type ThemeWatcher struct {
	changeCh  chan bool // true=dark
	closeCh   chan struct{}
	closeOnce sync.Once
}

// themeChangedMsg carries an OS dark mode switch into the Update loop.
type themeChangedMsg struct {
	dark bool
}

// NewThemeWatcher starts watching the OS setting. It returns nil when the
// platform offers no way to watch; callers treat nil as "no updates".
func NewThemeWatcher(parentCtx context.Context) *ThemeWatcher {
	ctx, cancel := context.WithCancel(parentCtx)

	events, errs, err := dark.WatchDarkMode(ctx)
	if err != nil {
		cancel()
		themeLog.Warn("theme_watcher_init_failed", slog.String("error", err.Error()))
		return nil
	}

	tw := &ThemeWatcher{
		changeCh: make(chan bool, 1),
		closeCh:  make(chan struct{}),
	}
	go tw.watchLoop(ctx, cancel, events, errs)
	return tw
}

func (tw *ThemeWatcher) watchLoop(ctx context.Context, cancel context.CancelFunc, events <-chan bool, errs <-chan error) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tw.closeCh:
			return
		case isDark, ok := <-events:
			if !ok {
				return
			}
			// Keep only the newest value if the UI has not read the last one.
			select {
			case tw.changeCh <- isDark:
			default:
				select {
				case <-tw.changeCh:
				default:
				}
				tw.changeCh <- isDark
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			if err != nil {
				themeLog.Warn("theme_watcher_error", slog.String("error", err.Error()))
			}
		}
	}
}

// ChangeChannel returns the channel that receives dark mode changes.
func (tw *ThemeWatcher) ChangeChannel() <-chan bool {
	return tw.changeCh
}

// Close stops the watcher goroutine. Safe to call multiple times and on nil.
func (tw *ThemeWatcher) Close() {
	if tw == nil {
		return
	}
	tw.closeOnce.Do(func() {
		close(tw.closeCh)
	})
}

// listenForThemeChange waits for the next OS theme switch.
func listenForThemeChange(tw *ThemeWatcher) tea.Cmd {
	if tw == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case isDark := <-tw.changeCh:
			return themeChangedMsg{dark: isDark}
		case <-tw.closeCh:
			return nil
		}
	}
}
