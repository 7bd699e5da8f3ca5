package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/asheshgoplani/article-deck/internal/article"
	"github.com/asheshgoplani/article-deck/internal/config"
	"github.com/asheshgoplani/article-deck/internal/logging"
	"github.com/asheshgoplani/article-deck/internal/ui"
)

const Version = "0.1.0"

func main() {
	args := os.Args[1:]

	// Handle subcommands
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			fmt.Printf("Article Deck v%s\n", Version)
			return
		case "help", "--help", "-h":
			printHelp()
			return
		case "init":
			handleInit()
			return
		case "options":
			handleOptions(args[1:])
			return
		case "resolve":
			handleResolve(args[1:])
			return
		}
	}

	os.Exit(runTUI(args))
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("article-deck", flag.ContinueOnError)
	articlePath := fs.String("f", "", "Plain text article to read")
	openPanel := fs.Bool("p", false, "Start with the parameters panel open")
	fs.Usage = printHelp
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: article-deck needs an interactive terminal")
		return 1
	}

	cfg, cfgErr := config.Load()
	lipgloss.SetColorProfile(colorProfile(cfg.Color, os.Getenv))
	ui.InitTheme(cfg.ResolveTheme())

	setupLogging(cfg)
	defer logging.Shutdown()

	doc, status, statusErr := loadDocument(*articlePath, cfg)
	if cfgErr != nil && status == "" {
		status, statusErr = cfgErr.Error(), true
	}

	uiLog := logging.ForComponent(logging.CompUI)
	uiLog.Info("reader_started",
		slog.Int("pid", os.Getpid()),
		slog.String("version", Version),
		slog.String("title", doc.Title))

	var watcher *config.Watcher
	if path, err := config.Path(); err == nil {
		if w, err := config.NewWatcher(path); err == nil {
			watcher = w
		} else {
			uiLog.Warn("config_watcher_unavailable", slog.String("error", err.Error()))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ui.NewApp(ui.AppOptions{
		Document:      doc,
		Config:        cfg,
		ConfigWatcher: watcher,
		ThemeWatcher:  ui.NewThemeWatcher(ctx),
		Status:        status,
		StatusErr:     statusErr,
		OpenPanel:     *openPanel,

		PinnedDocument: *articlePath != "",
	})
	defer app.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Article.GetMouse() {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(app, opts...)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadDocument picks the article from the -f flag, then config, then the
// built-in one. A file that cannot be read falls back to the built-in
// article and returns a status message for the footer.
func loadDocument(flagPath string, cfg *config.Config) (article.Document, string, bool) {
	path := flagPath
	if path == "" {
		path = cfg.Article.Path
	}
	doc, err := article.Open(path)
	if err != nil {
		return doc, fmt.Sprintf("Showing built-in article: %v", err), true
	}
	return doc, "", false
}

// setupLogging turns on the rotated debug log when ARTICLEDECK_DEBUG is set
// or [logs] debug = true. Otherwise logs are discarded so nothing disturbs
// the TUI.
func setupLogging(cfg *config.Config) {
	baseDir, err := config.Dir()
	if err != nil {
		logging.Init(logging.Config{})
		return
	}

	debugEnv := os.Getenv("ARTICLEDECK_DEBUG") != ""
	ls := cfg.Logs
	logCfg := logging.Config{
		Debug:               debugEnv || ls.Debug,
		LogDir:              baseDir,
		Level:               ls.Level,
		Format:              ls.Format,
		MaxSizeMB:           ls.MaxSizeMB,
		MaxBackups:          ls.MaxBackups,
		MaxAgeDays:          ls.MaxAgeDays,
		Compress:            ls.Compress,
		RecentBytes:         ls.RecentKB * 1024,
		DumpComponents:      ls.DumpComponents,
		SummaryIntervalSecs: ls.SummaryIntervalS,
		PprofEnabled:        ls.PprofEnabled,
	}
	if debugEnv {
		logCfg.Level = "debug"
	}
	logging.Init(logCfg)

	// bubbletea and friends log through the stdlib logger
	log.SetOutput(logging.NewBridgeWriter(logging.CompUI))

	// SIGUSR1 dumps the records held in memory
	usr1Chan := make(chan os.Signal, 1)
	signal.Notify(usr1Chan, syscall.SIGUSR1)
	go func() {
		for range usr1Chan {
			dumpPath := filepath.Join(baseDir, fmt.Sprintf("crash-dump-%d.jsonl", time.Now().Unix()))
			if err := logging.DumpRecent(dumpPath); err != nil {
				logging.ForComponent(logging.CompUI).Error("crash_dump_failed",
					slog.String("error", err.Error()))
			} else {
				logging.ForComponent(logging.CompUI).Info("crash_dump_written",
					slog.String("path", dumpPath))
			}
		}
	}()
}

// colorProfile picks the lipgloss color profile. ARTICLEDECK_COLOR wins over
// the config setting; with neither, TrueColor is preferred and ANSI256 is the
// fallback.
func colorProfile(setting string, getenv func(string) string) termenv.Profile {
	if env := getenv("ARTICLEDECK_COLOR"); env != "" {
		setting = env
	}
	switch strings.ToLower(setting) {
	case "truecolor", "true", "24bit":
		return termenv.TrueColor
	case "256", "ansi256":
		return termenv.ANSI256
	case "16", "ansi", "basic":
		return termenv.ANSI
	case "none", "off", "ascii":
		return termenv.Ascii
	}

	colorTerm := getenv("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return termenv.TrueColor
	}

	// Known TrueColor-capable terminals
	termName := getenv("TERM")
	for _, t := range []string{"xterm-256color", "screen-256color", "tmux-256color", "xterm-direct", "alacritty", "kitty", "wezterm"} {
		if strings.Contains(termName, t) {
			return termenv.TrueColor
		}
	}

	if getenv("WT_SESSION") != "" || // Windows Terminal
		getenv("ITERM_SESSION_ID") != "" || // iTerm2
		getenv("TERMINAL_EMULATOR") != "" || // JetBrains terminals
		getenv("KONSOLE_VERSION") != "" {
		return termenv.TrueColor
	}

	return termenv.ANSI256
}

func printHelp() {
	fmt.Printf("Article Deck v%s\n", Version)
	fmt.Println("Read an article in the terminal and tune how it looks")
	fmt.Println()
	fmt.Println("Usage: article-deck [-f article.txt] [-p] [command]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -f <path>        Plain text article (first line is the title)")
	fmt.Println("  -p               Start with the parameters panel open")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  (none)           Start the reader")
	fmt.Println("  init             Write an example config.toml")
	fmt.Println("  options [--json] [parameter]")
	fmt.Println("                   List the article parameters and their values")
	fmt.Println("  resolve [p=v ...]")
	fmt.Println("                   Show classes and colors for the given parameters")
	fmt.Println("  version          Show version")
	fmt.Println("  help             Show this help")
	fmt.Println()
	fmt.Println("Reader keys:")
	fmt.Println("  p, o             Open or close the parameters panel")
	fmt.Println("  ↑/k ↓/j          Scroll")
	fmt.Println("  ?                More help")
	fmt.Println("  q, Ctrl+C        Quit")
	fmt.Println()
	fmt.Println("Panel keys:")
	fmt.Println("  ↑↓, Tab          Move between parameters and buttons")
	fmt.Println("  ←→, Space        Change the focused parameter")
	fmt.Println("  /                Type to find an option")
	fmt.Println("  Ctrl+S, Ctrl+R   Apply, reset")
	fmt.Println("  Esc, click away  Close")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  ARTICLEDECK_DIR    Config directory (default ~/.article-deck)")
	fmt.Println("  ARTICLEDECK_COLOR  truecolor, 256, 16, none")
	fmt.Println("  ARTICLEDECK_DEBUG  Write debug.log to the config directory")
}
