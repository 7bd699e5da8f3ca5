package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Component constants for structured logging.
const (
	CompUI     = "ui"
	CompPanel  = "panel"
	CompInput  = "input"
	CompConfig = "config"
	CompTheme  = "theme"
	CompPerf   = "perf"
)

// LogFileName is the rotated log file inside Config.LogDir.
const LogFileName = "debug.log"

// Config holds logging configuration.
type Config struct {
	// LogDir is the directory for log files (e.g. ~/.article-deck)
	LogDir string

	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string

	// Format is "json" (default) or "text"
	Format string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// RecentBytes bounds the in-memory records kept for dumps (default: 1MB)
	RecentBytes int

	// DumpComponents limits DumpRecent to these components; empty dumps all
	DumpComponents []string

	// SummaryIntervalSecs is how long an input summary window stays open (default: 30)
	SummaryIntervalSecs int

	// PprofEnabled starts pprof server on localhost:6060
	PprofEnabled bool

	// Debug turns logging on even without an explicit LogDir request
	Debug bool
}

var (
	globalLogger *slog.Logger
	globalRecent *RecentLog
	globalSum    *Summarizer
	dumpComps    []string
	globalMu     sync.RWMutex
	rotator      *lumberjack.Logger
)

func (c *Config) applyDefaults() {
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 10
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 3
	}
	if c.MaxAgeDays <= 0 {
		c.MaxAgeDays = 7
	}
	if c.RecentBytes <= 0 {
		c.RecentBytes = 1024 * 1024
	}
	if c.SummaryIntervalSecs <= 0 {
		c.SummaryIntervalSecs = 30
	}
}

// ParseLevel maps a config level name to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Init initializes the global logging system.
// Logs are discarded unless Debug is set; the TUI owns the terminal, so
// nothing is ever written to stdout or stderr.
func Init(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	cfg.applyDefaults()
	interval := time.Duration(cfg.SummaryIntervalSecs) * time.Second
	dumpComps = cfg.DumpComponents

	if !cfg.Debug || cfg.LogDir == "" {
		globalLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		globalRecent = nil
		globalSum = NewSummarizer(nil, interval)
		return
	}

	rotator = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, LogFileName),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	globalRecent = NewRecentLog(cfg.RecentBytes)

	out := io.MultiWriter(rotator, globalRecent)
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	globalLogger = slog.New(handler)

	globalSum = NewSummarizer(globalLogger, interval)

	if cfg.PprofEnabled {
		startPprof()
	}
}

// Logger returns the global logger. Safe to call before Init.
func Logger() *slog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return globalLogger
}

// ForComponent returns a sub-logger with the component field set.
// The returned logger resolves the global handler at log time, so package
// level vars created before Init still reach the real output.
func ForComponent(name string) *slog.Logger {
	return slog.New(&dynamicHandler{component: name})
}

type dynamicHandler struct {
	component string
	attrs     []slog.Attr
	group     string
}

func (h *dynamicHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return Logger().Handler().Enabled(ctx, level)
}

func (h *dynamicHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := Logger().Handler().WithAttrs([]slog.Attr{slog.String("component", h.component)})
	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	if h.group != "" {
		handler = handler.WithGroup(h.group)
	}
	return handler.Handle(ctx, r)
}

func (h *dynamicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &dynamicHandler{component: h.component, attrs: merged, group: h.group}
}

func (h *dynamicHandler) WithGroup(name string) slog.Handler {
	return &dynamicHandler{component: h.component, attrs: h.attrs, group: name}
}

func summarizer() *Summarizer {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalSum
}

// CountEvent adds a high-frequency event (wheel tick, key repeat) to the
// current input summary instead of logging it on its own.
func CountEvent(component, event string, fields ...slog.Attr) {
	if s := summarizer(); s != nil {
		s.Count(component, event, fields...)
	}
}

// TrackPointer adds a pointer event at (x, y) to the current input summary.
func TrackPointer(component, event string, x, y int) {
	if s := summarizer(); s != nil {
		s.Point(component, event, x, y)
	}
}

// DumpRecent writes the records held in memory to path, limited to
// Config.DumpComponents. It writes nothing while file logging is off.
func DumpRecent(path string) error {
	globalMu.RLock()
	recent, comps := globalRecent, dumpComps
	globalMu.RUnlock()
	if recent == nil {
		return nil
	}
	return recent.Dump(path, comps...)
}

// Shutdown flushes the aggregator and closes writers.
func Shutdown() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalSum != nil {
		globalSum.Stop()
		globalSum = nil
	}
	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
	globalLogger = nil
	globalRecent = nil
	dumpComps = nil
}
