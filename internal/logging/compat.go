package logging

import (
	"bytes"
	"log/slog"
	"strings"
)

// BridgeWriter routes stdlib log output (from bubbletea and other libraries)
// into slog. A leading "[category] " prefix becomes the component field.
type BridgeWriter struct {
	logger    *slog.Logger
	component string
}

// NewBridgeWriter creates a writer that forwards writes to slog.
// defaultComponent is used when no prefix is found.
func NewBridgeWriter(defaultComponent string) *BridgeWriter {
	return &BridgeWriter{
		logger:    Logger(),
		component: defaultComponent,
	}
}

// Write implements io.Writer. Each write is treated as one log line.
func (bw *BridgeWriter) Write(p []byte) (int, error) {
	n := len(p)
	msg := string(bytes.TrimSpace(p))
	if msg == "" {
		return n, nil
	}

	msg = stripLogTimestamp(msg)

	component := bw.component
	if strings.HasPrefix(msg, "[") {
		if idx := strings.Index(msg, "] "); idx > 0 {
			component = canonicalComponent(strings.ToLower(msg[1:idx]))
			msg = msg[idx+2:]
		}
	}

	bw.logger.Info(msg, slog.String("component", component))
	return n, nil
}

// stripLogTimestamp removes the "HH:MM:SS " or "HH:MM:SS.ffffff " prefix the
// stdlib logger adds; slog stamps its own time.
func stripLogTimestamp(s string) string {
	if len(s) > 16 && s[2] == ':' && s[5] == ':' && s[8] == '.' && s[15] == ' ' {
		return s[16:]
	}
	if len(s) > 9 && s[2] == ':' && s[5] == ':' && s[8] == ' ' {
		return s[9:]
	}
	return s
}

func canonicalComponent(cat string) string {
	switch cat {
	case "ui", "view", "tea":
		return CompUI
	case "panel", "form":
		return CompPanel
	case "input", "mouse", "key":
		return CompInput
	case "config", "watcher":
		return CompConfig
	case "theme", "darkmode":
		return CompTheme
	case "perf":
		return CompPerf
	default:
		return cat
	}
}
