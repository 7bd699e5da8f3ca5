package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// initDebug starts logging into a temp dir and returns the log file path.
func initDebug(t *testing.T, cfg Config) string {
	t.Helper()
	Shutdown()
	cfg.Debug = true
	if cfg.LogDir == "" {
		cfg.LogDir = t.TempDir()
	}
	Init(cfg)
	t.Cleanup(Shutdown)
	return filepath.Join(cfg.LogDir, LogFileName)
}

// readRecords parses a JSONL file, skipping lines that are not JSON.
func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]any
	start := 0
	for i, b := range data {
		if b != '\n' {
			continue
		}
		var r map[string]any
		if err := json.Unmarshal(data[start:i], &r); err == nil {
			records = append(records, r)
		}
		start = i + 1
	}
	return records
}

func findMsg(records []map[string]any, msg string) map[string]any {
	for _, r := range records {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}
