// Package config loads ~/.article-deck/config.toml and watches it for edits.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	dark "github.com/thiagokokada/dark-mode-go"
	"golang.org/x/sync/singleflight"
)

// FileName is the TOML config file inside Dir().
const FileName = "config.toml"

// DirEnv overrides the config directory (tests, portable installs).
const DirEnv = "ARTICLEDECK_DIR"

// Config is the user-facing configuration in TOML format.
type Config struct {
	// Theme sets the chrome color scheme: "dark" (default), "light", or "system"
	Theme string `toml:"theme"`

	// Color forces a terminal color profile: "truecolor", "256", "16", "none".
	// Empty means auto-detect.
	Color string `toml:"color"`

	Article ArticleSettings `toml:"article"`
	Logs    LogSettings     `toml:"logs"`
}

// ArticleSettings controls what the reader shows.
type ArticleSettings struct {
	// Path to a plain text article. Empty shows the built-in article.
	Path string `toml:"path"`

	// Mouse enables mouse tracking (click-outside dismissal, wheel scroll).
	// Pointer is used so that an absent key means "on".
	Mouse *bool `toml:"mouse"`
}

// GetMouse returns whether mouse support is enabled, defaulting to true.
func (a *ArticleSettings) GetMouse() bool {
	if a.Mouse == nil {
		return true
	}
	return *a.Mouse
}

// LogSettings maps onto logging.Config.
type LogSettings struct {
	// Debug writes logs to Dir()/debug.log even without ARTICLEDECK_DEBUG
	Debug bool `toml:"debug"`

	Level            string `toml:"level"`
	Format           string `toml:"format"`
	MaxSizeMB        int    `toml:"max_size_mb"`
	MaxBackups       int    `toml:"max_backups"`
	MaxAgeDays       int    `toml:"max_age_days"`
	Compress         bool   `toml:"compress"`
	RecentKB         int    `toml:"recent_kb"`
	SummaryIntervalS int    `toml:"summary_interval_s"`
	PprofEnabled     bool   `toml:"pprof_enabled"`

	// DumpComponents limits the SIGUSR1 dump, e.g. ["panel", "input"].
	// Empty dumps every component.
	DumpComponents []string `toml:"dump_components"`
}

var defaultConfig = Config{
	Theme: "dark",
	Logs: LogSettings{
		Level:  "info",
		Format: "json",
	},
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

var (
	cache   *Config
	cacheMu sync.RWMutex
	reloads singleflight.Group
)

// Dir returns the directory holding config and logs (~/.article-deck).
func Dir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".article-deck"), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load returns the cached config, reading the file on first use.
// A missing file yields defaults. A parse error yields defaults and the
// error, and the defaults stay cached so the file is not re-parsed every call.
func Load() (*Config, error) {
	cacheMu.RLock()
	if cache != nil {
		defer cacheMu.RUnlock()
		return cache, nil
	}
	cacheMu.RUnlock()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cache != nil {
		return cache, nil
	}

	cfg, err := readFile()
	cache = cfg
	return cache, err
}

// Reload drops the cache and reads the file again. Concurrent callers (the
// file watcher firing twice, the theme watcher) share a single read.
func Reload() (*Config, error) {
	v, err, _ := reloads.Do("config", func() (any, error) {
		ClearCache()
		return Load()
	})
	cfg, _ := v.(*Config)
	if cfg == nil {
		cfg = Default()
	}
	return cfg, err
}

// ClearCache forgets the cached config; the next Load reads from disk.
func ClearCache() {
	cacheMu.Lock()
	cache = nil
	cacheMu.Unlock()
}

func readFile() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return Default(), fmt.Errorf("config.toml parse error: %w", err)
	}
	return cfg, nil
}

// GetTheme returns the configured theme, defaulting to "dark".
func (c *Config) GetTheme() string {
	switch c.Theme {
	case "dark", "light", "system":
		return c.Theme
	}
	return "dark"
}

// ResolveTheme turns the configured theme into "dark" or "light",
// asking the OS when the theme is "system".
func (c *Config) ResolveTheme() string {
	theme := c.GetTheme()
	if theme != "system" {
		return theme
	}
	isDark, err := dark.IsDarkMode()
	if err != nil || isDark {
		return "dark"
	}
	return "light"
}

const exampleHeader = `# article-deck configuration
# theme: "dark", "light" or "system"
# color: "truecolor", "256", "16", "none" (empty = auto)
# [article] path: plain text file to read, mouse: click-outside and wheel support
# [logs] debug = true writes debug.log next to this file

`

// WriteExample writes the default config to Path() unless a file exists.
// The write is atomic: temp file, fsync, rename.
func WriteExample() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(exampleHeader)
	cfg := Default()
	mouse := true
	cfg.Article.Mouse = &mouse
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	_ = syncFile(tmpPath) // best effort; the rename still lands the content
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize config: %w", err)
	}

	ClearCache()
	return path, nil
}

func syncFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
