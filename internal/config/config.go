package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "notion2md"

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// An explicit SetConfigFile upstream wins; these are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// A missing file is fine; one that exists but does not parse is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: NOTION2MD_* (highest among these sources)
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	v.Set("output.format", strings.ToLower(strings.TrimSpace(v.GetString("output.format"))))
	return nil
}

// defaultDataDir resolves $XDG_DATA_HOME/notion2md or ~/.local/share/notion2md.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration options, their defaults and meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; the archive lives at data_dir/archive.db"},

		{Key: "output.format", Default: "markdown", Comment: "Default output format: markdown, html, pretty or json"},
		{Key: "output.dir", Default: "", Comment: "Directory for converted files when several inputs are given"},
		{Key: "pretty.style", Default: "dracula", Comment: "Glamour style used by pretty output and preview"},
		{Key: "pretty.width", Default: 80, Comment: "Word wrap width for pretty output"},
		{Key: "archive.enabled", Default: true, Comment: "Record every conversion in the local archive"},
		{Key: "archive.page_size", Default: 50, Comment: "Default number of records shown by archive list"},
		{Key: "convert.workers", Default: 4, Comment: "Documents rendered concurrently when converting several inputs"},
		{Key: "log.level", Default: "", Comment: "Log level override (trace, debug, info, warn, error); empty follows -v"},
		{Key: "pager.enabled", Default: true, Comment: "Pipe preview output through a pager when attached to a terminal"},
		{Key: "pager.command", Default: "", Comment: "Pager command run through sh; empty uses $PAGER, then less -FRSX"},
	}
}

// ResolveArchivePath returns the sqlite archive file path under data_dir.
func ResolveArchivePath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "archive.db")
}
