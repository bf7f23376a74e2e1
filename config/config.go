// Package config loads gitref settings with koanf. Values are layered:
// defaults, then the YAML config file, then GITREF_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gitref/log"
	"gitref/model"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "GITREF_"

// Config holds the user settings.
type Config struct {
	// DataPath is the catalog to browse: a CSV file or a SQLite catalog.
	// Empty means the catalog bundled with the binary.
	DataPath string `koanf:"data_path"`

	// DefaultTier is the tier selected when the browser starts.
	DefaultTier string `koanf:"default_tier"`

	Log log.Config `koanf:"log"`
}

// Tier returns DefaultTier parsed.
func (c *Config) Tier() model.Tier {
	return model.ParseTier(c.DefaultTier)
}

// Dir returns the gitref configuration directory.
//
// Resolution:
//   - $GITREF_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/gitref if set
//   - %AppData%/gitref on Windows
//   - ~/.config/gitref elsewhere
func Dir() string {
	if dir := os.Getenv("GITREF_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitref")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gitref")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gitref")
}

// DefaultPath is the config file read when no explicit path is given.
func DefaultPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yml")
}

// Defaults returns the default value of every key.
func Defaults() map[string]any {
	lc := log.DefaultConfig(filepath.Join(Dir(), "logs"))
	return map[string]any{
		"data_path":     "",
		"default_tier":  model.TierEssential.String(),
		"log.enabled":   lc.Enabled,
		"log.dir":       lc.Dir,
		"log.max_size":  lc.MaxSize,
		"log.max_files": lc.MaxFiles,
		"log.max_age":   lc.MaxAge,
		"log.compress":  lc.Compress,
	}
}

// Load reads the configuration. An explicit path must exist; when path is
// empty the default config file is used if present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if err := loadFile(k, path); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.DataPath = expandHomePath(cfg.DataPath)
	cfg.Log.Dir = expandHomePath(cfg.Log.Dir)
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if path == "" {
		path = DefaultPath()
		if !fileExists(path) {
			return nil
		}
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// Validate checks values that cannot be fixed up silently.
func Validate(cfg *Config) error {
	if !model.KnownTier(cfg.DefaultTier) {
		return fmt.Errorf("default_tier: unknown tier %q", cfg.DefaultTier)
	}
	if cfg.Log.MaxSize < 0 || cfg.Log.MaxFiles < 0 || cfg.Log.MaxAge < 0 {
		return fmt.Errorf("log: max_size, max_files and max_age must not be negative")
	}
	return nil
}

// envTransform converts environment variable names to config keys
// Example: GITREF_LOG_MAX_SIZE -> log.max_size
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
