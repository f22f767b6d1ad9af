// Package config resolves runtime settings from defaults, a config file,
// the environment and command-line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/focustasks/internal/kv"
	"github.com/idilsaglam/focustasks/internal/logging"
	"github.com/idilsaglam/focustasks/internal/store"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config holds all settings.
type Config struct {
	StorageKey string  `toml:"storage_key" json:"storage_key"`
	Storage    Storage `toml:"storage" json:"storage"`
	Log        Log     `toml:"log" json:"log"`
	UI         UI      `toml:"ui" json:"ui"`

	// Source is the config file that was loaded, empty if none.
	Source string `toml:"-" json:"-"`
}

type Storage struct {
	Backend string `toml:"backend" json:"backend"`
	Dir     string `toml:"dir" json:"dir"`
	DSN     string `toml:"dsn" json:"dsn"`
	Table   string `toml:"table" json:"table"`
}

type Log struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
}

type UI struct {
	Theme   string `toml:"theme" json:"theme"`
	NoColor bool   `toml:"no_color" json:"no_color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StorageKey: store.DefaultKey,
		Storage: Storage{
			Backend: BackendFile,
			Dir:     ".focustasks",
			Table:   "kv_slots",
		},
		Log: Log{Level: "warn", Format: "text"},
		UI:  UI{Theme: "classic"},
	}
}

// Overrides carries command-line values; empty fields are ignored.
type Overrides struct {
	StorageKey string
	Backend    string
	Dir        string
	LogLevel   string
	Theme      string
	NoColor    bool
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDir    string            // base for relative paths; required
	ConfigPath string            // explicit --config value
	UserDir    string            // user config dir; empty skips the user file
	Env        map[string]string // environment snapshot
	Overrides  Overrides
}

// Load applies, in order: defaults, one config file, environment, overrides.
func Load(in LoadInput) (Config, error) {
	if in.WorkDir == "" {
		return Config{}, errors.New("config: empty work dir")
	}
	cfg := Default()

	path := in.ConfigPath
	if path == "" {
		path = in.Env["FOCUSTASKS_CONFIG"]
	}
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(in.WorkDir, path)
		}
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
		cfg.Source = path
	} else if found := findConfigFile(in.WorkDir, in.UserDir); found != "" {
		if err := loadFile(&cfg, found); err != nil {
			return Config{}, err
		}
		cfg.Source = found
	}

	applyEnv(&cfg, in.Env)
	applyOverrides(&cfg, in.Overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Storage.Backend == BackendFile && !filepath.IsAbs(cfg.Storage.Dir) {
		cfg.Storage.Dir = filepath.Join(in.WorkDir, cfg.Storage.Dir)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, env map[string]string) {
	set := func(dst *string, name string) {
		if v := strings.TrimSpace(env[name]); v != "" {
			*dst = v
		}
	}
	set(&cfg.StorageKey, "FOCUSTASKS_KEY")
	set(&cfg.Storage.Backend, "FOCUSTASKS_BACKEND")
	set(&cfg.Storage.Dir, "FOCUSTASKS_DIR")
	set(&cfg.Storage.DSN, "FOCUSTASKS_DSN")
	set(&cfg.Log.Level, "FOCUSTASKS_LOG_LEVEL")
	set(&cfg.UI.Theme, "FOCUSTASKS_THEME")
	// https://no-color.org: any non-empty value disables colour
	if env["NO_COLOR"] != "" {
		cfg.UI.NoColor = true
	}
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.StorageKey != "" {
		cfg.StorageKey = o.StorageKey
	}
	if o.Backend != "" {
		cfg.Storage.Backend = o.Backend
	}
	if o.Dir != "" {
		cfg.Storage.Dir = o.Dir
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Theme != "" {
		cfg.UI.Theme = o.Theme
	}
	if o.NoColor {
		cfg.UI.NoColor = true
	}
}

// Validate checks field combinations after all layers are applied.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if err := kv.ValidateKey(c.StorageKey); err != nil {
		return fmt.Errorf("storage_key: %w", err)
	}
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Dir == "" {
			return errors.New("storage.dir is required for the file backend")
		}
	case BackendMySQL:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the mysql backend (or set FOCUSTASKS_DSN)")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage.backend %q (want file, mysql or memory)", c.Storage.Backend)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}
