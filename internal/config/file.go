package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
)

// Project config names searched in the work dir, first match wins.
var projectFileNames = []string{"focustasks.toml", ".focustasks.toml", ".focustasks.json"}

// findConfigFile returns the first existing project file, then the user
// file, or "" when there is none.
func findConfigFile(workDir, userDir string) string {
	for _, name := range projectFileNames {
		p := filepath.Join(workDir, name)
		if fileExists(p) {
			return p
		}
	}
	if userDir != "" {
		p := filepath.Join(userDir, "focustasks", "config.toml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// loadFile decodes p over cfg. Fields missing from the file keep their
// current values. .json files may contain comments and trailing commas.
func loadFile(cfg *Config, p string) error {
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", p)
		}
		return fmt.Errorf("read config %s: %w", p, err)
	}

	switch strings.ToLower(filepath.Ext(p)) {
	case ".json", ".jsonc":
		std, err := hujson.Standardize(b)
		if err != nil {
			return fmt.Errorf("parse config %s: %w", p, err)
		}
		dec := json.NewDecoder(strings.NewReader(string(std)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", p, err)
		}
	default:
		md, err := toml.Decode(string(b), cfg)
		if err != nil {
			return fmt.Errorf("parse config %s: %w", p, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse config %s: unknown key %q", p, undecoded[0].String())
		}
	}
	return nil
}
