package cli

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/idilsaglam/focustasks/internal/config"
)

// Root flags apply to every subcommand and must come before it.
type globalFlags struct {
	configPath string
	dir        string
	key        string
	backend    string
	theme      string
	logLevel   string
	noColor    bool
	ephemeral  bool
}

func globalFlagSet(gf *globalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("focustasks", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	fs.StringVarP(&gf.configPath, "config", "c", "", "config file (toml, or json with comments)")
	fs.StringVar(&gf.dir, "dir", "", "data directory for the file backend")
	fs.StringVar(&gf.key, "key", "", "storage key")
	fs.StringVar(&gf.backend, "backend", "", "storage backend: file, mysql or memory")
	fs.StringVar(&gf.theme, "theme", "", "colour theme: classic, neon or mono")
	fs.StringVar(&gf.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&gf.noColor, "no-color", false, "disable colour output")
	fs.BoolVar(&gf.ephemeral, "ephemeral", false, "keep tasks in memory only (nothing is written)")
	return fs
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var gf globalFlags
	fs := globalFlagSet(&gf)
	if err := fs.Parse(args); err != nil {
		return gf, nil, err
	}
	return gf, fs.Args(), nil
}

func (gf globalFlags) overrides() config.Overrides {
	o := config.Overrides{
		StorageKey: gf.key,
		Backend:    gf.backend,
		Dir:        gf.dir,
		LogLevel:   gf.logLevel,
		Theme:      gf.theme,
		NoColor:    gf.noColor,
	}
	if gf.ephemeral {
		o.Backend = config.BackendMemory
	}
	return o
}
