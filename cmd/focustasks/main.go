package main

import (
	"os"
	"strings"

	"github.com/idilsaglam/focustasks/internal/cli"
	"github.com/idilsaglam/focustasks/internal/ui"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}
	userDir, _ := os.UserConfigDir()

	// Root flags and the subcommand are parsed by the CLI runner.
	code := cli.Run(os.Args[1:], cli.Options{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Env:           env,
		UserConfigDir: userDir,
		Interactive:   ui.IsTTY(os.Stdin) && ui.IsTTY(os.Stdout),
	})
	os.Exit(code)
}
