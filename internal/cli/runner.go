package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/idilsaglam/focustasks/internal/config"
	"github.com/idilsaglam/focustasks/internal/export"
	"github.com/idilsaglam/focustasks/internal/logging"
	"github.com/idilsaglam/focustasks/internal/model"
	"github.com/idilsaglam/focustasks/internal/store"
	"github.com/idilsaglam/focustasks/internal/tui"
	"github.com/idilsaglam/focustasks/internal/ui"
)

// Options carries process context into Run.
type Options struct {
	Stdout, Stderr io.Writer
	Env            map[string]string
	WorkDir        string // defaults to os.Getwd
	UserConfigDir  string
	Interactive    bool // stdin and stdout are terminals; ls may start the board
}

type app struct {
	out, errOut io.Writer
	store       *store.TaskStore
	logger      *log.Logger
	interactive bool
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}

	gf, rest, err := parseGlobalFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			PrintHelp(opt.Stdout)
			return 0
		}
		ui.Fail(opt.Stderr, err.Error())
		PrintHelp(opt.Stderr)
		return 2
	}
	if len(rest) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := rest[0], rest[1:]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		PrintHelp(opt.Stdout)
		return 0
	}
	if !isCommand(cmd) {
		ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
		fmt.Fprintln(opt.Stderr)
		PrintHelp(opt.Stderr)
		return 2
	}

	workDir := opt.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			ui.Fail(opt.Stderr, "getwd: "+err.Error())
			return 1
		}
	}
	cfg, err := config.Load(config.LoadInput{
		WorkDir:    workDir,
		ConfigPath: gf.configPath,
		UserDir:    opt.UserConfigDir,
		Env:        opt.Env,
		Overrides:  gf.overrides(),
	})
	if err != nil {
		ui.Fail(opt.Stderr, "config: "+err.Error())
		return 1
	}

	ui.SetTheme(cfg.UI.Theme)
	ui.SetColorForcing(false, cfg.UI.NoColor)
	logger := logging.New(opt.Stderr, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Source != "" {
		logger.Debug("loaded config", "path", cfg.Source)
	}

	slot, closeSlot, err := openSlot(cfg)
	if err != nil {
		ui.Fail(opt.Stderr, "storage: "+err.Error())
		return 1
	}
	defer closeSlot()

	st, err := store.Open(slot, cfg.StorageKey, store.WithLogger(logger))
	if err != nil {
		ui.Fail(opt.Stderr, "load: "+err.Error())
		return 1
	}

	ap := &app{out: opt.Stdout, errOut: opt.Stderr, store: st, logger: logger, interactive: opt.Interactive}

	switch cmd {
	case "add":
		if len(a) == 0 {
			ui.Fail(ap.errOut, "usage: focustasks add <title...>")
			return 2
		}
		return ap.doAdd(strings.Join(a, " "))

	case "ls", "list":
		return ap.doList(a)

	case "done", "toggle":
		if len(a) != 1 {
			ui.Fail(ap.errOut, "usage: focustasks "+cmd+" <id|position>")
			return 2
		}
		return ap.doToggle(a[0])

	case "rm", "remove":
		if len(a) != 1 {
			ui.Fail(ap.errOut, "usage: focustasks rm <id|position>")
			return 2
		}
		return ap.doRemove(a[0])

	case "summary":
		fmt.Fprintln(ap.out, model.Summarize(st.List()).String())
		return 0

	case "export":
		return ap.doExport(a)
	}
	return 2
}

func isCommand(cmd string) bool {
	switch cmd {
	case "add", "ls", "list", "done", "toggle", "rm", "remove", "summary", "export":
		return true
	}
	return false
}

// PrintHelp writes the usage text to w.
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `focustasks - a tiny task tracker

Usage:
  focustasks [flags] <subcommand> [args]

Subcommands:
  add <title...>       Add a new task (title can be multiple words)
  ls [--plain]         Show Active and Done tasks (interactive on a terminal)
  done <id|position>   Toggle done/undone (position as shown by ls --plain)
  rm <id|position>     Remove a task
  summary              Print the completion summary
  export [--format f] [--out path]
                       Export tasks as %s

Flags:
%s
Examples:
  focustasks add "Write report"
  focustasks ls --plain
  focustasks done 1
  focustasks export --format pdf --out tasks.pdf
`, strings.Join(export.Formats, ", "), globalFlagSet(&globalFlags{}).FlagUsages())
}

// ---------------------------------------------------
// Subcommands
// ---------------------------------------------------

func (ap *app) doAdd(raw string) int {
	title, err := model.ValidateTitle(raw)
	if err != nil {
		ui.Fail(ap.errOut, ui.TitleMessage(err))
		return 2
	}
	task := model.NewTask(title)
	if _, err := ap.store.Add(task); err != nil {
		ui.Fail(ap.errOut, "save: "+err.Error())
		return 1
	}
	ui.OK(ap.out, "added "+task.ID)
	return 0
}

func (ap *app) doList(args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	plain := fs.Bool("plain", false, "print the board instead of starting the interactive view")
	if err := fs.Parse(args); err != nil || fs.NArg() > 0 {
		ui.Fail(ap.errOut, "usage: focustasks ls [--plain]")
		return 2
	}

	if ap.interactive && !*plain {
		if err := tui.Run(ap.store); err != nil {
			ui.Fail(ap.errOut, "tui: "+err.Error())
			return 1
		}
		return 0
	}
	ui.RenderBoard(ap.out, ap.store.List())
	return 0
}

func (ap *app) doToggle(ref string) int {
	id, ok := ap.resolve(ref)
	if !ok {
		return 2
	}
	tasks, err := ap.store.Toggle(id)
	if err != nil {
		ui.Fail(ap.errOut, "save: "+err.Error())
		return 1
	}
	for _, t := range tasks {
		if t.ID == id {
			state := "active"
			if t.Done {
				state = "done"
			}
			ui.OK(ap.out, fmt.Sprintf("%s is %s", ui.Sanitize(t.Title), state))
		}
	}
	return 0
}

func (ap *app) doRemove(ref string) int {
	id, ok := ap.resolve(ref)
	if !ok {
		return 2
	}
	task, _ := ap.store.Get(id)
	if _, err := ap.store.Remove(id); err != nil {
		ui.Fail(ap.errOut, "save: "+err.Error())
		return 1
	}
	ui.OK(ap.out, "removed "+ui.Sanitize(task.Title))
	return 0
}

func (ap *app) doExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.StringP("format", "f", "json", "one of "+strings.Join(export.Formats, ", "))
	outPath := fs.StringP("out", "o", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil || fs.NArg() > 0 {
		ui.Fail(ap.errOut, "usage: focustasks export [--format f] [--out path]")
		return 2
	}

	if *outPath == "" {
		if err := export.Write(ap.out, ap.store.List(), *format); err != nil {
			ui.Fail(ap.errOut, "export: "+err.Error())
			return 1
		}
		return 0
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, ap.store.List(), *format); err != nil {
		ui.Fail(ap.errOut, "export: "+err.Error())
		return 1
	}
	if err := os.WriteFile(*outPath, buf.Bytes(), 0o644); err != nil {
		ui.Fail(ap.errOut, "export: "+err.Error())
		return 1
	}
	ap.logger.Debug("exported tasks", "format", *format, "path", *outPath, "bytes", buf.Len())
	ui.OK(ap.out, "exported to "+*outPath)
	return 0
}

// resolve accepts a task id or a 1-based board position.
func (ap *app) resolve(ref string) (string, bool) {
	tasks := ap.store.List()
	if _, ok := ap.store.Get(ref); ok {
		return ref, true
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if id, ok := ui.PositionID(tasks, n); ok {
			return id, true
		}
		ui.Fail(ap.errOut, fmt.Sprintf("position out of range: have %d, got %d", len(tasks), n))
	} else {
		ui.Fail(ap.errOut, "no task with id "+ref)
	}
	ui.Hint(ap.errOut, "Hint: run `focustasks ls --plain` to see ids and positions")
	return "", false
}
