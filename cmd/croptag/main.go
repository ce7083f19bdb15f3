package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/croptag/internal/config"
	"github.com/example/croptag/internal/notify"
	"github.com/example/croptag/internal/theme"
)

var (
	version              = "dev"
	commit               = ""
	date                 = ""
	settingsPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	settings    *config.Settings
	notifier    *notify.Notifier
	saveAlerts  bool
	batchAlerts bool
	copyAlerts  bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		settings:    r.settings,
		notifier:    r.notifier,
		saveAlerts:  r.saveAlerts,
		batchAlerts: r.batchAlerts,
		copyAlerts:  r.copyAlerts,
		themeName:   r.themeName,
		activeTheme: r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, settingsPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load settings: %v\n", err)
		cfg = config.Default()
	}

	r := &root{
		fs:       flag.NewFlagSet("croptag", flag.ExitOnError),
		program:  "croptag",
		notifier: notify.New(prefs),
		settings: cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a crop")
	r.fs.BoolVar(&r.batchAlerts, "notify-batch", cfg.Notify.Batch, "show a desktop notification when a batch run finishes")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying a caption")

	// Precedence: CLI > Env > Settings > Default. The flag default stays
	// empty so the fallback chain in Run can tell whether it was set.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventBatch, r.batchAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}

	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("CROPTAG_THEME")
	}
	if themeName == "" {
		themeName = r.settings.Theme
	}
	t, err := theme.Load(themeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using default\n", err)
		t = theme.Default()
	}
	r.activeTheme = t

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "review":
		cmd, err = parseReviewCmd(subArgs, r)
	case "batch":
		cmd, err = parseBatchCmd(subArgs, r)
	case "list":
		cmd, err = parseListCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd, err = &versionCmd{r: r}, nil
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
