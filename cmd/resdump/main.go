// Command resdump lists and extracts resources from Windows modules.
//
//	resdump -m shell32.dll types
//	resdump -m shell32.dll tree
//	resdump -m app.exe dump MANIFEST '#1' > app.manifest
//	resdump --fixture module.yaml strings --lang de-DE
//
// Modules given with -m are mapped by the Windows loader as resource-only
// data files. --fixture builds an in-memory module from YAML and works on
// every platform.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/enovales/winres"
	"github.com/enovales/winres/config"
	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/hostmodule"
	"github.com/enovales/winres/langpref"
	"github.com/enovales/winres/loader"
	"github.com/enovales/winres/memmodule"
	"github.com/enovales/winres/resdir"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	mod     winres.Module
	close   func() error
	prefs   langpref.Accessor
	cfgFile string
	modPath string
	fixture string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "resdump",
		Short:         "Inspect resources embedded in Windows modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.StringVarP(&a.modPath, "module", "m", "", "module file to open (Windows only)")
	pf.StringVar(&a.fixture, "fixture", "", "YAML fixture describing an in-memory module")
	pf.StringP("output", "o", config.OutputText, "output format: text, json or yaml")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")
	pf.String("log-format", config.LogConsole, "log format: console or json")
	pf.StringSlice("lang", nil, "preferred UI languages for fallback lookups, most preferred first")

	root.AddCommand(
		newTypesCmd(a),
		newNamesCmd(a),
		newLangsCmd(a),
		newTreeCmd(a),
		newDumpCmd(a),
		newStringsCmd(a),
		newPrefsCmd(a),
		newBrowseCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	a.log = log
	resdir.SetLogger(log.Named("resdir"))
	loader.SetLogger(log.Named("loader"))
	hostmodule.SetLogger(log.Named("hostmodule"))

	a.prefs = langpref.OSThread()
	return nil
}

func (a *app) teardown() error {
	var err error
	if a.close != nil {
		err = a.close()
		a.close = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return err
}

// module opens the module named on the command line once per invocation.
func (a *app) module() (winres.Module, error) {
	if a.mod != nil {
		return a.mod, nil
	}

	switch {
	case a.fixture != "" && a.modPath != "":
		return nil, errors.InvalidInput(errors.PhaseConfig, "--module and --fixture are mutually exclusive")

	case a.fixture != "":
		m, err := memmodule.LoadFixtureFile(a.fixture)
		if err != nil {
			return nil, err
		}
		a.mod = m
		a.close = func() error { m.Unload(); return nil }
		a.prefs = m.Defaults()
		a.log.Debug("fixture loaded", zap.String("path", a.fixture))

	case a.modPath != "":
		m, err := hostmodule.Open(a.modPath)
		if err != nil {
			return nil, err
		}
		a.mod = m
		a.close = m.Close

	default:
		return nil, errors.InvalidInput(errors.PhaseConfig, "one of --module or --fixture is required")
	}
	return a.mod, nil
}

// context carries the configured language list, if any, for fallback
// lookups.
func (a *app) context(ctx context.Context) context.Context {
	if len(a.cfg.Languages) == 0 {
		return ctx
	}
	return langpref.NewContext(ctx, a.cfg.Languages)
}

// withThread runs fn on a pinned OS thread so that thread-scoped language
// preferences stay on the same thread across calls.
func withThread(fn func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	return fn()
}
