// Package cli is the command tree of the inventory binary. Each command is
// a thin caller of the item store; output goes through the ui package.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/inventory/internal/config"
	"github.com/idilsaglam/inventory/internal/logging"
	"github.com/idilsaglam/inventory/internal/store/sqlitestore"
	"github.com/idilsaglam/inventory/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command annotations.
const (
	noStore     = "nostore"     // runs without opening the database
	interactive = "interactive" // owns the terminal while it runs
)

// usageError is a mistake on the command line rather than a failure of
// the store. It maps to ExitUsage.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

type app struct {
	// flags
	cfgPath string
	dbPath  string
	verbose bool

	cfg   *config.Config
	log   *zap.Logger
	store *sqlitestore.Store
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	a := &app{log: zap.NewNop()}
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(ui.Out)
	root.SetErr(ui.Err)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	return report(err)
}

func report(err error) int {
	ui.Fail(err.Error())
	var ue usageError
	switch {
	case errors.As(err, &ue):
		ui.Hint("Hint: run `inventory --help` for usage")
		return ExitUsage
	case errors.Is(err, sqlitestore.ErrNotFound):
		ui.Hint("Hint: run `inventory ls` to see valid ids")
		return ExitUsage
	}
	return ExitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inventory",
		Short: "Track items, quantities and prices in a local SQLite file",
		Long: `inventory keeps a single table of items (name, category, quantity, price)
in a local SQLite database.

Run without arguments to open the interactive view.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q", args[0])
			}
			return nil
		},
		Annotations:       map[string]string{interactive: ""},
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.RunInteractive(cmd.Context(), a.store)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default ~/.inventory/config.yaml)")
	pf.StringVar(&a.dbPath, "db", "", "database file (overrides database.path)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		a.lsCmd(),
		a.showCmd(),
		a.addCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.searchCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.summaryCmd(),
		a.tuiCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads the configuration, builds the logger, applies the theme and
// opens the store unless the command is marked noStore.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			a.cfgPath = p
		}
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.log = logger
	if _, ok := cmd.Annotations[interactive]; ok && cfg.Logging.File == "" {
		// stderr sits under the alt screen; logging.file keeps the log
		_ = logger.Sync()
		a.log = zap.NewNop()
	}

	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(cfg.UI.Theme)

	a.log.Debug("command",
		zap.String("name", cmd.Name()),
		zap.String("config", a.cfgPath),
		zap.String("db", cfg.Database.Path))

	if _, skip := cmd.Annotations[noStore]; skip || cmd.Name() == "help" {
		return nil
	}
	s, err := sqlitestore.Open(cfg.Database.Path, sqlitestore.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.store = s
	return nil
}

// close releases the store and flushes the logger. It runs after the
// command whether or not it failed, which PersistentPostRun does not.
func (a *app) close() {
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
		a.store = nil
	}
	_ = a.log.Sync()
}

// exactArgs is cobra.ExactArgs reporting as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
