// Package cmd implements the devkit command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/devkit/internal/app"
	"github.com/MrSnakeDoc/devkit/internal/config"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
)

// cli holds the state shared by every command of one invocation.
type cli struct {
	envFile    string
	store      string
	sqlitePath string
	verbose    bool
	jsonOutput bool

	cfg *config.Config
	app *app.App
}

func (c *cli) toolkit() *toolkit.Toolkit { return c.app.Toolkit() }

// NewRootCmd builds the full command tree. Run it with Execute, which
// also closes the store.
func NewRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *cli) {
	c := &cli{}

	root := &cobra.Command{
		Use:   "devkit",
		Short: "devkit - snippets, command bookmarks, notes and clipboard history",
		Long: `devkit keeps four small collections for day-to-day development:

  snippet   titled pieces of code
  bookmark  labelled terminal commands
  note      free-form notes
  clip      clipboard history (newest first, no duplicates)

Data lives in SQLite by default; see DEVKIT_STORE for memory and Redis.`,
		PersistentPreRunE: c.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.envFile, "env-file", config.DefaultEnvFile, "environment file to load")
	flags.StringVar(&c.store, "store", "", "store backend: memory, sqlite or redis (overrides DEVKIT_STORE)")
	flags.StringVar(&c.sqlitePath, "sqlite-path", "", "SQLite database file (overrides DEVKIT_SQLITE_PATH)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")
	flags.BoolVar(&c.jsonOutput, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newServeCmd(c),
		newSnippetCmd(c),
		newBookmarkCmd(c),
		newNoteCmd(c),
		newClipCmd(c),
		newExportCmd(c),
		newImportCmd(c),
		newVersionCmd(),
	)
	return root, c
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root, c := newRoot()
	err := c.execute(ctx, root)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c.envFile)
	if err != nil {
		return err
	}

	if c.store != "" {
		cfg.StoreBackend = c.store
	}
	if c.sqlitePath != "" {
		cfg.SQLitePath = c.sqlitePath
	}
	// Keep the terminal quiet unless asked; the server logs at the
	// configured level.
	switch {
	case c.verbose:
		cfg.LogLevel = "debug"
	case cmd.Name() != "serve":
		cfg.LogLevel = "warn"
	}

	c.cfg = cfg
	c.app, err = app.New(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return nil
}

// execute runs root and then closes the app. Cobra skips post-run hooks
// when a command fails, so closing happens here.
func (c *cli) execute(ctx context.Context, root *cobra.Command) error {
	defer func() {
		if c.app != nil {
			c.app.Close()
		}
	}()
	return root.ExecuteContext(ctx)
}

// loadConfig turns configuration panics into errors.
func loadConfig(envFile string) (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid configuration: %v", r)
		}
	}()
	return config.Load(envFile), nil
}
