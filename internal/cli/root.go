// Package cli implements the uzdb command line: an interactive shell plus
// one-shot exec, tables and demo commands, all on top of engine.DBEngine.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/config"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/engine"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/logging"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage/filestore"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage/memstore"
)

// app is the state shared by all commands of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	log    *slog.Logger
	closer io.Closer
	eng    *engine.DBEngine
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	defer a.close()

	rootCmd := newRootCmd(a)
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		return 1
	}
	return 0
}

// shownError marks an error that was already printed with the query output.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

// reportError prints err unless the user has already seen it.
func reportError(w io.Writer, err error) {
	var shown *shownError
	if errors.As(err, &shown) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func newRootCmd(a *app) *cobra.Command {
	var (
		configPath string
		dataDir    string
		logLevel   string
		memory     bool
	)

	rootCmd := &cobra.Command{
		Use:   "uzdb",
		Short: "UZDB, a small relational database with an Uzbek query language",
		Long: "UZDB stores tables as 4KB slotted pages and answers queries written\n" +
			"with Uzbek (TANLASH, QO'SH, ...) or English (SELECT, INSERT, ...) keywords.\n" +
			"Run without a subcommand to start the interactive shell.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Apply precedence: flag > env > file > default
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("memory") {
				cfg.Memory = memory
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "directory holding metadata.txt and table files")
	rootCmd.PersistentFlags().BoolVar(&memory, "memory", false, "keep everything in memory, nothing is written to disk")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	rootCmd.AddCommand(newShellCmd(a))
	rootCmd.AddCommand(newExecCmd(a))
	rootCmd.AddCommand(newTablesCmd(a))
	rootCmd.AddCommand(newDemoCmd(a))
	return rootCmd
}

// start builds the logger and the engine. A nil provider means the one
// selected by the config.
func (a *app) start(ctx context.Context, provider storage.Provider) error {
	if a.eng != nil {
		return nil
	}

	log, closer, err := logging.New(a.cfg.Logging(), a.errOut)
	if err != nil {
		return err
	}
	a.log, a.closer = log, closer

	if provider == nil {
		if a.cfg.Memory {
			provider = memstore.New()
		} else {
			fs, err := filestore.New(a.cfg.DataDir)
			if err != nil {
				return err
			}
			provider = fs
		}
	}

	eng := engine.New(provider, engine.WithLogger(log))
	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	a.eng = eng
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}
