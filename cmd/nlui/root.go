package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nlui/studio/internal/config"
	"github.com/nlui/studio/internal/observability"
	"github.com/nlui/studio/internal/storage"
	"github.com/nlui/studio/internal/uidoc"
)

const appName = "NLUI Studio"

// app carries state shared by every sub-command.
type app struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "nlui",
		Short:        "Generate and preview UI documents from natural-language prompts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (environment overrides it)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		a.serveCmd(),
		a.statusCmd(),
		a.generateCmd(),
		a.validateCmd(),
		a.renderCmd(),
		a.exportCmd(),
		a.templatesCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nlui %s\n", version)
		},
	}
}

func (a *app) loadConfig() (config.Config, error) {
	return config.Load(a.configPath)
}

// logger writes JSON logs to stderr when verbose, and discards otherwise.
func (a *app) logger(cmd *cobra.Command, component string) *observability.Logger {
	if !a.verbose {
		return observability.Nop()
	}
	return observability.NewLogger(component, cmd.ErrOrStderr())
}

// openStore opens the SQLite database under the data directory.
func openStore(cfg config.Config) (*storage.SQLiteStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := storage.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	return db, nil
}

// readDocument parses a document file ("-" reads stdin) and assigns ids.
func readDocument(cmd *cobra.Command, path string) (*uidoc.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := uidoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return uidoc.AssignIDs(doc), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
