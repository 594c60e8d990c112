package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nvandessel/uflab/internal/config"
	"github.com/nvandessel/uflab/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uflab",
		Short: "Union-find laboratory",
		Long: `uflab runs union-find experiments.

It counts the random pairs needed to connect N sites, times the
weighted union-find variants against each other, and renders the
resulting forests. Numeric series are printed for external plotting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.uflab/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newCountCmd(),
		newBenchCmd(),
		newForestCmd(),
		newVariantsCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// loadConfig loads the configuration named by --config (or the default
// location) and applies --log-level. The result is not validated so that
// callers can apply their own flags first.
func loadConfig(cmd *cobra.Command) (*config.UFLabConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// newLogger builds the operational logger. Logs go to stderr so stdout
// carries only the report.
func newLogger(cmd *cobra.Command, cfg *config.UFLabConfig) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

// overrideInt copies an int flag into target when the user set it explicitly.
func overrideInt(cmd *cobra.Command, name string, target *int) {
	if cmd.Flags().Changed(name) {
		*target, _ = cmd.Flags().GetInt(name)
	}
}
