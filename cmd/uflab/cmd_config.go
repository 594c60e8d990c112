package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nvandessel/uflab/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show uflab configuration",
		Long: `View the effective uflab configuration.

Configuration is read from ~/.uflab/config.yaml (or --config) and
overridden by UFLAB_* environment variables.

Examples:
  uflab config list                    # Show all settings
  uflab config list --yaml             # Print as a config file
  uflab config get benchmark.runs      # Get a specific setting`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			yamlOut, _ := cmd.Flags().GetBool("yaml")
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			switch {
			case jsonOut:
				return json.NewEncoder(out).Encode(cfg)
			case yamlOut:
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			source := config.DefaultPath()
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				source = path
			}
			fmt.Fprintf(out, "Configuration (%s):\n", valueOrDefault(source, "defaults"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Experiment Settings:")
			for _, key := range []string{"experiment.variant", "experiment.start", "experiment.growth", "experiment.steps"} {
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "  %-20s %v\n", key+":", value)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Benchmark Settings:")
			for _, key := range []string{"benchmark.variants", "benchmark.start", "benchmark.growth", "benchmark.steps", "benchmark.runs"} {
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "  %-20s %v\n", key+":", value)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Logging Settings:")
			fmt.Fprintf(out, "  %-20s %s\n", "logging.level:", valueOrDefault(cfg.Logging.Level, "(default)"))
			return nil
		},
	}

	cmd.Flags().Bool("yaml", false, "Output as a YAML config file")

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(out, "%s = %v\n", key, value)
			return nil
		},
	}
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.UFLabConfig, key string) (interface{}, bool) {
	switch key {
	case "experiment.variant":
		return cfg.Experiment.Variant, true
	case "experiment.start":
		return cfg.Experiment.Start, true
	case "experiment.growth":
		return cfg.Experiment.Growth, true
	case "experiment.steps":
		return cfg.Experiment.Steps, true
	case "benchmark.variants":
		return strings.Join(cfg.Benchmark.Variants, ","), true
	case "benchmark.start":
		return cfg.Benchmark.Start, true
	case "benchmark.growth":
		return cfg.Benchmark.Growth, true
	case "benchmark.steps":
		return cfg.Benchmark.Steps, true
	case "benchmark.runs":
		return cfg.Benchmark.Runs, true
	case "logging.level":
		return cfg.Logging.Level, true
	default:
		return nil, false
	}
}

// valueOrDefault returns the value if non-empty, otherwise the default.
func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
