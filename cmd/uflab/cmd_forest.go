package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/uflab/internal/constants"
	"github.com/nvandessel/uflab/internal/simulation"
	"github.com/nvandessel/uflab/internal/unionfind"
	"github.com/nvandessel/uflab/internal/visualization"
	"github.com/spf13/cobra"
)

func newForestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forest",
		Short: "Render the union-find forest after random unions",
		Long: `Draw random pairs on a small set of sites until --unions merges have
been made, then output the engine's forest in DOT (Graphviz) or JSON format.

Examples:
  uflab forest --sites 32 --unions 20 | dot -Tsvg > forest.svg
  uflab forest --variant quick-union --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			format, _ := cmd.Flags().GetString("format")
			sites, _ := cmd.Flags().GetInt("sites")
			unions, _ := cmd.Flags().GetInt("unions")
			name, _ := cmd.Flags().GetString("variant")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if name == "" {
				name = cfg.Experiment.Variant
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger := newLogger(cmd, cfg)

			variant, err := unionfind.ParseVariant(name)
			if err != nil {
				return err
			}
			if unions < 0 {
				return fmt.Errorf("--unions must not be negative, got %d", unions)
			}
			engine, err := unionfind.New(variant, sites)
			if err != nil {
				return err
			}
			forest, ok := engine.(unionfind.Forest)
			if !ok {
				return fmt.Errorf("variant %s does not expose its forest", variant)
			}
			if _, err := simulation.Grow(engine, unions, logger); err != nil {
				return fmt.Errorf("forest failed: %w", err)
			}

			if jsonOut {
				format = string(visualization.FormatJSON)
			}
			switch visualization.Format(format) {
			case visualization.FormatDOT:
				out, err := visualization.RenderDOT(string(variant), forest)
				if err != nil {
					return fmt.Errorf("render DOT: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			case visualization.FormatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(visualization.RenderJSON(forest)); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
			default:
				return fmt.Errorf("unsupported format %q (use 'dot' or 'json')", format)
			}
			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format: dot or json")
	cmd.Flags().Int("sites", constants.DefaultForestSites, "Number of sites")
	cmd.Flags().Int("unions", constants.DefaultForestUnions, "Number of merges before rendering")
	cmd.Flags().String("variant", "", "Union-find variant (default from config)")

	return cmd
}
