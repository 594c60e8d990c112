package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/uflab/internal/unionfind"
	"github.com/spf13/cobra"
)

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the union-find variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			if jsonOut {
				type variantJSON struct {
					Name        unionfind.Variant `json:"name"`
					Description string            `json:"description"`
				}
				var list []variantJSON
				for _, v := range unionfind.Variants() {
					list = append(list, variantJSON{Name: v, Description: v.Description()})
				}
				return json.NewEncoder(out).Encode(list)
			}

			for _, v := range unionfind.Variants() {
				fmt.Fprintf(out, "  %-16s %s\n", v, v.Description())
			}
			return nil
		},
	}
}
