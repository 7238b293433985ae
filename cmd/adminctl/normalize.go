package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Deactivate extra active About records so exactly one stays active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flipped, err := application.About.Normalize(cmd.Context())
		if err != nil {
			return fmt.Errorf("normalizing about records: %w", err)
		}
		if jsonOutput {
			printJSON(cmd.OutOrStdout(), map[string]interface{}{"deactivated": flipped})
			return nil
		}
		if len(flipped) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "About records already consistent.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %d About record(s):\n", len(flipped))
		for _, k := range flipped {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", k)
		}
		return nil
	},
}
