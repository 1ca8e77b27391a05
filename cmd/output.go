package cmd

import (
	"encoding/json"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

// printer writes rendered text to the command's stdout, downsampling
// colours to what the terminal supports.
func printer(cmd *cobra.Command) func(string) {
	return func(s string) {
		lipgloss.Fprint(cmd.OutOrStdout(), s)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func addJSONFlag(c *cobra.Command) {
	c.Flags().Bool("json", false, "Print machine-readable JSON")
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
