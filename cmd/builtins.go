package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/minish/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the shell's builtins
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, builtin := range commands.Builtins() {
			fmt.Fprintf(w, "%s\t%s\n", builtin, builtin.Short())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
