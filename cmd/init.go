package cmd

import (
	"github.com/josephlewis42/minish/core/config"
	"github.com/spf13/cobra"
)

// initCmd intializes the shell configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the shell configuration in the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		_, err := config.Initialize(cfgPath, diagnosticLogger(cmd))
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
