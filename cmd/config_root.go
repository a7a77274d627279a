package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration record",
	Long: `Inspect and edit the configuration record that every command starts
from. The record lives at $XDG_CONFIG_HOME/infra/config.yaml (a legacy
JSON record at the same location is still read).

Examples:
  infra config show
  infra config edit
  infra config validate
  infra config schema --output schema.json`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
