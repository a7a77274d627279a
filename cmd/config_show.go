package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/output"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configuration record",
	Long: `Show the configuration record with defaults applied. Secrets are
referenced by path and never printed.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	record, path, err := config.LoadDefault()
	if err != nil {
		return err
	}
	if path == "" {
		return &config.ConfigError{Field: "config", Reason: "no configuration record found; run 'infra config edit'"}
	}

	if jsonOutput {
		output.JSON(map[string]interface{}{"path": path, "config": record})
		return nil
	}

	fmt.Fprintf(os.Stderr, "# %s\n", path)
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
