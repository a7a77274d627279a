package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/exitcode"
	"github.com/csrwng/infra/internal/output"
)

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON Schema",
	Long: `Print the JSON Schema the configuration record is validated against.

Examples:
  infra config schema                      # print schema to stdout
  infra config schema --output schema.json # write to file`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

var configSchemaOutput string

func init() {
	configSchemaCmd.Flags().StringVarP(&configSchemaOutput, "output", "o", "", "write schema to file instead of stdout")

	configCmd.AddCommand(configSchemaCmd)
}

func runConfigSchema(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	data := config.GetSchema()
	if len(data) == 0 {
		return exitcode.Wrap(exitcode.Config, fmt.Errorf("no embedded schema available"))
	}

	if configSchemaOutput != "" {
		if err := os.MkdirAll(filepath.Dir(configSchemaOutput), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(configSchemaOutput, data, 0o644); err != nil {
			return err
		}
		output.Success(fmt.Sprintf("Schema written to %s", configSchemaOutput))
		return nil
	}

	fmt.Println(string(data))
	return nil
}
