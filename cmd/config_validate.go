package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/exitcode"
	"github.com/csrwng/infra/internal/output"
)

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file against the JSON Schema",
	Long: `Validate a configuration file against the embedded JSON Schema.
Without an argument the persisted record is validated.

Examples:
  infra config validate
  infra config validate ./config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigValidate,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		_, recordPath, err := config.LoadDefault()
		if err != nil {
			return err
		}
		if recordPath == "" {
			return &config.ConfigError{Field: "config", Reason: "no configuration record found; run 'infra config edit'"}
		}
		path = recordPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := config.ValidateYAML(data)
	if err != nil {
		return exitcode.Wrap(exitcode.Config, err)
	}

	if jsonOutput {
		output.JSON(map[string]interface{}{"path": path, "result": result})
		if !result.Valid {
			return exitcode.Wrap(exitcode.Config, fmt.Errorf("schema validation failed with %d error(s)", len(result.Errors)))
		}
		return nil
	}

	if !result.Valid {
		for _, e := range result.Errors {
			output.Fail(fmt.Sprintf("%s: %s", e.Field, e.Description))
		}
		return exitcode.Wrap(exitcode.Config, fmt.Errorf("schema validation failed with %d error(s)", len(result.Errors)))
	}

	output.Success(fmt.Sprintf("%s is valid", path))
	return nil
}
