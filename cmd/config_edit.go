package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/wizard"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Create or edit the configuration record interactively",
	Long: `Walk through every configuration field with the current value as the
default and persist the result. The instance and kubeconfig directories
are created if they do not exist.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func init() {
	configCmd.AddCommand(configEditCmd)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	if jsonOutput {
		return &config.ConfigError{Field: "config", Reason: "config edit is interactive; edit the file directly for automation"}
	}

	existing, path, err := config.LoadDefault()
	if err != nil {
		output.Warn("existing config is unreadable, starting fresh", "err", err)
		existing = nil
	}
	if path == "" {
		existing = nil
	}

	record, err := wizard.NewConfigWizard(nil).Run(existing)
	if err != nil {
		return err
	}

	savePath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	if err := config.Save(record, savePath); err != nil {
		return err
	}

	for _, dir := range []string{record.InstanceRoot, record.KubeconfigDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(config.ExpandPath(dir), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	output.Success(fmt.Sprintf("Configuration written to %s", savePath))
	return nil
}
