package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/wizard"
)

var clusterDeleteCmd = &cobra.Command{
	Use:     "delete [name]",
	Aliases: []string{"rm"},
	Short:   "Delete a hosted cluster from the management cluster",
	Long: `Delete the hosted cluster object from the management cluster. The
instance's local artifacts are untouched, so the manifest can be applied
again later. Use 'infra destroy' to tear down cloud resources.

Examples:
  infra cluster delete demo
  infra cluster rm demo`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClusterDelete,
}

func init() {
	clusterCmd.AddCommand(clusterDeleteCmd)
}

func runClusterDelete(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}
	orch := newClusterOrchestrator(cfg)

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		if jsonOutput {
			return &config.ConfigError{Field: "name", Reason: "required (pass a name argument in JSON mode)"}
		}
		clusters, err := orch.ListClusters(cmd.Context())
		if err != nil {
			return err
		}
		if len(clusters) == 0 {
			return &config.ConfigError{Field: "name", Reason: "no hosted clusters found on the management cluster"}
		}
		name, err = wizard.SelectOne(wizard.NewSurveyPrompter(), "Select a hosted cluster to delete", clusters)
		if err != nil {
			return err
		}
	}

	if err := orch.Delete(cmd.Context(), name); err != nil {
		return err
	}

	if jsonOutput {
		output.JSON(map[string]string{"cluster": name, "result": "deleted"})
		return nil
	}
	output.Success(fmt.Sprintf("Hosted cluster %s deleted", name))
	return nil
}
