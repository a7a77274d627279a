package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/store"
)

var clusterKubeconfigCmd = &cobra.Command{
	Use:     "kubeconfig [name]",
	Aliases: []string{"k"},
	Short:   "Generate the admin kubeconfig for an instance's hosted cluster",
	Long: `Generate the admin kubeconfig for the instance's hosted cluster and
write it to the configured kubeconfig directory as <name>-kubeconfig.

Examples:
  infra cluster kubeconfig demo
  export KUBECONFIG=$(infra cluster k demo --json | jq -r .data.path)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClusterKubeconfig,
}

func init() {
	clusterCmd.AddCommand(clusterKubeconfigCmd)
}

func runClusterKubeconfig(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	name, err := instanceArg(args, "Select an instance", func(inst store.Instance) bool {
		return inst.HasManifest
	})
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}

	orch := newClusterOrchestrator(cfg)
	path, err := orch.Kubeconfig(cmd.Context(), name)
	if err != nil {
		return err
	}

	if jsonOutput {
		output.JSON(map[string]string{"instance": name, "path": path})
		return nil
	}
	output.Success(fmt.Sprintf("Kubeconfig written to %s", path))
	return nil
}
