package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/output"
)

var clusterListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List hosted clusters on the management cluster",
	Args:    cobra.NoArgs,
	RunE:    runClusterList,
}

func init() {
	clusterCmd.AddCommand(clusterListCmd)
}

func runClusterList(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}
	orch := newClusterOrchestrator(cfg)

	clusters, err := orch.ListClusters(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		output.JSON(map[string]interface{}{"clusters": clusters})
		return nil
	}
	if len(clusters) == 0 {
		fmt.Println("No hosted clusters found.")
		return nil
	}
	for _, name := range clusters {
		fmt.Println(name)
	}
	fmt.Printf("\nTotal: %d cluster(s)\n", len(clusters))
	return nil
}
