package cmd

import (
	"github.com/spf13/cobra"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Render, apply, and manage hosted cluster manifests",
	Long: `Manage the hosted cluster riding on an instance's infrastructure.

render produces the cluster manifest from the instance's descriptors,
apply submits it to the management cluster, kubeconfig generates the
admin kubeconfig, and delete removes the hosted cluster object. Local
artifacts survive delete so the cluster can be re-applied.`,
}

func init() {
	rootCmd.AddCommand(clusterCmd)
}
