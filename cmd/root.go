// Package cmd implements the Cobra-based CLI for infra.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	verbosity  int
	jsonOutput bool // --json flag for machine-readable output
)

// rootCmd is the top-level command for infra.
var rootCmd = &cobra.Command{
	Use:   "infra",
	Short: "Lifecycle manager for hosted control plane instances on AWS",
	Long: `infra provisions and manages the AWS infrastructure, IAM resources, and
hosted cluster manifests behind hosted control plane instances.

Each instance lives in its own directory under the configured instance
root, and the files in that directory are the only record of progress:
a step that already has its artifact on disk is skipped, so any create
or destroy can be re-run safely after a failure and resumes where the
last run stopped.

Defaults come from the configuration record (infra config edit); flags
and INFRA_* environment variables override it per invocation.

Workflow: config edit → create → cluster render → cluster apply → cluster kubeconfig`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v, -vv)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON (machine-readable)")
}

func initEnv() {
	viper.SetEnvPrefix("INFRA")
	viper.AutomaticEnv()
}
