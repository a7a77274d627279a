package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/wizard"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy [name]",
	Short: "Tear down an instance's IAM and infrastructure",
	Long: `Tear down an instance: IAM resources first, then the infrastructure they
reference, then the instance directory. Each descriptor is removed as soon
as its teardown succeeds, so a failed destroy can be re-run and resumes
with the remaining steps.

Without --force the first teardown failure stops the sequence. With
--force failures are logged and cleanup continues, removing the artifacts
and the directory regardless; use it for instances whose cloud resources
are already gone.

Examples:
  infra destroy demo
  infra destroy demo --force --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDestroy,
}

var (
	destroyForce bool
	destroyYes   bool
)

func init() {
	destroyCmd.Flags().BoolVar(&destroyForce, "force", false, "continue past teardown failures and remove unrecognized files")
	destroyCmd.Flags().BoolVarP(&destroyYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(destroyCmd)
}

func runDestroy(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if jsonOutput {
			return &config.ConfigError{Field: "name", Reason: "required (pass a name argument in JSON mode)"}
		}
		st, err := storeFromRecord()
		if err != nil {
			return err
		}
		instances, err := st.ListInstances()
		if err != nil {
			return err
		}
		names := make([]string, len(instances))
		for i, inst := range instances {
			names[i] = inst.Name
		}
		name, err = wizard.SelectOne(wizard.NewSurveyPrompter(), "Select an instance to destroy", names)
		if err != nil {
			return err
		}
	}

	if !destroyYes && !jsonOutput {
		ok, err := wizard.NewSurveyPrompter().Confirm(fmt.Sprintf("Destroy instance %s and its cloud resources?", name), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}

	orch := newInfraOrchestrator(cfg)
	if err := orch.Destroy(cmd.Context(), cfg, name, destroyForce); err != nil {
		return err
	}

	if jsonOutput {
		output.JSON(map[string]string{"instance": name, "state": "absent"})
		return nil
	}
	output.Success(fmt.Sprintf("Instance %s destroyed", name))
	return nil
}
