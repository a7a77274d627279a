package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/store"
	"github.com/csrwng/infra/internal/wizard"
)

var clusterApplyCmd = &cobra.Command{
	Use:   "apply [name]",
	Short: "Submit an instance's rendered manifest to the management cluster",
	Long: `Submit the instance's cluster.yaml to the management cluster. The
manifest must have been rendered first; apply never renders implicitly,
so what is submitted is exactly what was reviewed on disk.

Examples:
  infra cluster apply demo`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClusterApply,
}

func init() {
	clusterCmd.AddCommand(clusterApplyCmd)
}

func runClusterApply(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	name, err := instanceArg(args, "Select an instance to apply", func(inst store.Instance) bool {
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
	result, err := orch.Apply(cmd.Context(), name)
	if err != nil {
		return err
	}

	if jsonOutput {
		output.JSON(map[string]string{"instance": name, "result": result})
		return nil
	}
	if result != "" {
		fmt.Println(result)
	}
	output.Success(fmt.Sprintf("Manifest for %s applied", name))
	return nil
}

// instanceArg returns the positional instance name, or prompts with the
// instances passing the filter when the argument is omitted.
func instanceArg(args []string, message string, eligible func(store.Instance) bool) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if jsonOutput {
		return "", &config.ConfigError{Field: "name", Reason: "required (pass a name argument in JSON mode)"}
	}
	st, err := storeFromRecord()
	if err != nil {
		return "", err
	}
	instances, err := st.ListInstances()
	if err != nil {
		return "", err
	}
	var names []string
	for _, inst := range instances {
		if eligible == nil || eligible(inst) {
			names = append(names, inst.Name)
		}
	}
	return wizard.SelectOne(wizard.NewSurveyPrompter(), message, names)
}
