package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/infra"
	"github.com/csrwng/infra/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List instances and their lifecycle state",
	Long: `List every instance under the instance root with the state derived from
its artifacts: infra-pending, infra-created, fully-created, or iam-only
(an anomaly worth inspecting).

Examples:
  infra list
  infra list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	output.Init(verbosity > 0, jsonOutput)

	st, err := storeFromRecord()
	if err != nil {
		return err
	}
	instances, err := st.ListInstances()
	if err != nil {
		return err
	}

	listings := make([]infra.Listing, 0, len(instances))
	for _, inst := range instances {
		listings = append(listings, infra.Listing{Instance: inst, State: infra.Classify(inst)})
	}

	if jsonOutput {
		output.JSON(listings)
		return nil
	}

	if len(listings) == 0 {
		fmt.Println("No instances found.")
		fmt.Println("\nRun: infra create <name>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tMANIFEST\tKUBECONFIG")
	for _, l := range listings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Name, l.State, yesNo(l.HasManifest), yesNo(l.HasKubeconfig))
	}
	w.Flush()
	fmt.Printf("\nTotal: %d instance(s)\n", len(listings))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
