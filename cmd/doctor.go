package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/doctor"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/releases"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check prerequisites and environment readiness",
	Long: `Verify that the required tools (hypershift, oc), the configuration
record, and the instance store are ready for use.

Each check reports ✅ (pass), ❌ (fail), or ⚠️ (warning) with an
actionable fix suggestion.

Exit code 0 if all critical checks pass, 1 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	output.Init(verbosity > 0, jsonOutput)

	resolver := releases.NewHTTPResolver(releases.DefaultBaseURL)
	summary := doctor.RunAll(cmd.Context(), doctor.NewRealExecutor(), resolver)

	doctor.PrintResults(summary)

	if summary.HasFailure {
		os.Exit(1)
	}
	return nil
}
