package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/audit"
	"github.com/csrwng/infra/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show CLI audit history",
	Long: `Displays audit events written by infra in JSONL format.

By default, reads the audit log next to the configuration record and
prints the latest events. Use --instance to filter on one instance.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyInstance string
	historyLimit    int
)

func init() {
	historyCmd.Flags().StringVar(&historyInstance, "instance", "", "filter by instance")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max number of events to display")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	events, err := audit.Read()
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stderr, "No audit events found.")
		return nil
	}

	filtered := make([]audit.Event, 0, len(events))
	for _, event := range events {
		if historyInstance != "" && event.Instance != historyInstance {
			continue
		}
		filtered = append(filtered, event)
	}
	if len(filtered) == 0 {
		fmt.Fprintln(os.Stderr, "No matching audit events.")
		return nil
	}

	start := 0
	if historyLimit > 0 && len(filtered) > historyLimit {
		start = len(filtered) - historyLimit
	}

	if jsonOutput {
		output.JSON(map[string]interface{}{"events": filtered[start:]})
		return nil
	}

	bold := color.New(color.Bold)
	bold.Fprintln(os.Stderr, "📜 infra history")
	for _, event := range filtered[start:] {
		status := color.New(color.FgGreen)
		if event.Result != "success" {
			status = color.New(color.FgRed)
		}
		status.Fprintf(os.Stderr, "  %s", event.Result)
		fmt.Fprintf(os.Stderr, "  %s  op=%s", event.Timestamp, event.Operation)
		if event.Instance != "" {
			fmt.Fprintf(os.Stderr, "  instance=%s", event.Instance)
		}
		fmt.Fprintf(os.Stderr, "  exit=%d  duration=%dms\n", event.ExitCode, event.DurationMs)
	}

	return nil
}
