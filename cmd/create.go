package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/hypershift"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/wizard"
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Provision AWS infrastructure and IAM for an instance",
	Long: `Provision an instance: AWS infrastructure first, then the IAM resources
keyed to it. Each step records its result in the instance directory and
is skipped on re-run when its artifact already exists, so a failed create
can be retried and resumes at the failed step under the same infra ID.

Without a name argument the command prompts for the inputs interactively.

Examples:
  infra create demo
  infra create demo --region us-west-2 --connectivity proxy
  infra create`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

var (
	createRegion       string
	createBaseDomain   string
	createAWSCreds     string
	createConnectivity string
)

func init() {
	createCmd.Flags().StringVar(&createRegion, "region", "", "AWS region (overrides the config record)")
	createCmd.Flags().StringVar(&createBaseDomain, "base-domain", "", "Route53 base domain (overrides the config record)")
	createCmd.Flags().StringVar(&createAWSCreds, "aws-creds", "", "AWS credentials file (overrides the config record)")
	createCmd.Flags().StringVar(&createConnectivity, "connectivity", "public", "VPC connectivity: public, proxy, secure-proxy, or nat")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	record, err := requireConfigRecord()
	if err != nil {
		return err
	}

	conn, err := hypershift.ParseConnectivity(createConnectivity)
	if err != nil {
		return &config.ConfigError{Field: "connectivity", Reason: err.Error()}
	}

	ov := config.Overrides{
		Region:       createRegion,
		BaseDomain:   createBaseDomain,
		AWSCredsPath: createAWSCreds,
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if jsonOutput {
			return &config.ConfigError{Field: "name", Reason: "required (pass a name argument in JSON mode)"}
		}
		defaults := config.ResolvedConfig{
			Name:       record.Name,
			Region:     firstNonEmpty(createRegion, record.Region),
			BaseDomain: firstNonEmpty(createBaseDomain, record.BaseDomain),
		}
		in, err := wizard.NewCreateWizard(nil).Run(defaults)
		if err != nil {
			return err
		}
		name = in.Name
		ov.Region = in.Region
		ov.BaseDomain = in.BaseDomain
		conn = in.Connectivity
	}

	cfg, err := resolveConfig(ov)
	if err != nil {
		return err
	}

	orch := newInfraOrchestrator(cfg)
	if err := orch.Create(cmd.Context(), cfg, name, conn); err != nil {
		return err
	}

	if jsonOutput {
		output.JSON(map[string]string{"instance": name, "state": "fully-created"})
		return nil
	}
	output.Success(fmt.Sprintf("Instance %s created", name))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
