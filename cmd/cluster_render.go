package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csrwng/infra/internal/cluster"
	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/hypershift"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/releases"
	"github.com/csrwng/infra/internal/wizard"
)

var clusterRenderCmd = &cobra.Command{
	Use:   "render [name]",
	Short: "Render the hosted cluster manifest for an instance",
	Long: `Render the cluster manifest from the instance's infrastructure and IAM
descriptors and persist it as the instance's cluster.yaml. The manifest's
identity fields come from what was actually provisioned, so a config
record edited since create cannot produce a mismatched manifest.

The release image is taken from --release-image verbatim, or resolved
from --version and --channel against the release controller. Without a
name argument the command prompts for everything interactively.

Examples:
  infra cluster render demo --version 4.18 --channel nightly
  infra cluster render demo --release-image quay.io/openshift-release-dev/ocp-release:4.17.3-x86_64
  infra cluster render`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClusterRender,
}

var (
	renderReleaseImage string
	renderVersion      string
	renderChannel      string
	renderAccess       string
	renderCPMode       string
	renderInfraMode    string
	renderNodeCount    int
	renderInstanceType string
	renderCPOV2        bool
	renderLocalCPO     bool
)

func init() {
	clusterRenderCmd.Flags().StringVar(&renderReleaseImage, "release-image", "", "release image pullspec (skips release controller resolution)")
	clusterRenderCmd.Flags().StringVar(&renderVersion, "version", "", "major version to resolve, e.g. 4.18")
	clusterRenderCmd.Flags().StringVar(&renderChannel, "channel", "ci", "release channel: ci, nightly, or stable")
	clusterRenderCmd.Flags().StringVar(&renderAccess, "endpoint-access", "Public", "endpoint access: Public, PublicAndPrivate, or Private")
	clusterRenderCmd.Flags().StringVar(&renderCPMode, "control-plane-mode", "SingleReplica", "control plane availability: SingleReplica or HighlyAvailable")
	clusterRenderCmd.Flags().StringVar(&renderInfraMode, "infra-mode", "SingleReplica", "infrastructure availability: SingleReplica or HighlyAvailable")
	clusterRenderCmd.Flags().IntVar(&renderNodeCount, "node-count", 2, "worker node count")
	clusterRenderCmd.Flags().StringVar(&renderInstanceType, "instance-type", "m6i.xlarge", "worker instance type")
	clusterRenderCmd.Flags().BoolVar(&renderCPOV2, "cpo-v2", true, "run the v2 control plane operator")
	clusterRenderCmd.Flags().BoolVar(&renderLocalCPO, "local-cpo", false, "use a locally built control plane operator image")

	clusterCmd.AddCommand(clusterRenderCmd)
}

func runClusterRender(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	resolver := releases.NewHTTPResolver(releases.DefaultBaseURL)

	var name string
	var opts cluster.RenderOptions
	if len(args) == 1 {
		name = args[0]
		var err error
		opts, err = renderOptionsFromFlags(cmd.Context(), resolver)
		if err != nil {
			return err
		}
	} else {
		if jsonOutput {
			return &config.ConfigError{Field: "name", Reason: "required (pass a name argument in JSON mode)"}
		}
		names, err := renderableInstances()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return &config.ConfigError{Field: "name", Reason: "no fully created instances to render; run 'infra create' first"}
		}
		in, err := wizard.NewRenderWizard(nil, resolver).Run(cmd.Context(), names)
		if err != nil {
			return err
		}
		name = in.Instance
		opts = in.Options
	}

	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}

	orch := newClusterOrchestrator(cfg)
	path, err := orch.Render(cmd.Context(), cfg, name, opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		output.JSON(map[string]string{"instance": name, "manifest": path})
		return nil
	}
	output.Success(fmt.Sprintf("Manifest written to %s", path))
	return nil
}

// renderOptionsFromFlags assembles render options without prompting,
// resolving the release image when only a version was given.
func renderOptionsFromFlags(ctx context.Context, resolver releases.Resolver) (cluster.RenderOptions, error) {
	opts := cluster.RenderOptions{
		InstanceType:     renderInstanceType,
		NodePoolReplicas: renderNodeCount,
		CPOV2:            renderCPOV2,
		LocalCPO:         renderLocalCPO,
	}

	access, err := hypershift.ParseEndpointAccess(renderAccess)
	if err != nil {
		return cluster.RenderOptions{}, &config.ConfigError{Field: "endpoint-access", Reason: err.Error()}
	}
	opts.EndpointAccess = access

	cp, err := hypershift.ParseAvailabilityPolicy(renderCPMode)
	if err != nil {
		return cluster.RenderOptions{}, &config.ConfigError{Field: "control-plane-mode", Reason: err.Error()}
	}
	opts.ControlPlaneAvailability = cp

	infraMode, err := hypershift.ParseAvailabilityPolicy(renderInfraMode)
	if err != nil {
		return cluster.RenderOptions{}, &config.ConfigError{Field: "infra-mode", Reason: err.Error()}
	}
	opts.InfraAvailability = infraMode

	if renderNodeCount < 1 {
		return cluster.RenderOptions{}, &config.ConfigError{Field: "node-count", Reason: "must be a positive number"}
	}

	switch {
	case renderReleaseImage != "":
		opts.ReleaseImage = renderReleaseImage
	case renderVersion != "":
		channel, err := releases.ParseChannel(renderChannel)
		if err != nil {
			return cluster.RenderOptions{}, &config.ConfigError{Field: "channel", Reason: err.Error()}
		}
		if err := releases.ValidateVersion(renderVersion); err != nil {
			return cluster.RenderOptions{}, &config.ConfigError{Field: "version", Reason: err.Error()}
		}
		image, err := resolver.Resolve(ctx, renderVersion, channel)
		if err != nil {
			return cluster.RenderOptions{}, err
		}
		opts.ReleaseImage = image
	default:
		return cluster.RenderOptions{}, &config.ConfigError{Field: "release-image", Reason: "pass --release-image or --version"}
	}

	return opts, nil
}

// renderableInstances returns instances whose render prerequisites exist.
func renderableInstances() ([]string, error) {
	st, err := storeFromRecord()
	if err != nil {
		return nil, err
	}
	instances, err := st.ListInstances()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, inst := range instances {
		if inst.HasInfra && inst.HasIam {
			names = append(names, inst.Name)
		}
	}
	return names, nil
}
