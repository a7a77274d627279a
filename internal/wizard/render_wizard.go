package wizard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/csrwng/infra/internal/cluster"
	"github.com/csrwng/infra/internal/hypershift"
	"github.com/csrwng/infra/internal/releases"
)

const customPullSpecChoice = "Specify release image pullspec"

// defaultInstanceType is offered when the operator gives no other answer.
const defaultInstanceType = "m6i.xlarge"

// RenderInputs captures the answers of the render flow.
type RenderInputs struct {
	Instance string
	Options  cluster.RenderOptions
}

// RenderWizard drives the interactive render flow. Version choices resolve
// to a release image through the resolver; a custom pullspec bypasses it.
type RenderWizard struct {
	prompter Prompter
	resolver releases.Resolver
}

// NewRenderWizard returns a render wizard; if p is nil, survey is used.
func NewRenderWizard(p Prompter, resolver releases.Resolver) *RenderWizard {
	if p == nil {
		p = NewSurveyPrompter()
	}
	return &RenderWizard{prompter: p, resolver: resolver}
}

// Run collects the render inputs for one of the given instances.
func (w *RenderWizard) Run(ctx context.Context, instances []string) (*RenderInputs, error) {
	in := &RenderInputs{}
	var err error

	in.Instance, err = SelectOne(w.prompter, "Select an instance", instances)
	if err != nil {
		return nil, err
	}

	in.Options.ReleaseImage, err = w.releaseImage(ctx)
	if err != nil {
		return nil, err
	}

	access, err := w.prompter.Select("Select an access mode", accessChoices(), string(hypershift.EndpointAccessPublic))
	if err != nil {
		return nil, promptErr(err)
	}
	in.Options.EndpointAccess = hypershift.EndpointAccess(access)

	cp, err := w.prompter.Select("Select control plane mode", availabilityChoices(), string(hypershift.SingleReplica))
	if err != nil {
		return nil, promptErr(err)
	}
	in.Options.ControlPlaneAvailability = hypershift.AvailabilityPolicy(cp)

	infraMode, err := w.prompter.Select("Select infrastructure mode", availabilityChoices(), string(hypershift.SingleReplica))
	if err != nil {
		return nil, promptErr(err)
	}
	in.Options.InfraAvailability = hypershift.AvailabilityPolicy(infraMode)

	cpVersion, err := w.prompter.Select("Select control plane version", []string{"v2", "v1"}, "v2")
	if err != nil {
		return nil, promptErr(err)
	}
	in.Options.CPOV2 = cpVersion == "v2"

	in.Options.LocalCPO, err = w.prompter.Confirm("Use local control plane operator?", false)
	if err != nil {
		return nil, promptErr(err)
	}

	nodes, err := w.prompter.Input("Enter number of nodes", "2", ValidateNodeCount)
	if err != nil {
		return nil, promptErr(err)
	}
	in.Options.NodePoolReplicas, err = strconv.Atoi(nodes)
	if err != nil {
		return nil, fmt.Errorf("node count %q: %w", nodes, err)
	}

	in.Options.InstanceType, err = w.prompter.Input("Enter instance type", defaultInstanceType, ValidateNonEmpty)
	if err != nil {
		return nil, promptErr(err)
	}

	return in, nil
}

// releaseImage prompts for a major version and channel, resolving them to a
// pullspec, or takes a pullspec verbatim.
func (w *RenderWizard) releaseImage(ctx context.Context) (string, error) {
	choices := append([]string{}, releases.Versions...)
	choices = append(choices, customPullSpecChoice)

	selection, err := w.prompter.Select("Select a major version or enter a release image pullspec", choices, releases.Versions[0])
	if err != nil {
		return "", promptErr(err)
	}
	if selection == customPullSpecChoice {
		pullSpec, err := w.prompter.Input("Enter release image pullspec", "", ValidateNonEmpty)
		if err != nil {
			return "", promptErr(err)
		}
		return pullSpec, nil
	}

	channelStr, err := w.prompter.Select(fmt.Sprintf("Select a version type for %s", selection), channelChoices(), string(releases.ChannelCI))
	if err != nil {
		return "", promptErr(err)
	}
	return w.resolver.Resolve(ctx, selection, releases.Channel(channelStr))
}

func accessChoices() []string {
	out := make([]string, len(hypershift.EndpointAccessModes))
	for i, m := range hypershift.EndpointAccessModes {
		out[i] = string(m)
	}
	return out
}

func availabilityChoices() []string {
	out := make([]string, len(hypershift.AvailabilityPolicies))
	for i, p := range hypershift.AvailabilityPolicies {
		out[i] = string(p)
	}
	return out
}

func channelChoices() []string {
	out := make([]string, len(releases.Channels))
	for i, c := range releases.Channels {
		out[i] = string(c)
	}
	return out
}
