package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csrwng/infra/internal/hypershift"
	"github.com/csrwng/infra/internal/releases"
)

type recordingResolver struct {
	pullSpec string
	err      error
	version  string
	channel  releases.Channel
	calls    int
}

func (r *recordingResolver) Resolve(_ context.Context, version string, channel releases.Channel) (string, error) {
	r.calls++
	r.version = version
	r.channel = channel
	return r.pullSpec, r.err
}

func TestRenderWizardRun(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{
		"Select an instance": "demo",
		"Select a major version or enter a release image pullspec": "4.18",
		"Select a version type for 4.18":                           "nightly",
		"Select an access mode":                                    "PublicAndPrivate",
		"Select control plane mode":                                "HighlyAvailable",
		"Select infrastructure mode":                               "SingleReplica",
		"Select control plane version":                             "v1",
		"Use local control plane operator?":                        true,
		"Enter number of nodes":                                    "3",
	}}
	resolver := &recordingResolver{pullSpec: "registry.ci.openshift.org/ocp/release:4.18.0-0.nightly"}

	in, err := NewRenderWizard(mock, resolver).Run(context.Background(), []string{"demo", "other"})
	require.NoError(t, err)

	assert.Equal(t, "demo", in.Instance)
	assert.Equal(t, resolver.pullSpec, in.Options.ReleaseImage)
	assert.Equal(t, "4.18", resolver.version)
	assert.Equal(t, releases.ChannelNightly, resolver.channel)
	assert.Equal(t, hypershift.EndpointAccessPublicAndPrivate, in.Options.EndpointAccess)
	assert.Equal(t, hypershift.HighlyAvailable, in.Options.ControlPlaneAvailability)
	assert.Equal(t, hypershift.SingleReplica, in.Options.InfraAvailability)
	assert.False(t, in.Options.CPOV2)
	assert.True(t, in.Options.LocalCPO)
	assert.Equal(t, 3, in.Options.NodePoolReplicas)
	assert.Equal(t, defaultInstanceType, in.Options.InstanceType)
}

func TestRenderWizardRun_Defaults(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{}}
	resolver := &recordingResolver{pullSpec: "quay.io/openshift-release-dev/ocp-release:4.20.1"}

	in, err := NewRenderWizard(mock, resolver).Run(context.Background(), []string{"demo"})
	require.NoError(t, err)

	// every prompt answered with its default
	assert.Equal(t, "demo", in.Instance)
	assert.Equal(t, releases.Versions[0], resolver.version)
	assert.Equal(t, releases.ChannelCI, resolver.channel)
	assert.Equal(t, hypershift.EndpointAccessPublic, in.Options.EndpointAccess)
	assert.Equal(t, hypershift.SingleReplica, in.Options.ControlPlaneAvailability)
	assert.True(t, in.Options.CPOV2)
	assert.False(t, in.Options.LocalCPO)
	assert.Equal(t, 2, in.Options.NodePoolReplicas)
}

func TestRenderWizardRun_CustomPullSpec(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{
		"Select a major version or enter a release image pullspec": customPullSpecChoice,
		"Enter release image pullspec":                             "quay.io/me/release:latest",
	}}
	resolver := &recordingResolver{}

	in, err := NewRenderWizard(mock, resolver).Run(context.Background(), []string{"demo"})
	require.NoError(t, err)

	assert.Equal(t, "quay.io/me/release:latest", in.Options.ReleaseImage)
	assert.Zero(t, resolver.calls)
}

func TestRenderWizardRun_ResolverFailure(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{}}
	resolver := &recordingResolver{err: errors.New("dial tcp: timeout")}

	_, err := NewRenderWizard(mock, resolver).Run(context.Background(), []string{"demo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestRenderWizardRun_Canceled(t *testing.T) {
	mock := &mockPrompter{errAt: "Select an access mode"}
	resolver := &recordingResolver{pullSpec: "quay.io/ocp/release:4.20.1"}

	_, err := NewRenderWizard(mock, resolver).Run(context.Background(), []string{"demo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCanceled))
}
