package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/hypershift"
)

func TestCreateWizardRun(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{
		"Name":             "demo",
		"Region":           "us-east-1",
		"Base domain":      "example.com",
		"External traffic": "SecureProxy",
	}}

	in, err := NewCreateWizard(mock).Run(config.ResolvedConfig{})
	require.NoError(t, err)

	assert.Equal(t, "demo", in.Name)
	assert.Equal(t, "us-east-1", in.Region)
	assert.Equal(t, "example.com", in.BaseDomain)
	assert.Equal(t, hypershift.ConnectivitySecureProxy, in.Connectivity)
}

func TestCreateWizardRun_DefaultsFromConfig(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{}}
	defaults := config.ResolvedConfig{Name: "demo", Region: "eu-west-1", BaseDomain: "example.com"}

	in, err := NewCreateWizard(mock).Run(defaults)
	require.NoError(t, err)

	assert.Equal(t, "demo", in.Name)
	assert.Equal(t, "eu-west-1", in.Region)
	assert.Equal(t, hypershift.ConnectivityPublic, in.Connectivity)
}

func TestCreateWizardRun_NATGatewayLabel(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{
		"Name":             "demo",
		"Region":           "us-east-1",
		"Base domain":      "example.com",
		"External traffic": "NAT gateway",
	}}

	in, err := NewCreateWizard(mock).Run(config.ResolvedConfig{})
	require.NoError(t, err)
	assert.Equal(t, hypershift.ConnectivityNAT, in.Connectivity)
}

func TestCreateWizardRun_Canceled(t *testing.T) {
	mock := &mockPrompter{errAt: "Region"}
	_, err := NewCreateWizard(mock).Run(config.ResolvedConfig{Name: "demo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCanceled))
}
