package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csrwng/infra/internal/config"
)

func TestConfigWizardRun_PromptsEveryField(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{
		"Default name":        "demo",
		"Default region":      "us-east-1",
		"Default base domain": "example.com",
		"Path to hypershift binary (or 'hypershift' if on PATH)": "/opt/bin/hypershift",
		"Directory to store instances":                           "~/infra",
		"Path to AWS credentials file":                           "~/.aws/credentials",
		"Path to pull-secret file":                               "~/pull-secret.json",
		"Directory to store kubeconfigs":                         "~/kubeconfigs",
		"OIDC S3 bucket name (for IAM create)":                   "oidc-bucket",
		"OIDC S3 region (for IAM create)":                        "us-east-1",
	}}

	cfg, err := NewConfigWizard(mock).Run(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Len(t, mock.calls, 13)
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "example.com", cfg.BaseDomain)
	assert.Equal(t, "/opt/bin/hypershift", cfg.HypershiftPath)
	assert.Equal(t, "~/infra", cfg.InstanceRoot)
	assert.Equal(t, "oidc-bucket", cfg.OIDCBucketName)
	assert.Empty(t, cfg.ExternalDNSDomain)
}

func TestConfigWizardRun_ExistingValuesAreDefaults(t *testing.T) {
	existing := &config.Config{
		Region:     "eu-west-1",
		BaseDomain: "existing.example.com",
	}
	// the mock answers nothing, so every prompt returns its default
	mock := &mockPrompter{answers: map[string]interface{}{
		"Directory to store instances":   "/data/infra",
		"Path to AWS credentials file":   "/data/creds",
		"Path to pull-secret file":       "/data/pull-secret",
		"Directory to store kubeconfigs": "/data/kubeconfigs",
	}}

	cfg, err := NewConfigWizard(mock).Run(existing)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "existing.example.com", cfg.BaseDomain)
	assert.Equal(t, config.DefaultHypershiftPath, cfg.HypershiftPath)
	assert.Equal(t, "/data/infra", cfg.InstanceRoot)
}

func TestConfigWizardRun_Canceled(t *testing.T) {
	mock := &mockPrompter{errAt: "Default region"}
	_, err := NewConfigWizard(mock).Run(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCanceled))
}
