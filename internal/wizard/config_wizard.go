package wizard

import (
	"github.com/csrwng/infra/internal/config"
)

// ConfigWizard drives the interactive configuration flow. Every field is
// prompted with its current value as the default, so rerunning the wizard
// edits the record in place.
type ConfigWizard struct {
	prompter Prompter
}

// NewConfigWizard returns a config wizard; if p is nil, survey is used.
func NewConfigWizard(p Prompter) *ConfigWizard {
	if p == nil {
		p = NewSurveyPrompter()
	}
	return &ConfigWizard{prompter: p}
}

// Run collects the configuration record field by field. existing may be nil
// when no record has been written yet.
func (w *ConfigWizard) Run(existing *config.Config) (*config.Config, error) {
	cfg := &config.Config{}
	if existing != nil {
		*cfg = *existing
	}
	config.ApplyDefaults(cfg)

	prompts := []struct {
		label     string
		value     *string
		validator func(interface{}) error
	}{
		{"Default name", &cfg.Name, ValidateOptionalInstanceName},
		{"Default region", &cfg.Region, ValidateNonEmpty},
		{"Default base domain", &cfg.BaseDomain, ValidateNonEmpty},
		{"Path to hypershift binary (or 'hypershift' if on PATH)", &cfg.HypershiftPath, ValidateNonEmpty},
		{"Directory to store instances", &cfg.InstanceRoot, ValidateNonEmpty},
		{"Path to AWS credentials file", &cfg.AWSCredsPath, ValidateNonEmpty},
		{"Path to pull-secret file", &cfg.PullSecretPath, ValidateNonEmpty},
		{"Directory to store kubeconfigs", &cfg.KubeconfigDir, ValidateNonEmpty},
		{"OIDC S3 bucket name (for IAM create)", &cfg.OIDCBucketName, nil},
		{"OIDC S3 region (for IAM create)", &cfg.OIDCBucketRegion, nil},
		{"External DNS domain (optional)", &cfg.ExternalDNSDomain, nil},
		{"Path to local hypershift repo (optional)", &cfg.HypershiftRepoDir, nil},
		{"Local CPO image prefix (e.g. quay.io/you/hypershift) (optional)", &cfg.LocalCPOImagePrefix, nil},
	}

	for _, p := range prompts {
		answer, err := w.prompter.Input(p.label, *p.value, p.validator)
		if err != nil {
			return nil, promptErr(err)
		}
		*p.value = answer
	}
	return cfg, nil
}
