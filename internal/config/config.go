// Package config provides the configuration schema, loader, resolver, and
// validator for the infra configuration record — the persisted defaults every
// command starts from.
package config

// Config is the persisted configuration record. The field keys match the
// on-disk YAML file and the legacy JSON format byte for byte, so either can
// be loaded.
type Config struct {
	Name                string `yaml:"name" json:"name"`
	Region              string `yaml:"region" json:"region"`
	BaseDomain          string `yaml:"base_domain" json:"base_domain"`
	HypershiftPath      string `yaml:"hypershift_path" json:"hypershift_path"`
	InstanceRoot        string `yaml:"infra_dir" json:"infra_dir"`
	AWSCredsPath        string `yaml:"aws_creds_path" json:"aws_creds_path"`
	PullSecretPath      string `yaml:"pull_secret_path" json:"pull_secret_path"`
	KubeconfigDir       string `yaml:"kubeconfig_dir" json:"kubeconfig_dir"`
	OIDCBucketName      string `yaml:"oidc_s3_bucket_name" json:"oidc_s3_bucket_name"`
	OIDCBucketRegion    string `yaml:"oidc_s3_region" json:"oidc_s3_region"`
	ExternalDNSDomain   string `yaml:"external_dns_domain,omitempty" json:"external_dns_domain,omitempty"`
	HypershiftRepoDir   string `yaml:"hypershift_repo_dir,omitempty" json:"hypershift_repo_dir,omitempty"`
	LocalCPOImagePrefix string `yaml:"local_cpo_image_prefix,omitempty" json:"local_cpo_image_prefix,omitempty"`
}

// Overrides carries per-invocation values that take precedence over the
// persisted record. Empty fields leave the persisted value in place.
type Overrides struct {
	Name         string
	Region       string
	BaseDomain   string
	AWSCredsPath string
}

// ResolvedConfig is the immutable, fully-merged view handed to the
// orchestrators. Path fields are expanded, the hypershift binary is resolved,
// and every required path has been verified to exist at resolve time.
type ResolvedConfig struct {
	Name                string
	Region              string
	BaseDomain          string
	HypershiftPath      string
	InstanceRoot        string
	AWSCredsPath        string
	PullSecretPath      string
	KubeconfigDir       string
	OIDCBucketName      string
	OIDCBucketRegion    string
	ExternalDNSDomain   string
	HypershiftRepoDir   string
	LocalCPOImagePrefix string
}

// Require returns a ConfigError naming the first listed field that is empty.
// Operations call it with the fields they cannot run without; field names are
// the on-disk keys so error messages match what the operator edits.
func (r ResolvedConfig) Require(fields ...string) error {
	for _, f := range fields {
		if r.fieldValue(f) == "" {
			return &ConfigError{Field: f, Reason: "required"}
		}
	}
	return nil
}

func (r ResolvedConfig) fieldValue(name string) string {
	switch name {
	case "name":
		return r.Name
	case "region":
		return r.Region
	case "base_domain":
		return r.BaseDomain
	case "hypershift_path":
		return r.HypershiftPath
	case "infra_dir":
		return r.InstanceRoot
	case "aws_creds_path":
		return r.AWSCredsPath
	case "pull_secret_path":
		return r.PullSecretPath
	case "kubeconfig_dir":
		return r.KubeconfigDir
	case "oidc_s3_bucket_name":
		return r.OIDCBucketName
	case "oidc_s3_region":
		return r.OIDCBucketRegion
	case "external_dns_domain":
		return r.ExternalDNSDomain
	case "hypershift_repo_dir":
		return r.HypershiftRepoDir
	case "local_cpo_image_prefix":
		return r.LocalCPOImagePrefix
	default:
		return ""
	}
}
