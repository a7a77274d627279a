package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validFixture lays out a config whose every path exists.
func validFixture(t *testing.T) *Config {
	t.Helper()
	tmp := t.TempDir()

	bin := filepath.Join(tmp, "hypershift")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	creds := filepath.Join(tmp, "credentials")
	require.NoError(t, os.WriteFile(creds, []byte("[default]\n"), 0o600))
	pullSecret := filepath.Join(tmp, "pull-secret.json")
	require.NoError(t, os.WriteFile(pullSecret, []byte("{}"), 0o600))
	instances := filepath.Join(tmp, "instances")
	require.NoError(t, os.MkdirAll(instances, 0o750))
	kubeconfigs := filepath.Join(tmp, "kubeconfigs")
	require.NoError(t, os.MkdirAll(kubeconfigs, 0o750))

	return &Config{
		Name:           "demo",
		Region:         "us-east-1",
		BaseDomain:     "example.org",
		HypershiftPath: bin,
		InstanceRoot:   instances,
		AWSCredsPath:   creds,
		PullSecretPath: pullSecret,
		KubeconfigDir:  kubeconfigs,
	}
}

func TestResolve_Valid(t *testing.T) {
	cfg := validFixture(t)

	res, err := Resolve(cfg, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, res.Name)
	assert.Equal(t, cfg.HypershiftPath, res.HypershiftPath)
	assert.Equal(t, cfg.InstanceRoot, res.InstanceRoot)
}

func TestResolve_OverrideWins(t *testing.T) {
	cfg := validFixture(t)

	res, err := Resolve(cfg, Overrides{Name: "other", Region: "eu-central-1", BaseDomain: "alt.example.org"})
	require.NoError(t, err)
	assert.Equal(t, "other", res.Name)
	assert.Equal(t, "eu-central-1", res.Region)
	assert.Equal(t, "alt.example.org", res.BaseDomain)
	// Persisted record is untouched.
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestResolve_FirstInvalidFieldWins(t *testing.T) {
	cfg := validFixture(t)
	cfg.InstanceRoot = filepath.Join(t.TempDir(), "nope")
	cfg.AWSCredsPath = filepath.Join(t.TempDir(), "also-nope")

	_, err := Resolve(cfg, Overrides{})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "infra_dir", cfgErr.Field)
}

func TestResolve_MissingCredsFile(t *testing.T) {
	cfg := validFixture(t)
	cfg.AWSCredsPath = filepath.Join(t.TempDir(), "absent")

	_, err := Resolve(cfg, Overrides{})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "aws_creds_path", cfgErr.Field)
}

func TestResolve_DirWhereFileExpected(t *testing.T) {
	cfg := validFixture(t)
	cfg.PullSecretPath = t.TempDir()

	_, err := Resolve(cfg, Overrides{})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "pull_secret_path", cfgErr.Field)
	assert.Contains(t, cfgErr.Reason, "directory")
}

func TestResolve_BareBinaryNameUsesPATH(t *testing.T) {
	cfg := validFixture(t)
	binDir := filepath.Dir(cfg.HypershiftPath)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	cfg.HypershiftPath = "hypershift"

	res, err := Resolve(cfg, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(binDir, "hypershift"), res.HypershiftPath)
}

func TestResolve_BinaryNotOnPATH(t *testing.T) {
	cfg := validFixture(t)
	cfg.HypershiftPath = "no-such-tool-xyz"

	_, err := Resolve(cfg, Overrides{})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "hypershift_path", cfgErr.Field)
}

func TestResolve_OptionalRepoDirValidatedWhenSet(t *testing.T) {
	cfg := validFixture(t)
	cfg.HypershiftRepoDir = filepath.Join(t.TempDir(), "missing-repo")

	_, err := Resolve(cfg, Overrides{})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "hypershift_repo_dir", cfgErr.Field)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("INFRA_TEST_DIR", "/opt/data")

	assert.Equal(t, filepath.Join(home, "x"), ExpandPath("~/x"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/opt/data/creds", ExpandPath("$INFRA_TEST_DIR/creds"))
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/plain/path", ExpandPath("/plain/path"))
}

func TestRequire(t *testing.T) {
	res := ResolvedConfig{Name: "demo", Region: "us-east-1"}

	require.NoError(t, res.Require("name", "region"))

	err := res.Require("name", "base_domain", "oidc_s3_bucket_name")
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "base_domain", cfgErr.Field)
}
