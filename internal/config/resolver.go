package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Resolve merges the persisted record with per-call overrides (override
// wins), expands ~ and environment variables in path fields, and verifies
// that every required path points at an existing filesystem entry reachable
// with the process's permissions. The first invalid field aborts resolution
// with a ConfigError naming it. Resolve never mutates cfg; persisting changes
// is the job of `infra config edit`.
func Resolve(cfg *Config, ov Overrides) (ResolvedConfig, error) {
	merged := *cfg
	ApplyDefaults(&merged)
	if ov.Name != "" {
		merged.Name = ov.Name
	}
	if ov.Region != "" {
		merged.Region = ov.Region
	}
	if ov.BaseDomain != "" {
		merged.BaseDomain = ov.BaseDomain
	}
	if ov.AWSCredsPath != "" {
		merged.AWSCredsPath = ov.AWSCredsPath
	}

	res := ResolvedConfig{
		Name:                merged.Name,
		Region:              merged.Region,
		BaseDomain:          merged.BaseDomain,
		HypershiftPath:      ExpandPath(merged.HypershiftPath),
		InstanceRoot:        ExpandPath(merged.InstanceRoot),
		AWSCredsPath:        ExpandPath(merged.AWSCredsPath),
		PullSecretPath:      ExpandPath(merged.PullSecretPath),
		KubeconfigDir:       ExpandPath(merged.KubeconfigDir),
		OIDCBucketName:      merged.OIDCBucketName,
		OIDCBucketRegion:    merged.OIDCBucketRegion,
		ExternalDNSDomain:   merged.ExternalDNSDomain,
		HypershiftRepoDir:   ExpandPath(merged.HypershiftRepoDir),
		LocalCPOImagePrefix: merged.LocalCPOImagePrefix,
	}

	// Validation order is fixed so the reported field is deterministic.
	bin, err := resolveBinary("hypershift_path", res.HypershiftPath)
	if err != nil {
		return ResolvedConfig{}, err
	}
	res.HypershiftPath = bin

	if err := checkDir("infra_dir", res.InstanceRoot); err != nil {
		return ResolvedConfig{}, err
	}
	if err := checkFile("aws_creds_path", res.AWSCredsPath); err != nil {
		return ResolvedConfig{}, err
	}
	if err := checkFile("pull_secret_path", res.PullSecretPath); err != nil {
		return ResolvedConfig{}, err
	}
	if err := checkDir("kubeconfig_dir", res.KubeconfigDir); err != nil {
		return ResolvedConfig{}, err
	}
	if res.HypershiftRepoDir != "" {
		if err := checkDir("hypershift_repo_dir", res.HypershiftRepoDir); err != nil {
			return ResolvedConfig{}, err
		}
	}
	return res, nil
}

// ExpandPath expands a leading ~ and any environment variables in a path.
func ExpandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if p == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// resolveBinary locates an executable. Bare names go through PATH so the
// resolved config always carries a concrete location.
func resolveBinary(field, path string) (string, error) {
	if path == "" {
		return "", &ConfigError{Field: field, Reason: "required"}
	}
	if strings.ContainsRune(path, os.PathSeparator) {
		info, err := os.Stat(path)
		if err != nil {
			return "", &ConfigError{Field: field, Reason: fmt.Sprintf("binary not found at %s", path)}
		}
		if info.IsDir() {
			return "", &ConfigError{Field: field, Reason: fmt.Sprintf("%s is a directory", path)}
		}
		return path, nil
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", &ConfigError{Field: field, Reason: fmt.Sprintf("%q not found on PATH", path)}
	}
	return resolved, nil
}

func checkDir(field, path string) error {
	if path == "" {
		return &ConfigError{Field: field, Reason: "required"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("directory does not exist: %s", path)}
	}
	if !info.IsDir() {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("%s is not a directory", path)}
	}
	return nil
}

func checkFile(field, path string) error {
	if path == "" {
		return &ConfigError{Field: field, Reason: "required"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("file does not exist: %s", path)}
	}
	if info.IsDir() {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("%s is a directory, expected a file", path)}
	}
	return nil
}
