package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csrwng/infra/internal/releases"
	_ "github.com/csrwng/infra/schemas"
)

// mockExecutor is a test double for CmdExecutor.
type mockExecutor struct {
	// responses maps "command arg1 arg2" → (output, error)
	responses map[string]mockResponse
}

type mockResponse struct {
	output string
	err    error
}

func newMockExecutor() *mockExecutor {
	return &mockExecutor{responses: make(map[string]mockResponse)}
}

func (m *mockExecutor) Set(output string, err error, name string, args ...string) {
	key := buildKey(name, args...)
	m.responses[key] = mockResponse{output: output, err: err}
}

func (m *mockExecutor) Run(_ context.Context, name string, args ...string) (string, error) {
	key := buildKey(name, args...)
	r, ok := m.responses[key]
	if !ok {
		return "", fmt.Errorf("command not found: %s", key)
	}
	return r.output, r.err
}

func buildKey(name string, args ...string) string {
	key := name
	for _, a := range args {
		key += " " + a
	}
	return key
}

// fakeResolver is a canned releases.Resolver.
type fakeResolver struct {
	pullSpec string
	err      error
}

func (f *fakeResolver) Resolve(_ context.Context, _ string, _ releases.Channel) (string, error) {
	return f.pullSpec, f.err
}

// --- Semver tests ---

func TestSemverGTE(t *testing.T) {
	tests := []struct {
		version string
		min     string
		want    bool
	}{
		{"4.12.0", "4.12.0", true},
		{"4.17.9", "4.12.0", true},
		{"5.0.0", "4.12.0", true},
		{"4.11.9", "4.12.0", false},
		{"4.12.1", "4.12.0", true},
		{"3.11.0", "4.12.0", false},
		{"4.12.0-rc1", "4.12.0", true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s>=%s", tt.version, tt.min), func(t *testing.T) {
			assert.Equal(t, tt.want, semverGTE(tt.version, tt.min))
		})
	}
}

// --- hypershift check tests ---

func TestCheckHypershift_Pass(t *testing.T) {
	ex := newMockExecutor()
	ex.Set("Client Version: openshift/hypershift: 1bb8828\nSupported OCP: 4.20.0", nil,
		"hypershift", "version")

	check := checkHypershift("hypershift")
	r := check.Run(context.Background(), ex)

	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, "openshift/hypershift")
	assert.NotContains(t, r.Message, "Supported OCP")
}

func TestCheckHypershift_CustomPath(t *testing.T) {
	ex := newMockExecutor()
	ex.Set("Client Version: openshift/hypershift: deadbee", nil,
		"/opt/bin/hypershift", "version")

	check := checkHypershift("/opt/bin/hypershift")
	r := check.Run(context.Background(), ex)

	assert.Equal(t, StatusPass, r.Status)
}

func TestCheckHypershift_NotFound(t *testing.T) {
	ex := newMockExecutor()
	ex.Set("", errors.New("exec: not found"), "hypershift", "version")

	check := checkHypershift("hypershift")
	r := check.Run(context.Background(), ex)

	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "not found")
	assert.Contains(t, r.Fix, "hypershift_path")
}

// --- oc check tests ---

func TestCheckOC_Pass(t *testing.T) {
	ex := newMockExecutor()
	ex.Set("Client Version: 4.17.9\nKustomize Version: v5.0.1", nil,
		"oc", "version", "--client")

	check := checkOC()
	r := check.Run(context.Background(), ex)

	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, "4.17.9")
}

func TestCheckOC_TooOld(t *testing.T) {
	ex := newMockExecutor()
	ex.Set("Client Version: 4.9.0", nil, "oc", "version", "--client")

	check := checkOC()
	r := check.Run(context.Background(), ex)

	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "4.9.0")
	assert.Contains(t, r.Message, ">= 4.12.0")
	assert.NotEmpty(t, r.Fix)
}

func TestCheckOC_NotFound(t *testing.T) {
	ex := newMockExecutor()
	ex.Set("", errors.New("exec: not found"), "oc", "version", "--client")

	check := checkOC()
	r := check.Run(context.Background(), ex)

	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "not found")
}

// --- git check tests ---

func TestCheckGit_Present(t *testing.T) {
	ex := newMockExecutor()
	ex.Set("git version 2.43.0", nil, "git", "version")

	check := checkGit()
	r := check.Run(context.Background(), ex)

	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, "2.43.0")
}

func TestCheckGit_Missing(t *testing.T) {
	ex := newMockExecutor()
	ex.Set("", errors.New("exec: not found"), "git", "version")

	check := checkGit()
	r := check.Run(context.Background(), ex)

	assert.Equal(t, StatusWarn, r.Status)
	assert.Contains(t, r.Message, "optional")
}

// --- config record check tests ---

func TestCheckConfigRecord_Missing(t *testing.T) {
	check := checkConfigRecord("", nil)
	r := check.Run(context.Background(), nil)

	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "no configuration record")
	assert.Contains(t, r.Fix, "config edit")
}

func TestCheckConfigRecord_LoadError(t *testing.T) {
	check := checkConfigRecord("/tmp/config.yaml", errors.New("yaml: line 3: mapping values"))
	r := check.Run(context.Background(), nil)

	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "unreadable")
}

func TestCheckConfigRecord_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfigYAML(t.TempDir())), 0o600))

	check := checkConfigRecord(path, nil)
	r := check.Run(context.Background(), nil)

	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, path)
}

func TestCheckConfigRecord_SchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	bad := "region: INVALID\nbase_domain: example.com\ninfra_dir: /tmp\naws_creds_path: /tmp/c\npull_secret_path: /tmp/p\nkubeconfig_dir: /tmp\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o600))

	check := checkConfigRecord(path, nil)
	r := check.Run(context.Background(), nil)

	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "schema validation")
	assert.Contains(t, r.Fix, "config validate")
}

// --- file and directory check tests ---

func TestCheckReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte("[default]"), 0o600))

	r := checkReadableFile("aws-creds", "aws_creds_path", path, true).Run(context.Background(), nil)
	assert.Equal(t, StatusPass, r.Status)

	r = checkReadableFile("aws-creds", "aws_creds_path", "", true).Run(context.Background(), nil)
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "not set")

	r = checkReadableFile("aws-creds", "aws_creds_path", "/nonexistent/credentials", true).Run(context.Background(), nil)
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "not a readable file")
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()

	r := checkDirectory("instance-root", "infra_dir", dir).Run(context.Background(), nil)
	assert.Equal(t, StatusPass, r.Status)

	r = checkDirectory("instance-root", "infra_dir", filepath.Join(dir, "missing")).Run(context.Background(), nil)
	assert.Equal(t, StatusWarn, r.Status)
	assert.Contains(t, r.Message, "created on first use")

	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	r = checkDirectory("instance-root", "infra_dir", file).Run(context.Background(), nil)
	assert.Equal(t, StatusFail, r.Status)
}

// --- release controller check tests ---

func TestCheckReleaseController_Reachable(t *testing.T) {
	check := checkReleaseController(&fakeResolver{pullSpec: "quay.io/openshift-release-dev/ocp-release:4.20.1-x86_64"})
	r := check.Run(context.Background(), nil)

	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, "4.20.1")
}

func TestCheckReleaseController_Unreachable(t *testing.T) {
	check := checkReleaseController(&fakeResolver{err: errors.New("dial tcp: timeout")})
	r := check.Run(context.Background(), nil)

	assert.Equal(t, StatusWarn, r.Status)
	assert.Contains(t, r.Message, "unreachable")
}

// --- RunAll integration tests ---

func TestRunAll_AllPass(t *testing.T) {
	home := t.TempDir()
	confDir := filepath.Join(home, ".config")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", confDir)

	workDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(confDir, "infra"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "infra", "config.yaml"),
		[]byte(validConfigYAML(workDir)), 0o600))

	ex := newMockExecutor()
	ex.Set("Client Version: openshift/hypershift: 1bb8828", nil, "hypershift", "version")
	ex.Set("Client Version: 4.17.9", nil, "oc", "version", "--client")
	ex.Set("git version 2.43.0", nil, "git", "version")

	summary := RunAll(context.Background(), ex, &fakeResolver{pullSpec: "quay.io/ocp-release:4.20.1"})

	require.Len(t, summary.Results, 9)
	assert.Equal(t, 9, summary.TotalPass, "results: %+v", summary.Results)
	assert.Equal(t, 0, summary.TotalFail)
	assert.False(t, summary.HasFailure)
}

func TestRunAll_NothingConfigured(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	ex := newMockExecutor() // every command missing

	summary := RunAll(context.Background(), ex, &fakeResolver{err: errors.New("timeout")})

	require.Len(t, summary.Results, 9)
	assert.True(t, summary.HasFailure)
	assert.Equal(t, 2, summary.TotalWarn) // git and release controller degrade to warnings
	assert.Equal(t, 7, summary.TotalFail)
}

// validConfigYAML returns a config record whose paths all exist under dir.
func validConfigYAML(dir string) string {
	creds := filepath.Join(dir, "credentials")
	pullSecret := filepath.Join(dir, "pull-secret.json")
	_ = os.WriteFile(creds, []byte("[default]"), 0o600)
	_ = os.WriteFile(pullSecret, []byte("{}"), 0o600)
	return fmt.Sprintf(`region: us-east-1
base_domain: example.com
infra_dir: %s
aws_creds_path: %s
pull_secret_path: %s
kubeconfig_dir: %s
oidc_s3_bucket_name: oidc-bucket
oidc_s3_region: us-east-1
`, dir, creds, pullSecret, dir)
}

// --- StatusIcon tests ---

func TestStatusIcon(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "[PASS]", StatusIcon(StatusPass))
	assert.Equal(t, "[FAIL]", StatusIcon(StatusFail))
	assert.Equal(t, "[WARN]", StatusIcon(StatusWarn))
	assert.Equal(t, "[SKIP]", StatusIcon(StatusSkip))
}
