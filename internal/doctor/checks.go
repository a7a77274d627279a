// Package doctor implements prerequisite checks for infra.
//
// It validates that the required tools (hypershift, oc) are installed, that
// the configuration record exists and passes schema validation, that the
// credential files it points at are readable, and that the release
// controller is reachable.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/releases"
)

// Status represents the outcome of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusWarn Status = "warn"
	StatusSkip Status = "skip"
)

// CheckResult is the outcome of running a single prerequisite check.
type CheckResult struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Status   Status `json:"status"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// Check defines a single prerequisite check.
type Check struct {
	Name     string
	Category string // "tool", "config", "store", "releases"
	Critical bool   // if true, failure => exit code 1
	Run      func(ctx context.Context, exec CmdExecutor) CheckResult
}

// CmdExecutor abstracts command execution for testability.
type CmdExecutor interface {
	// Run executes a command and returns combined stdout+stderr output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// realExecutor runs commands via os/exec.
type realExecutor struct{}

func (r *realExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// NewRealExecutor returns a CmdExecutor backed by os/exec.
func NewRealExecutor() CmdExecutor {
	return &realExecutor{}
}

// Summary holds the aggregated results of all checks.
type Summary struct {
	Results    []CheckResult `json:"results"`
	TotalPass  int           `json:"totalPass"`
	TotalFail  int           `json:"totalFail"`
	TotalWarn  int           `json:"totalWarn"`
	TotalSkip  int           `json:"totalSkip"`
	HasFailure bool          `json:"hasFailure"`
}

// RunAll loads the configuration record, executes all checks, and returns
// a summary. A missing or broken record is reported as a check failure, not
// an error, so doctor always produces a full report.
func RunAll(ctx context.Context, executor CmdExecutor, resolver releases.Resolver) Summary {
	cfg, path, err := config.LoadDefault()
	checks := AllChecks(cfg, path, err, resolver)
	results := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		r := c.Run(ctx, executor)
		r.Category = c.Category
		results = append(results, r)
	}
	return buildSummary(results, checks)
}

func buildSummary(results []CheckResult, checks []Check) Summary {
	s := Summary{Results: results}
	for i, r := range results {
		switch r.Status {
		case StatusPass:
			s.TotalPass++
		case StatusFail:
			s.TotalFail++
			if checks[i].Critical {
				s.HasFailure = true
			}
		case StatusWarn:
			s.TotalWarn++
		case StatusSkip:
			s.TotalSkip++
		}
	}
	return s
}

// AllChecks returns the ordered list of prerequisite checks for the given
// configuration record. cfg is never nil; a missing record arrives as an
// empty config with defaults applied and an empty path.
func AllChecks(cfg *config.Config, configPath string, loadErr error, resolver releases.Resolver) []Check {
	hypershiftPath := cfg.HypershiftPath
	if hypershiftPath == "" {
		hypershiftPath = config.DefaultHypershiftPath
	}
	return []Check{
		checkHypershift(hypershiftPath),
		checkOC(),
		checkGit(),
		checkConfigRecord(configPath, loadErr),
		checkReadableFile("aws-creds", "aws_creds_path", cfg.AWSCredsPath, true),
		checkReadableFile("pull-secret", "pull_secret_path", cfg.PullSecretPath, true),
		checkDirectory("instance-root", "infra_dir", cfg.InstanceRoot),
		checkDirectory("kubeconfig-dir", "kubeconfig_dir", cfg.KubeconfigDir),
		checkReleaseController(resolver),
	}
}

// --- Tool checks ---

func checkHypershift(path string) Check {
	return Check{
		Name:     "hypershift",
		Category: "tool",
		Critical: true,
		Run: func(ctx context.Context, ex CmdExecutor) CheckResult {
			out, err := ex.Run(ctx, path, "version")
			if err != nil {
				return CheckResult{
					Name:    "hypershift",
					Status:  StatusFail,
					Message: fmt.Sprintf("hypershift not found at %q", path),
					Fix:     "Install the hypershift CLI, or point hypershift_path at the binary",
				}
			}
			line := out
			if i := strings.IndexByte(line, '\n'); i >= 0 {
				line = line[:i]
			}
			return CheckResult{
				Name:    "hypershift",
				Status:  StatusPass,
				Message: fmt.Sprintf("hypershift found (%s)", strings.TrimSpace(line)),
			}
		},
	}
}

func checkOC() Check {
	return Check{
		Name:     "oc",
		Category: "tool",
		Critical: true,
		Run: func(ctx context.Context, ex CmdExecutor) CheckResult {
			return checkToolVersion(ctx, ex, "oc", []string{"version", "--client"}, `(\d+\.\d+\.\d+)`, "4.12.0",
				"Install the OpenShift CLI >= 4.12: https://mirror.openshift.com/pub/openshift-v4/clients/ocp/")
		},
	}
}

func checkGit() Check {
	return Check{
		Name:     "git",
		Category: "tool",
		Critical: false, // only needed when building a local control-plane-operator image
		Run: func(ctx context.Context, ex CmdExecutor) CheckResult {
			out, err := ex.Run(ctx, "git", "version")
			if err != nil {
				return CheckResult{
					Name:    "git",
					Status:  StatusWarn,
					Message: "git not found — optional, used to stamp local control-plane-operator images",
					Fix:     "Install Git: https://git-scm.com/downloads",
				}
			}
			re := regexp.MustCompile(`(\d+\.\d+\.\d+)`)
			m := re.FindString(out)
			if m == "" {
				m = "unknown"
			}
			return CheckResult{
				Name:    "git",
				Status:  StatusPass,
				Message: fmt.Sprintf("git %s found", m),
			}
		},
	}
}

// --- Configuration checks ---

func checkConfigRecord(path string, loadErr error) Check {
	return Check{
		Name:     "config",
		Category: "config",
		Critical: true,
		Run: func(_ context.Context, _ CmdExecutor) CheckResult {
			if loadErr != nil {
				return CheckResult{
					Name:    "config",
					Status:  StatusFail,
					Message: fmt.Sprintf("configuration record unreadable: %v", loadErr),
					Fix:     "Run: infra config edit",
				}
			}
			if path == "" {
				return CheckResult{
					Name:    "config",
					Status:  StatusFail,
					Message: "no configuration record found",
					Fix:     "Run: infra config edit",
				}
			}
			if len(config.GetSchema()) > 0 {
				data, err := os.ReadFile(path)
				if err == nil {
					result, verr := config.ValidateYAML(data)
					if verr == nil && !result.Valid {
						first := result.Errors[0]
						return CheckResult{
							Name:    "config",
							Status:  StatusFail,
							Message: fmt.Sprintf("%s fails schema validation: %s: %s", path, first.Field, first.Description),
							Fix:     "Run: infra config validate",
						}
					}
				}
			}
			return CheckResult{
				Name:    "config",
				Status:  StatusPass,
				Message: fmt.Sprintf("configuration record at %s", path),
			}
		},
	}
}

func checkReadableFile(name, field, path string, critical bool) Check {
	return Check{
		Name:     name,
		Category: "config",
		Critical: critical,
		Run: func(_ context.Context, _ CmdExecutor) CheckResult {
			if path == "" {
				return CheckResult{
					Name:    name,
					Status:  StatusFail,
					Message: fmt.Sprintf("%s is not set", field),
					Fix:     "Run: infra config edit",
				}
			}
			expanded := config.ExpandPath(path)
			info, err := os.Stat(expanded)
			if err != nil || info.IsDir() {
				return CheckResult{
					Name:    name,
					Status:  StatusFail,
					Message: fmt.Sprintf("%s points at %s, which is not a readable file", field, expanded),
					Fix:     fmt.Sprintf("Place the file at %s or update %s", expanded, field),
				}
			}
			return CheckResult{
				Name:    name,
				Status:  StatusPass,
				Message: fmt.Sprintf("%s: %s", field, expanded),
			}
		},
	}
}

func checkDirectory(name, field, path string) Check {
	return Check{
		Name:     name,
		Category: "store",
		Critical: false, // created on first use
		Run: func(_ context.Context, _ CmdExecutor) CheckResult {
			if path == "" {
				return CheckResult{
					Name:    name,
					Status:  StatusFail,
					Message: fmt.Sprintf("%s is not set", field),
					Fix:     "Run: infra config edit",
				}
			}
			expanded := config.ExpandPath(path)
			info, err := os.Stat(expanded)
			if err != nil {
				return CheckResult{
					Name:    name,
					Status:  StatusWarn,
					Message: fmt.Sprintf("%s does not exist yet (created on first use)", expanded),
				}
			}
			if !info.IsDir() {
				return CheckResult{
					Name:    name,
					Status:  StatusFail,
					Message: fmt.Sprintf("%s points at %s, which is not a directory", field, expanded),
					Fix:     fmt.Sprintf("Remove %s or update %s", expanded, field),
				}
			}
			return CheckResult{
				Name:    name,
				Status:  StatusPass,
				Message: fmt.Sprintf("%s: %s", field, expanded),
			}
		},
	}
}

// --- Release controller checks ---

func checkReleaseController(resolver releases.Resolver) Check {
	return Check{
		Name:     "release-controller",
		Category: "releases",
		Critical: false, // --release-image bypasses resolution entirely
		Run: func(ctx context.Context, _ CmdExecutor) CheckResult {
			version := releases.Versions[0]
			pullSpec, err := resolver.Resolve(ctx, version, releases.ChannelStable)
			if err != nil {
				return CheckResult{
					Name:    "release-controller",
					Status:  StatusWarn,
					Message: "release controller unreachable; --release-image still works",
					Fix:     "Check network access to " + releases.DefaultBaseURL,
				}
			}
			return CheckResult{
				Name:    "release-controller",
				Status:  StatusPass,
				Message: fmt.Sprintf("release controller reachable (%s stable: %s)", version, pullSpec),
			}
		},
	}
}

// --- Helpers ---

// checkToolVersion runs a command, extracts version via regex, and compares to min version.
func checkToolVersion(ctx context.Context, ex CmdExecutor, tool string, args []string, pattern, minVersion, fix string) CheckResult {
	out, err := ex.Run(ctx, tool, args...)
	if err != nil {
		return CheckResult{
			Name:    tool,
			Status:  StatusFail,
			Message: fmt.Sprintf("%s not found or not in PATH", tool),
			Fix:     fix,
		}
	}

	re := regexp.MustCompile(pattern)
	matches := re.FindStringSubmatch(out)
	if len(matches) < 2 {
		return CheckResult{
			Name:    tool,
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s found but could not parse version from output", tool),
		}
	}

	version := matches[1]
	if !semverGTE(version, minVersion) {
		return CheckResult{
			Name:    tool,
			Status:  StatusFail,
			Message: fmt.Sprintf("%s %s found, but >= %s required", tool, version, minVersion),
			Fix:     fix,
		}
	}

	return CheckResult{
		Name:    tool,
		Status:  StatusPass,
		Message: fmt.Sprintf("%s %s", tool, version),
	}
}

// semverGTE returns true if version >= min (simple major.minor.patch comparison).
func semverGTE(version, min string) bool {
	v := parseSemver(version)
	m := parseSemver(min)
	if v[0] != m[0] {
		return v[0] > m[0]
	}
	if v[1] != m[1] {
		return v[1] > m[1]
	}
	return v[2] >= m[2]
}

func parseSemver(s string) [3]int {
	parts := strings.SplitN(s, ".", 3)
	var result [3]int
	for i := 0; i < 3 && i < len(parts); i++ {
		// Strip any suffix (e.g. "4.12.0-rc1" → "4", "12", "0")
		numStr := strings.SplitN(parts[i], "-", 2)[0]
		numStr = strings.SplitN(numStr, "+", 2)[0]
		n, _ := strconv.Atoi(numStr)
		result[i] = n
	}
	return result
}
