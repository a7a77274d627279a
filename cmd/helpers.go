package cmd

import (
	"github.com/spf13/viper"

	"github.com/csrwng/infra/internal/cluster"
	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/hypershift"
	"github.com/csrwng/infra/internal/infra"
	"github.com/csrwng/infra/internal/invoke"
	"github.com/csrwng/infra/internal/oc"
	"github.com/csrwng/infra/internal/output"
	"github.com/csrwng/infra/internal/store"
)

// ocPath is the management cluster CLI, always resolved through PATH.
const ocPath = "oc"

// requireConfigRecord loads the persisted record and fails when none has
// been written yet.
func requireConfigRecord() (*config.Config, error) {
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, &config.ConfigError{Field: "config", Reason: "no configuration record found; run 'infra config edit'"}
	}
	return cfg, nil
}

// envOverrides fills empty override fields from INFRA_* environment
// variables, so automation can run without flags. Explicit flags win.
func envOverrides(ov config.Overrides) config.Overrides {
	if ov.Name == "" {
		ov.Name = viper.GetString("name")
	}
	if ov.Region == "" {
		ov.Region = viper.GetString("region")
	}
	if ov.BaseDomain == "" {
		ov.BaseDomain = viper.GetString("base_domain")
	}
	if ov.AWSCredsPath == "" {
		ov.AWSCredsPath = viper.GetString("aws_creds_path")
	}
	return ov
}

// resolveConfig merges the record with overrides and fully validates paths
// and binaries. Commands that talk to the provisioning tool go through it.
func resolveConfig(ov config.Overrides) (config.ResolvedConfig, error) {
	record, err := requireConfigRecord()
	if err != nil {
		return config.ResolvedConfig{}, err
	}
	return config.Resolve(record, envOverrides(ov))
}

// storeFromRecord builds the instance store from the record without full
// resolution; listing must work on a machine without the provisioning
// tools installed.
func storeFromRecord() (*store.Store, error) {
	record, err := requireConfigRecord()
	if err != nil {
		return nil, err
	}
	root := config.ExpandPath(record.InstanceRoot)
	if root == "" {
		return nil, &config.ConfigError{Field: "infra_dir", Reason: "required"}
	}
	return store.New(root, config.ExpandPath(record.KubeconfigDir)), nil
}

func newStore(cfg config.ResolvedConfig) *store.Store {
	return store.New(cfg.InstanceRoot, cfg.KubeconfigDir)
}

func newInfraOrchestrator(cfg config.ResolvedConfig) *infra.Orchestrator {
	tool := hypershift.NewCLI(cfg.HypershiftPath, invoke.NewExecRunner())
	return infra.NewOrchestrator(newStore(cfg), tool, output.Logger())
}

func newClusterOrchestrator(cfg config.ResolvedConfig) *cluster.Orchestrator {
	runner := invoke.NewExecRunner()
	hcli := hypershift.NewCLI(cfg.HypershiftPath, runner)
	api := oc.NewCLI(ocPath, runner)
	return cluster.NewOrchestrator(newStore(cfg), hcli, hcli, api, runner, output.Logger())
}
