package config

// DefaultHypershiftPath is used when the record does not name a binary;
// a bare name is resolved through PATH.
const DefaultHypershiftPath = "hypershift"

// ApplyDefaults fills in default values for optional fields that were not
// specified in the record. It is called after parsing and before validation.
func ApplyDefaults(cfg *Config) {
	if cfg.HypershiftPath == "" {
		cfg.HypershiftPath = DefaultHypershiftPath
	}
}
