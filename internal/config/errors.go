package config

import "fmt"

// ConfigError reports an invalid or missing configuration field. It is fatal
// and surfaced immediately; nothing retries configuration resolution.
type ConfigError struct {
	Field  string // on-disk key, e.g. "aws_creds_path"
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config field %q: %s", e.Field, e.Reason)
}
