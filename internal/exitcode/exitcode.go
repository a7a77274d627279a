// Package exitcode maps the error taxonomy onto process exit codes so
// scripts wrapping the CLI can branch on failure class.
package exitcode

import (
	"errors"
	"strings"

	"github.com/csrwng/infra/internal/cluster"
	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/infra"
	"github.com/csrwng/infra/internal/invoke"
	"github.com/csrwng/infra/internal/store"
)

const (
	OK              = 0
	Generic         = 1
	Config          = 2
	Path            = 3
	ExternalCommand = 4
	OutputParse     = 5
	InvalidState    = 6
	MissingArtifact = 7
)

type Error struct {
	Code  int
	Cause error
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Cause: err}
}

func Of(err error) int {
	if err == nil {
		return OK
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return Config
	}
	var pathErr *store.PathError
	if errors.As(err, &pathErr) {
		return Path
	}
	var cmdErr *invoke.CommandError
	if errors.As(err, &cmdErr) {
		return ExternalCommand
	}
	var parseErr *invoke.ParseError
	if errors.As(err, &parseErr) {
		return OutputParse
	}
	var stateErr *infra.InvalidStateError
	if errors.As(err, &stateErr) {
		return InvalidState
	}
	var missingErr *cluster.MissingArtifactError
	if errors.As(err, &missingErr) {
		return MissingArtifact
	}

	// Fallback: string-based classification for errors not yet wrapped with
	// typed codes. Each case here is a candidate for future replacement
	// with a typed error.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "exit status"):
		return ExternalCommand
	case strings.Contains(msg, "config"):
		return Config
	case strings.Contains(msg, "no such file"), strings.Contains(msg, "permission denied"):
		return Path
	default:
		return Generic
	}
}
