// Package audit appends one JSON line per invocation to a local audit log,
// so an operator can reconstruct what was run against which instance and
// when. The history command reads it back.
package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event records one CLI invocation.
type Event struct {
	Timestamp     string   `json:"timestamp"`
	Operation     string   `json:"operation"`
	Instance      string   `json:"instance,omitempty"`
	Args          []string `json:"args"`
	Result        string   `json:"result"`
	ExitCode      int      `json:"exitCode"`
	DurationMs    int64    `json:"durationMs"`
	CorrelationID string   `json:"correlationId"`
}

// commandGroups have subcommands; the operation name includes both words.
var commandGroups = map[string]bool{
	"cluster": true,
	"config":  true,
}

// BuildEvent derives an event from the raw process arguments.
func BuildEvent(args []string, result string, exitCode int, duration time.Duration) Event {
	op, instance := inferFromArgs(args)
	return Event{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Operation:     op,
		Instance:      instance,
		Args:          args,
		Result:        result,
		ExitCode:      exitCode,
		DurationMs:    duration.Milliseconds(),
		CorrelationID: uuid.NewString(),
	}
}

// Write appends the event to the audit log, creating it on first use.
func Write(event Event) error {
	path, err := auditPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// Read returns every event in the audit log, oldest first. Unparseable
// lines are skipped rather than failing the whole read.
func Read() ([]Event, error) {
	path, err := auditPath()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var out []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event Event
		if err := json.Unmarshal([]byte(line), &event); err == nil {
			out = append(out, event)
		}
	}
	return out, scanner.Err()
}

// auditPath keeps the log next to the configuration file.
func auditPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "infra", "audit.log"), nil
}

// inferFromArgs extracts the operation ("create", "cluster render", ...)
// and the instance name from the raw arguments. The instance is the first
// non-flag argument after the operation words; commands without one leave
// it empty.
func inferFromArgs(args []string) (operation, instance string) {
	operation = "root"
	var words []string
	for i := 1; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			continue
		}
		words = append(words, args[i])
	}
	if len(words) == 0 {
		return operation, ""
	}
	operation = words[0]
	rest := words[1:]
	if commandGroups[operation] && len(rest) > 0 {
		operation += " " + rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		instance = rest[0]
	}
	return operation, instance
}
