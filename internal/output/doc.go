// Package output provides styled terminal output utilities for infra.
//
// It wraps charmbracelet/log for structured logging and charmbracelet/lipgloss
// for the few styled fragments commands print themselves. Status messages go
// through the helpers here; tables and raw artifacts print straight to stdout
// so they stay pipeable.
//
// Features:
//   - Styled logging with prefixes (Info, Warn, Error, Debug)
//   - JSON output mode for scripting (--json flag)
//   - NO_COLOR environment variable support
//   - Verbose/debug mode via -v flag
package output
