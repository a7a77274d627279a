package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	// Reset state
	Init(false, false)
	assert.False(t, Verbose)
	assert.False(t, JSONMode)

	Init(true, true)
	assert.True(t, Verbose)
	assert.True(t, JSONMode)

	// Clean up
	Init(false, false)
}

func TestNoColor(t *testing.T) {
	// Save original
	orig, hadOrig := os.LookupEnv("NO_COLOR")
	defer func() {
		if hadOrig {
			os.Setenv("NO_COLOR", orig)
		} else {
			os.Unsetenv("NO_COLOR")
		}
	}()

	os.Unsetenv("NO_COLOR")
	assert.False(t, NoColor())

	os.Setenv("NO_COLOR", "1")
	assert.True(t, NoColor())

	os.Setenv("NO_COLOR", "")
	assert.True(t, NoColor()) // any value, even empty, means no color
}

func TestJSONResult(t *testing.T) {
	tests := []struct {
		name     string
		result   JSONResult
		wantKeys []string
	}{
		{
			name:     "ok with data",
			result:   JSONResult{Status: "ok", Data: map[string]string{"instance": "demo"}},
			wantKeys: []string{"status", "data"},
		},
		{
			name:     "error",
			result:   JSONResult{Status: "error", Error: "something failed"},
			wantKeys: []string{"status", "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			err := enc.Encode(tt.result)
			require.NoError(t, err)

			var decoded map[string]interface{}
			err = json.Unmarshal(buf.Bytes(), &decoded)
			require.NoError(t, err)

			for _, key := range tt.wantKeys {
				assert.Contains(t, decoded, key)
			}
			assert.Equal(t, tt.result.Status, decoded["status"])
		})
	}
}

func TestJSONResultOmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(JSONResult{Status: "ok"}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotContains(t, decoded, "data")
	assert.NotContains(t, decoded, "error")
}

func TestJSONModeSuppressesTextHelpers(t *testing.T) {
	Init(false, true)
	defer Init(false, false)

	// In JSON mode the text helpers must stay silent so that the
	// envelope written by JSON() is the only thing on stdout/stderr.
	Info("hidden")
	Warn("hidden")
	Error("hidden")
	Debug("hidden")
	Success("hidden")
	Fail("hidden")
	Step("hidden")
}

func TestLoggerInitializesOnDemand(t *testing.T) {
	loggerMu.Lock()
	logger = nil
	loggerMu.Unlock()

	assert.NotNil(t, Logger())
}
