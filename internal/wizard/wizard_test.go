package wizard

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPrompter struct {
	answers map[string]interface{}
	calls   []string
	errAt   string
}

func (m *mockPrompter) Input(label, defaultValue string, validator survey.Validator) (string, error) {
	m.calls = append(m.calls, label)
	if m.errAt == label {
		return "", ErrCanceled
	}
	v, ok := m.answers[label]
	if !ok {
		return defaultValue, nil
	}
	answer := fmt.Sprintf("%v", v)
	if validator != nil {
		if err := validator(answer); err != nil {
			return "", fmt.Errorf("answer %q rejected: %w", answer, err)
		}
	}
	return answer, nil
}

func (m *mockPrompter) Select(label string, _ []string, defaultValue string) (string, error) {
	m.calls = append(m.calls, label)
	if m.errAt == label {
		return "", ErrCanceled
	}
	if v, ok := m.answers[label]; ok {
		return fmt.Sprintf("%v", v), nil
	}
	return defaultValue, nil
}

func (m *mockPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	m.calls = append(m.calls, label)
	if m.errAt == label {
		return false, ErrCanceled
	}
	if v, ok := m.answers[label]; ok {
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return defaultValue, nil
}

func TestValidateNonEmpty(t *testing.T) {
	require.NoError(t, ValidateNonEmpty("demo"))
	require.Error(t, ValidateNonEmpty(""))
	require.Error(t, ValidateNonEmpty("   "))
}

func TestValidateInstanceName(t *testing.T) {
	require.NoError(t, ValidateInstanceName("demo-01"))
	require.Error(t, ValidateInstanceName("Demo"))
	require.Error(t, ValidateInstanceName("-demo"))
	require.Error(t, ValidateInstanceName(""))

	require.NoError(t, ValidateOptionalInstanceName(""))
	require.Error(t, ValidateOptionalInstanceName("Demo"))
}

func TestValidateNodeCount(t *testing.T) {
	require.NoError(t, ValidateNodeCount("2"))
	require.Error(t, ValidateNodeCount("0"))
	require.Error(t, ValidateNodeCount("-1"))
	require.Error(t, ValidateNodeCount("two"))
}

func TestSelectOne(t *testing.T) {
	mock := &mockPrompter{answers: map[string]interface{}{"Select an instance": "beta"}}
	value, err := SelectOne(mock, "Select an instance", []string{"alpha", "beta"})
	require.NoError(t, err)
	assert.Equal(t, "beta", value)

	_, err = SelectOne(mock, "Select an instance", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to select")
}

func TestSelectOne_Canceled(t *testing.T) {
	mock := &mockPrompter{errAt: "Select an instance"}
	_, err := SelectOne(mock, "Select an instance", []string{"alpha"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCanceled))
}
