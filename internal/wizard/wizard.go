// Package wizard implements the interactive prompt flows. Every flow runs
// against the Prompter interface so tests can script answers; the survey
// implementation is only exercised by a human at a terminal.
package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/csrwng/infra/internal/infra"
)

// ErrCanceled is returned when the user aborts a wizard with Ctrl+C.
var ErrCanceled = terminal.InterruptErr

// ValidateNonEmpty ensures a required value is provided.
func ValidateNonEmpty(value interface{}) error {
	if strings.TrimSpace(fmt.Sprintf("%v", value)) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// ValidateInstanceName enforces the instance naming rules.
func ValidateInstanceName(value interface{}) error {
	return infra.ValidateName(strings.TrimSpace(fmt.Sprintf("%v", value)))
}

// ValidateOptionalInstanceName accepts an empty value, otherwise enforces
// the instance naming rules.
func ValidateOptionalInstanceName(value interface{}) error {
	v := strings.TrimSpace(fmt.Sprintf("%v", value))
	if v == "" {
		return nil
	}
	return infra.ValidateName(v)
}

// ValidateNodeCount ensures the value is a positive integer.
func ValidateNodeCount(value interface{}) error {
	v := strings.TrimSpace(fmt.Sprintf("%v", value))
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// Prompter abstracts user interaction for testing.
type Prompter interface {
	Input(label, defaultValue string, validator survey.Validator) (string, error)
	Select(label string, options []string, defaultValue string) (string, error)
	Confirm(label string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter with survey/v2.
type SurveyPrompter struct{}

// NewSurveyPrompter returns a survey-based prompter.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

func (p *SurveyPrompter) Input(label, defaultValue string, validator survey.Validator) (string, error) {
	var value string
	prompt := &survey.Input{Message: label, Default: defaultValue}
	var err error
	if validator != nil {
		err = survey.AskOne(prompt, &value, survey.WithValidator(validator))
	} else {
		err = survey.AskOne(prompt, &value)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (p *SurveyPrompter) Select(label string, options []string, defaultValue string) (string, error) {
	var value string
	err := survey.AskOne(&survey.Select{
		Message: label,
		Options: options,
		Default: defaultValue,
	}, &value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (p *SurveyPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	var value bool
	err := survey.AskOne(&survey.Confirm{
		Message: label,
		Default: defaultValue,
	}, &value)
	if err != nil {
		return false, err
	}
	return value, nil
}

// SelectOne prompts for one of options with the given message. It is the
// shared picker for instances and hosted clusters.
func SelectOne(p Prompter, message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to select from")
	}
	value, err := p.Select(message, options, options[0])
	if err != nil {
		return "", promptErr(err)
	}
	return value, nil
}

func promptErr(err error) error {
	if errors.Is(err, ErrCanceled) {
		return fmt.Errorf("wizard canceled: %w", ErrCanceled)
	}
	return err
}
