package wizard

import (
	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/hypershift"
)

// CreateInputs captures the answers of the create flow.
type CreateInputs struct {
	Name         string
	Region       string
	BaseDomain   string
	Connectivity hypershift.Connectivity
}

// connectivityLabels maps the presented choices to connectivity modes.
var connectivityLabels = map[string]hypershift.Connectivity{
	"Public":      hypershift.ConnectivityPublic,
	"Proxy":       hypershift.ConnectivityProxy,
	"SecureProxy": hypershift.ConnectivitySecureProxy,
	"NAT gateway": hypershift.ConnectivityNAT,
}

var connectivityChoices = []string{"Public", "Proxy", "SecureProxy", "NAT gateway"}

// CreateWizard drives the interactive create flow.
type CreateWizard struct {
	prompter Prompter
}

// NewCreateWizard returns a create wizard; if p is nil, survey is used.
func NewCreateWizard(p Prompter) *CreateWizard {
	if p == nil {
		p = NewSurveyPrompter()
	}
	return &CreateWizard{prompter: p}
}

// Run collects the create inputs, defaulting from the resolved config.
func (w *CreateWizard) Run(defaults config.ResolvedConfig) (*CreateInputs, error) {
	in := &CreateInputs{}
	var err error

	in.Name, err = w.prompter.Input("Name", defaults.Name, ValidateInstanceName)
	if err != nil {
		return nil, promptErr(err)
	}
	in.Region, err = w.prompter.Input("Region", defaults.Region, ValidateNonEmpty)
	if err != nil {
		return nil, promptErr(err)
	}
	in.BaseDomain, err = w.prompter.Input("Base domain", defaults.BaseDomain, ValidateNonEmpty)
	if err != nil {
		return nil, promptErr(err)
	}
	choice, err := w.prompter.Select("External traffic", connectivityChoices, "Public")
	if err != nil {
		return nil, promptErr(err)
	}
	in.Connectivity = connectivityLabels[choice]
	return in, nil
}
