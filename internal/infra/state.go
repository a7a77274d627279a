package infra

import (
	"fmt"
	"regexp"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/store"
)

// State is an instance's position in the lifecycle, classified purely from
// which descriptor artifacts exist on disk. The process may be restarted
// between steps, so no in-memory flag ever contributes.
type State string

const (
	// StateAbsent means no instance directory exists.
	StateAbsent State = "absent"
	// StateInfraPending means the directory exists but infrastructure
	// provisioning has not completed, either never started or failed.
	StateInfraPending State = "infra-pending"
	// StateInfraCreated means infrastructure exists but IAM does not.
	StateInfraCreated State = "infra-created"
	// StateIamOnly means an IAM descriptor exists without an infra
	// descriptor. Creation never produces this; it shows up only when
	// someone edited the directory by hand.
	StateIamOnly State = "iam-only"
	// StateFullyCreated means both descriptors exist.
	StateFullyCreated State = "fully-created"
)

// Classify maps artifact presence to a lifecycle state.
func Classify(inst store.Instance) State {
	switch {
	case inst.HasInfra && inst.HasIam:
		return StateFullyCreated
	case inst.HasInfra:
		return StateInfraCreated
	case inst.HasIam:
		return StateIamOnly
	default:
		return StateInfraPending
	}
}

// InvalidStateError reports an operation invoked against an instance whose
// state does not support it, like destroying an instance that was never
// created.
type InvalidStateError struct {
	Name  string
	State State
	Op    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s instance %q in state %s", e.Op, e.Name, e.State)
}

// Instance names become directory names, cloud resource tags, and DNS
// labels, so they are restricted to lowercase alphanumerics and hyphens.
var nameRE = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateName rejects names that cannot serve as instance identifiers.
func ValidateName(name string) error {
	if !nameRE.MatchString(name) {
		return &config.ConfigError{Field: "name", Reason: "must be lowercase alphanumerics and hyphens, starting with an alphanumeric"}
	}
	return nil
}
