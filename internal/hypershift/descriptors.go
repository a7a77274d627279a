package hypershift

import (
	"encoding/json"
	"errors"

	"github.com/csrwng/infra/internal/invoke"
)

// InfraDescriptor is the JSON document create-infra emits. Only the fields
// later steps consume are mapped here; the artifact on disk keeps the full
// document byte for byte.
type InfraDescriptor struct {
	InfraID       string `json:"infraID"`
	Name          string `json:"Name"`
	Region        string `json:"region"`
	BaseDomain    string `json:"baseDomain"`
	LocalZoneID   string `json:"localZoneID"`
	PublicZoneID  string `json:"publicZoneID"`
	PrivateZoneID string `json:"privateZoneID"`
}

// IAMDescriptor is the JSON document create-iam emits.
type IAMDescriptor struct {
	InfraID string `json:"infraID"`
	Region  string `json:"region"`
}

var errNoInfraID = errors.New("descriptor has no infraID")

// ParseInfraDescriptor decodes an infrastructure descriptor. source names
// where the bytes came from, a command line or an artifact path, and is
// carried into the error when decoding fails.
func ParseInfraDescriptor(data []byte, source string) (InfraDescriptor, error) {
	var desc InfraDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return InfraDescriptor{}, &invoke.ParseError{Source: source, Err: err}
	}
	if desc.InfraID == "" {
		return InfraDescriptor{}, &invoke.ParseError{Source: source, Err: errNoInfraID}
	}
	return desc, nil
}

// ParseIAMDescriptor decodes an IAM descriptor.
func ParseIAMDescriptor(data []byte, source string) (IAMDescriptor, error) {
	var desc IAMDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return IAMDescriptor{}, &invoke.ParseError{Source: source, Err: err}
	}
	if desc.InfraID == "" {
		return IAMDescriptor{}, &invoke.ParseError{Source: source, Err: errNoInfraID}
	}
	return desc, nil
}
