package hypershift

import (
	"fmt"
	"strings"
)

// Connectivity selects how the provisioned VPC reaches the internet.
type Connectivity string

const (
	ConnectivityPublic      Connectivity = "public"
	ConnectivityProxy       Connectivity = "proxy"
	ConnectivitySecureProxy Connectivity = "secure-proxy"
	ConnectivityNAT         Connectivity = "nat"
)

// Connectivities lists the accepted modes in presentation order.
var Connectivities = []Connectivity{
	ConnectivityPublic,
	ConnectivityProxy,
	ConnectivitySecureProxy,
	ConnectivityNAT,
}

// ParseConnectivity maps a user-supplied value to a connectivity mode.
func ParseConnectivity(s string) (Connectivity, error) {
	for _, c := range Connectivities {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown connectivity %q (valid: public, proxy, secure-proxy, nat)", s)
}

// flag returns the create-infra flag selecting the mode. NAT is the tool's
// default and has no flag.
func (c Connectivity) flag() string {
	switch c {
	case ConnectivityPublic:
		return "--public-only"
	case ConnectivityProxy:
		return "--enable-proxy"
	case ConnectivitySecureProxy:
		return "--enable-secure-proxy"
	}
	return ""
}

// EndpointAccess selects which endpoints the hosted control plane exposes.
// Values are passed to the tool verbatim.
type EndpointAccess string

const (
	EndpointAccessPublic           EndpointAccess = "Public"
	EndpointAccessPublicAndPrivate EndpointAccess = "PublicAndPrivate"
	EndpointAccessPrivate          EndpointAccess = "Private"
)

// EndpointAccessModes lists the accepted modes in presentation order.
var EndpointAccessModes = []EndpointAccess{
	EndpointAccessPublic,
	EndpointAccessPublicAndPrivate,
	EndpointAccessPrivate,
}

// ParseEndpointAccess maps a user-supplied value to an access mode.
func ParseEndpointAccess(s string) (EndpointAccess, error) {
	for _, a := range EndpointAccessModes {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown endpoint access %q (valid: Public, PublicAndPrivate, Private)", s)
}

// HasPrivate reports whether private endpoints are part of the mode, which
// is what decides whether an external DNS domain applies.
func (a EndpointAccess) HasPrivate() bool {
	return a == EndpointAccessPrivate || a == EndpointAccessPublicAndPrivate
}

// AvailabilityPolicy selects replica counts for control plane or
// infrastructure components. Values are passed to the tool verbatim.
type AvailabilityPolicy string

const (
	SingleReplica   AvailabilityPolicy = "SingleReplica"
	HighlyAvailable AvailabilityPolicy = "HighlyAvailable"
)

// AvailabilityPolicies lists the accepted policies in presentation order.
var AvailabilityPolicies = []AvailabilityPolicy{SingleReplica, HighlyAvailable}

// ParseAvailabilityPolicy maps a user-supplied value to a policy.
func ParseAvailabilityPolicy(s string) (AvailabilityPolicy, error) {
	for _, p := range AvailabilityPolicies {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown availability policy %q (valid: SingleReplica, HighlyAvailable)", s)
}
