// Package hypershift wraps the hypershift binary. Each method builds one
// invocation, runs it through the injected runner, and hands back whatever
// the tool produced; descriptor artifacts are returned as raw bytes so the
// caller can persist exactly what the tool emitted.
package hypershift

import (
	"context"
	"strconv"

	"github.com/csrwng/infra/internal/invoke"
)

const (
	annotationCleanupCloudResources = "hypershift.openshift.io/cleanup-cloud-resources=true"
	annotationCPOV2                 = "hypershift.openshift.io/cpo-v2=true"
)

// CLI shells out to a resolved hypershift binary.
type CLI struct {
	path   string
	runner invoke.Runner
}

// NewCLI returns a CLI invoking the binary at path through runner.
func NewCLI(path string, runner invoke.Runner) *CLI {
	return &CLI{path: path, runner: runner}
}

// CreateInfraParams carries the inputs for provisioning AWS infrastructure.
type CreateInfraParams struct {
	AWSCredsPath string
	BaseDomain   string
	InfraID      string
	Name         string
	Region       string
	Connectivity Connectivity
}

// CreateInfra provisions infrastructure and returns the parsed descriptor
// together with the raw JSON the tool wrote to stdout.
func (c *CLI) CreateInfra(ctx context.Context, p CreateInfraParams) (InfraDescriptor, []byte, error) {
	args := []string{
		"create", "infra", "aws",
		"--aws-creds", p.AWSCredsPath,
		"--base-domain", p.BaseDomain,
		"--infra-id", p.InfraID,
		"--name", p.Name,
		"--region", p.Region,
	}
	if flag := p.Connectivity.flag(); flag != "" {
		args = append(args, flag)
	}
	spec := invoke.Spec{Path: c.path, Args: args}
	res, err := c.runner.Run(ctx, spec)
	if err != nil {
		return InfraDescriptor{}, nil, err
	}
	desc, err := ParseInfraDescriptor([]byte(res.Stdout), invoke.CommandLine(spec)+" output")
	if err != nil {
		return InfraDescriptor{}, nil, err
	}
	return desc, []byte(res.Stdout), nil
}

// CreateIAMParams carries the inputs for provisioning IAM resources. The
// zone IDs come from the infrastructure descriptor of the same instance.
type CreateIAMParams struct {
	AWSCredsPath     string
	InfraID          string
	Region           string
	OIDCBucketName   string
	OIDCBucketRegion string
	LocalZoneID      string
	PublicZoneID     string
	PrivateZoneID    string
}

// CreateIAM provisions IAM resources and returns the parsed descriptor
// together with the raw JSON the tool wrote to stdout.
func (c *CLI) CreateIAM(ctx context.Context, p CreateIAMParams) (IAMDescriptor, []byte, error) {
	spec := invoke.Spec{Path: c.path, Args: []string{
		"create", "iam", "aws",
		"--aws-creds", p.AWSCredsPath,
		"--infra-id", p.InfraID,
		"--oidc-storage-provider-s3-bucket-name", p.OIDCBucketName,
		"--oidc-storage-provider-s3-region", p.OIDCBucketRegion,
		"--region", p.Region,
		"--local-zone-id", p.LocalZoneID,
		"--public-zone-id", p.PublicZoneID,
		"--private-zone-id", p.PrivateZoneID,
	}}
	res, err := c.runner.Run(ctx, spec)
	if err != nil {
		return IAMDescriptor{}, nil, err
	}
	desc, err := ParseIAMDescriptor([]byte(res.Stdout), invoke.CommandLine(spec)+" output")
	if err != nil {
		return IAMDescriptor{}, nil, err
	}
	return desc, []byte(res.Stdout), nil
}

// DestroyInfra tears down the infrastructure a descriptor records.
func (c *CLI) DestroyInfra(ctx context.Context, awsCredsPath string, desc InfraDescriptor) error {
	_, err := c.runner.Run(ctx, invoke.Spec{Path: c.path, Args: []string{
		"destroy", "infra", "aws",
		"--aws-creds", awsCredsPath,
		"--base-domain", desc.BaseDomain,
		"--infra-id", desc.InfraID,
		"--name", desc.Name,
		"--region", desc.Region,
	}})
	return err
}

// DestroyIAM tears down the IAM resources a descriptor records.
func (c *CLI) DestroyIAM(ctx context.Context, awsCredsPath string, desc IAMDescriptor) error {
	_, err := c.runner.Run(ctx, invoke.Spec{Path: c.path, Args: []string{
		"destroy", "iam", "aws",
		"--aws-creds", awsCredsPath,
		"--infra-id", desc.InfraID,
		"--region", desc.Region,
	}})
	return err
}

// RenderParams carries the inputs for rendering a cluster manifest.
type RenderParams struct {
	AWSCredsPath   string
	PullSecretPath string
	Name           string
	InfraID        string
	Region         string
	BaseDomain     string
	InfraJSONPath  string
	IAMJSONPath    string
	ReleaseImage   string

	InstanceType             string
	NodePoolReplicas         int
	EndpointAccess           EndpointAccess
	ControlPlaneAvailability AvailabilityPolicy
	InfraAvailability        AvailabilityPolicy

	// ExternalDNSDomain applies only when the access mode has a private
	// side; the caller leaves it empty otherwise.
	ExternalDNSDomain string
	// ControlPlaneOperatorImage overrides the operator image, used to run
	// a locally built operator.
	ControlPlaneOperatorImage string
	// CPOV2 opts the cluster into the v2 control plane operator.
	CPOV2 bool
}

// RenderCluster renders the HostedCluster manifests and returns the YAML
// the tool wrote to stdout. Nothing is applied.
func (c *CLI) RenderCluster(ctx context.Context, p RenderParams) ([]byte, error) {
	args := []string{
		"create", "cluster", "aws",
		"--render",
		"--aws-creds", p.AWSCredsPath,
		"--instance-type", p.InstanceType,
		"--region", p.Region,
		"--control-plane-availability-policy", string(p.ControlPlaneAvailability),
		"--infra-availability-policy", string(p.InfraAvailability),
		"--auto-repair",
		"--generate-ssh",
		"--name", p.Name,
		"--endpoint-access", string(p.EndpointAccess),
		"--node-pool-replicas", strconv.Itoa(p.NodePoolReplicas),
		"--pull-secret", p.PullSecretPath,
		"--infra-id", p.InfraID,
		"--infra-json", p.InfraJSONPath,
		"--iam-json", p.IAMJSONPath,
		"--base-domain", p.BaseDomain,
	}
	if p.ExternalDNSDomain != "" {
		args = append(args, "--external-dns-domain", p.ExternalDNSDomain)
	}
	args = append(args, "--release-image", p.ReleaseImage)
	if p.ControlPlaneOperatorImage != "" {
		args = append(args, "--control-plane-operator-image", p.ControlPlaneOperatorImage)
	}
	args = append(args, "--annotations", annotationCleanupCloudResources)
	if p.CPOV2 {
		args = append(args, "--annotations", annotationCPOV2)
	}
	args = append(args, "--render-sensitive")

	res, err := c.runner.Run(ctx, invoke.Spec{Path: c.path, Args: args})
	if err != nil {
		return nil, err
	}
	return []byte(res.Stdout), nil
}

// Kubeconfig generates an admin kubeconfig for a hosted cluster and returns
// the bytes the tool wrote to stdout.
func (c *CLI) Kubeconfig(ctx context.Context, clusterName string) ([]byte, error) {
	res, err := c.runner.Run(ctx, invoke.Spec{Path: c.path, Args: []string{
		"create", "kubeconfig", "--name", clusterName,
	}})
	if err != nil {
		return nil, err
	}
	return []byte(res.Stdout), nil
}
