// Package cluster renders, applies, and manages hosted cluster manifests
// for provisioned instances. It reuses the instance store for artifact
// placement and reads the provisioning descriptors for identifiers; it
// never talks to the cloud itself.
package cluster

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/hypershift"
	"github.com/csrwng/infra/internal/invoke"
	"github.com/csrwng/infra/internal/store"
)

// Renderer renders hosted cluster manifests. *hypershift.CLI satisfies it.
type Renderer interface {
	RenderCluster(ctx context.Context, p hypershift.RenderParams) ([]byte, error)
}

// KubeconfigGenerator produces admin kubeconfigs for hosted clusters.
// *hypershift.CLI satisfies it.
type KubeconfigGenerator interface {
	Kubeconfig(ctx context.Context, clusterName string) ([]byte, error)
}

// API submits and removes cluster objects on the management cluster.
// *oc.CLI satisfies it.
type API interface {
	Apply(ctx context.Context, manifestPath string) (string, error)
	DeleteHostedCluster(ctx context.Context, name string) error
	ListHostedClusters(ctx context.Context) ([]string, error)
}

// Orchestrator sequences cluster manifest operations for instances.
type Orchestrator struct {
	store    *store.Store
	renderer Renderer
	kubegen  KubeconfigGenerator
	api      API
	runner   invoke.Runner
	log      *log.Logger
}

// NewOrchestrator returns an orchestrator over the given store and
// collaborators. runner is used for the local operator image lookup only.
func NewOrchestrator(st *store.Store, renderer Renderer, kubegen KubeconfigGenerator, api API, runner invoke.Runner, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{store: st, renderer: renderer, kubegen: kubegen, api: api, runner: runner, log: logger}
}

// RenderOptions carries the per-render choices an operator makes.
type RenderOptions struct {
	ReleaseImage             string
	InstanceType             string
	NodePoolReplicas         int
	EndpointAccess           hypershift.EndpointAccess
	ControlPlaneAvailability hypershift.AvailabilityPolicy
	InfraAvailability        hypershift.AvailabilityPolicy
	// CPOV2 selects the v2 control plane operator.
	CPOV2 bool
	// LocalCPO runs a locally built control plane operator image, derived
	// from the configured repo's HEAD.
	LocalCPO bool
}

// Render renders the cluster manifest for the instance and persists it as
// the instance's cluster.yaml. Identity fields (name, infra ID, region,
// base domain) are read from the infrastructure descriptor, not from the
// config, so the manifest always matches what was actually provisioned.
// Returns the manifest artifact path.
func (o *Orchestrator) Render(ctx context.Context, cfg config.ResolvedConfig, name string, opts RenderOptions) (string, error) {
	desc, err := o.readInfraDescriptor(name, "render")
	if err != nil {
		return "", err
	}
	iamPath := o.store.ArtifactPath(name, store.KindIam)
	if has, err := o.store.HasArtifact(name, store.KindIam); err != nil {
		return "", err
	} else if !has {
		return "", &MissingArtifactError{Instance: name, Artifact: string(store.KindIam), Op: "render"}
	}

	params := hypershift.RenderParams{
		AWSCredsPath:             cfg.AWSCredsPath,
		PullSecretPath:           cfg.PullSecretPath,
		Name:                     desc.Name,
		InfraID:                  desc.InfraID,
		Region:                   desc.Region,
		BaseDomain:               desc.BaseDomain,
		InfraJSONPath:            o.store.ArtifactPath(name, store.KindInfra),
		IAMJSONPath:              iamPath,
		ReleaseImage:             opts.ReleaseImage,
		InstanceType:             opts.InstanceType,
		NodePoolReplicas:         opts.NodePoolReplicas,
		EndpointAccess:           opts.EndpointAccess,
		ControlPlaneAvailability: opts.ControlPlaneAvailability,
		InfraAvailability:        opts.InfraAvailability,
		CPOV2:                    opts.CPOV2,
	}
	// An external DNS domain only makes sense when a private endpoint
	// needs a name published for it.
	if opts.EndpointAccess.HasPrivate() && cfg.ExternalDNSDomain != "" {
		params.ExternalDNSDomain = cfg.ExternalDNSDomain
	}
	if opts.LocalCPO {
		if cfg.HypershiftRepoDir == "" {
			return "", &config.ConfigError{Field: "hypershift_repo_dir", Reason: "required for a local control plane operator"}
		}
		if cfg.LocalCPOImagePrefix == "" {
			return "", &config.ConfigError{Field: "local_cpo_image_prefix", Reason: "required for a local control plane operator"}
		}
		image, err := localCPOImage(ctx, o.runner, cfg.HypershiftRepoDir, cfg.LocalCPOImagePrefix)
		if err != nil {
			return "", err
		}
		params.ControlPlaneOperatorImage = image
	}

	o.log.Info("rendering cluster manifest", "instance", name, "releaseImage", opts.ReleaseImage)
	manifest, err := o.renderer.RenderCluster(ctx, params)
	if err != nil {
		return "", err
	}
	if err := o.store.WriteArtifact(name, store.KindManifest, manifest); err != nil {
		return "", err
	}
	return o.store.ArtifactPath(name, store.KindManifest), nil
}

// Apply submits the instance's rendered manifest to the management cluster
// and returns whatever the tool printed about the objects it touched.
func (o *Orchestrator) Apply(ctx context.Context, name string) (string, error) {
	has, err := o.store.HasArtifact(name, store.KindManifest)
	if err != nil {
		return "", err
	}
	if !has {
		return "", &MissingArtifactError{Instance: name, Artifact: string(store.KindManifest), Op: "apply"}
	}
	o.log.Info("applying cluster manifest", "instance", name)
	return o.api.Apply(ctx, o.store.ArtifactPath(name, store.KindManifest))
}

// Kubeconfig generates the admin kubeconfig for the instance's hosted
// cluster and persists it under the kubeconfig directory. Returns the
// kubeconfig path.
func (o *Orchestrator) Kubeconfig(ctx context.Context, name string) (string, error) {
	has, err := o.store.HasArtifact(name, store.KindManifest)
	if err != nil {
		return "", err
	}
	if !has {
		return "", &MissingArtifactError{Instance: name, Artifact: string(store.KindManifest), Op: "kubeconfig"}
	}
	o.log.Info("generating kubeconfig", "instance", name)
	data, err := o.kubegen.Kubeconfig(ctx, name)
	if err != nil {
		return "", err
	}
	if err := o.store.WriteArtifact(name, store.KindKubeconfig, data); err != nil {
		return "", err
	}
	return o.store.ArtifactPath(name, store.KindKubeconfig), nil
}

// Delete requests deletion of the instance's hosted cluster object. It is
// independent of infrastructure destroy: local artifacts stay so the
// cluster can be re-applied.
func (o *Orchestrator) Delete(ctx context.Context, name string) error {
	o.log.Info("deleting hosted cluster", "instance", name)
	return o.api.DeleteHostedCluster(ctx, name)
}

// ListClusters returns the hosted cluster names on the management cluster.
func (o *Orchestrator) ListClusters(ctx context.Context) ([]string, error) {
	return o.api.ListHostedClusters(ctx)
}

func (o *Orchestrator) readInfraDescriptor(name, op string) (hypershift.InfraDescriptor, error) {
	has, err := o.store.HasArtifact(name, store.KindInfra)
	if err != nil {
		return hypershift.InfraDescriptor{}, err
	}
	if !has {
		return hypershift.InfraDescriptor{}, &MissingArtifactError{Instance: name, Artifact: string(store.KindInfra), Op: op}
	}
	data, err := o.store.ReadArtifact(name, store.KindInfra)
	if err != nil {
		return hypershift.InfraDescriptor{}, err
	}
	return hypershift.ParseInfraDescriptor(data, o.store.ArtifactPath(name, store.KindInfra))
}
