// Package infra drives the instance lifecycle: creation through the infra
// and IAM provisioning steps, destruction in the reverse order, and state
// classification for listings.
//
// The store is the only record of progress. Every step checks for its
// completion artifact before running and writes it after succeeding, so a
// re-invoked create or destroy resumes exactly where the last one stopped.
package infra

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/csrwng/infra/internal/config"
	"github.com/csrwng/infra/internal/hypershift"
	"github.com/csrwng/infra/internal/store"
)

// ProvisioningTool is the subset of the provisioning CLI the lifecycle
// needs. *hypershift.CLI satisfies it.
type ProvisioningTool interface {
	CreateInfra(ctx context.Context, p hypershift.CreateInfraParams) (hypershift.InfraDescriptor, []byte, error)
	CreateIAM(ctx context.Context, p hypershift.CreateIAMParams) (hypershift.IAMDescriptor, []byte, error)
	DestroyInfra(ctx context.Context, awsCredsPath string, desc hypershift.InfraDescriptor) error
	DestroyIAM(ctx context.Context, awsCredsPath string, desc hypershift.IAMDescriptor) error
}

// Orchestrator sequences the provisioning steps for instances. It issues at
// most one external command at a time; running two orchestrators against
// the same instance concurrently is not supported.
type Orchestrator struct {
	store *store.Store
	tool  ProvisioningTool
	log   *log.Logger

	// newInfraID is swappable so tests get deterministic identifiers.
	newInfraID func(name string) string
}

// NewOrchestrator returns an orchestrator over the given store and tool.
func NewOrchestrator(st *store.Store, tool ProvisioningTool, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{store: st, tool: tool, log: logger, newInfraID: newInfraID}
}

// Create provisions the instance end to end: infrastructure first, then IAM
// resources keyed to it. Steps whose artifact already exists are skipped,
// so re-running after a failure resumes at the failed step. On failure the
// instance is left at the last completed step; nothing is rolled back.
func (o *Orchestrator) Create(ctx context.Context, cfg config.ResolvedConfig, name string, conn hypershift.Connectivity) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := cfg.Require("region", "base_domain", "oidc_s3_bucket_name", "oidc_s3_region"); err != nil {
		return err
	}
	if err := o.store.EnsureInstanceDir(name); err != nil {
		return err
	}

	hasInfra, err := o.store.HasArtifact(name, store.KindInfra)
	if err != nil {
		return err
	}
	if hasInfra {
		o.log.Info("infrastructure already provisioned, skipping", "instance", name)
	} else {
		meta, err := o.ensureMeta(name)
		if err != nil {
			return err
		}
		o.log.Info("creating infrastructure", "instance", name, "infraID", meta.InfraID)
		_, raw, err := o.tool.CreateInfra(ctx, hypershift.CreateInfraParams{
			AWSCredsPath: cfg.AWSCredsPath,
			BaseDomain:   cfg.BaseDomain,
			InfraID:      meta.InfraID,
			Name:         name,
			Region:       cfg.Region,
			Connectivity: conn,
		})
		if err != nil {
			return err
		}
		if err := o.store.WriteArtifact(name, store.KindInfra, raw); err != nil {
			return err
		}
	}

	hasIam, err := o.store.HasArtifact(name, store.KindIam)
	if err != nil {
		return err
	}
	if hasIam {
		o.log.Info("iam already provisioned, skipping", "instance", name)
		return nil
	}

	// IAM inputs come from the persisted descriptor, never from the
	// in-memory result of this run, so a resume behaves identically.
	desc, err := o.readInfraDescriptor(name)
	if err != nil {
		return err
	}
	o.log.Info("creating iam resources", "instance", name, "infraID", desc.InfraID)
	_, raw, err := o.tool.CreateIAM(ctx, hypershift.CreateIAMParams{
		AWSCredsPath:     cfg.AWSCredsPath,
		InfraID:          desc.InfraID,
		Region:           desc.Region,
		OIDCBucketName:   cfg.OIDCBucketName,
		OIDCBucketRegion: cfg.OIDCBucketRegion,
		LocalZoneID:      desc.LocalZoneID,
		PublicZoneID:     desc.PublicZoneID,
		PrivateZoneID:    desc.PrivateZoneID,
	})
	if err != nil {
		return err
	}
	if err := o.store.WriteArtifact(name, store.KindIam, raw); err != nil {
		return err
	}
	o.log.Info("instance fully created", "instance", name)
	return nil
}

// ensureMeta returns the persisted instance metadata, writing it first when
// the instance is new. The infra ID must be on disk before the first
// provisioning call so a crashed create retries under the same identifier.
func (o *Orchestrator) ensureMeta(name string) (Meta, error) {
	meta, ok, err := o.loadMeta(name)
	if err != nil {
		return Meta{}, err
	}
	if ok {
		return meta, nil
	}
	meta = Meta{Name: name, InfraID: o.newInfraID(name), CreatedAt: nowUTC()}
	if err := o.saveMeta(meta); err != nil {
		return Meta{}, err
	}
	return meta, nil
}

func (o *Orchestrator) readInfraDescriptor(name string) (hypershift.InfraDescriptor, error) {
	data, err := o.store.ReadArtifact(name, store.KindInfra)
	if err != nil {
		return hypershift.InfraDescriptor{}, err
	}
	return hypershift.ParseInfraDescriptor(data, o.store.ArtifactPath(name, store.KindInfra))
}

func (o *Orchestrator) readIAMDescriptor(name string) (hypershift.IAMDescriptor, error) {
	data, err := o.store.ReadArtifact(name, store.KindIam)
	if err != nil {
		return hypershift.IAMDescriptor{}, err
	}
	return hypershift.ParseIAMDescriptor(data, o.store.ArtifactPath(name, store.KindIam))
}

// Destroy tears the instance down, always IAM before infrastructure since
// IAM resources reference infra resources. Each descriptor artifact is
// deleted as soon as its teardown succeeds, and the directory goes last. A
// step whose artifact is already absent counts as satisfied, mirroring
// create. Without force the first failure stops the sequence so the
// operator can inspect and retry; with force failures are logged and
// cleanup continues to the end.
func (o *Orchestrator) Destroy(ctx context.Context, cfg config.ResolvedConfig, name string, force bool) error {
	exists, err := o.store.HasInstance(name)
	if err != nil {
		return err
	}
	if !exists {
		return &InvalidStateError{Name: name, State: StateAbsent, Op: "destroy"}
	}

	if err := o.destroyStep(ctx, cfg, name, store.KindIam, force); err != nil {
		return err
	}
	if err := o.destroyStep(ctx, cfg, name, store.KindInfra, force); err != nil {
		return err
	}

	if err := o.store.RemoveInstanceDir(name, force); err != nil {
		return err
	}
	o.log.Info("instance destroyed", "instance", name)
	return nil
}

// destroyStep tears down the resources one descriptor records and removes
// the descriptor. An absent descriptor means the step is already satisfied.
func (o *Orchestrator) destroyStep(ctx context.Context, cfg config.ResolvedConfig, name string, kind store.Kind, force bool) error {
	has, err := o.store.HasArtifact(name, kind)
	if err != nil {
		return err
	}
	if !has {
		o.log.Debug("descriptor absent, step already satisfied", "instance", name, "artifact", string(kind))
		return nil
	}

	if err := o.invokeDestroy(ctx, cfg, name, kind); err != nil {
		if !force {
			return err
		}
		o.log.Warn("forced cleanup: teardown failed, removing artifact anyway",
			"instance", name, "artifact", string(kind), "error", err)
	}
	return o.store.RemoveArtifact(name, kind)
}

func (o *Orchestrator) invokeDestroy(ctx context.Context, cfg config.ResolvedConfig, name string, kind store.Kind) error {
	switch kind {
	case store.KindIam:
		desc, err := o.readIAMDescriptor(name)
		if err != nil {
			return err
		}
		o.log.Info("destroying iam resources", "instance", name, "infraID", desc.InfraID)
		return o.tool.DestroyIAM(ctx, cfg.AWSCredsPath, desc)
	case store.KindInfra:
		desc, err := o.readInfraDescriptor(name)
		if err != nil {
			return err
		}
		o.log.Info("destroying infrastructure", "instance", name, "infraID", desc.InfraID)
		return o.tool.DestroyInfra(ctx, cfg.AWSCredsPath, desc)
	}
	return nil
}

// Listing pairs an instance's artifact survey with its classified state.
type Listing struct {
	store.Instance
	State State
}

// List surveys the instance root, sorted by name.
func (o *Orchestrator) List() ([]Listing, error) {
	instances, err := o.store.ListInstances()
	if err != nil {
		return nil, err
	}
	out := make([]Listing, 0, len(instances))
	for _, inst := range instances {
		out = append(out, Listing{Instance: inst, State: Classify(inst)})
	}
	return out, nil
}
