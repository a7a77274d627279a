package infra

import (
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/csrwng/infra/internal/invoke"
	"github.com/csrwng/infra/internal/store"
)

// Meta pins the identifiers chosen before the first provisioning call. It
// is persisted ahead of the call so a retried create reuses the same infra
// ID instead of minting resources under a new one.
type Meta struct {
	Name      string    `json:"name"`
	InfraID   string    `json:"infraID"`
	CreatedAt time.Time `json:"createdAt"`
}

const infraIDSuffixLen = 6

const infraIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func nowUTC() time.Time {
	return time.Now().UTC()
}

// newInfraID derives a cloud-unique identifier from the instance name.
func newInfraID(name string) string {
	suffix := make([]byte, infraIDSuffixLen)
	for i := range suffix {
		suffix[i] = infraIDAlphabet[rand.Intn(len(infraIDAlphabet))]
	}
	return name + "-" + string(suffix)
}

func (o *Orchestrator) loadMeta(name string) (Meta, bool, error) {
	data, err := o.store.ReadArtifact(name, store.KindMeta)
	if err != nil {
		if errors.Is(err, store.ErrArtifactAbsent) {
			return Meta{}, false, nil
		}
		return Meta{}, false, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, false, &invoke.ParseError{Source: o.store.ArtifactPath(name, store.KindMeta), Err: err}
	}
	return meta, true, nil
}

func (o *Orchestrator) saveMeta(meta Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return o.store.WriteArtifact(meta.Name, store.KindMeta, data)
}
