package cluster

import "fmt"

// MissingArtifactError reports a cluster operation attempted before the
// artifact it depends on exists, like rendering before the infrastructure
// descriptors are in place.
type MissingArtifactError struct {
	Instance string
	Artifact string
	Op       string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s requires %s for instance %q; run the step that produces it first", e.Op, e.Artifact, e.Instance)
}
