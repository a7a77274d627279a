package store

import (
	"errors"
	"fmt"
)

// ErrArtifactAbsent distinguishes "the step never completed" from a real IO
// failure. Callers check it with errors.Is.
var ErrArtifactAbsent = errors.New("artifact absent")

// PathError reports a violated filesystem precondition: an unwritable root,
// an unremovable directory, or unexpected files blocking a removal.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Op, e.Path)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
