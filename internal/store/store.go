// Package store owns the on-disk layout of provisioned instances. Each
// instance is a directory under the instance root holding the artifacts the
// provisioning steps produced; the presence of an artifact is the only
// record that its step completed. All writes are atomic so a crash can
// never leave a half-written artifact behind.
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Kind names one managed artifact inside an instance directory.
type Kind string

const (
	// KindMeta records instance metadata, most importantly the infra ID,
	// before the first provisioning call so retries reuse it.
	KindMeta Kind = "instance.json"
	// KindInfra is the AWS infrastructure descriptor.
	KindInfra Kind = "infra.json"
	// KindIam is the IAM resource descriptor.
	KindIam Kind = "iam.json"
	// KindManifest is the rendered cluster manifest.
	KindManifest Kind = "cluster.yaml"
	// KindKubeconfig lives outside the instance directory, under the
	// kubeconfig directory, named <instance>-kubeconfig.
	KindKubeconfig Kind = "kubeconfig"
)

// tmpPrefix marks in-flight artifact writes. A crash between staging and
// rename leaves one of these behind; they are still managed files and never
// block a later destroy.
const tmpPrefix = "."

// Instance summarizes which artifacts exist for one instance directory.
type Instance struct {
	Name          string
	HasMeta       bool
	HasInfra      bool
	HasIam        bool
	HasManifest   bool
	HasKubeconfig bool
}

// Store reads and writes instance artifacts beneath a fixed root. It is
// backed by an afero filesystem so tests run against an in-memory one.
type Store struct {
	fs            afero.Fs
	root          string
	kubeconfigDir string
}

// New returns a Store over the real filesystem.
func New(root, kubeconfigDir string) *Store {
	return NewWithFs(afero.NewOsFs(), root, kubeconfigDir)
}

// NewWithFs returns a Store over the given filesystem.
func NewWithFs(fs afero.Fs, root, kubeconfigDir string) *Store {
	return &Store{fs: fs, root: root, kubeconfigDir: kubeconfigDir}
}

// Root returns the instance root directory.
func (s *Store) Root() string {
	return s.root
}

// InstanceDir returns the directory holding the named instance's artifacts.
func (s *Store) InstanceDir(name string) string {
	return filepath.Join(s.root, name)
}

// ArtifactPath returns where the given artifact lives for the named
// instance. Kubeconfigs live under the kubeconfig directory; everything
// else under the instance directory.
func (s *Store) ArtifactPath(name string, kind Kind) string {
	if kind == KindKubeconfig {
		return filepath.Join(s.kubeconfigDir, name+"-kubeconfig")
	}
	return filepath.Join(s.InstanceDir(name), string(kind))
}

// EnsureInstanceDir creates the instance directory if it does not exist.
func (s *Store) EnsureInstanceDir(name string) error {
	dir := s.InstanceDir(name)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return &PathError{Op: "create instance dir", Path: dir, Err: err}
	}
	return nil
}

// HasInstance reports whether a directory exists for the named instance.
func (s *Store) HasInstance(name string) (bool, error) {
	ok, err := afero.DirExists(s.fs, s.InstanceDir(name))
	if err != nil {
		return false, &PathError{Op: "stat instance dir", Path: s.InstanceDir(name), Err: err}
	}
	return ok, nil
}

// WriteArtifact atomically persists one artifact: the bytes are staged to a
// temp file in the destination directory and renamed into place, so readers
// see either the old content or the new, never a torn write.
func (s *Store) WriteArtifact(name string, kind Kind, data []byte) error {
	final := s.ArtifactPath(name, kind)
	dir := filepath.Dir(final)

	tmp, err := afero.TempFile(s.fs, dir, tmpPrefix+string(kind)+".tmp")
	if err != nil {
		return &PathError{Op: "stage artifact in", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return &PathError{Op: "write artifact", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return &PathError{Op: "flush artifact", Path: tmpName, Err: err}
	}
	if err := s.fs.Rename(tmpName, final); err != nil {
		s.fs.Remove(tmpName)
		return &PathError{Op: "commit artifact", Path: final, Err: err}
	}

	mode := os.FileMode(0o644)
	if kind == KindKubeconfig {
		mode = 0o600
	}
	if err := s.fs.Chmod(final, mode); err != nil {
		return &PathError{Op: "chmod artifact", Path: final, Err: err}
	}
	return nil
}

// ReadArtifact returns the artifact's bytes, or ErrArtifactAbsent when the
// file does not exist.
func (s *Store) ReadArtifact(name string, kind Kind) ([]byte, error) {
	path := s.ArtifactPath(name, kind)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &PathError{Op: "read artifact", Path: path, Err: ErrArtifactAbsent}
		}
		return nil, &PathError{Op: "read artifact", Path: path, Err: err}
	}
	return data, nil
}

// HasArtifact reports whether the artifact exists.
func (s *Store) HasArtifact(name string, kind Kind) (bool, error) {
	path := s.ArtifactPath(name, kind)
	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, &PathError{Op: "stat artifact", Path: path, Err: err}
	}
	return ok, nil
}

// RemoveArtifact deletes the artifact. Removing an absent artifact is not
// an error; destroy steps call this after each teardown succeeds and a
// retry must be able to pass through already-cleaned steps.
func (s *Store) RemoveArtifact(name string, kind Kind) error {
	path := s.ArtifactPath(name, kind)
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return &PathError{Op: "remove artifact", Path: path, Err: err}
	}
	return nil
}

// ListInstances surveys every instance directory under the root and reports
// which artifacts each one holds, sorted by name. Plain files at the root
// are ignored.
func (s *Store) ListInstances() ([]Instance, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &PathError{Op: "list instances in", Path: s.root, Err: err}
	}

	var out []Instance
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		inst, err := s.Inspect(entry.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Inspect reports which artifacts exist for one instance.
func (s *Store) Inspect(name string) (Instance, error) {
	inst := Instance{Name: name}
	for _, probe := range []struct {
		kind Kind
		dst  *bool
	}{
		{KindMeta, &inst.HasMeta},
		{KindInfra, &inst.HasInfra},
		{KindIam, &inst.HasIam},
		{KindManifest, &inst.HasManifest},
		{KindKubeconfig, &inst.HasKubeconfig},
	} {
		ok, err := s.HasArtifact(name, probe.kind)
		if err != nil {
			return Instance{}, err
		}
		*probe.dst = ok
	}
	return inst, nil
}

// RemoveInstanceDir deletes the instance directory and the instance's
// kubeconfig. Without force it refuses when the directory holds anything
// this tool did not put there, so user data is never swept up silently.
// Removing an absent directory is a no-op.
func (s *Store) RemoveInstanceDir(name string, force bool) error {
	dir := s.InstanceDir(name)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &PathError{Op: "read instance dir", Path: dir, Err: err}
	}

	if !force {
		for _, entry := range entries {
			if entry.IsDir() || !isManagedName(entry.Name()) {
				return &PathError{Op: "remove instance dir", Path: dir,
					Err: &unmanagedEntryError{name: entry.Name()}}
			}
		}
	}

	if err := s.fs.RemoveAll(dir); err != nil {
		return &PathError{Op: "remove instance dir", Path: dir, Err: err}
	}
	// The kubeconfig is managed too; drop it alongside the directory.
	return s.RemoveArtifact(name, KindKubeconfig)
}

// isManagedName reports whether a file name is one this tool writes, either
// a finished artifact or a temp file left by an interrupted write.
func isManagedName(name string) bool {
	switch Kind(name) {
	case KindMeta, KindInfra, KindIam, KindManifest:
		return true
	}
	return strings.HasPrefix(name, tmpPrefix) && strings.Contains(name, ".tmp")
}

type unmanagedEntryError struct {
	name string
}

func (e *unmanagedEntryError) Error() string {
	return "unexpected entry " + e.name + " (use --force to remove anyway)"
}
