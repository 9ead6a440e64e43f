package ml

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Registry owns the single current artifact of a running process. The current
// reference is swapped atomically, so readers that already hold an artifact
// finish on it and never observe a torn mix of classifier and scaler state.
type Registry struct {
	dir     string
	current atomic.Pointer[Artifact]
	loadMu  sync.Mutex
}

func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Path is the canonical persisted location for a model kind.
func (r *Registry) Path(kind ModelKind) string {
	return filepath.Join(r.dir, ArtifactFileName(kind))
}

// Current returns the resident artifact, lazily loading from the canonical
// location on first use. With nothing resident and nothing on disk it returns
// ErrNotTrained; it never fabricates a model.
func (r *Registry) Current(kind ModelKind) (*Artifact, error) {
	if a := r.current.Load(); a != nil {
		return a, nil
	}
	r.loadMu.Lock()
	defer r.loadMu.Unlock()
	if a := r.current.Load(); a != nil {
		return a, nil
	}
	path := r.Path(kind)
	if _, err := os.Stat(path); err != nil {
		return nil, ErrNotTrained
	}
	a, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded existing model from %s", path)
	r.current.Store(a)
	return a, nil
}

// Adopt atomically replaces the current artifact. With persist set the bundle
// is written to its canonical location first (temp file + rename); if that
// write fails the in-memory swap still happens and the persistence error is
// surfaced for the caller to act on.
func (r *Registry) Adopt(a *Artifact, persist bool) error {
	var persistErr error
	if persist {
		persistErr = SaveArtifact(a, r.Path(a.Kind))
	}
	r.current.Store(a)
	return persistErr
}

// AdoptPersisted is the persisted-or-nothing variant: the swap only happens
// after a successful durable write.
func (r *Registry) AdoptPersisted(a *Artifact) error {
	if err := SaveArtifact(a, r.Path(a.Kind)); err != nil {
		return err
	}
	r.current.Store(a)
	return nil
}
