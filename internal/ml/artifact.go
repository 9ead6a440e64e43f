package ml

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func init() {
	gob.Register(&Logistic{})
	gob.Register(&Forest{})
}

// Metadata describes one training run.
type Metadata struct {
	ModelKind       ModelKind       `json:"model_type"`
	TrainedAt       time.Time       `json:"trained_at"`
	TrainingSamples int             `json:"training_samples"`
	FeatureCount    int             `json:"feature_count"`
	Features        []string        `json:"features"`
	Metrics         TrainingMetrics `json:"metrics"`
}

// Artifact is the immutable bundle one training run produces: fitted
// classifier, fitted scaler, fitted imputer and category codes (via the
// extractor), the ordered feature schema, and run metadata. A new training run
// builds a wholly new Artifact; nothing mutates one after adoption.
type Artifact struct {
	Kind       ModelKind
	Classifier Classifier
	Scaler     *StandardScaler
	Imputer    *Imputer
	Extractor  *Extractor
	Schema     []string
	Meta       Metadata
}

// FeatureImportances maps schema feature names to classifier importances.
func (a *Artifact) FeatureImportances() map[string]float64 {
	imp := a.Classifier.Importances()
	out := make(map[string]float64, len(a.Schema))
	for j, name := range a.Schema {
		if j < len(imp) {
			out[name] = imp[j]
		}
	}
	return out
}

// SaveArtifact gob-encodes the bundle to path via a temporary file and an
// atomic rename, so concurrent loaders never observe a half-written artifact.
func SaveArtifact(a *Artifact, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &PersistError{Op: "save", Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &PersistError{Op: "save", Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if err := gob.NewEncoder(tmp).Encode(a); err != nil {
		tmp.Close()
		return &PersistError{Op: "save", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &PersistError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// LoadArtifact reads a bundle back. A bundle missing any of classifier,
// scaler, schema or metadata is a hard failure.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PersistError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()
	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, &PersistError{Op: "load", Path: path, Err: err}
	}
	if err := a.validate(); err != nil {
		return nil, &PersistError{Op: "load", Path: path, Err: err}
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	switch {
	case a.Classifier == nil:
		return errors.New("bundle missing classifier state")
	case a.Scaler == nil:
		return errors.New("bundle missing scaler state")
	case len(a.Schema) == 0:
		return errors.New("bundle missing feature schema")
	case a.Meta.TrainedAt.IsZero():
		return errors.New("bundle missing metadata")
	}
	if a.Imputer == nil {
		a.Imputer = NewImputer()
	}
	if a.Extractor == nil {
		a.Extractor = NewExtractor()
	}
	return nil
}

// ArtifactFileName is the canonical on-disk name for a model kind.
func ArtifactFileName(kind ModelKind) string {
	return fmt.Sprintf("%s_model.gob", kind)
}
