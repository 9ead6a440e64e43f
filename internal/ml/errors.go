package ml

import (
	"errors"
	"fmt"
)

// ErrNotTrained is returned when a prediction is attempted and no artifact is
// resident or loadable. Callers should train (or load) a model first.
var ErrNotTrained = errors.New("model is not trained")

// ConfigError signals an unsupported model kind at construction time.
type ConfigError struct {
	Kind string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown model kind: %s", e.Kind)
}

// TrainingError wraps any failure during the training pipeline. No artifact is
// adopted when it is returned.
type TrainingError struct {
	Err error
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("training failed: %v", e.Err)
}

func (e *TrainingError) Unwrap() error { return e.Err }

// PersistError wraps an I/O failure while writing or reading an artifact.
type PersistError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("model %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
