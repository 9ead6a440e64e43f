package ml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCurrentNotTrained(t *testing.T) {
	r := NewRegistry(t.TempDir())
	_, err := r.Current(RandomForest)
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestRegistryAdoptAndPersistRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(dir)
	art := trainedArtifact(t, RandomForest)

	require.NoError(t, r.Adopt(art, true))
	assert.FileExists(t, filepath.Join(dir, "random_forest_model.gob"))

	got, err := r.Current(RandomForest)
	require.NoError(t, err)
	assert.Same(t, art, got)

	// a fresh registry lazily loads the persisted bundle and scores identically
	fresh := NewRegistry(dir)
	loaded, err := fresh.Current(RandomForest)
	require.NoError(t, err)
	assert.Equal(t, art.Schema, loaded.Schema)
	assert.Equal(t, art.Meta.Metrics, loaded.Meta.Metrics)

	probe := makeTrainingData(4, 4)
	want, err := NewPredictor(art).Predict(probe)
	require.NoError(t, err)
	have, err := NewPredictor(loaded).Predict(probe)
	require.NoError(t, err)
	assert.Equal(t, want, have)
}

func TestRegistryAdoptWithoutPersist(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(dir)
	art := trainedArtifact(t, LogisticRegression)

	require.NoError(t, r.Adopt(art, false))
	assert.NoFileExists(t, r.Path(LogisticRegression))

	got, err := r.Current(LogisticRegression)
	require.NoError(t, err)
	assert.Same(t, art, got)
}

func TestRegistryAdoptSwapsEvenWhenPersistFails(t *testing.T) {
	// a plain file where the model directory should be makes the write fail
	base := t.TempDir()
	blocked := filepath.Join(base, "models")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	r := NewRegistry(blocked)
	art := trainedArtifact(t, LogisticRegression)

	err := r.Adopt(art, true)
	require.Error(t, err)
	var persistErr *PersistError
	assert.ErrorAs(t, err, &persistErr)

	// the new model still serves despite the failed write
	got, err := r.Current(LogisticRegression)
	require.NoError(t, err)
	assert.Same(t, art, got)
}

func TestRegistryAdoptPersistedIsAllOrNothing(t *testing.T) {
	base := t.TempDir()
	blocked := filepath.Join(base, "models")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	r := NewRegistry(blocked)
	art := trainedArtifact(t, LogisticRegression)

	require.Error(t, r.AdoptPersisted(art))
	_, err := r.Current(LogisticRegression)
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestRegistryLoadRejectsCorruptBundle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ArtifactFileName(RandomForest))
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o644))

	r := NewRegistry(dir)
	_, err := r.Current(RandomForest)
	require.Error(t, err)
	var persistErr *PersistError
	assert.ErrorAs(t, err, &persistErr)
}

func TestRegistrySwapDoesNotAffectHeldArtifact(t *testing.T) {
	r := NewRegistry(t.TempDir())
	first := trainedArtifact(t, RandomForest)
	require.NoError(t, r.Adopt(first, false))

	held, err := r.Current(RandomForest)
	require.NoError(t, err)
	probe := makeTrainingData(3, 3)
	before, err := NewPredictor(held).Predict(probe)
	require.NoError(t, err)

	// a second training run replaces the registry's current artifact
	second := trainedArtifact(t, RandomForest)
	require.NoError(t, r.Adopt(second, false))

	after, err := NewPredictor(held).Predict(probe)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	now, err := r.Current(RandomForest)
	require.NoError(t, err)
	assert.Same(t, second, now)
}
