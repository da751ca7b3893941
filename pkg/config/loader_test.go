package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_NoFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	settings, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().FastModel, settings.FastModel)
}

func TestInitialize_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
fast_model: custom-fast-model
quality_threshold: 75
database:
  url: ${TEST_DATABASE_URL}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gateway.yaml"), []byte(yamlContent), 0o644))
	t.Setenv("TEST_DATABASE_URL", "postgres://test@localhost/db")

	settings, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "custom-fast-model", settings.FastModel)
	assert.Equal(t, 75, settings.QualityThreshold)
	assert.Equal(t, "postgres://test@localhost/db", settings.Database.URL)
	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultSettings().ComplexModel, settings.ComplexModel)
}

func TestInitialize_InvalidYAMLFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gateway.yaml"), []byte("fast_model: [unterminated"), 0o644))

	_, err := Initialize(context.Background(), dir)
	require.Error(t, err)
}

func TestInitialize_ValidationFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gateway.yaml"), []byte("quality_threshold: 500"), 0o644))

	_, err := Initialize(context.Background(), dir)
	require.Error(t, err)
}
