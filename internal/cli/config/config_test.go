package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a scratch directory so Load never picks up a stray
// quill.yaml from the repository.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "builder", cfg.Derive.Target)
	assert.False(t, cfg.Derive.Metadata)
	assert.False(t, cfg.Output.NoColor)
	assert.False(t, cfg.Output.JSON)
}

func TestLoad_FromFile(t *testing.T) {
	dir := chdir(t)

	content := []byte("derive:\n  target: debug\n  metadata: true\noutput:\n  no_color: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quill.yaml"), content, 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Derive.Target)
	assert.True(t, cfg.Derive.Metadata)
	assert.True(t, cfg.Output.NoColor)
	assert.False(t, cfg.Output.JSON)
}

func TestLoad_InvalidTarget(t *testing.T) {
	dir := chdir(t)

	content := []byte("derive:\n  target: printer\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quill.yaml"), content, 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid derive.target")
}
