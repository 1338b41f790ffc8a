package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupConfigMissingFile(t *testing.T) {
	before := Properties
	require.NoError(t, SetupConfig(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Same(t, before, Properties)
}

func TestSetupConfig(t *testing.T) {
	t.Setenv("ENV", "")
	t.Cleanup(func() { Properties = defaultProperties() })

	filename := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`bind: 0.0.0.0
port: 7000
password: secret
databases: 0
keepalive: 30
node_id: 7
random_seed: 42
`)
	require.NoError(t, os.WriteFile(filename, content, 0o644))

	require.NoError(t, SetupConfig(filename))
	assert.Equal(t, "0.0.0.0", Properties.Bind)
	assert.Equal(t, 7000, Properties.Port)
	assert.Equal(t, "secret", Properties.Password)
	assert.Equal(t, 16, Properties.Databases)
	assert.Equal(t, 30, Properties.Keepalive)
	assert.Equal(t, int64(7), Properties.NodeID)
	assert.Equal(t, uint64(42), Properties.RandomSeed)
}

func TestSetupConfigInvalidYaml(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("port: [1, 2\n"), 0o644))

	assert.Error(t, SetupConfig(filename))
}
