package setup

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/faena/internal/cli"
)

func configDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "faena", "config.yaml")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := SetupCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

// ============================================================================
// Writing
// ============================================================================

func TestSetup_WritesLocalConfig(t *testing.T) {
	path := configDir(t)

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: local")
}

func TestSetup_RefusesToOverwrite(t *testing.T) {
	configDir(t)

	_, err := run(t)
	require.NoError(t, err)

	out, err := run(t, "--backend", "appwrite", "--endpoint", "http://localhost/v1", "--project-id", "p1")
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	assert.Contains(t, out, "--force")

	_, err = run(t, "--backend", "appwrite", "--endpoint", "http://localhost/v1", "--project-id", "p1", "--force")
	require.NoError(t, err)
}

func TestSetup_InvalidBackendSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"appwrite without endpoint", []string{"--backend", "appwrite", "--project-id", "p1"}},
		{"unknown backend", []string{"--backend", "firebase"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := configDir(t)

			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
			assert.NoFileExists(t, path)
		})
	}
}

// ============================================================================
// Checking
// ============================================================================

func TestSetup_Check(t *testing.T) {
	path := configDir(t)

	out, err := run(t, "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "No config")

	_, err = run(t, "--backend", "appwrite", "--endpoint", "http://localhost/v1", "--project-id", "p1")
	require.NoError(t, err)

	out, err = run(t, "--check", "--json")
	require.NoError(t, err)

	var resp struct {
		Success bool         `json:"success"`
		Data    configResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, path, resp.Data.Path)
	assert.True(t, resp.Data.Exists)
	assert.Equal(t, "appwrite", resp.Data.Backend)
	assert.Equal(t, "http://localhost/v1", resp.Data.Endpoint)
}
