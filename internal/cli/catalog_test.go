package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAddAndShow(t *testing.T) {
	cfg := testConfig(t)

	out, err := runCLI(cfg, "catalog", "add", "f-aroma", "Aroma Coffee",
		"--attr", "investment=120k-180k", "--attr", "royalty=6%")
	require.NoError(t, err)
	assert.Contains(t, out, "f-aroma")

	out, err = runCLI(cfg, "catalog", "show", "f-aroma")
	require.NoError(t, err)
	assert.Contains(t, out, "Aroma Coffee")
	assert.Contains(t, out, "investment: 120k-180k")
	assert.Contains(t, out, "royalty: 6%")
}

func TestCatalogAdd_RejectsMalformedAttr(t *testing.T) {
	_, err := runCLI(testConfig(t), "catalog", "add", "f-x", "X", "--attr", "noequals")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCatalogShow_NotFound(t *testing.T) {
	_, err := runCLI(testConfig(t), "catalog", "show", "ghost")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestCatalogList(t *testing.T) {
	cfg := testConfig(t)

	out, err := runCLI(cfg, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog is empty")

	_, err = runCLI(cfg, "catalog", "add", "f-bloom", "Bloom Fitness")
	require.NoError(t, err)
	_, err = runCLI(cfg, "catalog", "add", "f-aroma", "Aroma Coffee")
	require.NoError(t, err)

	out, err = runCLI(cfg, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "f-aroma")
	assert.Contains(t, out, "f-bloom")
	assert.Contains(t, out, "2 franchises")
}

func TestCatalogListJSON(t *testing.T) {
	cfg := testConfig(t)
	_, err := runCLI(cfg, "catalog", "add", "f-aroma", "Aroma Coffee")
	require.NoError(t, err)

	out, err := runCLI(cfg, "--format", "json", "catalog", "list")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCatalogImport(t *testing.T) {
	cfg := testConfig(t)

	file := filepath.Join(t.TempDir(), "franchises.yaml")
	contents := `
- id: f-aroma
  name: Aroma Coffee
  attrs:
    investment: 120k-180k
- id: f-bloom
  name: Bloom Fitness
`
	require.NoError(t, os.WriteFile(file, []byte(contents), 0o644))

	out, err := runCLI(cfg, "catalog", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 franchises")

	out, err = runCLI(cfg, "catalog", "show", "f-aroma")
	require.NoError(t, err)
	assert.Contains(t, out, "investment: 120k-180k")
}

func TestCatalogImport_RejectsMissingID(t *testing.T) {
	cfg := testConfig(t)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("- name: No ID\n"), 0o644))

	_, err := runCLI(cfg, "catalog", "import", file)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCatalogImport_MissingFile(t *testing.T) {
	_, err := runCLI(testConfig(t), "catalog", "import", "/nonexistent.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
