package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCatalog loads a small catalog used by the compare tests.
func seedCatalog(t *testing.T, cfg string) {
	t.Helper()
	_, err := runCLI(cfg, "catalog", "add", "f-aroma", "Aroma Coffee",
		"--attr", "investment=120k-180k", "--attr", "royalty=6%")
	require.NoError(t, err)
	_, err = runCLI(cfg, "catalog", "add", "f-bloom", "Bloom Fitness",
		"--attr", "investment=250k-400k", "--attr", "territory=exclusive")
	require.NoError(t, err)
}

func TestCompare_ByIDs(t *testing.T) {
	cfg := testConfig(t)
	seedCatalog(t, cfg)

	out, err := runCLI(cfg, "compare", "--ids", "f-aroma,f-bloom")
	require.NoError(t, err)

	assert.Contains(t, out, "Comparing 2 franchise options")
	assert.Contains(t, out, "[generated]")
	assert.Contains(t, out, "Aroma Coffee")
	assert.Contains(t, out, "Bloom Fitness")
	assert.Contains(t, out, "investment")
	assert.Contains(t, out, "120k-180k")
}

func TestCompare_UsesCurrentSelection(t *testing.T) {
	cfg := testConfig(t)
	seedCatalog(t, cfg)

	_, err := runCLI(cfg, "select", "add", "f-aroma", "f-bloom")
	require.NoError(t, err)

	out, err := runCLI(cfg, "compare")
	require.NoError(t, err)
	assert.Contains(t, out, "Comparing 2 franchise options")
}

func TestCompare_NothingToCompare(t *testing.T) {
	_, err := runCLI(testConfig(t), "compare")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "nothing to compare")
}

func TestCompare_UnknownFranchise(t *testing.T) {
	cfg := testConfig(t)
	seedCatalog(t, cfg)

	_, err := runCLI(cfg, "compare", "--ids", "f-aroma,ghost")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "ghost")
}

func TestCompare_SaveRequiresLead(t *testing.T) {
	_, err := runCLI(testConfig(t), "compare", "--ids", "f-aroma", "--save")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--save requires --lead")
}

func TestCompare_SaveThenCacheHit(t *testing.T) {
	cfg := testConfig(t)
	seedCatalog(t, cfg)

	out, err := runCLI(cfg, "compare", "--lead", "L42", "--ids", "f-aroma,f-bloom", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "[generated]")

	// A later visit without an explicit id list reuses the cached document.
	out, err = runCLI(cfg, "compare", "--lead", "L42")
	require.NoError(t, err)
	assert.Contains(t, out, "[cache]")

	// So does an equivalent id-set in a different order.
	out, err = runCLI(cfg, "compare", "--lead", "L42", "--ids", "f-bloom,f-aroma")
	require.NoError(t, err)
	assert.Contains(t, out, "[cache]")
}

func TestCompare_ChangedSelectionRegenerates(t *testing.T) {
	cfg := testConfig(t)
	seedCatalog(t, cfg)

	_, err := runCLI(cfg, "compare", "--lead", "L42", "--ids", "f-aroma,f-bloom", "--save")
	require.NoError(t, err)

	out, err := runCLI(cfg, "compare", "--lead", "L42", "--ids", "f-aroma")
	require.NoError(t, err)
	assert.Contains(t, out, "[generated]")
	assert.Contains(t, out, "Comparing 1 franchise options")
}

func TestCompare_WithoutSaveDoesNotCache(t *testing.T) {
	cfg := testConfig(t)
	seedCatalog(t, cfg)

	_, err := runCLI(cfg, "compare", "--lead", "L42", "--ids", "f-aroma")
	require.NoError(t, err)

	// Nothing cached, nothing selected: the next bare visit has nothing
	// to show.
	_, err = runCLI(cfg, "compare", "--lead", "L42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCompare_ProfilePersonalizesDocument(t *testing.T) {
	cfg := testConfig(t)
	seedCatalog(t, cfg)

	_, err := runCLI(cfg, "profile", "set", "L42", "--name", "Dana", "--priority", "royalty")
	require.NoError(t, err)

	out, err := runCLI(cfg, "compare", "--lead", "L42", "--ids", "f-aroma,f-bloom")
	require.NoError(t, err)
	assert.Contains(t, out, "for Dana")
}

func TestCompare_JSONOutput(t *testing.T) {
	cfg := testConfig(t)
	seedCatalog(t, cfg)

	out, err := runCLI(cfg, "--format", "json", "compare", "--ids", "f-aroma,f-bloom")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "generated", data["source"])
	assert.Equal(t, "f-aroma|f-bloom", data["key"])
}
