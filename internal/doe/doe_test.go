package doe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_sharedBaseApplied(t *testing.T) {
	table := Table()

	cfg, ok := table["1/31bonds/bfcd2rep_piby3_AerSimulator_0.15"]
	require.True(t, ok, "bfcd sweep entry missing")

	assert.Equal(t, "bfcd", cfg.Ansatz)
	assert.Equal(t, "bfcd2rep_piby3_AerSimulator_0.15", cfg.ExperimentID)
	assert.Equal(t, 2, cfg.AnsatzParams.Reps)
	assert.Equal(t, "bilinear", cfg.AnsatzParams.Entanglement)
	assert.Equal(t, 0.15, cfg.Alpha)

	// Fields inherited from the common base.
	assert.Equal(t, 10, cfg.NumExec)
	assert.Equal(t, "nft", cfg.Optimizer)
	assert.Equal(t, "AerSimulator", cfg.Device)
	assert.Equal(t, 1<<13, cfg.Shots)
	assert.Equal(t, 0.0, cfg.ThetaThreshold)
}

func TestTable_hardwareOverrides(t *testing.T) {
	cfg, ok := Lookup("1/31bonds/TwoLocal2rep_piby3_kyiv_0.15")
	require.True(t, ok)

	assert.Equal(t, "ibm_kyiv", cfg.Device)
	assert.Equal(t, 1, cfg.NumExec)
	assert.Equal(t, 0.06, cfg.ThetaThreshold)
}

func TestTable_problemFilesPerSize(t *testing.T) {
	table := Table()

	cfg109, ok := table["1/109bonds/TwoLocal2rep_piby3_AerSimulator_0.1"]
	require.True(t, ok)
	assert.Equal(t, "data/1/109bonds/docplex-bin-avgonly.lp", cfg109.LPFile)

	cfg155, ok := table["1/155bonds/TwoLocal2rep_piby3_AerSimulator_0.1"]
	require.True(t, ok)
	assert.Equal(t, "data/1/155bonds/docplex-bin-avgonly.lp", cfg155.LPFile)
}

func TestTable_generatedProblemEntries(t *testing.T) {
	table := Table()

	for key, file := range map[string]string{
		"custom/mean_variance_31_normal": "vanguard_problems/mean_variance_31assets_normal_risk1.lp",
		"custom/esg_constrained_31":      "vanguard_problems/esg_constrained_31assets_esg7.lp",
		"custom/index_tracking_31":       "vanguard_problems/index_tracking_31assets_te0.02.lp",
		"custom/working_portfolio":       "vanguard_problems/working_portfolio.lp",
		"converted/portfolio_31":         "converted_problems/mean_variance_31assets_normal_risk1_converted.lp",
		"converted/esg_constrained_31":   "converted_problems/esg_constrained_31assets_esg7_converted.lp",
	} {
		cfg, ok := table[key]
		require.True(t, ok, key)
		assert.Equal(t, file, cfg.LPFile, key)
		assert.Equal(t, 1, cfg.NumExec, key)
		assert.Equal(t, 0.06, cfg.ThetaThreshold, key)
	}
}

func TestIDs_sorted(t *testing.T) {
	table := Table()
	ids := IDs(table)

	require.Len(t, ids, len(table))
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestLoadTable_overlay(t *testing.T) {
	src := `
custom/override_test:
  experiment_id: override_test
  lp_file: converted_problems/custom.lp
  num_exec: 2
  ansatz: TwoLocal
  ansatz_params:
    reps: 1
    entanglement: bilinear
  theta_initial: piby3
  optimizer: nft
  device: AerSimulator
  max_epoch: 3
  shots: 1024
  theta_threshold: 0.06
  alpha: 0.2
1/31bonds/test:
  experiment_id: test
  num_exec: 99
`
	path := filepath.Join(t.TempDir(), "doe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)

	custom, ok := table["custom/override_test"]
	require.True(t, ok)
	assert.Equal(t, 2, custom.NumExec)
	assert.Equal(t, 1024, custom.Shots)
	assert.Equal(t, 0.2, custom.Alpha)

	// A file entry replaces the built-in entry with the same key.
	test, ok := table["1/31bonds/test"]
	require.True(t, ok)
	assert.Equal(t, 99, test.NumExec)

	// Built-in entries without an override survive.
	_, ok = table["1/155bonds/TwoLocal2rep_piby3_AerSimulator_0.1"]
	assert.True(t, ok)
}

func TestLoadTable_missingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
