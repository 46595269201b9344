package portfolio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/vqetools/portlab/internal/lp"
)

func TestReturns_regimeRanges(t *testing.T) {
	g := NewGenerator(DefaultSeed)

	for _, regime := range []Regime{RegimeNormal, RegimeBull, RegimeBear, RegimeCrisis} {
		returns, vols := g.Returns(200, regime)
		require.Len(t, returns, 200)
		require.Len(t, vols, 200)

		p := regimeParams[regime]
		for _, v := range vols {
			assert.GreaterOrEqual(t, v, p.volLo, "regime %s", regime)
			assert.LessOrEqual(t, v, p.volHi, "regime %s", regime)
		}
	}
}

func TestReturns_reproducible(t *testing.T) {
	a, volA := NewGenerator(7).Returns(31, RegimeNormal)
	b, volB := NewGenerator(7).Returns(31, RegimeNormal)

	assert.Equal(t, a, b)
	assert.Equal(t, volA, volB)
}

func TestSectors_namesValid(t *testing.T) {
	g := NewGenerator(DefaultSeed)
	known := map[string]bool{}
	for _, s := range sectorWeights {
		known[s.name] = true
	}

	for _, s := range g.Sectors(500) {
		require.True(t, known[s], "unknown sector %q", s)
	}
}

func TestCovariance_positiveSemiDefinite(t *testing.T) {
	g := NewGenerator(DefaultSeed)
	_, vols := g.Returns(31, RegimeNormal)
	sectors := g.Sectors(31)

	cov := g.Covariance(vols, sectors)

	var eig mat.EigenSym
	require.True(t, eig.Factorize(cov, false))
	for _, v := range eig.Values(nil) {
		assert.GreaterOrEqual(t, v, 1e-4-1e-9)
	}
}

func TestCovariance_symmetric(t *testing.T) {
	g := NewGenerator(DefaultSeed)
	_, vols := g.Returns(10, RegimeNormal)
	sectors := g.Sectors(10)

	cov := g.Covariance(vols, sectors)

	n, _ := cov.Dims()
	require.Equal(t, 10, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, cov.At(i, j), cov.At(j, i))
		}
	}
}

func TestMeanVariance_shape(t *testing.T) {
	g := NewGenerator(DefaultSeed)
	prog, meta := g.MeanVariance(31, 1.0, RegimeNormal, 0.3)

	assert.Equal(t, 31, prog.Objective.Len())
	assert.Equal(t, 31, prog.NumVariables())
	assert.Equal(t, "mean_variance", meta.ProblemType)
	require.Len(t, meta.Covariance, 31)

	require.NotEmpty(t, prog.Constraints)
	budget := prog.Constraints[0]
	assert.Equal(t, "budget", budget.Name)
	assert.Equal(t, lp.SenseEQ, budget.Sense)
	assert.Equal(t, 1.0, budget.RHS)
	assert.Equal(t, 31, budget.Terms.Len())

	for _, c := range prog.Constraints[1:] {
		assert.Contains(t, c.Name, "sector_")
		assert.Equal(t, lp.SenseLE, c.Sense)
		assert.Equal(t, 0.3, c.RHS)
		// Single-asset sectors must not produce a cap.
		assert.GreaterOrEqual(t, c.Terms.Len(), 2)
	}
}

func TestRiskParity_deviationPairs(t *testing.T) {
	g := NewGenerator(DefaultSeed)
	prog, meta := g.RiskParity(10, RegimeNormal)

	// Objective minimizes the deviation variables only.
	assert.Equal(t, 10, prog.Objective.Len())
	for _, v := range prog.Objective.Vars() {
		assert.Contains(t, v, "dev_")
	}

	// budget + two deviation constraints per asset.
	assert.Len(t, prog.Constraints, 1+2*10)
	assert.Equal(t, 0.1, meta.TargetWeight)

	lo := prog.Constraints[1]
	assert.Equal(t, "dev_lo_0", lo.Name)
	assert.Equal(t, lp.SenseGE, lo.Sense)
	assert.Equal(t, -0.1, lo.RHS)
	assert.Equal(t, 1.0, lo.Terms.Coefficient("dev_0"))
	assert.Equal(t, -1.0, lo.Terms.Coefficient("w_0"))
}

func TestIndexTracking_bandsAndBudget(t *testing.T) {
	g := NewGenerator(DefaultSeed)
	prog, meta := g.IndexTracking(31, 0.02)

	sum := 0.0
	for _, b := range meta.BenchmarkWeights {
		assert.Greater(t, b, 0.0)
		sum += b
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// budget + (dev pair + two bands) per asset + tracking_error.
	assert.Len(t, prog.Constraints, 1+4*31+1)

	last := prog.Constraints[len(prog.Constraints)-1]
	assert.Equal(t, "tracking_error", last.Name)
	assert.Equal(t, lp.SenseLE, last.Sense)
	assert.InDelta(t, 0.02*31, last.RHS, 1e-12)
}

func TestESGConstrained_constraints(t *testing.T) {
	g := NewGenerator(DefaultSeed)
	prog, meta := g.ESGConstrained(31, 7.0, 80)

	require.Len(t, prog.Constraints, 3)
	assert.Equal(t, "budget", prog.Constraints[0].Name)
	assert.Equal(t, "min_esg", prog.Constraints[1].Name)
	assert.Equal(t, lp.SenseGE, prog.Constraints[1].Sense)
	assert.Equal(t, "max_carbon", prog.Constraints[2].Name)
	assert.Equal(t, lp.SenseLE, prog.Constraints[2].Sense)

	for i, s := range meta.Sectors {
		switch s {
		case "Energy", "Materials", "Industrials":
			assert.GreaterOrEqual(t, meta.CarbonIntensity[i], 50.0)
		case "Technology", "Healthcare", "Financials":
			assert.LessOrEqual(t, meta.CarbonIntensity[i], 30.0)
		}
		assert.GreaterOrEqual(t, meta.ESGScores[i], 3.0)
		assert.LessOrEqual(t, meta.ESGScores[i], 10.0)
	}
}

func TestWriteSuite(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(DefaultSeed)

	suite := []SuiteConfig{
		{Type: "mean_variance", NAssets: 8, Regime: RegimeNormal, RiskAversion: 1.0},
		{Type: "risk_parity", NAssets: 8, Regime: RegimeNormal},
	}
	manifest, err := g.WriteSuite(dir, suite)
	require.NoError(t, err)
	require.Len(t, manifest, 2)

	for _, entry := range manifest {
		_, err := os.Stat(entry.LPPath)
		require.NoError(t, err, "LP file missing for %s", entry.Name)
		_, err = os.Stat(entry.MetadataPath)
		require.NoError(t, err, "metadata missing for %s", entry.Name)
		assert.Positive(t, entry.NumConstraints)
		assert.Positive(t, entry.NumVariables)
	}

	assert.Equal(t, "mean_variance_8assets_normal_risk1", manifest[0].Name)
}

// Generated LP files must survive the converter unchanged in meaning:
// the generator already writes the converter's target dialect.
func TestWriteSuite_convertIsStable(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(DefaultSeed)

	manifest, err := g.WriteSuite(dir, []SuiteConfig{
		{Type: "esg_constrained", NAssets: 6, MinESG: 7.0, MaxCarbon: 80},
	})
	require.NoError(t, err)

	entry := manifest[0]
	converted := filepath.Join(dir, "converted.lp")
	res, err := lp.ConvertFile(entry.LPPath, converted)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, entry.NumConstraints, res.NumConstraints())
	assert.Equal(t, entry.NumVariables, res.NumVariables())

	original, err := os.ReadFile(entry.LPPath)
	require.NoError(t, err)
	reconverted, err := os.ReadFile(converted)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(reconverted))
}
