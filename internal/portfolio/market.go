// Package portfolio generates realistic portfolio-optimization test
// problems for the VQE study: synthetic market data (returns, sectors,
// covariance) and LP formulations built on top of it. No solver is
// invoked; the generated programs are written as LP files for the
// quantum pipeline to consume.
package portfolio

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed keeps generated problem suites reproducible between runs.
const DefaultSeed uint64 = 42

// Regime selects the market conditions used to draw returns and
// volatilities.
type Regime string

const (
	RegimeNormal Regime = "normal"
	RegimeBull   Regime = "bull"
	RegimeBear   Regime = "bear"
	RegimeCrisis Regime = "crisis"
)

// regimeParams holds the return distribution and the volatility range
// of a market regime.
var regimeParams = map[Regime]struct {
	retMean, retSigma float64
	volLo, volHi      float64
}{
	RegimeBull:   {0.12, 0.05, 0.15, 0.25},
	RegimeBear:   {-0.05, 0.08, 0.25, 0.40},
	RegimeCrisis: {-0.20, 0.15, 0.40, 0.80},
	RegimeNormal: {0.08, 0.06, 0.18, 0.30},
}

// sectorWeights approximates market-cap shares of the major sectors.
// Names are identifier-safe: they end up inside LP constraint names.
var sectorWeights = []struct {
	name   string
	weight float64
}{
	{"Technology", 0.25},
	{"Healthcare", 0.15},
	{"Financials", 0.12},
	{"Consumer", 0.12},
	{"Industrials", 0.10},
	{"Energy", 0.08},
	{"Materials", 0.06},
	{"Utilities", 0.05},
	{"RealEstate", 0.04},
	{"Telecom", 0.03},
}

// Generator draws synthetic market data from a seeded source so that a
// suite of problems is reproducible.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, 0))}
}

func (g *Generator) normal(mu, sigma float64) distuv.Normal {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: g.rng}
}

func (g *Generator) uniform(lo, hi float64) distuv.Uniform {
	return distuv.Uniform{Min: lo, Max: hi, Src: g.rng}
}

// Returns draws expected returns and volatilities for n assets under
// the given market regime. An unknown regime falls back to normal
// conditions.
func (g *Generator) Returns(n int, regime Regime) (returns, vols []float64) {
	p, ok := regimeParams[regime]
	if !ok {
		p = regimeParams[RegimeNormal]
	}

	retDist := g.normal(p.retMean, p.retSigma)
	volDist := g.uniform(p.volLo, p.volHi)

	returns = make([]float64, n)
	vols = make([]float64, n)
	for i := range returns {
		returns[i] = retDist.Rand()
	}
	for i := range vols {
		vols[i] = volDist.Rand()
	}
	return returns, vols
}

// Sectors assigns each of n assets to a sector, weighted by market-cap
// share.
func (g *Generator) Sectors(n int) []string {
	out := make([]string, n)
	for i := range out {
		x := g.rng.Float64()
		acc := 0.0
		out[i] = sectorWeights[len(sectorWeights)-1].name
		for _, s := range sectorWeights {
			acc += s.weight
			if x < acc {
				out[i] = s.name
				break
			}
		}
	}
	return out
}

// Covariance builds a covariance matrix with sector structure: assets
// in the same sector correlate in [0.3, 0.7], assets in different
// sectors in [0, 0.3]. Small eigenvalues are floored at 1e-4 so the
// matrix stays positive semi-definite after the random construction.
func (g *Generator) Covariance(vols []float64, sectors []string) *mat.SymDense {
	n := len(vols)
	sameSector := g.uniform(0.3, 0.7)
	crossSector := g.uniform(0.0, 0.3)

	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, vols[i]*vols[i])
		for j := i + 1; j < n; j++ {
			corr := crossSector.Rand()
			if sectors[i] == sectors[j] {
				corr = sameSector.Rand()
			}
			cov.SetSym(i, j, corr*vols[i]*vols[j])
		}
	}
	return regularize(cov, 1e-4)
}

// regularize reconstructs a symmetric matrix with all eigenvalues
// floored at min.
func regularize(s *mat.SymDense, min float64) *mat.SymDense {
	n, _ := s.Dims()

	var eig mat.EigenSym
	if !eig.Factorize(s, true) {
		// Factorization failing on a finite symmetric matrix would mean
		// a bug in the construction above; keep the input unchanged.
		return s
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	for i, v := range values {
		if v < min {
			values[i] = min
		}
	}

	// V * diag(values) * V^T, written into a fresh symmetric matrix.
	scaled := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			scaled.Set(i, j, vectors.At(i, j)*values[j])
		}
	}
	var full mat.Dense
	full.Mul(scaled, vectors.T())

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// Average the two halves to keep the result exactly
			// symmetric despite floating-point noise.
			out.SetSym(i, j, (full.At(i, j)+full.At(j, i))/2)
		}
	}
	return out
}

// lognormal draws one log-normal sample with the given parameters of
// the underlying normal distribution.
func (g *Generator) lognormal(mu, sigma float64) float64 {
	d := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: g.rng}
	return d.Rand()
}
