package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vqetools/portlab/internal/lp"
)

// Metadata captures the market data behind a generated problem, the
// same fields the study stores next to each LP file for later analysis.
type Metadata struct {
	ProblemType      string      `json:"problem_type"`
	NAssets          int         `json:"n_assets"`
	Regime           Regime      `json:"market_regime,omitempty"`
	ExpectedReturns  []float64   `json:"expected_returns,omitempty"`
	Volatilities     []float64   `json:"volatilities,omitempty"`
	Sectors          []string    `json:"sector_assignments,omitempty"`
	Covariance       [][]float64 `json:"covariance_matrix,omitempty"`
	BenchmarkWeights []float64   `json:"benchmark_weights,omitempty"`
	ESGScores        []float64   `json:"esg_scores,omitempty"`
	CarbonIntensity  []float64   `json:"carbon_intensity,omitempty"`
	TargetWeight     float64     `json:"target_weight,omitempty"`
}

func weightVar(i int) string { return fmt.Sprintf("w_%d", i) }
func devVar(i int) string    { return fmt.Sprintf("dev_%d", i) }

// budgetConstraint returns the full-investment constraint sum(w) = 1.
func budgetConstraint(n int) lp.Constraint {
	terms := lp.NewExpr()
	for i := 0; i < n; i++ {
		terms.Add(weightVar(i), 1)
	}
	return lp.Constraint{Name: "budget", Terms: terms, Sense: lp.SenseEQ, RHS: 1}
}

// avgRiskContributions linearizes the quadratic risk term: the i-th
// entry is the mean of row i of the covariance matrix, the marginal
// risk of asset i against an equal-weight portfolio. The LP dialect
// consumed downstream is linear, so the w^T Sigma w objective of the
// classical formulation is approximated by sum_i avg_i w_i.
func avgRiskContributions(cov *mat.SymDense) []float64 {
	n, _ := cov.Dims()
	avg := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += cov.At(i, j)
		}
		avg[i] = sum / float64(n)
	}
	return avg
}

func addProgramTerm(p *lp.Program, e *lp.Expr, name string, coeff float64) {
	e.Add(name, coeff)
	p.RegisterVariable(name)
}

func addConstraint(p *lp.Program, c lp.Constraint) {
	for _, v := range c.Terms.Vars() {
		p.RegisterVariable(v)
	}
	p.Constraints = append(p.Constraints, c)
}

// MeanVariance builds the risk/return trade-off problem
//
//	minimize  riskAversion * risk(w) - mu^T w
//	s.t.      sum(w) = 1, sector weights <= maxSectorWeight
//
// with the risk term linearized (see avgRiskContributions).
func (g *Generator) MeanVariance(n int, riskAversion float64, regime Regime, maxSectorWeight float64) (*lp.Program, *Metadata) {
	returns, vols := g.Returns(n, regime)
	sectors := g.Sectors(n)
	cov := g.Covariance(vols, sectors)
	risk := avgRiskContributions(cov)

	p := lp.NewProgram()
	for i := 0; i < n; i++ {
		addProgramTerm(p, p.Objective, weightVar(i), riskAversion*risk[i]-returns[i])
	}
	addConstraint(p, budgetConstraint(n))
	for _, c := range sectorConstraints(sectors, maxSectorWeight) {
		addConstraint(p, c)
	}

	return p, &Metadata{
		ProblemType:     "mean_variance",
		NAssets:         n,
		Regime:          regime,
		ExpectedReturns: returns,
		Volatilities:    vols,
		Sectors:         sectors,
		Covariance:      covRows(cov),
	}
}

// sectorConstraints caps each sector's total weight. Sectors holding a
// single asset are skipped: the per-asset bound already covers them.
func sectorConstraints(sectors []string, maxWeight float64) []lp.Constraint {
	members := map[string][]int{}
	order := []string{}
	for i, s := range sectors {
		if _, ok := members[s]; !ok {
			order = append(order, s)
		}
		members[s] = append(members[s], i)
	}

	var out []lp.Constraint
	for _, s := range order {
		assets := members[s]
		if len(assets) < 2 {
			continue
		}
		terms := lp.NewExpr()
		for _, i := range assets {
			terms.Add(weightVar(i), 1)
		}
		out = append(out, lp.Constraint{
			Name:  "sector_" + s,
			Terms: terms,
			Sense: lp.SenseLE,
			RHS:   maxWeight,
		})
	}
	return out
}

// RiskParity builds the naive risk-parity problem: minimize total
// deviation from the equal-weight portfolio, with dev_i >= |w_i - 1/n|
// expressed through the usual pair of linear constraints.
func (g *Generator) RiskParity(n int, regime Regime) (*lp.Program, *Metadata) {
	returns, vols := g.Returns(n, regime)
	sectors := g.Sectors(n)
	cov := g.Covariance(vols, sectors)
	target := 1.0 / float64(n)

	p := lp.NewProgram()
	for i := 0; i < n; i++ {
		addProgramTerm(p, p.Objective, devVar(i), 1)
	}
	addConstraint(p, budgetConstraint(n))
	for i := 0; i < n; i++ {
		addDeviationPair(p, i, target)
	}

	return p, &Metadata{
		ProblemType:     "risk_parity",
		NAssets:         n,
		Regime:          regime,
		ExpectedReturns: returns,
		Volatilities:    vols,
		Sectors:         sectors,
		Covariance:      covRows(cov),
		TargetWeight:    target,
	}
}

// addDeviationPair adds dev_i >= w_i - target and dev_i >= target - w_i
// in RHS-constant form.
func addDeviationPair(p *lp.Program, i int, target float64) {
	lo := lp.NewExpr()
	lo.Add(devVar(i), 1)
	lo.Add(weightVar(i), -1)
	addConstraint(p, lp.Constraint{
		Name:  fmt.Sprintf("dev_lo_%d", i),
		Terms: lo,
		Sense: lp.SenseGE,
		RHS:   -target,
	})

	hi := lp.NewExpr()
	hi.Add(devVar(i), 1)
	hi.Add(weightVar(i), 1)
	addConstraint(p, lp.Constraint{
		Name:  fmt.Sprintf("dev_hi_%d", i),
		Terms: hi,
		Sense: lp.SenseGE,
		RHS:   target,
	})
}

// IndexTracking builds the benchmark-tracking problem: minimize the
// total absolute deviation from market-cap benchmark weights, keeping
// each position within a +/- 5% band around its benchmark weight.
func (g *Generator) IndexTracking(n int, trackingErrorLimit float64) (*lp.Program, *Metadata) {
	returns, vols := g.Returns(n, RegimeNormal)
	sectors := g.Sectors(n)
	cov := g.Covariance(vols, sectors)

	caps := make([]float64, n)
	total := 0.0
	for i := range caps {
		caps[i] = g.lognormal(10, 1)
		total += caps[i]
	}
	bench := make([]float64, n)
	for i := range bench {
		bench[i] = caps[i] / total
	}

	p := lp.NewProgram()
	for i := 0; i < n; i++ {
		addProgramTerm(p, p.Objective, devVar(i), 1)
	}
	addConstraint(p, budgetConstraint(n))
	for i := 0; i < n; i++ {
		addDeviationPair(p, i, bench[i])

		up := lp.NewExpr()
		up.Add(weightVar(i), 1)
		addConstraint(p, lp.Constraint{
			Name:  fmt.Sprintf("max_dev_%d", i),
			Terms: up,
			Sense: lp.SenseLE,
			RHS:   bench[i] + 0.05,
		})

		down := lp.NewExpr()
		down.Add(weightVar(i), 1)
		addConstraint(p, lp.Constraint{
			Name:  fmt.Sprintf("min_dev_%d", i),
			Terms: down,
			Sense: lp.SenseGE,
			RHS:   math.Max(0, bench[i]-0.05),
		})
	}

	// The tracking-error budget itself: total deviation stays below the
	// configured limit.
	te := lp.NewExpr()
	for i := 0; i < n; i++ {
		te.Add(devVar(i), 1)
	}
	addConstraint(p, lp.Constraint{
		Name:  "tracking_error",
		Terms: te,
		Sense: lp.SenseLE,
		RHS:   trackingErrorLimit * float64(n),
	})

	return p, &Metadata{
		ProblemType:      "index_tracking",
		NAssets:          n,
		ExpectedReturns:  returns,
		Volatilities:     vols,
		Sectors:          sectors,
		Covariance:       covRows(cov),
		BenchmarkWeights: bench,
	}
}

// ESGConstrained builds the ESG-screened minimum-risk problem:
// linearized variance objective, budget constraint, a floor on the
// portfolio ESG score and a cap on carbon intensity.
func (g *Generator) ESGConstrained(n int, minESG, maxCarbon float64) (*lp.Program, *Metadata) {
	returns, vols := g.Returns(n, RegimeNormal)
	sectors := g.Sectors(n)
	cov := g.Covariance(vols, sectors)
	risk := avgRiskContributions(cov)

	esgDist := g.uniform(3, 10)
	esg := make([]float64, n)
	for i := range esg {
		esg[i] = esgDist.Rand()
	}

	carbon := make([]float64, n)
	for i, s := range sectors {
		switch s {
		case "Energy", "Materials", "Industrials":
			carbon[i] = g.uniform(50, 200).Rand()
		case "Technology", "Healthcare", "Financials":
			carbon[i] = g.uniform(5, 30).Rand()
		default:
			carbon[i] = g.uniform(20, 80).Rand()
		}
	}

	p := lp.NewProgram()
	for i := 0; i < n; i++ {
		addProgramTerm(p, p.Objective, weightVar(i), risk[i])
	}
	addConstraint(p, budgetConstraint(n))

	esgTerms := lp.NewExpr()
	for i := 0; i < n; i++ {
		esgTerms.Add(weightVar(i), esg[i])
	}
	addConstraint(p, lp.Constraint{Name: "min_esg", Terms: esgTerms, Sense: lp.SenseGE, RHS: minESG})

	carbonTerms := lp.NewExpr()
	for i := 0; i < n; i++ {
		carbonTerms.Add(weightVar(i), carbon[i])
	}
	addConstraint(p, lp.Constraint{Name: "max_carbon", Terms: carbonTerms, Sense: lp.SenseLE, RHS: maxCarbon})

	return p, &Metadata{
		ProblemType:     "esg_constrained",
		NAssets:         n,
		ExpectedReturns: returns,
		Volatilities:    vols,
		Sectors:         sectors,
		Covariance:      covRows(cov),
		ESGScores:       esg,
		CarbonIntensity: carbon,
	}
}

func covRows(cov *mat.SymDense) [][]float64 {
	n, _ := cov.Dims()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = cov.At(i, j)
		}
	}
	return rows
}
