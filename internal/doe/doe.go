// Package doe holds the design-of-experiments tables for the VQE
// portfolio study: one Config per experiment, keyed by a path-like
// identifier such as "1/31bonds/TwoLocal2rep_piby3_AerSimulator_0.1".
// The built-in table mirrors the study's published runs; custom tables
// can be loaded from YAML.
package doe

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// AnsatzParams selects the circuit shape of a variational ansatz.
type AnsatzParams struct {
	Reps         int    `yaml:"reps"`
	Entanglement string `yaml:"entanglement"`
}

// Config is one experiment configuration: which LP problem to load,
// which ansatz, device and optimizer to use, and the run budget.
type Config struct {
	ExperimentID   string       `yaml:"experiment_id"`
	LPFile         string       `yaml:"lp_file"`
	NumExec        int          `yaml:"num_exec"`
	Ansatz         string       `yaml:"ansatz"`
	AnsatzParams   AnsatzParams `yaml:"ansatz_params"`
	ThetaInitial   string       `yaml:"theta_initial"`
	Optimizer      string       `yaml:"optimizer"`
	Device         string       `yaml:"device"`
	MaxEpoch       int          `yaml:"max_epoch"`
	Shots          int          `yaml:"shots"`
	ThetaThreshold float64      `yaml:"theta_threshold"`
	Alpha          float64      `yaml:"alpha"`
}

// Problem file paths used by the built-in table.
const (
	lpFile31Bonds  = "data/1/31bonds/docplex-bin-avgonly.lp"
	lpFile109Bonds = "data/1/109bonds/docplex-bin-avgonly.lp"
	lpFile155Bonds = "data/1/155bonds/docplex-bin-avgonly.lp"
)

// twoLocalCommon is the shared base for all TwoLocal simulator runs.
var twoLocalCommon = Config{
	LPFile:       lpFile31Bonds,
	NumExec:      10,
	Ansatz:       "TwoLocal",
	ThetaInitial: "piby3",
	Optimizer:    "nft",
	Device:       "AerSimulator",
	MaxEpoch:     4,
	Shots:        1 << 13,
}

// bfcdCommon and bfcdRCommon differ from twoLocalCommon only in the
// ansatz family.
var bfcdCommon = withAnsatz(twoLocalCommon, "bfcd")
var bfcdRCommon = withAnsatz(twoLocalCommon, "bfcdR")

func withAnsatz(base Config, ansatz string) Config {
	base.Ansatz = ansatz
	return base
}

// hardware applies the hardware-run overrides: a single execution and a
// non-zero update threshold.
func hardware(base Config, device string, maxEpoch int) Config {
	base.NumExec = 1
	base.ThetaThreshold = 0.06
	base.Device = device
	base.MaxEpoch = maxEpoch
	return base
}

func experiment(base Config, id string, reps int, entanglement string, alpha float64) Config {
	base.ExperimentID = id
	base.AnsatzParams = AnsatzParams{Reps: reps, Entanglement: entanglement}
	base.Alpha = alpha
	return base
}

// Table returns the built-in design-of-experiments table. The returned
// map is freshly built on each call and can be modified by the caller.
func Table() map[string]Config {
	t := map[string]Config{}

	add31 := func(base Config, id string, reps int, entanglement string, alpha float64) {
		t["1/31bonds/"+id] = experiment(base, id, reps, entanglement, alpha)
	}

	// TwoLocal, full entanglement.
	add31(twoLocalCommon, "TwoLocal1repFull_piby3_AerSimulator_0.1", 1, "full", 0.1)
	add31(twoLocalCommon, "TwoLocal2repFull_piby3_AerSimulator_0.1", 2, "full", 0.1)
	add31(twoLocalCommon, "TwoLocal3repFull_piby3_AerSimulator_0.1", 3, "full", 0.1)
	add31(twoLocalCommon, "TwoLocal3repFull_piby3_AerSimulator_0.15", 3, "full", 0.15)
	add31(twoLocalCommon, "TwoLocal3repFull_piby3_AerSimulator_0.2", 3, "full", 0.2)

	// TwoLocal and BFCD bilinear sweeps over reps and alpha.
	for _, reps := range []int{1, 2, 3} {
		for _, alpha := range []float64{0.1, 0.15, 0.2} {
			id := fmt.Sprintf("TwoLocal%drep_piby3_AerSimulator_%v", reps, alpha)
			add31(twoLocalCommon, id, reps, "bilinear", alpha)
			id = fmt.Sprintf("bfcd%drep_piby3_AerSimulator_%v", reps, alpha)
			add31(bfcdCommon, id, reps, "bilinear", alpha)
		}
	}

	// 31-bond hardware runs.
	add31(hardware(twoLocalCommon, "ibm_kyiv", 4),
		"TwoLocal2rep_piby3_kyiv_0.15", 2, "bilinear", 0.15)
	add31(hardware(twoLocalCommon, "ibm_kyiv", 4),
		"TwoLocal2rep_piby3_kyiv_0.1", 2, "bilinear", 0.1)

	// 109 qubits.
	base109 := twoLocalCommon
	base109.LPFile = lpFile109Bonds
	t["1/109bonds/TwoLocal1rep_piby3_AerSimulator_0.1"] =
		experiment(base109, "TwoLocal1rep_piby3_AerSimulator_0.1", 1, "bilinear", 0.1)
	t["1/109bonds/TwoLocal2rep_piby3_AerSimulator_0.1"] =
		experiment(base109, "TwoLocal2rep_piby3_AerSimulator_0.1", 2, "bilinear", 0.1)
	t["1/109bonds/TwoLocal2rep_color_piby3_marrakesh_0.1"] =
		experiment(hardware(base109, "ibm_marrakesh", 1), "TwoLocal2rep_color_piby3_marrakesh_0.1", 2, "color", 0.1)
	t["1/109bonds/TwoLocal2rep_color_piby3_fez_0.1"] =
		experiment(hardware(base109, "ibm_fez", 1), "TwoLocal2rep_color_piby3_fez_0.1", 2, "color", 0.1)
	t["1/109bonds/TwoLocal2rep_bilinear_piby3_fez_0.1"] =
		experiment(hardware(base109, "ibm_fez", 1), "TwoLocal2rep_bilinear_piby3_fez_0.1", 2, "bilinear", 0.1)
	base109R := bfcdRCommon
	base109R.LPFile = lpFile109Bonds
	t["1/109bonds/bfcdR2rep_color_piby3_marrakesh_0.1"] =
		experiment(hardware(base109R, "ibm_marrakesh", 2), "bfcdR2rep_color_piby3_marrakesh_0.1", 2, "color", 0.1)

	// 155 qubits.
	base155 := twoLocalCommon
	base155.LPFile = lpFile155Bonds
	t["1/155bonds/TwoLocal2rep_piby3_AerSimulator_0.1"] =
		experiment(base155, "TwoLocal2rep_piby3_AerSimulator_0.1", 2, "bilinear", 0.1)

	// Smoke-test configuration.
	test := experiment(twoLocalCommon, "test", 1, "bilinear", 0.1)
	test.ThetaThreshold = 0.06
	test.NumExec = 1
	test.MaxEpoch = 1
	t["1/31bonds/test"] = test

	// Generated portfolio problems, run through the converter first.
	for _, g := range []struct {
		key, id, file string
	}{
		{"custom/mean_variance_31_normal", "mean_variance_31_normal",
			"vanguard_problems/mean_variance_31assets_normal_risk1.lp"},
		{"custom/esg_constrained_31", "esg_constrained_31",
			"vanguard_problems/esg_constrained_31assets_esg7.lp"},
		{"custom/index_tracking_31", "index_tracking_31",
			"vanguard_problems/index_tracking_31assets_te0.02.lp"},
		{"custom/working_portfolio", "custom_working_portfolio",
			"vanguard_problems/working_portfolio.lp"},
		{"converted/portfolio_31", "converted_portfolio_31",
			"converted_problems/mean_variance_31assets_normal_risk1_converted.lp"},
		{"converted/esg_constrained_31", "converted_esg_constrained_31",
			"converted_problems/esg_constrained_31assets_esg7_converted.lp"},
	} {
		c := experiment(twoLocalCommon, g.id, 1, "bilinear", 0.1)
		c.LPFile = g.file
		c.NumExec = 1
		c.ThetaThreshold = 0.06
		t[g.key] = c
	}

	return t
}

// IDs returns the sorted keys of a table.
func IDs(table map[string]Config) []string {
	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup finds one experiment in the built-in table.
func Lookup(key string) (Config, bool) {
	c, ok := Table()[key]
	return c, ok
}

// LoadTable reads a YAML experiment table. Entries overlay the built-in
// table: a file entry with a key that already exists replaces it.
func LoadTable(path string) (map[string]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment table: %w", err)
	}
	loaded := map[string]Config{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing experiment table %s: %w", path, err)
	}

	table := Table()
	for key, cfg := range loaded {
		table[key] = cfg
	}
	return table, nil
}
