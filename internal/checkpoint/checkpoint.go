// Package checkpoint loads and summarizes the run files written by the
// VQE optimization pipeline. Each experiment produces a checkpoint
// (exp0.json) holding the objective trace, the parameter history and
// the classical reference solution; this package turns those into
// series and a plain-text report.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Experiment mirrors the checkpoint dictionary written by the study
// pipeline. Field tags follow the pipeline's key names.
type Experiment struct {
	ExperimentID  string      `json:"experiment_id"`
	Ansatz        string      `json:"ansatz"`
	Device        string      `json:"device"`
	Alpha         float64     `json:"alpha"`
	Shots         int         `json:"shots"`
	RefValue      float64     `json:"refvalue"`
	BestFx        []float64   `json:"step3_monitor_iter_best_fx"`
	Thetas        [][]float64 `json:"step3_monitor_iter_thetas"`
	IterFxEvals   []int       `json:"step3_iter_fx_evals"`
	ResultBestFx  float64     `json:"step3_result_best_fx"`
	Time          float64     `json:"step3_time"`
	FxEvals       int         `json:"step3_fx_evals"`
	ResultMessage string      `json:"step3_result_message"`
}

// candidatePaths lists the locations an experiment checkpoint may live
// in, relative to the data directory. The layout moved around during
// the study, so all historical spots are tried in order.
func candidatePaths(dataDir, experimentID string) []string {
	return []string{
		filepath.Join(dataDir, "1", "31bonds", experimentID, "exp0.json"),
		filepath.Join(dataDir, "31bonds", experimentID, "exp0.json"),
		filepath.Join(dataDir, experimentID, "exp0.json"),
	}
}

// Load reads the checkpoint of one experiment, trying each candidate
// location in order. Unreadable, empty, or undecodable candidates are
// skipped; an error is returned only when no candidate yields data.
func Load(dataDir, experimentID string) (*Experiment, string, error) {
	paths := candidatePaths(dataDir, experimentID)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var exp Experiment
		if err := json.Unmarshal(data, &exp); err != nil {
			continue
		}
		if exp.ExperimentID == "" && len(exp.BestFx) == 0 {
			// Present but empty: the run may still be starting up.
			continue
		}
		return &exp, path, nil
	}
	return nil, "", fmt.Errorf("no checkpoint found for %s under %s (tried %d locations)",
		experimentID, dataDir, len(paths))
}

// ConvergenceSeries returns the best objective value reached by each
// iteration (monotone non-increasing even if the raw trace is not).
func (e *Experiment) ConvergenceSeries() []float64 {
	if len(e.BestFx) == 0 {
		return nil
	}
	out := make([]float64, len(e.BestFx))
	best := e.BestFx[0]
	for i, v := range e.BestFx {
		if v < best {
			best = v
		}
		out[i] = best
	}
	return out
}

// Improvements returns the iterations at which the objective improved
// over the previous iteration.
func (e *Experiment) Improvements() []int {
	var out []int
	for i := 1; i < len(e.BestFx); i++ {
		if e.BestFx[i] < e.BestFx[i-1] {
			out = append(out, i)
		}
	}
	return out
}

// StallLength returns the number of iterations since the objective
// last improved.
func (e *Experiment) StallLength() int {
	for i := len(e.BestFx) - 1; i > 0; i-- {
		if e.BestFx[i] < e.BestFx[i-1] {
			return len(e.BestFx) - 1 - i
		}
	}
	if n := len(e.BestFx); n > 0 {
		return n - 1
	}
	return 0
}

// ParameterUpdateNorms returns the L2 distance between consecutive
// parameter vectors, one entry per iteration transition. Transitions
// with missing or mismatched vectors are skipped.
func (e *Experiment) ParameterUpdateNorms() []float64 {
	var out []float64
	for i := 1; i < len(e.Thetas); i++ {
		prev, cur := e.Thetas[i-1], e.Thetas[i]
		if len(prev) == 0 || len(cur) == 0 || len(prev) != len(cur) {
			continue
		}
		out = append(out, floats.Distance(prev, cur, 2))
	}
	return out
}

// QualityGap returns the relative gap between the quantum and the
// classical objective, in percent. A negative gap means the quantum
// run found a better solution. ok is false when there is no classical
// reference to compare against.
func (e *Experiment) QualityGap() (gap float64, ok bool) {
	if e.RefValue == 0 {
		return 0, false
	}
	return (e.ResultBestFx - e.RefValue) / abs(e.RefValue) * 100, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// stallWarnIters is how long the objective may sit still before a
// running experiment is flagged as stalled.
const stallWarnIters = 50

// WriteReport prints the final plain-text summary of a run.
func (e *Experiment) WriteReport(w io.Writer) error {
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	line("VQE Portfolio Optimization Final Report")
	line("=======================================")
	line("Experiment ID:        %s", orNA(e.ExperimentID))
	line("Ansatz:               %s", orNA(e.Ansatz))
	line("Device:               %s", orNA(e.Device))
	line("Alpha (CVaR):         %g", e.Alpha)
	line("Shots:                %d", e.Shots)
	line("Classical solution:   %.6f", e.RefValue)
	line("Quantum solution:     %.6f", e.ResultBestFx)

	if gap, ok := e.QualityGap(); ok {
		if gap < 0 {
			line("Relative gap:         %.2f%% (quantum better)", gap)
		} else {
			line("Relative gap:         %.2f%%", gap)
		}
	}

	if e.Time > 0 {
		line("Runtime:              %.2fs", e.Time)
	} else {
		line("Runtime:              still running")
	}
	line("Function evaluations: %d", e.FxEvals)
	line("Status:               %s", orNA(e.ResultMessage))
	line("Iterations recorded:  %d (%d improvements)", len(e.BestFx), len(e.Improvements()))
	if stall := e.StallLength(); e.Time == 0 && stall >= stallWarnIters {
		line("Warning:              no improvement for %d iterations", stall)
	}

	if n := len(e.Thetas); n > 0 && len(e.Thetas[n-1]) > 0 {
		last := e.Thetas[n-1]
		line("Current theta:        %d parameters, mean %.4f", len(last), stat.Mean(last, nil))
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
