package lp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputDir is where converted files land when the caller does
// not pick an output path.
const DefaultOutputDir = "converted_problems"

// Result summarizes one file conversion.
type Result struct {
	Program     *Program
	Diagnostics []Diagnostic
	OutputPath  string
}

// NumConstraints returns the number of constraints written.
func (r *Result) NumConstraints() int { return len(r.Program.Constraints) }

// NumVariables returns the number of distinct variables written.
func (r *Result) NumVariables() int { return r.Program.NumVariables() }

// DefaultOutputPath derives the conventional output location for an
// input file: converted_problems/<stem>_converted.lp.
func DefaultOutputPath(inputPath string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(DefaultOutputDir, stem+"_converted.lp")
}

// ConvertFile reads one LP file, re-linearizes it, and writes the
// normalized form. An unreadable input is fatal and nothing is written;
// per-constraint problems are returned as diagnostics on the Result.
// An empty outputPath selects DefaultOutputPath (the directory is
// created if needed).
func ConvertFile(inputPath, outputPath string) (*Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}

	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	prog, diags := Parse(string(data))

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer f.Close()
	if err := prog.Write(f); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	return &Result{
		Program:     prog,
		Diagnostics: diags,
		OutputPath:  outputPath,
	}, nil
}

// RepairFile runs the multi-line constraint repair pass over a file.
// An empty outputPath rewrites the input in place.
func RepairFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	if outputPath == "" {
		outputPath = inputPath
	}
	if err := os.WriteFile(outputPath, []byte(Repair(string(data))), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
