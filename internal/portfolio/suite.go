package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vqetools/portlab/internal/lp"
)

// SuiteConfig describes one problem of the standard test suite.
type SuiteConfig struct {
	Type               string
	NAssets            int
	Regime             Regime
	RiskAversion       float64
	TrackingErrorLimit float64
	MinESG             float64
	MaxCarbon          float64
}

// DefaultSuite is the study's standard test matrix: several problem
// types, three sizes, and varying market conditions.
var DefaultSuite = []SuiteConfig{
	{Type: "mean_variance", NAssets: 31, Regime: RegimeNormal, RiskAversion: 1.0},
	{Type: "mean_variance", NAssets: 31, Regime: RegimeBull, RiskAversion: 0.5},
	{Type: "mean_variance", NAssets: 31, Regime: RegimeBear, RiskAversion: 2.0},
	{Type: "index_tracking", NAssets: 31, TrackingErrorLimit: 0.02},
	{Type: "esg_constrained", NAssets: 31, MinESG: 7.0, MaxCarbon: 80},
	{Type: "mean_variance", NAssets: 109, Regime: RegimeNormal, RiskAversion: 1.0},
	{Type: "index_tracking", NAssets: 109, TrackingErrorLimit: 0.015},
	{Type: "mean_variance", NAssets: 155, Regime: RegimeNormal, RiskAversion: 1.0},
}

// Name derives the problem's file stem, e.g.
// "mean_variance_31assets_normal_risk1".
func (c SuiteConfig) Name() string {
	switch c.Type {
	case "mean_variance":
		return fmt.Sprintf("mean_variance_%dassets_%s_risk%v", c.NAssets, c.Regime, c.RiskAversion)
	case "index_tracking":
		return fmt.Sprintf("index_tracking_%dassets_te%v", c.NAssets, c.TrackingErrorLimit)
	case "esg_constrained":
		return fmt.Sprintf("esg_constrained_%dassets_esg%v", c.NAssets, c.MinESG)
	case "risk_parity":
		return fmt.Sprintf("risk_parity_%dassets", c.NAssets)
	default:
		return fmt.Sprintf("%s_%dassets", c.Type, c.NAssets)
	}
}

// Build constructs the program and metadata for one suite entry.
func (g *Generator) Build(c SuiteConfig) (*lp.Program, *Metadata, error) {
	switch c.Type {
	case "mean_variance":
		p, m := g.MeanVariance(c.NAssets, c.RiskAversion, c.Regime, 0.3)
		return p, m, nil
	case "index_tracking":
		p, m := g.IndexTracking(c.NAssets, c.TrackingErrorLimit)
		return p, m, nil
	case "esg_constrained":
		p, m := g.ESGConstrained(c.NAssets, c.MinESG, c.MaxCarbon)
		return p, m, nil
	case "risk_parity":
		p, m := g.RiskParity(c.NAssets, c.Regime)
		return p, m, nil
	default:
		return nil, nil, fmt.Errorf("unknown problem type %q", c.Type)
	}
}

// SuiteProblem is one entry of the manifest returned by WriteSuite.
type SuiteProblem struct {
	Name           string
	Type           string
	NAssets        int
	LPPath         string
	MetadataPath   string
	NumConstraints int
	NumVariables   int
}

// WriteSuite generates every problem of the given suite into outDir:
// the LP file (run through the line-repair pass, as the original
// pipeline does right after writing), plus a metadata JSON next to it.
func (g *Generator) WriteSuite(outDir string, suite []SuiteConfig) ([]SuiteProblem, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating suite directory: %w", err)
	}

	manifest := make([]SuiteProblem, 0, len(suite))
	for _, cfg := range suite {
		prog, meta, err := g.Build(cfg)
		if err != nil {
			return nil, err
		}

		name := cfg.Name()
		lpPath := filepath.Join(outDir, name+".lp")
		if err := writeProgram(prog, lpPath); err != nil {
			return nil, err
		}
		if err := lp.RepairFile(lpPath, ""); err != nil {
			return nil, err
		}

		metaPath := filepath.Join(outDir, name+"_metadata.json")
		if err := writeMetadata(meta, metaPath); err != nil {
			return nil, err
		}

		manifest = append(manifest, SuiteProblem{
			Name:           name,
			Type:           cfg.Type,
			NAssets:        cfg.NAssets,
			LPPath:         lpPath,
			MetadataPath:   metaPath,
			NumConstraints: len(prog.Constraints),
			NumVariables:   prog.NumVariables(),
		})
	}
	return manifest, nil
}

func writeProgram(p *lp.Program, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := p.Write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeMetadata(m *Metadata, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
