// Package report turns a per-atom sasa.Result into the output shapes
// FreeSASA's own CLI produces: per-residue sums, per-residue-type totals
// across a structure, relative (RSA) percentages, and log/JSON/XML
// renderings of all of the above.
package report

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/aravindprasad/freesasa/internal/parser"
)

// backboneAtoms names the four atoms counted toward a residue's
// backbone SASA rather than its sidechain SASA.
var backboneAtoms = map[string]bool{"N": true, "CA": true, "C": true, "O": true}

// ResidueArea is one residue's aggregated SASA within a single model.
type ResidueArea struct {
	ChainID   string
	SeqNum    int
	ICode     string
	Name      string
	Total     float64
	Backbone  float64
	SideChain float64
}

// StructureReport is the aggregated result for one parsed model.
type StructureReport struct {
	Name     string
	Residues []ResidueArea
	Total    float64
}

// AggregateByResidue sums the per-atom areas in areas (indexed
// identically to model.Atoms) into one ResidueArea per residue, in the
// model's residue order.
func AggregateByResidue(model *parser.Model, areas []float64) []ResidueArea {
	if model == nil {
		return nil
	}
	atomArea := make(map[*parser.Atom]float64, len(model.Atoms))
	for i, a := range model.Atoms {
		if i < len(areas) {
			atomArea[a] = areas[i]
		}
	}

	out := make([]ResidueArea, 0, len(model.Residues))
	for _, res := range model.Residues {
		ra := ResidueArea{ChainID: res.ChainID, SeqNum: res.SeqNum, ICode: res.ICode, Name: res.Name}
		vals := make([]float64, 0, len(res.Atoms))
		for _, a := range res.Atoms {
			area := atomArea[a]
			vals = append(vals, area)
			if backboneAtoms[a.Name] {
				ra.Backbone += area
			} else {
				ra.SideChain += area
			}
		}
		ra.Total = floats.Sum(vals)
		out = append(out, ra)
	}
	return out
}

// NewStructureReport aggregates a whole model's result into a
// StructureReport.
func NewStructureReport(name string, model *parser.Model, areas []float64) StructureReport {
	residues := AggregateByResidue(model, areas)
	totals := make([]float64, len(residues))
	for i, r := range residues {
		totals[i] = r.Total
	}
	return StructureReport{Name: name, Residues: residues, Total: floats.Sum(totals)}
}

// ByResidueType sums ResidueArea.Total across every residue sharing a
// name (ALA, GLY, ...), for FreeSASA's `--format=res`.
func ByResidueType(residues []ResidueArea) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range residues {
		totals[r.Name] += r.Total
	}
	return totals
}

// SortedResidueTypes returns the keys of a ByResidueType map in
// alphabetical order, for deterministic output.
func SortedResidueTypes(totals map[string]float64) []string {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Average combines several StructureReports — one per model of an
// ensemble — into a single report whose every residue and total SASA is
// the mean across all of them, for `--average`. Residues are matched by
// position, so reports must all share the same residue layout (same
// models of the same structure); Average panics if their residue counts
// differ and does not compare the residues themselves.
func Average(reports []StructureReport) StructureReport {
	if len(reports) == 0 {
		return StructureReport{}
	}
	if len(reports) == 1 {
		return reports[0]
	}
	n := len(reports[0].Residues)
	for _, r := range reports {
		if len(r.Residues) != n {
			panic("report: Average requires every report to have the same residue count")
		}
	}

	avg := StructureReport{Name: reports[0].Name, Residues: make([]ResidueArea, n)}
	totals := make([]float64, len(reports))
	for i := range avg.Residues {
		avg.Residues[i] = reports[0].Residues[i]
		tot := make([]float64, len(reports))
		back := make([]float64, len(reports))
		side := make([]float64, len(reports))
		for k, r := range reports {
			tot[k] = r.Residues[i].Total
			back[k] = r.Residues[i].Backbone
			side[k] = r.Residues[i].SideChain
		}
		avg.Residues[i].Total = floats.Sum(tot) / float64(len(tot))
		avg.Residues[i].Backbone = floats.Sum(back) / float64(len(back))
		avg.Residues[i].SideChain = floats.Sum(side) / float64(len(side))
	}
	for k, r := range reports {
		totals[k] = r.Total
	}
	avg.Total = floats.Sum(totals) / float64(len(totals))
	return avg
}
