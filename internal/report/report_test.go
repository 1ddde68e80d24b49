package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aravindprasad/freesasa/internal/parser"
)

func testModel() *parser.Model {
	st, err := parser.ParsePDBReader(strings.NewReader(`ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  ALA A   1      11.996   5.028  -6.728  1.00  0.00           C
ATOM      3  C   ALA A   1      13.376   5.473  -6.284  1.00  0.00           C
ATOM      4  O   ALA A   1      13.576   6.634  -5.925  1.00  0.00           O
ATOM      5  CB  ALA A   1      11.469   3.798  -6.001  1.00  0.00           C
ATOM      6  N   GLY A   2      14.318   4.537  -6.309  1.00  0.00           N
ATOM      7  CA  GLY A   2      15.690   4.850  -5.910  1.00  0.00           C
ATOM      8  C   GLY A   2      16.555   3.610  -6.080  1.00  0.00           C
ATOM      9  O   GLY A   2      16.107   2.530  -6.470  1.00  0.00           O
END
`), parser.DefaultParseOptions())
	if err != nil {
		panic(err)
	}
	return st.FirstModel()
}

func TestAggregateByResidue_SplitsBackboneAndSideChain(t *testing.T) {
	model := testModel()
	areas := make([]float64, len(model.Atoms))
	for i := range areas {
		areas[i] = 10.0
	}

	residues := AggregateByResidue(model, areas)
	if len(residues) != 2 {
		t.Fatalf("expected 2 residues, got %d", len(residues))
	}

	ala := residues[0]
	if ala.Name != "ALA" {
		t.Fatalf("expected ALA first, got %s", ala.Name)
	}
	if ala.Backbone != 40 {
		t.Errorf("ALA backbone = %g, want 40 (4 backbone atoms * 10)", ala.Backbone)
	}
	if ala.SideChain != 10 {
		t.Errorf("ALA sidechain = %g, want 10 (1 sidechain atom * 10)", ala.SideChain)
	}
	if ala.Total != 50 {
		t.Errorf("ALA total = %g, want 50", ala.Total)
	}
}

func TestByResidueType_SumsAcrossInstances(t *testing.T) {
	residues := []ResidueArea{
		{Name: "ALA", Total: 10},
		{Name: "ALA", Total: 15},
		{Name: "GLY", Total: 5},
	}
	totals := ByResidueType(residues)
	if totals["ALA"] != 25 {
		t.Errorf("ALA total = %g, want 25", totals["ALA"])
	}
	if totals["GLY"] != 5 {
		t.Errorf("GLY total = %g, want 5", totals["GLY"])
	}
}

func TestAverage_MeansEachResidueAcrossModels(t *testing.T) {
	a := StructureReport{Residues: []ResidueArea{{Name: "ALA", Total: 10}}, Total: 10}
	b := StructureReport{Residues: []ResidueArea{{Name: "ALA", Total: 20}}, Total: 20}

	avg := Average([]StructureReport{a, b})
	if avg.Residues[0].Total != 15 {
		t.Errorf("averaged residue total = %g, want 15", avg.Residues[0].Total)
	}
	if avg.Total != 15 {
		t.Errorf("averaged structure total = %g, want 15", avg.Total)
	}
}

func TestRSA_KnownResidueProducesRelativeValues(t *testing.T) {
	residues := []ResidueArea{{Name: "GLY", Total: 52.0, Backbone: 52.0}}
	entries := RSA(residues)
	if !entries[0].HasReference {
		t.Fatal("GLY should have a reference max ASA")
	}
	want := 52.0 / maxASA["GLY"]
	if diff := entries[0].RelativeTotal - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("RelativeTotal = %g, want %g", entries[0].RelativeTotal, want)
	}
}

func TestRSA_UnknownResidueHasNoReference(t *testing.T) {
	residues := []ResidueArea{{Name: "HOH", Total: 30}}
	entries := RSA(residues)
	if entries[0].HasReference {
		t.Error("water should have no RSA reference")
	}
}

func TestWriteLog_IncludesEveryResidueAndATotalLine(t *testing.T) {
	r := StructureReport{
		Name:     "test",
		Residues: []ResidueArea{{Name: "ALA", ChainID: "A", SeqNum: 1, Total: 50}},
		Total:    50,
	}
	var buf bytes.Buffer
	if err := WriteLog(&buf, r); err != nil {
		t.Fatalf("WriteLog: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ALA") || !strings.Contains(out, "Total") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestWriteJSON_RoundTripsResidueCount(t *testing.T) {
	r := StructureReport{
		Name:     "test",
		Residues: []ResidueArea{{Name: "ALA", Total: 50}, {Name: "GLY", Total: 30}},
		Total:    80,
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\"ALA\"") {
		t.Errorf("expected ALA in JSON output: %s", buf.String())
	}
}

func TestWriteXML_ProducesWellFormedRoot(t *testing.T) {
	r := StructureReport{Name: "test", Residues: []ResidueArea{{Name: "ALA", Total: 50}}, Total: 50}
	var buf bytes.Buffer
	if err := WriteXML(&buf, r); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	if !strings.Contains(buf.String(), "<structure") {
		t.Errorf("expected <structure> root element: %s", buf.String())
	}
}
