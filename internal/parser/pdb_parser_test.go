package parser

import (
	"strings"
	"testing"
)

const testPeptidePDB = `ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  ALA A   1      11.996   5.028  -6.728  1.00  0.00           C
ATOM      3  C   ALA A   1      13.376   5.473  -6.284  1.00  0.00           C
ATOM      4  O   ALA A   1      13.576   6.634  -5.925  1.00  0.00           O
ATOM      5  CB  ALA A   1      11.469   3.798  -6.001  1.00  0.00           C
ATOM      6  N   GLY A   2      14.318   4.537  -6.309  1.00  0.00           N
ATOM      7  CA  GLY A   2      15.690   4.850  -5.910  1.00  0.00           C
ATOM      8  C   GLY A   2      16.555   3.610  -6.080  1.00  0.00           C
ATOM      9  O   GLY A   2      16.107   2.530  -6.470  1.00  0.00           O
ATOM     10  N   VAL A   3      17.854   3.772  -5.810  1.00  0.00           N
ATOM     11  CA  VAL A   3      18.800   2.660  -5.930  1.00  0.00           C
ATOM     12  C   VAL A   3      19.200   2.400  -7.390  1.00  0.00           C
ATOM     13  O   VAL A   3      18.900   1.320  -7.910  1.00  0.00           O
ATOM     14  CB  VAL A   3      20.040   2.930  -5.060  1.00  0.00           C
HETATM   15  O   HOH A   4      21.000   3.000  -5.000  1.00  0.00           O
END
`

func TestParsePDBReader_AllAtomsByDefault(t *testing.T) {
	st, err := ParsePDBReader(strings.NewReader(testPeptidePDB), DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParsePDBReader: %v", err)
	}
	model := st.FirstModel()
	if model == nil {
		t.Fatal("expected at least one model")
	}
	if len(model.Residues) != 3 {
		t.Errorf("expected 3 residues (water excluded by default), got %d", len(model.Residues))
	}
	// 5 + 4 + 5 heavy atoms across the three residues, water excluded.
	if len(model.Atoms) != 14 {
		t.Errorf("expected 14 atoms, got %d", len(model.Atoms))
	}

	res := model.Residues[0]
	if res.Name != "ALA" {
		t.Errorf("expected first residue ALA, got %s", res.Name)
	}
	if !res.HasCompleteBackbone() {
		t.Error("first residue should have a complete backbone")
	}
	if res.Atom("CB") == nil {
		t.Error("sidechain atom CB should be present for an all-atom parse")
	}

	if model.NumCompleteResidues() != 3 {
		t.Errorf("expected 3 complete-backbone residues, got %d", model.NumCompleteResidues())
	}
}

func TestParsePDBReader_HetatmAndWaterOptIn(t *testing.T) {
	st, err := ParsePDBReader(strings.NewReader(testPeptidePDB), ParseOptions{IncludeHetatm: true, IncludeWater: true})
	if err != nil {
		t.Fatalf("ParsePDBReader: %v", err)
	}
	model := st.FirstModel()
	if len(model.Residues) != 4 {
		t.Errorf("expected 4 residues with water included, got %d", len(model.Residues))
	}
}

func TestParsePDBReader_HetatmWithoutWaterOptIn(t *testing.T) {
	st, err := ParsePDBReader(strings.NewReader(testPeptidePDB), ParseOptions{IncludeHetatm: true})
	if err != nil {
		t.Fatalf("ParsePDBReader: %v", err)
	}
	model := st.FirstModel()
	for _, res := range model.Residues {
		if res.Name == "HOH" {
			t.Error("water should stay excluded unless IncludeWater is also set")
		}
	}
}

func TestParseAtomLine(t *testing.T) {
	line := "ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N"
	atom, err := parseAtomLine(line)
	if err != nil {
		t.Fatalf("Failed to parse atom line: %v", err)
	}

	if atom.Serial != 1 {
		t.Errorf("Expected serial 1, got %d", atom.Serial)
	}
	if atom.Name != "N" {
		t.Errorf("Expected atom name 'N', got '%s'", atom.Name)
	}
	if atom.ResName != "ALA" {
		t.Errorf("Expected residue 'ALA', got '%s'", atom.ResName)
	}

	const tolerance = 0.001
	if abs(atom.X-11.104) > tolerance {
		t.Errorf("Expected X=11.104, got %f", atom.X)
	}
	if abs(atom.Y-6.134) > tolerance {
		t.Errorf("Expected Y=6.134, got %f", atom.Y)
	}
	if abs(atom.Z-(-6.504)) > tolerance {
		t.Errorf("Expected Z=-6.504, got %f", atom.Z)
	}
	if atom.ChainID != "A" {
		t.Errorf("Expected chain 'A', got '%s'", atom.ChainID)
	}
	if atom.ResSeq != 1 {
		t.Errorf("Expected resSeq 1, got %d", atom.ResSeq)
	}
}

func TestIsBackboneAtom(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"N", true},
		{"CA", true},
		{"C", true},
		{"O", true},
		{"CB", false},
		{"CD", false},
		{"OXT", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBackboneAtom(tt.name); got != tt.expected {
				t.Errorf("isBackboneAtom(%s) = %v, expected %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestResidueHasCompleteBackbone(t *testing.T) {
	res1 := &Residue{
		Name:  "ALA",
		Atoms: []*Atom{{Name: "N"}, {Name: "CA"}, {Name: "C"}},
	}
	if !res1.HasCompleteBackbone() {
		t.Error("Residue with N, CA, C should have complete backbone")
	}

	res2 := &Residue{
		Name:  "ALA",
		Atoms: []*Atom{{Name: "N"}, {Name: "C"}},
	}
	if res2.HasCompleteBackbone() {
		t.Error("Residue missing CA should not have complete backbone")
	}

	res3 := &Residue{Name: "ALA"}
	if res3.HasCompleteBackbone() {
		t.Error("Residue with no atoms should not have complete backbone")
	}
}

func TestModelCopy_DeepCopiesAtomsAndResidues(t *testing.T) {
	st, err := ParsePDBReader(strings.NewReader(testPeptidePDB), DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParsePDBReader: %v", err)
	}
	model := st.FirstModel()
	clone := model.Copy()

	if clone.Sequence() != model.Sequence() {
		t.Errorf("clone sequence %q != original %q", clone.Sequence(), model.Sequence())
	}

	clone.Atoms[0].X = 999
	if model.Atoms[0].X == 999 {
		t.Error("mutating the clone's atom mutated the original: Copy is not deep")
	}
}

func TestModelSequence(t *testing.T) {
	st, err := ParsePDBReader(strings.NewReader(testPeptidePDB), DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParsePDBReader: %v", err)
	}
	if seq := st.FirstModel().Sequence(); seq != "AGV" {
		t.Errorf("expected sequence AGV, got %s", seq)
	}
}

// Helper function for floating point comparison
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
