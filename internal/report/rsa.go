package report

// maxASA is the theoretical maximum solvent accessible surface area, in
// Å², for each of the twenty standard residues in an extended
// Gly-X-Gly tripeptide, from Tien et al. 2013 ("Theoretical" column) —
// the same reference table FreeSASA itself ships for `--format=rsa`.
var maxASA = map[string]float64{
	"ALA": 129.0, "ARG": 274.0, "ASN": 195.0, "ASP": 193.0, "CYS": 167.0,
	"GLN": 225.0, "GLU": 223.0, "GLY": 104.0, "HIS": 224.0, "ILE": 197.0,
	"LEU": 201.0, "LYS": 236.0, "MET": 224.0, "PHE": 240.0, "PRO": 159.0,
	"SER": 155.0, "THR": 172.0, "TRP": 285.0, "TYR": 263.0, "VAL": 174.0,
}

// RSAEntry is one residue's relative solvent accessibility, FreeSASA's
// `--format=rsa` columns: absolute and relative total, sidechain and
// backbone SASA.
type RSAEntry struct {
	ChainID        string
	SeqNum         int
	Name           string
	Total          float64
	RelativeTotal  float64 // fraction of 0..1+ (may exceed 1 for extended conformations)
	SideChain      float64
	RelativeSide   float64
	Backbone       float64
	RelativeBack   float64
	HasReference   bool // false when Name has no entry in maxASA (ligands, water, non-standard residues)
}

// RSA converts a structure's per-residue aggregation into relative SASA
// entries. Residues with no reference maximum (HETATM groups,
// non-standard residues) are still returned, with HasReference false and
// the Relative* fields left at zero.
func RSA(residues []ResidueArea) []RSAEntry {
	out := make([]RSAEntry, len(residues))
	for i, r := range residues {
		e := RSAEntry{ChainID: r.ChainID, SeqNum: r.SeqNum, Name: r.Name, Total: r.Total, SideChain: r.SideChain, Backbone: r.Backbone}
		if ref, ok := maxASA[r.Name]; ok && ref > 0 {
			e.HasReference = true
			e.RelativeTotal = r.Total / ref
			// FreeSASA splits the sidechain reference as (total - backbone
			// reference), using a fixed per-residue backbone reference of
			// ~40% of a Gly-X-Gly extended backbone; approximated here with
			// glycine's own max ASA, which has no sidechain to confound it.
			backboneRef := maxASA["GLY"]
			sidechainRef := ref - backboneRef
			if backboneRef > 0 {
				e.RelativeBack = r.Backbone / backboneRef
			}
			if sidechainRef > 0 {
				e.RelativeSide = r.SideChain / sidechainRef
			}
		}
		out[i] = e
	}
	return out
}
