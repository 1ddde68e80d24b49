package parser

// Copy creates a deep copy of a Model, atoms and residues alike, so a
// caller that builds per-model working geometry never aliases another
// model's atoms.
func (m *Model) Copy() *Model {
	if m == nil {
		return nil
	}

	clone := &Model{
		Number:   m.Number,
		Residues: make([]*Residue, len(m.Residues)),
		Atoms:    make([]*Atom, len(m.Atoms)),
	}

	atomMap := make(map[*Atom]*Atom, len(m.Atoms))
	for i, atom := range m.Atoms {
		clonedAtom := &Atom{
			Serial:    atom.Serial,
			Name:      atom.Name,
			AltLoc:    atom.AltLoc,
			ResName:   atom.ResName,
			ChainID:   atom.ChainID,
			ResSeq:    atom.ResSeq,
			ICode:     atom.ICode,
			X:         atom.X,
			Y:         atom.Y,
			Z:         atom.Z,
			Occupancy: atom.Occupancy,
			TempFacto: atom.TempFacto,
			Element:   atom.Element,
			HetAtm:    atom.HetAtm,
		}
		clone.Atoms[i] = clonedAtom
		atomMap[atom] = clonedAtom
	}

	for i, res := range m.Residues {
		clonedRes := &Residue{
			Name:    res.Name,
			SeqNum:  res.SeqNum,
			ChainID: res.ChainID,
			ICode:   res.ICode,
			Atoms:   make([]*Atom, len(res.Atoms)),
		}
		for j, a := range res.Atoms {
			clonedRes.Atoms[j] = atomMap[a]
		}
		clone.Residues[i] = clonedRes
	}

	return clone
}

// Sequence returns the model's amino acid sequence as a one-letter
// string, in residue order. Residues with no standard one-letter code
// (water, ligands, unknown residues) are rendered as 'X'.
func (m *Model) Sequence() string {
	if m == nil || len(m.Residues) == 0 {
		return ""
	}
	sequence := make([]byte, len(m.Residues))
	for i, res := range m.Residues {
		sequence[i] = threeToOne(res.Name)
	}
	return string(sequence)
}

// NumCompleteResidues returns the count of residues with a complete
// N/CA/C backbone.
func (m *Model) NumCompleteResidues() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, res := range m.Residues {
		if res.HasCompleteBackbone() {
			n++
		}
	}
	return n
}

// threeToOne converts a three-letter amino acid code to its one-letter
// equivalent, or 'X' for anything not in the twenty standard residues.
func threeToOne(threeLetter string) byte {
	mapping := map[string]byte{
		"ALA": 'A', "CYS": 'C', "ASP": 'D', "GLU": 'E',
		"PHE": 'F', "GLY": 'G', "HIS": 'H', "ILE": 'I',
		"LYS": 'K', "LEU": 'L', "MET": 'M', "ASN": 'N',
		"PRO": 'P', "GLN": 'Q', "ARG": 'R', "SER": 'S',
		"THR": 'T', "VAL": 'V', "TRP": 'W', "TYR": 'Y',
	}
	if code, ok := mapping[threeLetter]; ok {
		return code
	}
	return 'X'
}
