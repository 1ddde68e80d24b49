// Package parser provides PDB file parsing for solvent accessible
// surface area calculations.
//
// Unlike a backbone-only Ramachandran parser, every ATOM record (and,
// when ParseOptions asks for them, HETATM records and water) needs a
// place in the geometry the SASA engine consumes, since a buried
// sidechain atom blocks water just as effectively as a backbone one. The parser also follows MODEL/ENDMDL
// boundaries so a multi-model NMR ensemble can be averaged rather than
// only ever reading the first conformer.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Atom represents a single atom in 3D space, as read from one PDB
// ATOM/HETATM record.
type Atom struct {
	Serial    int     // Atom serial number
	Name      string  // Atom name (e.g., "CA", "N", "OD1")
	AltLoc    string  // Alternate location indicator
	ResName   string  // Residue name (e.g., "ALA", "GLY", "HOH")
	ChainID   string  // Chain identifier
	ResSeq    int     // Residue sequence number
	ICode     string  // Insertion code
	X, Y, Z   float64 // Atomic coordinates (Angstroms)
	Occupancy float64 // Occupancy
	TempFacto float64 // Temperature factor
	Element   string  // Element symbol
	HetAtm    bool    // true for HETATM records
}

// IsWater reports whether the atom belongs to a water residue, the one
// HETATM class excluded from SASA geometry by default.
func (a *Atom) IsWater() bool {
	switch strings.ToUpper(strings.TrimSpace(a.ResName)) {
	case "HOH", "WAT", "H2O", "DOD":
		return true
	default:
		return false
	}
}

// Residue groups every atom in a model that shares a chain, sequence
// number and insertion code.
type Residue struct {
	Name    string  // Three-letter code (ALA, GLY, HOH, ...)
	SeqNum  int     // Sequence number
	ChainID string  // Chain identifier
	ICode   string  // Insertion code
	Atoms   []*Atom // Every atom of this residue, backbone and sidechain
}

// Atom returns the residue's atom named name, or nil if it has none.
func (r *Residue) Atom(name string) *Atom {
	name = strings.TrimSpace(name)
	for _, a := range r.Atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// HasCompleteBackbone reports whether the residue has N, CA and C atoms.
func (r *Residue) HasCompleteBackbone() bool {
	return r.Atom("N") != nil && r.Atom("CA") != nil && r.Atom("C") != nil
}

// Model is one conformer of a structure: everything between a MODEL
// record and its matching ENDMDL, or the whole file for a single-model
// entry that never uses MODEL at all.
type Model struct {
	Number   int
	Residues []*Residue
	Atoms    []*Atom
}

// Structure is a complete parsed PDB entry, potentially spanning
// multiple models (e.g. an NMR ensemble).
type Structure struct {
	Name   string
	Models []*Model
}

// FirstModel returns the structure's first model, or nil if it has none.
func (s *Structure) FirstModel() *Model {
	if s == nil || len(s.Models) == 0 {
		return nil
	}
	return s.Models[0]
}

// ParseOptions controls which records ParsePDB turns into atoms.
type ParseOptions struct {
	// IncludeHetatm keeps HETATM records (ligands, ions, crystallization
	// additives). Off by default, matching FreeSASA's default of
	// computing SASA for polymer atoms only.
	IncludeHetatm bool
	// IncludeWater keeps water residues even when IncludeHetatm is set.
	// Off by default: water is solvent, not structure, for SASA purposes.
	IncludeWater bool
}

// DefaultParseOptions matches FreeSASA's own defaults: polymer atoms
// only, no heteroatoms, no water.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{}
}

// ParsePDB parses a PDB file and extracts its structure.
//
// Citation: PDB format specification from RCSB PDB (www.wwpdb.org).
func ParsePDB(filename string, opts ParseOptions) (*Structure, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDB file: %w", err)
	}
	defer file.Close()

	st, err := ParsePDBReader(file, opts)
	if err != nil {
		return nil, err
	}
	st.Name = filename
	return st, nil
}

// ParsePDBReader is ParsePDB over an already-open reader, for callers
// that already hold the file contents (e.g. a downloaded PDB entry) and
// don't want to round-trip through disk.
func ParsePDBReader(r io.Reader, opts ParseOptions) (*Structure, error) {
	structure := &Structure{}

	var current *Model
	residueMap := make(map[string]*Residue)

	startModel := func(number int) {
		current = &Model{Number: number}
		residueMap = make(map[string]*Residue)
		structure.Models = append(structure.Models, current)
	}
	startModel(1)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case len(line) >= 6 && line[0:5] == "MODEL":
			n := 0
			if len(line) > 10 {
				n, _ = strconv.Atoi(strings.TrimSpace(line[10:min(len(line), 14)]))
			}
			if len(structure.Models) == 1 && len(current.Atoms) == 0 {
				current.Number = n
			} else {
				startModel(n)
			}
			continue
		case len(line) >= 6 && line[0:6] == "ENDMDL":
			continue
		case len(line) >= 3 && line[0:3] == "END":
			continue
		}

		isAtom := len(line) >= 6 && line[0:4] == "ATOM"
		isHetatm := len(line) >= 6 && line[0:6] == "HETATM"
		if !isAtom && !isHetatm {
			continue
		}
		if isHetatm && !opts.IncludeHetatm {
			continue
		}

		atom, err := parseAtomLine(line)
		if err != nil {
			continue // malformed line; skip rather than abort the whole file
		}
		atom.HetAtm = isHetatm

		if atom.IsWater() && !opts.IncludeWater {
			continue
		}
		// Skip alternate conformers other than the first/blank one so
		// an atom is never counted twice toward the same structure.
		if atom.AltLoc != "" && atom.AltLoc != "A" {
			continue
		}

		current.Atoms = append(current.Atoms, atom)

		resKey := fmt.Sprintf("%s:%d:%s", atom.ChainID, atom.ResSeq, atom.ICode)
		res, exists := residueMap[resKey]
		if !exists {
			res = &Residue{
				Name:    atom.ResName,
				SeqNum:  atom.ResSeq,
				ChainID: atom.ChainID,
				ICode:   atom.ICode,
			}
			residueMap[resKey] = res
			current.Residues = append(current.Residues, res)
		}
		res.Atoms = append(res.Atoms, atom)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading PDB file: %w", err)
	}
	if len(current.Atoms) == 0 && len(structure.Models) == 1 {
		return nil, fmt.Errorf("no usable ATOM/HETATM records found")
	}
	return structure, nil
}

// parseAtomLine parses a single ATOM/HETATM line from PDB format.
//
// PDB format (fixed-width columns):
// ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N
// Cols: 1-6 (record), 7-11 (serial), 13-16 (name), 17 (altLoc), 18-20 (resName),
//
//	22 (chainID), 23-26 (resSeq), 31-38 (x), 39-46 (y), 47-54 (z), etc.
func parseAtomLine(line string) (*Atom, error) {
	if len(line) < 54 {
		return nil, fmt.Errorf("line too short: %d characters", len(line))
	}
	for len(line) < 80 {
		line += " "
	}

	atom := &Atom{}

	if serial, err := strconv.Atoi(strings.TrimSpace(line[6:11])); err == nil {
		atom.Serial = serial
	}
	atom.Name = strings.TrimSpace(line[12:16])
	atom.AltLoc = strings.TrimSpace(line[16:17])
	atom.ResName = strings.TrimSpace(line[17:20])
	atom.ChainID = strings.TrimSpace(line[21:22])
	if resSeq, err := strconv.Atoi(strings.TrimSpace(line[22:26])); err == nil {
		atom.ResSeq = resSeq
	}
	atom.ICode = strings.TrimSpace(line[26:27])

	if x, err := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64); err == nil {
		atom.X = x
	} else {
		return nil, fmt.Errorf("invalid X coordinate: %w", err)
	}
	if y, err := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64); err == nil {
		atom.Y = y
	} else {
		return nil, fmt.Errorf("invalid Y coordinate: %w", err)
	}
	if z, err := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64); err == nil {
		atom.Z = z
	} else {
		return nil, fmt.Errorf("invalid Z coordinate: %w", err)
	}

	if len(line) >= 60 {
		if occ, err := strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64); err == nil {
			atom.Occupancy = occ
		}
	}
	if len(line) >= 66 {
		if temp, err := strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64); err == nil {
			atom.TempFacto = temp
		}
	}
	if len(line) >= 78 {
		atom.Element = strings.TrimSpace(line[76:78])
	}

	return atom, nil
}

// isBackboneAtom reports whether name is one of the four backbone atoms.
func isBackboneAtom(name string) bool {
	switch name {
	case "N", "CA", "C", "O":
		return true
	default:
		return false
	}
}
