package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
)

// WriteLog renders a StructureReport as the plain-text summary FreeSASA
// prints by default: one line per residue, then a total.
func WriteLog(w io.Writer, r StructureReport) error {
	for _, res := range r.Residues {
		if _, err := fmt.Fprintf(w, "%-4s %s%-5d %8.2f\n", res.Name, res.ChainID, res.SeqNum, res.Total); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total : %10.2f\n", r.Total)
	return err
}

// WriteRes renders the `--format=res` per-residue-type totals, residue
// names in alphabetical order.
func WriteRes(w io.Writer, r StructureReport) error {
	totals := ByResidueType(r.Residues)
	for _, name := range SortedResidueTypes(totals) {
		if _, err := fmt.Fprintf(w, "%-4s %10.2f\n", name, totals[name]); err != nil {
			return err
		}
	}
	return nil
}

// WriteSeq renders `--format=seq`: one line per residue in sequence
// order, sharing the per-residue aggregation WriteRes sums across the
// whole structure.
func WriteSeq(w io.Writer, r StructureReport) error {
	for i, res := range r.Residues {
		if _, err := fmt.Fprintf(w, "%4d %-4s %s%-5d %8.2f\n", i+1, res.Name, res.ChainID, res.SeqNum, res.Total); err != nil {
			return err
		}
	}
	return nil
}

// WriteRSA renders `--format=rsa`: absolute and relative SASA columns
// for every residue, as RSA's classic output.
func WriteRSA(w io.Writer, r StructureReport) error {
	for _, e := range RSA(r.Residues) {
		if !e.HasReference {
			if _, err := fmt.Fprintf(w, "%-4s %s%-5d %8.2f      N/A\n", e.Name, e.ChainID, e.SeqNum, e.Total); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%-4s %s%-5d %8.2f %6.1f%% %8.2f %6.1f%% %8.2f %6.1f%%\n",
			e.Name, e.ChainID, e.SeqNum,
			e.Total, e.RelativeTotal*100,
			e.SideChain, e.RelativeSide*100,
			e.Backbone, e.RelativeBack*100,
		); err != nil {
			return err
		}
	}
	return nil
}

// jsonResidue and jsonReport mirror ResidueArea/StructureReport with
// exported, lowercase-tagged fields for `--format=json`.
type jsonResidue struct {
	Chain     string  `json:"chain"`
	SeqNum    int     `json:"seq_num"`
	Name      string  `json:"name"`
	Total     float64 `json:"total"`
	Backbone  float64 `json:"backbone"`
	SideChain float64 `json:"side_chain"`
}

type jsonReport struct {
	Name     string        `json:"name"`
	Total    float64       `json:"total"`
	Residues []jsonResidue `json:"residues"`
}

func toJSONReport(r StructureReport) jsonReport {
	jr := jsonReport{Name: r.Name, Total: r.Total, Residues: make([]jsonResidue, len(r.Residues))}
	for i, res := range r.Residues {
		jr.Residues[i] = jsonResidue{
			Chain: res.ChainID, SeqNum: res.SeqNum, Name: res.Name,
			Total: res.Total, Backbone: res.Backbone, SideChain: res.SideChain,
		}
	}
	return jr
}

// WriteJSON renders `--format=json`.
func WriteJSON(w io.Writer, r StructureReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONReport(r))
}

// xmlReport is the same shape as jsonReport, with XML struct tags
// instead — encoding/xml can't reuse json tags, so this is a distinct
// type rather than a second tag set on the same struct.
type xmlReport struct {
	XMLName  xml.Name     `xml:"structure"`
	Name     string       `xml:"name,attr"`
	Total    float64      `xml:"total"`
	Residues []xmlResidue `xml:"residue"`
}

type xmlResidue struct {
	Chain     string  `xml:"chain,attr"`
	SeqNum    int     `xml:"seqNum,attr"`
	Name      string  `xml:"name,attr"`
	Total     float64 `xml:"total"`
	Backbone  float64 `xml:"backbone"`
	SideChain float64 `xml:"sideChain"`
}

// WriteXML renders `--format=xml`.
func WriteXML(w io.Writer, r StructureReport) error {
	xr := xmlReport{Name: r.Name, Total: r.Total, Residues: make([]xmlResidue, len(r.Residues))}
	for i, res := range r.Residues {
		xr.Residues[i] = xmlResidue{
			Chain: res.ChainID, SeqNum: res.SeqNum, Name: res.Name,
			Total: res.Total, Backbone: res.Backbone, SideChain: res.SideChain,
		}
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(xr)
}
