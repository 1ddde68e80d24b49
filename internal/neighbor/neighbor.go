// Package neighbor builds the per-atom contact list spec.md §4.2
// describes: for every atom i, every atom j with
// |x_i - x_j| < R[i] + R[j] + 2*r_p, found by walking the cell list's
// forward-neighbor table so every candidate pair is visited exactly
// once, and recorded symmetrically in both atoms' lists.
package neighbor

import (
	"math"

	"github.com/aravindprasad/freesasa/internal/cellist"
	"github.com/aravindprasad/freesasa/internal/geometry"
	"github.com/aravindprasad/freesasa/internal/sasaerr"
)

// List holds, for every atom i, the atoms within contact distance as
// three parallel arrays: indices, Euclidean distances, and reciprocal
// distances (the square root is deferred until a candidate pair passes
// the cutoff, and the reciprocal is computed once per pair here).
type List struct {
	nb  [][]int32
	d   [][]float64
	rd  [][]float64
}

// Neighbors returns the atom indices within contact distance of i.
func (l *List) Neighbors(i int) []int32 { return l.nb[i] }

// Distances returns |x_i - x_j| for each j in Neighbors(i), same order.
func (l *List) Distances(i int) []float64 { return l.d[i] }

// ReciprocalDistances returns 1/|x_i - x_j| for each j in Neighbors(i).
func (l *List) ReciprocalDistances(i int) []float64 { return l.rd[i] }

// Len returns N, the number of atoms the list was built for.
func (l *List) Len() int { return len(l.nb) }

// Build constructs the neighbor list for pts/radii using the cell list
// cl. probeRadius is added to both atoms' radii in the cutoff test, per
// spec.md's membership condition |x_i - x_j| < R[i] + R[j] + 2*r_p.
func Build(pts *geometry.PointSet, radii []float64, probeRadius float64, cl *cellist.List) (*List, error) {
	n := pts.Len()
	if n != len(radii) {
		return nil, sasaerr.Newf(sasaerr.InvalidInput, "neighbor: %d points but %d radii", n, len(radii))
	}

	// Scratch slices sized generously; appended to, then trimmed by the
	// runtime's own slice growth — no locking needed since each cell
	// pair is only ever processed once, from a single goroutine here.
	nb := make([][]int32, n)
	d := make([][]float64, n)
	rd := make([][]float64, n)

	addPair := func(i, j int, dist float64) {
		nb[i] = append(nb[i], int32(j))
		nb[j] = append(nb[j], int32(i))
		d[i] = append(d[i], dist)
		d[j] = append(d[j], dist)
		invd := 1.0 / dist
		rd[i] = append(rd[i], invd)
		rd[j] = append(rd[j], invd)
	}

	for c := 0; c < cl.NumCells(); c++ {
		atomsC := cl.CellsOf(c)
		for _, nc := range cl.Neighbors(c) {
			sameCell := int(nc) == c
			atomsNC := cl.CellsOf(int(nc))
			for _, ii := range atomsC {
				i := int(ii)
				xi, yi, zi := pts.XYZ()[3*i], pts.XYZ()[3*i+1], pts.XYZ()[3*i+2]
				ri := radii[i]
				for _, jj := range atomsNC {
					j := int(jj)
					if sameCell && j <= i {
						continue
					}
					if !sameCell && j == i {
						continue
					}
					dx := xi - pts.XYZ()[3*j]
					dy := yi - pts.XYZ()[3*j+1]
					dz := zi - pts.XYZ()[3*j+2]
					d2 := dx*dx + dy*dy + dz*dz
					cutoff := ri + radii[j] + 2*probeRadius
					if d2 < cutoff*cutoff {
						addPair(i, j, math.Sqrt(d2))
					}
				}
			}
		}
	}

	return &List{nb: nb, d: d, rd: rd}, nil
}
