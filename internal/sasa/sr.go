package sasa

import (
	"math"
	"sort"

	"github.com/aravindprasad/freesasa/internal/geometry"
	"github.com/aravindprasad/freesasa/internal/neighbor"
)

// goldenSpiralPoints returns n unit vectors approximately uniform on
// S², generated deterministically so the point set is identical across
// runs and thread counts (spec.md §4.4, §9's open question on
// determinism: "it must be deterministic" for thread invariance).
func goldenSpiralPoints(n int) []point3 {
	pts := make([]point3, n)
	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - (float64(i)/float64(n-1))*2
		if n == 1 {
			y = 0
		}
		radius := math.Sqrt(math.Max(0, 1-y*y))
		theta := goldenAngle * float64(i)
		pts[i] = point3{X: math.Cos(theta) * radius, Y: y, Z: math.Sin(theta) * radius}
	}
	return pts
}

type point3 struct{ X, Y, Z float64 }

// srAtom computes the Shrake & Rupley area contribution for a single
// atom, per spec.md §4.4: test each of the N_sr sphere points against
// neighbors, ordered nearest-first so the most-likely-covering neighbor
// is checked first and the inner loop exits early.
func srAtom(i int, pts *geometry.PointSet, radii []float64, probeRadius float64, unit []point3, nb *neighbor.List, order []int32) int {
	center := pts.At(i)
	si := radii[i] + probeRadius
	if si <= 0 {
		return 0
	}

	nbrs := nb.Neighbors(i)
	dist := nb.Distances(i)

	// A neighbor whose center coincides with atom i's own (dist ~ 0) and
	// whose expanded radius equals si can never be resolved by the
	// per-point burial test below: every sample point on atom i's sphere
	// sits at exactly si = sj from the neighbor's coincident center,
	// failing the strict "<" test regardless of how many points are
	// sampled. Apply
	// the same tie-break degenerate.go uses for Lee & Richards: the
	// smaller sphere is buried, an exact tie goes to the lower index.
	for k, jj := range nbrs {
		if dist[k] < coincidentEps {
			j := int(jj)
			sj := radii[j] + probeRadius
			if buriedByCoincidentNeighbor(si, i, sj, j) {
				return 0
			}
		}
	}

	order = order[:0]
	for k := range nbrs {
		order = append(order, int32(k))
	}
	sort.Slice(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })

	exposed := 0
	for _, u := range unit {
		px := center.X + si*u.X
		py := center.Y + si*u.Y
		pz := center.Z + si*u.Z

		buried := false
		for _, oidx := range order {
			j := int(nbrs[oidx])
			sj := radii[j] + probeRadius
			pj := pts.At(j)
			dx, dy, dz := px-pj.X, py-pj.Y, pz-pj.Z
			if dx*dx+dy*dy+dz*dz < sj*sj {
				buried = true
				break
			}
		}
		if !buried {
			exposed++
		}
	}

	return exposed
}

// srArea converts an exposed-point count into an area, spec.md §4.4:
// A[i] = (k / N_sr) * 4π * s_i².
func srArea(exposed, nPoints int, si float64) float64 {
	if nPoints == 0 {
		return 0
	}
	return (float64(exposed) / float64(nPoints)) * 4 * math.Pi * si * si
}
