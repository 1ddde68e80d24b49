package sasa

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aravindprasad/freesasa/internal/geometry"
	"github.com/aravindprasad/freesasa/internal/neighbor"
)

// arcInterval is one neighbor's angular coverage of atom i's circle on
// a single slice, in radians, possibly split across the 0/2π seam.
type arcInterval struct{ start, end float64 }

// lrScratch is the preallocated, per-worker working set the Lee &
// Richards engine needs while processing one atom's slices: arcInterval,
// per-slice area and neighbor-radius buffers reused slice after slice,
// atom after atom, so no worker allocates inside its hot loop (spec.md
// §5: "no allocation" inside a worker).
type lrScratch struct {
	intervals  []arcInterval
	sliceAreas []float64
	sj         []float64
}

func newLRScratch(maxNeighbors int) *lrScratch {
	return &lrScratch{
		intervals: make([]arcInterval, 0, maxNeighbors*2),
		sj:        make([]float64, 0, maxNeighbors),
	}
}

// lrAtom computes the Lee & Richards area contribution for a single
// atom, per spec.md §4.3.
func lrAtom(i int, pts *geometry.PointSet, radii []float64, probeRadius float64, nSlices int, nb *neighbor.List, scratch *lrScratch) float64 {
	center := pts.At(i)
	si := radii[i] + probeRadius
	if si <= 0 {
		return 0
	}

	nbrs := nb.Neighbors(i)
	// Expanded radii of neighbors, cached once per atom rather than
	// recomputed per slice.
	sj := scratch.sj[:0]
	for _, j := range nbrs {
		sj = append(sj, radii[int(j)]+probeRadius)
	}
	scratch.sj = sj

	dz := 2 * si / float64(nSlices)
	scratch.sliceAreas = scratch.sliceAreas[:0]
	var prevA float64
	havePrev := false

	for k := 0; k < nSlices; k++ {
		z := center.Z - si + (float64(k)+0.5)*dz
		dzi := z - center.Z
		r2 := si*si - dzi*dzi
		if r2 < 0 {
			r2 = 0
		}
		ai := math.Sqrt(r2)

		exposedArc := exposedArcLength(i, ai, z, center, pts, nb, sj, scratch)

		var sliceArea float64
		if k == 0 || k == nSlices-1 {
			// The outermost slice on each end has no further neighbor to
			// slant against — it runs straight to the pole. Lee & Richards'
			// own band formula (circumference × slant height) breaks down
			// there, since the local radius ai shrinks to the pole while
			// the true surface does not. Archimedes' hat-box theorem gives
			// the exact zone area for any band of height dz on a sphere of
			// radius si, 2*pi*si*dz, independent of where that band sits,
			// so that (scaled by this slice's exposed fraction) replaces
			// the flat-band estimate here instead of supplementing it.
			if ai > 0 {
				sliceArea = 2 * math.Pi * si * dz * exposedArc / (2 * math.Pi * ai)
			}
		} else {
			sliceArea = exposedArc * dz
			if havePrev {
				slope := (ai - prevA) / dz
				sliceArea *= math.Sqrt(1 + slope*slope)
			}
		}
		scratch.sliceAreas = append(scratch.sliceAreas, sliceArea)

		prevA = ai
		havePrev = true
	}

	total := floats.Sum(scratch.sliceAreas)
	maxArea := 4 * math.Pi * si * si
	if total > maxArea {
		total = maxArea
	}
	if total < 0 {
		total = 0
	}
	return total
}

// exposedArcLength computes the uncovered arc length of atom i's circle
// at height z, per spec.md §4.3's arc computation.
func exposedArcLength(i int, ai, z float64, center r3.Vec, pts *geometry.PointSet, nb *neighbor.List, sj []float64, scratch *lrScratch) float64 {
	if ai == 0 {
		return 0
	}
	scratch.intervals = scratch.intervals[:0]

	nbrs := nb.Neighbors(i)
	for k, jj := range nbrs {
		j := int(jj)
		s := sj[k]
		zj := pts.At(j).Z
		dzj := z - zj
		if math.Abs(dzj) >= s {
			continue // this neighbor's sphere doesn't reach this slice
		}
		aj := math.Sqrt(s*s - dzj*dzj)
		if aj <= 0 {
			continue
		}

		pj := pts.At(j)
		dx := pj.X - center.X
		dy := pj.Y - center.Y
		d := math.Hypot(dx, dy)

		if d < coincidentEps {
			if buriedByCoincidentNeighbor(ai, i, aj, j) {
				return 0
			}
			continue
		}
		if d+aj <= ai {
			continue // j doesn't reach past i's own circle here
		}
		if d >= ai+aj {
			continue // no overlap
		}
		if d+ai <= aj {
			return 0 // i's whole circle buried inside j's
		}

		cosAlpha := (ai*ai + d*d - aj*aj) / (2 * ai * d)
		if cosAlpha > 1 {
			cosAlpha = 1
		} else if cosAlpha < -1 {
			cosAlpha = -1
		}
		alpha := math.Acos(cosAlpha)
		center2 := math.Atan2(dy, dx)

		start := normalizeAngle(center2 - alpha)
		end := normalizeAngle(center2 + alpha)
		if start <= end {
			scratch.intervals = append(scratch.intervals, arcInterval{start, end})
		} else {
			// Wraps past 2π: split into two intervals, per spec.md's
			// Design Notes.
			scratch.intervals = append(scratch.intervals, arcInterval{start, 2 * math.Pi})
			scratch.intervals = append(scratch.intervals, arcInterval{0, end})
		}
	}

	covered := sweepCoveredAngle(scratch.intervals)
	exposed := 2*math.Pi - covered
	if exposed < 0 {
		exposed = 0
	}
	return exposed * ai
}

// sweepCoveredAngle reduces a set of (possibly overlapping) angular
// intervals in [0, 2π) to the total angle they cover, by sorting on
// start angle and merging.
func sweepCoveredAngle(intervals []arcInterval) float64 {
	if len(intervals) == 0 {
		return 0
	}
	sort.Slice(intervals, func(a, b int) bool { return intervals[a].start < intervals[b].start })

	var covered float64
	curStart, curEnd := intervals[0].start, intervals[0].end
	for _, iv := range intervals[1:] {
		if iv.start > curEnd {
			covered += curEnd - curStart
			curStart, curEnd = iv.start, iv.end
			continue
		}
		if iv.end > curEnd {
			curEnd = iv.end
		}
	}
	covered += curEnd - curStart
	return covered
}

func normalizeAngle(a float64) float64 {
	const twoPi = 2 * math.Pi
	for a < 0 {
		a += twoPi
	}
	for a >= twoPi {
		a -= twoPi
	}
	return a
}
