package sasa

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/aravindprasad/freesasa/internal/cellist"
	"github.com/aravindprasad/freesasa/internal/geometry"
	"github.com/aravindprasad/freesasa/internal/neighbor"
	"github.com/aravindprasad/freesasa/internal/sasaerr"
	"github.com/aravindprasad/freesasa/internal/sasalog"
)

// Calc is the core's single entry point (spec.md §6):
//
//	calc(points, radii, params) → Result
//
// It validates params and the input, builds the cell list and neighbor
// list, then runs the selected algorithm across params.NThreads workers,
// each owning a disjoint contiguous range of atom indices. log receives
// any warnings; it may be nil, in which case sasalog.Default is used.
func Calc(pts *geometry.PointSet, radii []float64, params Parameters, log sasalog.Sink) (Result, error) {
	if log == nil {
		log = sasalog.Default
	}

	if err := params.Validate(); err != nil {
		return Result{}, err
	}
	if err := validateInput(pts, radii); err != nil {
		return Result{}, err
	}

	n := pts.Len()
	rMax := 0.0
	for _, r := range radii {
		if r > rMax {
			rMax = r
		}
	}

	cl, err := cellist.Build(pts, rMax, params.ProbeRadius)
	if err != nil {
		return Result{}, asEngineError(sasaerr.MemoryExhausted, err, "building cell list")
	}

	nb, err := neighbor.Build(pts, radii, params.ProbeRadius, cl)
	if err != nil {
		return Result{}, asEngineError(sasaerr.MemoryExhausted, err, "building neighbor list")
	}

	for i := 0; i < n; i++ {
		if len(nb.Neighbors(i)) == 0 {
			log.Warnf("atom %d has no neighbors within contact distance; treating as fully exposed", i)
		}
	}

	areas := make([]float64, n)
	if err := runWorkers(pts, radii, params, nb, areas); err != nil {
		return Result{}, err
	}

	return newResult(areas, params), nil
}

// validateInput checks the N/radii/coordinate invariants spec.md §7
// groups under InvalidInput.
func validateInput(pts *geometry.PointSet, radii []float64) error {
	n := pts.Len()
	if n == 0 {
		return sasaerr.New(sasaerr.InvalidInput, "empty point set")
	}
	if n != len(radii) {
		return sasaerr.Newf(sasaerr.InvalidInput, "%d points but %d radii", n, len(radii))
	}
	for i, r := range radii {
		if r <= 0 {
			return sasaerr.Newf(sasaerr.InvalidInput, "radius %d is not positive: %g", i, r)
		}
	}
	if !pts.AllFinite() {
		return sasaerr.New(sasaerr.InvalidInput, "non-finite coordinate in point set")
	}
	return nil
}

// asEngineError passes through an InvalidInput or InvalidParameters
// *sasaerr.Error unchanged, and wraps any other error under kind.
func asEngineError(kind sasaerr.Kind, err error, msg string) error {
	if sasaerr.Is(err, sasaerr.InvalidInput) || sasaerr.Is(err, sasaerr.InvalidParameters) {
		return err
	}
	return sasaerr.Wrap(kind, err, msg)
}

// workerRanges partitions [0, n) into up to nThreads contiguous,
// non-overlapping ranges (spec.md §5).
func workerRanges(n, nThreads int) [][2]int {
	if n <= 0 {
		return nil
	}
	if nThreads > n {
		nThreads = n
	}
	ranges := make([][2]int, 0, nThreads)
	base := n / nThreads
	rem := n % nThreads
	lo := 0
	for w := 0; w < nThreads; w++ {
		size := base
		if w < rem {
			size++
		}
		hi := lo + size
		if size > 0 {
			ranges = append(ranges, [2]int{lo, hi})
		}
		lo = hi
	}
	return ranges
}

// runWorkers runs the selected algorithm across a bounded pool, one
// goroutine per contiguous atom range, each writing only the indices it
// owns. A shared atomic failure flag lets workers still in flight exit
// early once one has failed (spec.md §5); the dispatcher reports the
// first failure as WorkerFailed.
func runWorkers(pts *geometry.PointSet, radii []float64, params Parameters, nb *neighbor.List, areas []float64) error {
	n := pts.Len()
	ranges := workerRanges(n, params.NThreads)

	var failed atomic.Bool
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(params.NThreads)

	switch alg := params.Algorithm.(type) {
	case LeeRichards:
		maxNeighbors := 0
		for i := 0; i < n; i++ {
			if k := len(nb.Neighbors(i)); k > maxNeighbors {
				maxNeighbors = k
			}
		}
		for _, rng := range ranges {
			lo, hi := rng[0], rng[1]
			g.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						failed.Store(true)
						err = sasaerr.Newf(sasaerr.WorkerFailed, "lee-richards worker panicked: %v", r)
					}
				}()
				scratch := newLRScratch(maxNeighbors)
				for i := lo; i < hi; i++ {
					if failed.Load() || ctx.Err() != nil {
						return nil
					}
					areas[i] = lrAtom(i, pts, radii, params.ProbeRadius, alg.NSlices, nb, scratch)
				}
				return nil
			})
		}
	case ShrakeRupley:
		unit := goldenSpiralPoints(alg.NPoints)
		for _, rng := range ranges {
			lo, hi := rng[0], rng[1]
			g.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						failed.Store(true)
						err = sasaerr.Newf(sasaerr.WorkerFailed, "shrake-rupley worker panicked: %v", r)
					}
				}()
				order := make([]int32, 0, n)
				for i := lo; i < hi; i++ {
					if failed.Load() || ctx.Err() != nil {
						return nil
					}
					si := radii[i] + params.ProbeRadius
					exposed := srAtom(i, pts, radii, params.ProbeRadius, unit, nb, order)
					areas[i] = srArea(exposed, alg.NPoints, si)
				}
				return nil
			})
		}
	default:
		return sasaerr.Newf(sasaerr.InvalidParameters, "unknown algorithm %T", params.Algorithm)
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if failed.Load() {
		return sasaerr.New(sasaerr.WorkerFailed, "a worker failed")
	}
	return nil
}
