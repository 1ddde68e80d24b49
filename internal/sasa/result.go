package sasa

// Result is what Calc hands back: one area per atom, indexed identically
// to the input, plus the scalar total and the parameters that actually
// produced it (spec.md §6).
type Result struct {
	Areas  []float64
	Total  float64
	Params Parameters
}

// newResult sums Areas in index order, never in the order workers
// happen to finish, so the total is the same bit pattern regardless of
// NThreads (spec.md §6, bit-exact compatibility; §5, fixed summation
// order).
func newResult(areas []float64, params Parameters) Result {
	var total float64
	for _, a := range areas {
		total += a
	}
	return Result{Areas: areas, Total: total, Params: params}
}
