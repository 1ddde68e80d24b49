package cellist

import "testing"

import "github.com/aravindprasad/freesasa/internal/geometry"

func buildGrid(t *testing.T, coords [][3]float64, rMax, probe float64) *List {
	t.Helper()
	pts := geometry.NewPointSet(len(coords))
	for _, c := range coords {
		pts.Append(c[0], c[1], c[2])
	}
	l, err := Build(pts, rMax, probe)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return l
}

func TestBuild_PartitionCoversEveryAtom(t *testing.T) {
	coords := [][3]float64{
		{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {0, 0, 10}, {5, 5, 5}, {-5, -5, -5},
	}
	l := buildGrid(t, coords, 2.0, 1.4)

	total := 0
	for c := 0; c < l.NumCells(); c++ {
		total += len(l.CellsOf(c))
	}
	if total != len(coords) {
		t.Errorf("expected %d atoms across all cells, got %d", len(coords), total)
	}
}

func TestBuild_EveryAtomInExactlyOneCell(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}, {100, 100, 100}}
	l := buildGrid(t, coords, 3.0, 1.4)

	seen := make(map[int]int)
	for c := 0; c < l.NumCells(); c++ {
		for _, a := range l.CellsOf(c) {
			seen[int(a)]++
		}
	}
	for i := range coords {
		if seen[i] != 1 {
			t.Errorf("atom %d appears in %d cells, want 1", i, seen[i])
		}
	}
}

func TestBuild_NeighborTableBounded(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {10, 10, 10}}
	l := buildGrid(t, coords, 2.0, 1.4)

	for c := 0; c < l.NumCells(); c++ {
		nbrs := l.Neighbors(c)
		if len(nbrs) > 14 {
			t.Errorf("cell %d has %d neighbors, want <=14", c, len(nbrs))
		}
	}
}

func TestBuild_ForwardTableAvoidsDoubleCounting(t *testing.T) {
	// Any unordered pair of cells should be reachable as a neighbor from
	// at most one of the two directions (self + forward half-space).
	coords := [][3]float64{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {0, 0, 10}, {10, 10, 10}}
	l := buildGrid(t, coords, 2.0, 1.4)

	reached := make(map[[2]int]int)
	for c := 0; c < l.NumCells(); c++ {
		for _, nb := range l.Neighbors(c) {
			key := [2]int{c, int(nb)}
			if c > int(nb) {
				key = [2]int{int(nb), c}
			}
			reached[key]++
		}
	}
	for pair, count := range reached {
		if count > 1 {
			t.Errorf("pair %v reached %d times, want at most once", pair, count)
		}
	}
}

func TestBuild_EmptySetFails(t *testing.T) {
	pts := geometry.NewPointSet(0)
	if _, err := Build(pts, 2.0, 1.4); err == nil {
		t.Error("expected error building a cell list over zero atoms")
	}
}
