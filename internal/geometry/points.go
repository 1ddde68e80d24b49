// Package geometry holds the coordinate container the SASA engine is
// built on: an ordered sequence of 3-D points backed by a single
// contiguous xyz buffer, so downstream spatial code can walk memory
// linearly instead of chasing pointers (spec.md §3, "Point set X").
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// storage distinguishes whether a PointSet owns its backing buffer or
// merely borrows one from a caller for the lifetime of a calculation.
// spec.md's Design Notes call these out as two variants rather than a
// single boolean flag, so an owned PointSet can grow (Append) while a
// borrowed one has a fixed length.
type storage int

const (
	owned storage = iota
	borrowed
)

// PointSet is an ordered sequence of (x, y, z) triples in ångström.
// Indices are stable for the lifetime of the object: once a point is
// appended at index i, later appends never move it.
type PointSet struct {
	xyz  []float64 // length 3*N, laid out x0,y0,z0,x1,y1,z1,...
	kind storage
}

// NewPointSet returns an empty, owned PointSet with room for at least
// capacity points preallocated.
func NewPointSet(capacity int) *PointSet {
	if capacity < 0 {
		capacity = 0
	}
	return &PointSet{xyz: make([]float64, 0, 3*capacity), kind: owned}
}

// Borrow wraps an existing contiguous xyz buffer (length 3*N) without
// copying it. Append panics on a borrowed PointSet — it has nowhere to
// grow into that the caller would see. Translate and Rotate work in
// place, so on a borrowed PointSet they write into the caller's buffer.
func Borrow(xyz []float64) *PointSet {
	if len(xyz)%3 != 0 {
		panic("geometry: Borrow requires a buffer whose length is a multiple of 3")
	}
	return &PointSet{xyz: xyz, kind: borrowed}
}

// Len returns the number of points, N.
func (p *PointSet) Len() int { return len(p.xyz) / 3 }

// Append adds a point to the end of the set, returning its index.
// Panics if the PointSet was constructed with Borrow.
func (p *PointSet) Append(x, y, z float64) int {
	if p.kind == borrowed {
		panic("geometry: Append on a borrowed PointSet")
	}
	idx := p.Len()
	p.xyz = append(p.xyz, x, y, z)
	return idx
}

// At returns the i-th point as a gonum r3.Vec, suitable for vector
// arithmetic (Sub, Dot, r3.Norm, ...) without the caller re-deriving a
// Vector3-style type by hand.
func (p *PointSet) At(i int) r3.Vec {
	o := 3 * i
	return r3.Vec{X: p.xyz[o], Y: p.xyz[o+1], Z: p.xyz[o+2]}
}

// XYZ returns the underlying contiguous buffer. Callers must treat it
// as read-only; mutating it invalidates any cell list or neighbor list
// built against this PointSet.
func (p *PointSet) XYZ() []float64 { return p.xyz }

// Translate applies a bulk rigid translation to every point in place,
// for callers that want to shift a structure into a canonical frame
// before calculating.
func (p *PointSet) Translate(d r3.Vec) {
	for i := 0; i < p.Len(); i++ {
		o := 3 * i
		p.xyz[o] += d.X
		p.xyz[o+1] += d.Y
		p.xyz[o+2] += d.Z
	}
}

// Rotate applies a bulk rotation about the origin to every point in
// place, using m as a row-major 3x3 rotation matrix.
func (p *PointSet) Rotate(m [3][3]float64) {
	for i := 0; i < p.Len(); i++ {
		o := 3 * i
		x, y, z := p.xyz[o], p.xyz[o+1], p.xyz[o+2]
		p.xyz[o] = m[0][0]*x + m[0][1]*y + m[0][2]*z
		p.xyz[o+1] = m[1][0]*x + m[1][1]*y + m[1][2]*z
		p.xyz[o+2] = m[2][0]*x + m[2][1]*y + m[2][2]*z
	}
}

// Bounds returns the axis-aligned bounding box of the set. It panics if
// the set is empty; callers are expected to check Len() first the same
// way the cell list build step does.
func (p *PointSet) Bounds() (min, max r3.Vec) {
	if p.Len() == 0 {
		panic("geometry: Bounds on an empty PointSet")
	}
	min = p.At(0)
	max = min
	for i := 1; i < p.Len(); i++ {
		v := p.At(i)
		min.X, max.X = math.Min(min.X, v.X), math.Max(max.X, v.X)
		min.Y, max.Y = math.Min(min.Y, v.Y), math.Max(max.Y, v.Y)
		min.Z, max.Z = math.Min(min.Z, v.Z), math.Max(max.Z, v.Z)
	}
	return min, max
}

// AllFinite reports whether every coordinate is finite, the precondition
// spec.md §7's InvalidInput check relies on.
func (p *PointSet) AllFinite() bool {
	for _, v := range p.xyz {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
