// Package edges provides closed-form utilities over brep edges and
// wires: lookup by geometric equality, re-orientation into the XY
// plane, line classification, direction inversion, and midpoint
// computation.
package edges

import (
	"log"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/contour/pkg/brep"
)

// isLineSamples is the number of tangent samples used by IsLine.
const isLineSamples = 10

// Find returns the index of the first edge in list that is
// geometrically equal to e: same curve definition and coincident first
// and last vertex points. ok is false when no such edge exists.
func Find(e *brep.Edge, list []*brep.Edge) (index int, ok bool) {
	want := e.Curve.String()
	first := e.FirstVertex().Point
	last := e.LastVertex().Point

	for i, other := range list {
		if other.Curve.String() != want {
			continue
		}
		if !brep.EqualPoints(first, other.FirstVertex().Point) {
			continue
		}
		if !brep.EqualPoints(last, other.LastVertex().Point) {
			continue
		}
		return i, true
	}
	return 0, false
}

// Orient re-orients an edge into the XY plane and returns the
// resulting curve.
//
// If normal is non-nil the rotation maps normal onto +Z; otherwise the
// rotation recorded in the edge placement is undone. A line edge
// yields its trimmed segment; with makeArc, an open circular or
// elliptical edge yields a trimmed arc whose sense follows the sign of
// the rotated axis Z component. Everything else yields the rotated
// basis curve.
func Orient(e *brep.Edge, normal *v3.Vec, makeArc bool) brep.Curve {
	e = e.Copy()
	zDir := v3.Vec{Z: 1}

	var axis v3.Vec
	var angle float64
	if normal != nil {
		angle = brep.Angle(*normal, zDir)
		axis = normal.Cross(zDir)
	} else {
		axis = e.Placement.Axis
		angle = -e.Placement.Angle
	}
	if axis.Length() <= brep.DefaultTolerance {
		axis = zDir
	}
	if angle != 0 {
		e.Rotate(v3.Vec{}, axis, angle)
	}

	switch c := e.Curve.(type) {
	case *brep.Line:
		return &brep.TrimmedCurve{Basis: c, First: e.First, Last: e.Last, Sense: true}
	case *brep.Circle:
		if makeArc && !e.Closed() {
			return &brep.TrimmedCurve{Basis: c, First: e.First, Last: e.Last, Sense: c.Axis.Z > 0}
		}
	case *brep.Ellipse:
		if makeArc && !e.Closed() {
			return &brep.TrimmedCurve{Basis: c, First: e.First, Last: e.Last, Sense: c.Axis.Z > 0}
		}
	}
	return e.Curve
}

// IsSameLine reports whether both edges are line edges with the same
// endpoints, in either order.
func IsSameLine(e1, e2 *brep.Edge) bool {
	if e1.Curve.Kind() != brep.KindLine || e2.Curve.Kind() != brep.KindLine {
		return false
	}
	a1, b1 := e1.FirstVertex().Point, e1.LastVertex().Point
	a2, b2 := e2.FirstVertex().Point, e2.LastVertex().Point

	if brep.EqualPoints(a1, a2) && brep.EqualPoints(b1, b2) {
		return true
	}
	return brep.EqualPoints(a1, b2) && brep.EqualPoints(b1, a2)
}

// IsLine reports whether a free-form curve is a straight line. The
// tangent is sampled at uniform parameters across the curve and
// compared against the start tangent.
func IsLine(c brep.Curve) bool {
	first := c.FirstParameter()
	span := c.LastParameter() - first

	ref, ok := c.Tangent(first)
	if !ok {
		return false
	}
	for i := 1; i <= isLineSamples; i++ {
		u := first + span*float64(i)/float64(isLineSamples)
		t, ok := c.Tangent(u)
		if !ok {
			return false
		}
		if !brep.EqualVecs(t, ref, brep.DefaultTolerance) {
			return false
		}
	}
	return true
}

// Invert returns a copy of the edge or wire with its direction
// reversed. Shapes that cannot be inverted are logged and returned
// unchanged.
func Invert(s brep.Shape) brep.Shape {
	switch sh := s.(type) {
	case *brep.Wire:
		inverted := make([]*brep.Edge, 0, len(sh.Edges))
		for i := len(sh.Edges) - 1; i >= 0; i-- {
			e, ok := Invert(sh.Edges[i]).(*brep.Edge)
			if !ok {
				return sh
			}
			inverted = append(inverted, e)
		}
		return brep.NewWire(inverted...)

	case *brep.Edge:
		if len(sh.Vertices()) == 1 {
			return sh
		}
		first := sh.FirstVertex().Point
		last := sh.LastVertex().Point

		switch sh.Curve.Kind() {
		case brep.KindLine:
			if e, err := brep.NewLineEdge(last, first); err == nil {
				return e
			}
		case brep.KindCircle:
			if mp, ok := Midpoint(sh); ok {
				if e, err := brep.ArcThroughPoints(last, mp, first); err == nil {
					return e
				}
			}
		case brep.KindBSpline, brep.KindBezier:
			if IsLine(sh.Curve) {
				if e, err := brep.NewLineEdge(last, first); err == nil {
					return e
				}
			}
		}

		log.Printf("edges: unable to invert %s", sh.Curve)
		return sh
	}

	log.Printf("edges: unable to handle %s", s.ShapeType())
	return s
}

// Midpoint returns the midpoint of a straight or circular edge. ok is
// false for curve kinds without a closed-form midpoint.
func Midpoint(e *brep.Edge) (v3.Vec, bool) {
	first := e.FirstVertex().Point
	last := e.LastVertex().Point

	switch c := e.Curve.(type) {
	case *brep.Circle:
		if len(e.Vertices()) == 1 {
			// Full circle: diametrically opposite the single vertex.
			dv := first.Sub(c.Center)
			return c.Center.Sub(dv), true
		}

		// Arc: sagitta construction. perp points from the chord
		// midpoint toward the arc interior, for minor and major
		// arcs alike.
		chord := last.Sub(first)
		perp := chord.Cross(c.Axis)
		if perp.Length() <= brep.DefaultTolerance {
			return v3.Vec{}, false
		}
		perp = perp.Normalize()
		ray := first.Sub(c.Center)
		apothem := ray.Dot(perp)
		sagitta := c.Radius - apothem
		chordMid := first.Add(chord.MulScalar(0.5))
		return chordMid.Add(perp.MulScalar(sagitta)), true

	case *brep.Line:
		half := last.Sub(first).MulScalar(0.5)
		return first.Add(half), true
	}

	return v3.Vec{}, false
}
