// Package discretize walks a sketch and produces polylines by uniform
// parameter sampling. One polyline is produced per named shape.
package discretize

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/contour/pkg/brep"
	"github.com/chazu/contour/pkg/sketch"
)

// DefaultSegments is the per-edge segment count used when the caller
// passes a non-positive value.
const DefaultSegments = 32

// EdgePoints samples an edge at segments+1 uniform parameters,
// endpoints included.
func EdgePoints(e *brep.Edge, segments int) []v3.Vec {
	if segments <= 0 {
		segments = DefaultSegments
	}
	span := e.Last - e.First
	pts := make([]v3.Vec, segments+1)
	for i := 0; i <= segments; i++ {
		u := e.First + span*float64(i)/float64(segments)
		pts[i] = e.PointAt(u)
	}
	return pts
}

// Discretize samples every named shape in the sketch. The discretizer
// is read-only and never mutates the sketch.
func Discretize(sk *sketch.Sketch, segments int) ([]*Polyline, error) {
	var out []*Polyline
	for _, ent := range sk.Entries() {
		pl, err := shapePolyline(ent.Name, ent.Shape, segments)
		if err != nil {
			return nil, fmt.Errorf("discretize %q: %w", ent.Name, err)
		}
		out = append(out, pl)
	}
	return out, nil
}

func shapePolyline(name string, sh brep.Shape, segments int) (*Polyline, error) {
	switch s := sh.(type) {
	case *brep.Edge:
		return edgePolyline(name, s, segments), nil
	case *brep.Wire:
		return wirePolyline(name, s, segments), nil
	}
	return nil, fmt.Errorf("unsupported shape type %T", sh)
}

func edgePolyline(name string, e *brep.Edge, segments int) *Polyline {
	pts := EdgePoints(e, segments)
	pl := &Polyline{Name: name, Closed: e.Closed()}
	if pl.Closed {
		// The closing point is implied.
		pts = pts[:len(pts)-1]
	}
	appendPoints(pl, pts)
	return pl
}

// wirePolyline concatenates the samples of each wire edge, dropping a
// leading sample when it repeats the previous edge's end point.
func wirePolyline(name string, w *brep.Wire, segments int) *Polyline {
	pl := &Polyline{Name: name, Closed: w.Closed()}
	var prev *v3.Vec
	for _, e := range w.Edges {
		pts := EdgePoints(e, segments)
		if prev != nil && len(pts) > 0 && brep.EqualPoints(*prev, pts[0]) {
			pts = pts[1:]
		}
		if len(pts) > 0 {
			last := pts[len(pts)-1]
			prev = &last
		}
		appendPoints(pl, pts)
	}
	if pl.Closed && pl.PointCount() > 1 {
		// Drop the duplicate closing point.
		first := v3.Vec{X: pl.Points[0], Y: pl.Points[1], Z: pl.Points[2]}
		n := len(pl.Points)
		last := v3.Vec{X: pl.Points[n-3], Y: pl.Points[n-2], Z: pl.Points[n-1]}
		if brep.EqualPoints(first, last) {
			pl.Points = pl.Points[:n-3]
		}
	}
	return pl
}

func appendPoints(pl *Polyline, pts []v3.Vec) {
	for _, p := range pts {
		pl.Points = append(pl.Points, p.X, p.Y, p.Z)
	}
}
