package brep

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineEdgeVertices(t *testing.T) {
	e, err := NewLineEdge(v3.Vec{}, v3.Vec{X: 10})
	require.NoError(t, err)

	assert.False(t, e.Closed())
	vs := e.Vertices()
	require.Len(t, vs, 2)
	assertVec(t, v3.Vec{}, vs[0].Point)
	assertVec(t, v3.Vec{X: 10}, vs[1].Point)
	assert.InDelta(t, 10.0, e.ChordLength(), testEps)
}

func TestCircleEdgeIsClosed(t *testing.T) {
	e, err := NewCircleEdge(v3.Vec{}, v3.Vec{Z: 1}, 3)
	require.NoError(t, err)

	assert.True(t, e.Closed())
	assert.Len(t, e.Vertices(), 1)
}

func TestArcEdgeIsOpen(t *testing.T) {
	e, err := NewArcEdge(v3.Vec{}, v3.Vec{Z: 1}, 3, 0, math.Pi/2)
	require.NoError(t, err)

	assert.False(t, e.Closed())
	assert.Len(t, e.Vertices(), 2)
}

func TestArcEdgeRejectsDegenerateSpan(t *testing.T) {
	_, err := NewArcEdge(v3.Vec{}, v3.Vec{Z: 1}, 3, 0, 0)
	assert.Error(t, err)
	_, err = NewArcEdge(v3.Vec{}, v3.Vec{Z: 1}, 3, 0, 2*math.Pi)
	assert.Error(t, err)
}

func TestArcThroughPoints(t *testing.T) {
	p1 := v3.Vec{X: 1}
	p2 := v3.Vec{Y: 1}
	p3 := v3.Vec{X: -1}

	e, err := ArcThroughPoints(p1, p2, p3)
	require.NoError(t, err)

	c, ok := e.Curve.(*Circle)
	require.True(t, ok)
	assertVec(t, v3.Vec{}, c.Center)
	assert.InDelta(t, 1.0, c.Radius, 1e-9)

	assertVec(t, p1, e.FirstVertex().Point)
	assertVec(t, p3, e.LastVertex().Point)

	// p2 lies on the arc interior.
	mid := e.PointAt(e.First + (e.Last-e.First)/2)
	assertVec(t, p2, mid)
}

func TestArcThroughPointsMajorArc(t *testing.T) {
	// Three-quarter turn: p1 at 0, p2 at pi/2, p3 at 3*pi/2.
	p1 := v3.Vec{X: 2}
	p2 := v3.Vec{Y: 2}
	p3 := v3.Vec{Y: -2}

	e, err := ArcThroughPoints(p1, p2, p3)
	require.NoError(t, err)
	assert.InDelta(t, 3*math.Pi/2, e.Last-e.First, 1e-9)
}

func TestArcThroughPointsRejectsCollinear(t *testing.T) {
	_, err := ArcThroughPoints(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{X: 2})
	assert.Error(t, err)
	_, err = ArcThroughPoints(v3.Vec{}, v3.Vec{}, v3.Vec{X: 2})
	assert.Error(t, err)
}

func TestEdgePlaceRecordsPlacement(t *testing.T) {
	e, err := NewLineEdge(v3.Vec{}, v3.Vec{X: 1})
	require.NoError(t, err)

	p := Placement{Axis: v3.Vec{Z: 1}, Angle: math.Pi / 2, Trans: v3.Vec{Z: 5}}
	placed := e.Place(p)

	// Original untouched.
	assertVec(t, v3.Vec{X: 1}, e.LastVertex().Point)

	// Rotation about Z maps +X to +Y, then the translation lifts it.
	assertVec(t, v3.Vec{Y: 1, Z: 5}, placed.LastVertex().Point)
	assert.Equal(t, p, placed.Placement)
}

func TestEdgeRotate(t *testing.T) {
	e, err := NewLineEdge(v3.Vec{}, v3.Vec{X: 2})
	require.NoError(t, err)

	e = e.Copy()
	e.Rotate(v3.Vec{}, v3.Vec{Z: 1}, math.Pi)
	assertVec(t, v3.Vec{X: -2}, e.LastVertex().Point)
}

func TestWireClosed(t *testing.T) {
	a := v3.Vec{}
	b := v3.Vec{X: 1}
	c := v3.Vec{X: 1, Y: 1}

	e1, err := NewLineEdge(a, b)
	require.NoError(t, err)
	e2, err := NewLineEdge(b, c)
	require.NoError(t, err)
	e3, err := NewLineEdge(c, a)
	require.NoError(t, err)

	open := NewWire(e1, e2)
	assert.False(t, open.Closed())

	closed := NewWire(e1, e2, e3)
	assert.True(t, closed.Closed())
}

func TestShapeTypes(t *testing.T) {
	e, err := NewLineEdge(v3.Vec{}, v3.Vec{X: 1})
	require.NoError(t, err)

	assert.Equal(t, ShapeEdge, e.ShapeType())
	assert.Equal(t, "Edge", e.ShapeType().String())
	assert.Equal(t, ShapeWire, NewWire(e).ShapeType())
	assert.Equal(t, "Wire", ShapeWire.String())
}
