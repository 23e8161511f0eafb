package brep

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ShapeType enumerates the topological shape kinds.
type ShapeType int

const (
	ShapeEdge ShapeType = iota
	ShapeWire
)

func (t ShapeType) String() string {
	switch t {
	case ShapeEdge:
		return "Edge"
	case ShapeWire:
		return "Wire"
	default:
		return "unknown"
	}
}

// Shape is a topological shape: an edge or a wire.
type Shape interface {
	ShapeType() ShapeType
}

// Vertex is a topological point.
type Vertex struct {
	Point v3.Vec
}

// ---------------------------------------------------------------------------
// Edge
// ---------------------------------------------------------------------------

// Edge is a curve bounded to the parameter range [First, Last]. The
// curve geometry is stored in world coordinates; Placement records how
// the edge was positioned and is the identity for freshly constructed
// edges.
type Edge struct {
	Curve     Curve
	First     float64
	Last      float64
	Placement Placement
}

func (e *Edge) ShapeType() ShapeType { return ShapeEdge }

// PointAt evaluates the edge curve at parameter u.
func (e *Edge) PointAt(u float64) v3.Vec {
	return e.Curve.Value(u)
}

// Closed reports whether the edge ends where it starts.
func (e *Edge) Closed() bool {
	return EqualPoints(e.PointAt(e.First), e.PointAt(e.Last))
}

// FirstVertex returns the vertex at the start parameter.
func (e *Edge) FirstVertex() Vertex {
	return Vertex{Point: e.PointAt(e.First)}
}

// LastVertex returns the vertex at the end parameter.
func (e *Edge) LastVertex() Vertex {
	return Vertex{Point: e.PointAt(e.Last)}
}

// Vertices returns the edge vertices in parameter order. A closed edge
// has a single vertex.
func (e *Edge) Vertices() []Vertex {
	if e.Closed() {
		return []Vertex{e.FirstVertex()}
	}
	return []Vertex{e.FirstVertex(), e.LastVertex()}
}

// ChordLength returns the distance between the edge endpoints. It is
// the curve length only for line edges.
func (e *Edge) ChordLength() float64 {
	return e.LastVertex().Point.Sub(e.FirstVertex().Point).Length()
}

// Copy returns a shallow copy. Curves are immutable, so sharing the
// curve handle is safe.
func (e *Edge) Copy() *Edge {
	cp := *e
	return &cp
}

// Rotate rotates the edge geometry by angle radians around the axis
// through base. The placement record is left untouched.
func (e *Edge) Rotate(base, axis v3.Vec, angle float64) {
	e.Curve = e.Curve.Transformed(rotationAbout(base, axis, angle))
}

// Place returns a copy of the edge transformed by p, with p recorded
// as the copy's placement.
func (e *Edge) Place(p Placement) *Edge {
	cp := e.Copy()
	cp.Curve = e.Curve.Transformed(p.Matrix())
	cp.Placement = p
	return cp
}

// ---------------------------------------------------------------------------
// Edge constructors
// ---------------------------------------------------------------------------

// NewLineEdge constructs a straight edge between two distinct points.
func NewLineEdge(p1, p2 v3.Vec) (*Edge, error) {
	l, err := NewLine(p1, p2)
	if err != nil {
		return nil, err
	}
	return &Edge{Curve: l, First: 0, Last: p2.Sub(p1).Length()}, nil
}

// NewCircleEdge constructs a closed circular edge.
func NewCircleEdge(center, axis v3.Vec, radius float64) (*Edge, error) {
	c, err := NewCircle(center, axis, radius)
	if err != nil {
		return nil, err
	}
	return &Edge{Curve: c, First: 0, Last: 2 * math.Pi}, nil
}

// NewArcEdge constructs a circular arc from u1 to u2 on the circle's
// natural parameterization. The parameters must span a non-degenerate,
// less-than-full turn.
func NewArcEdge(center, axis v3.Vec, radius, u1, u2 float64) (*Edge, error) {
	c, err := NewCircle(center, axis, radius)
	if err != nil {
		return nil, err
	}
	span := u2 - u1
	if span <= DefaultTolerance || span >= 2*math.Pi-DefaultTolerance {
		return nil, fmt.Errorf("arc: parameter span %g out of range", span)
	}
	return &Edge{Curve: c, First: u1, Last: u2}, nil
}

// NewEllipseEdge constructs a closed elliptical edge.
func NewEllipseEdge(center, axis v3.Vec, major, minor float64) (*Edge, error) {
	el, err := NewEllipse(center, axis, major, minor)
	if err != nil {
		return nil, err
	}
	return &Edge{Curve: el, First: 0, Last: 2 * math.Pi}, nil
}

// NewBezierEdge constructs an edge over the full Bezier curve.
func NewBezierEdge(poles []v3.Vec) (*Edge, error) {
	c, err := NewBezier(poles)
	if err != nil {
		return nil, err
	}
	return &Edge{Curve: c, First: 0, Last: 1}, nil
}

// NewBSplineEdge constructs an edge over the full B-spline.
func NewBSplineEdge(poles []v3.Vec, degree int) (*Edge, error) {
	c, err := NewBSpline(poles, degree)
	if err != nil {
		return nil, err
	}
	return &Edge{Curve: c, First: c.FirstParameter(), Last: c.LastParameter()}, nil
}

// ArcThroughPoints constructs the circular arc that starts at p1,
// passes through p2, and ends at p3. The points must not be collinear.
// The arc's circle is oriented so that p1, p2, p3 appear in
// counterclockwise order around its axis.
func ArcThroughPoints(p1, p2, p3 v3.Vec) (*Edge, error) {
	ab := p2.Sub(p1)
	ac := p3.Sub(p1)
	n := ab.Cross(ac)
	n2 := n.Dot(n)
	if math.Sqrt(n2) <= DefaultTolerance*(ab.Length()+ac.Length()+DefaultTolerance) {
		return nil, fmt.Errorf("arc: points %s %s %s are collinear", fmtVec(p1), fmtVec(p2), fmtVec(p3))
	}

	// Circumcenter of the triangle (p1, p2, p3).
	t1 := n.Cross(ab).MulScalar(ac.Dot(ac))
	t2 := ac.Cross(n).MulScalar(ab.Dot(ab))
	center := p1.Add(t1.Add(t2).DivScalar(2 * n2))

	radius := p1.Sub(center).Length()
	axis := n.Normalize()

	c, err := NewCircle(center, axis, radius)
	if err != nil {
		return nil, err
	}
	// Anchor the parameter origin at p1 so the edge range starts at 0.
	c.XDir = p1.Sub(center).Normalize()
	c.YDir = c.Axis.Cross(c.XDir)

	// With the CCW axis orientation the points come in the order
	// p1, p2, p3 around the circle, so p3's parameter bounds the arc.
	last := c.paramOf(p3)
	return &Edge{Curve: c, First: 0, Last: last}, nil
}

// ---------------------------------------------------------------------------
// Wire
// ---------------------------------------------------------------------------

// Wire is an ordered, connected sequence of edges. Edge order and
// orientation are the caller's responsibility; sketch validation checks
// continuity.
type Wire struct {
	Edges []*Edge
}

// NewWire constructs a wire from edges in order.
func NewWire(edges ...*Edge) *Wire {
	w := &Wire{Edges: make([]*Edge, len(edges))}
	copy(w.Edges, edges)
	return w
}

func (w *Wire) ShapeType() ShapeType { return ShapeWire }

// Closed reports whether the wire's free endpoints coincide.
func (w *Wire) Closed() bool {
	if len(w.Edges) == 0 {
		return false
	}
	first := w.Edges[0].FirstVertex().Point
	last := w.Edges[len(w.Edges)-1].LastVertex().Point
	return EqualPoints(first, last)
}
