package brep

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// CurveKind enumerates the supported curve geometries.
type CurveKind int

const (
	KindLine CurveKind = iota
	KindCircle
	KindEllipse
	KindBSpline
	KindBezier
)

func (k CurveKind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindCircle:
		return "Circle"
	case KindEllipse:
		return "Ellipse"
	case KindBSpline:
		return "BSplineCurve"
	case KindBezier:
		return "BezierCurve"
	default:
		return "unknown"
	}
}

// Curve is a parametric curve in world coordinates.
type Curve interface {
	Kind() CurveKind

	// Value evaluates the curve at parameter u.
	Value(u float64) v3.Vec

	// Tangent returns the unit tangent at parameter u. ok is false
	// where the derivative vanishes.
	Tangent(u float64) (tangent v3.Vec, ok bool)

	// FirstParameter and LastParameter bound the natural parameter
	// range. Unbounded curves report infinities.
	FirstParameter() float64
	LastParameter() float64

	// Closed reports whether the curve is periodic over its natural
	// parameter range.
	Closed() bool

	// Transformed returns a copy of the curve with the transform applied.
	Transformed(m sdf.M44) Curve

	// String renders the curve definition. Two curves with equal
	// strings describe the same geometry; edge lookup relies on this.
	String() string
}

// ---------------------------------------------------------------------------
// Line
// ---------------------------------------------------------------------------

// Line is an unbounded straight line through Point along Dir.
type Line struct {
	Point v3.Vec
	Dir   v3.Vec // unit direction
}

// NewLine constructs a line through two points. The points must be
// distinct.
func NewLine(p1, p2 v3.Vec) (*Line, error) {
	d := p2.Sub(p1)
	if d.Length() <= DefaultTolerance {
		return nil, fmt.Errorf("line: coincident points %s", fmtVec(p1))
	}
	return &Line{Point: p1, Dir: d.Normalize()}, nil
}

func (l *Line) Kind() CurveKind { return KindLine }

func (l *Line) Value(u float64) v3.Vec {
	return l.Point.Add(l.Dir.MulScalar(u))
}

func (l *Line) Tangent(u float64) (v3.Vec, bool) {
	return l.Dir, true
}

func (l *Line) FirstParameter() float64 { return math.Inf(-1) }
func (l *Line) LastParameter() float64  { return math.Inf(1) }
func (l *Line) Closed() bool            { return false }

func (l *Line) Transformed(m sdf.M44) Curve {
	p := m.MulPosition(l.Point)
	d := m.MulPosition(l.Point.Add(l.Dir)).Sub(p)
	return &Line{Point: p, Dir: d.Normalize()}
}

func (l *Line) String() string {
	return fmt.Sprintf("Line (point %s, dir %s)", fmtVec(l.Point), fmtVec(l.Dir))
}

// ---------------------------------------------------------------------------
// TrimmedCurve
// ---------------------------------------------------------------------------

// TrimmedCurve bounds a basis curve to [First, Last]. When Sense is
// false the trimmed curve runs opposite to the basis parameterization.
type TrimmedCurve struct {
	Basis Curve
	First float64
	Last  float64
	Sense bool
}

func (t *TrimmedCurve) Kind() CurveKind { return t.Basis.Kind() }

func (t *TrimmedCurve) Value(u float64) v3.Vec {
	if !t.Sense {
		u = t.First + t.Last - u
	}
	return t.Basis.Value(u)
}

func (t *TrimmedCurve) Tangent(u float64) (v3.Vec, bool) {
	if !t.Sense {
		tan, ok := t.Basis.Tangent(t.First + t.Last - u)
		return tan.MulScalar(-1), ok
	}
	return t.Basis.Tangent(u)
}

func (t *TrimmedCurve) FirstParameter() float64 { return t.First }
func (t *TrimmedCurve) LastParameter() float64  { return t.Last }

func (t *TrimmedCurve) Closed() bool {
	return EqualPoints(t.Basis.Value(t.First), t.Basis.Value(t.Last))
}

func (t *TrimmedCurve) Transformed(m sdf.M44) Curve {
	return &TrimmedCurve{Basis: t.Basis.Transformed(m), First: t.First, Last: t.Last, Sense: t.Sense}
}

func (t *TrimmedCurve) String() string {
	return fmt.Sprintf("Trimmed[%g %g] %s", t.First, t.Last, t.Basis)
}
