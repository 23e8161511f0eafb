package brep

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ---------------------------------------------------------------------------
// Circle
// ---------------------------------------------------------------------------

// Circle is a full circle with center, unit axis (plane normal), and
// radius. XDir/YDir span the circle plane; Value(0) = Center + Radius*XDir
// and the parameter increases counterclockwise around Axis.
type Circle struct {
	Center v3.Vec
	Axis   v3.Vec // unit plane normal
	Radius float64
	XDir   v3.Vec // unit, perpendicular to Axis
	YDir   v3.Vec // Axis x XDir
}

// NewCircle constructs a circle with a deterministic reference frame.
func NewCircle(center, axis v3.Vec, radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("circle: radius must be positive, got %g", radius)
	}
	if axis.Length() <= DefaultTolerance {
		return nil, fmt.Errorf("circle: zero axis")
	}
	a := axis.Normalize()
	x := perpTo(a)
	return &Circle{Center: center, Axis: a, Radius: radius, XDir: x, YDir: a.Cross(x)}, nil
}

func (c *Circle) Kind() CurveKind { return KindCircle }

func (c *Circle) Value(u float64) v3.Vec {
	p := c.XDir.MulScalar(c.Radius * math.Cos(u))
	p = p.Add(c.YDir.MulScalar(c.Radius * math.Sin(u)))
	return c.Center.Add(p)
}

func (c *Circle) Tangent(u float64) (v3.Vec, bool) {
	t := c.XDir.MulScalar(-math.Sin(u)).Add(c.YDir.MulScalar(math.Cos(u)))
	return t, true
}

func (c *Circle) FirstParameter() float64 { return 0 }
func (c *Circle) LastParameter() float64  { return 2 * math.Pi }
func (c *Circle) Closed() bool            { return true }

func (c *Circle) Transformed(m sdf.M44) Curve {
	center := m.MulPosition(c.Center)
	axis := m.MulPosition(c.Center.Add(c.Axis)).Sub(center).Normalize()
	x := m.MulPosition(c.Center.Add(c.XDir)).Sub(center).Normalize()
	return &Circle{Center: center, Axis: axis, Radius: c.Radius, XDir: x, YDir: axis.Cross(x)}
}

// String deliberately omits the reference frame: two circles with the
// same center, axis, and radius are the same geometry regardless of
// where their parameter origin sits.
func (c *Circle) String() string {
	return fmt.Sprintf("Circle (center %s, axis %s, radius %g)", fmtVec(c.Center), fmtVec(c.Axis), c.Radius)
}

// paramOf returns the circle parameter of a point assumed to lie on the
// circle, in [0, 2*pi).
func (c *Circle) paramOf(p v3.Vec) float64 {
	d := p.Sub(c.Center)
	u := math.Atan2(d.Dot(c.YDir), d.Dot(c.XDir))
	if u < 0 {
		u += 2 * math.Pi
	}
	return u
}

// ---------------------------------------------------------------------------
// Ellipse
// ---------------------------------------------------------------------------

// Ellipse is a full ellipse. XDir points along the major axis.
type Ellipse struct {
	Center      v3.Vec
	Axis        v3.Vec // unit plane normal
	MajorRadius float64
	MinorRadius float64
	XDir        v3.Vec // unit major-axis direction
	YDir        v3.Vec // Axis x XDir
}

// NewEllipse constructs an ellipse with a deterministic frame.
// Radii must satisfy major >= minor > 0.
func NewEllipse(center, axis v3.Vec, major, minor float64) (*Ellipse, error) {
	if minor <= 0 || major < minor {
		return nil, fmt.Errorf("ellipse: need major >= minor > 0, got %g, %g", major, minor)
	}
	if axis.Length() <= DefaultTolerance {
		return nil, fmt.Errorf("ellipse: zero axis")
	}
	a := axis.Normalize()
	x := perpTo(a)
	return &Ellipse{Center: center, Axis: a, MajorRadius: major, MinorRadius: minor, XDir: x, YDir: a.Cross(x)}, nil
}

func (e *Ellipse) Kind() CurveKind { return KindEllipse }

func (e *Ellipse) Value(u float64) v3.Vec {
	p := e.XDir.MulScalar(e.MajorRadius * math.Cos(u))
	p = p.Add(e.YDir.MulScalar(e.MinorRadius * math.Sin(u)))
	return e.Center.Add(p)
}

func (e *Ellipse) Tangent(u float64) (v3.Vec, bool) {
	t := e.XDir.MulScalar(-e.MajorRadius * math.Sin(u))
	t = t.Add(e.YDir.MulScalar(e.MinorRadius * math.Cos(u)))
	if t.Length() == 0 {
		return v3.Vec{}, false
	}
	return t.Normalize(), true
}

func (e *Ellipse) FirstParameter() float64 { return 0 }
func (e *Ellipse) LastParameter() float64  { return 2 * math.Pi }
func (e *Ellipse) Closed() bool            { return true }

func (e *Ellipse) Transformed(m sdf.M44) Curve {
	center := m.MulPosition(e.Center)
	axis := m.MulPosition(e.Center.Add(e.Axis)).Sub(center).Normalize()
	x := m.MulPosition(e.Center.Add(e.XDir)).Sub(center).Normalize()
	return &Ellipse{
		Center: center, Axis: axis,
		MajorRadius: e.MajorRadius, MinorRadius: e.MinorRadius,
		XDir: x, YDir: axis.Cross(x),
	}
}

func (e *Ellipse) String() string {
	return fmt.Sprintf("Ellipse (center %s, axis %s, major %s, radii %g %g)",
		fmtVec(e.Center), fmtVec(e.Axis), fmtVec(e.XDir), e.MajorRadius, e.MinorRadius)
}
