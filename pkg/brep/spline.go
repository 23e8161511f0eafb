package brep

import (
	"fmt"
	"strings"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ---------------------------------------------------------------------------
// Bezier
// ---------------------------------------------------------------------------

// BezierCurve is a Bezier curve of arbitrary degree over [0, 1],
// evaluated by de Casteljau subdivision.
type BezierCurve struct {
	Poles []v3.Vec // control points, len >= 2
}

// NewBezier constructs a Bezier curve from control points.
func NewBezier(poles []v3.Vec) (*BezierCurve, error) {
	if len(poles) < 2 {
		return nil, fmt.Errorf("bezier: need at least 2 poles, got %d", len(poles))
	}
	c := &BezierCurve{Poles: make([]v3.Vec, len(poles))}
	copy(c.Poles, poles)
	return c, nil
}

func (c *BezierCurve) Kind() CurveKind { return KindBezier }

// Degree returns the polynomial degree (pole count minus one).
func (c *BezierCurve) Degree() int { return len(c.Poles) - 1 }

func (c *BezierCurve) Value(u float64) v3.Vec {
	return deCasteljau(c.Poles, u)
}

// Tangent returns the unit tangent via the hodograph: the derivative of
// a degree-n Bezier is a degree n-1 Bezier over the pole differences.
func (c *BezierCurve) Tangent(u float64) (v3.Vec, bool) {
	n := c.Degree()
	diffs := make([]v3.Vec, n)
	for i := 0; i < n; i++ {
		diffs[i] = c.Poles[i+1].Sub(c.Poles[i]).MulScalar(float64(n))
	}
	d := deCasteljau(diffs, u)
	if d.Length() <= DefaultTolerance {
		return v3.Vec{}, false
	}
	return d.Normalize(), true
}

func (c *BezierCurve) FirstParameter() float64 { return 0 }
func (c *BezierCurve) LastParameter() float64  { return 1 }

func (c *BezierCurve) Closed() bool {
	return EqualPoints(c.Poles[0], c.Poles[len(c.Poles)-1])
}

func (c *BezierCurve) Transformed(m sdf.M44) Curve {
	poles := make([]v3.Vec, len(c.Poles))
	for i, p := range c.Poles {
		poles[i] = m.MulPosition(p)
	}
	return &BezierCurve{Poles: poles}
}

func (c *BezierCurve) String() string {
	var b strings.Builder
	b.WriteString("BezierCurve (poles")
	for _, p := range c.Poles {
		b.WriteByte(' ')
		b.WriteString(fmtVec(p))
	}
	b.WriteByte(')')
	return b.String()
}

// deCasteljau evaluates the Bezier curve defined by pts at u.
func deCasteljau(pts []v3.Vec, u float64) v3.Vec {
	if len(pts) == 1 {
		return pts[0]
	}
	work := make([]v3.Vec, len(pts))
	copy(work, pts)
	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] = work[i].MulScalar(1 - u).Add(work[i+1].MulScalar(u))
		}
	}
	return work[0]
}

// ---------------------------------------------------------------------------
// B-spline
// ---------------------------------------------------------------------------

// BSplineCurve is a clamped B-spline evaluated by de Boor's algorithm.
// The flattened knot vector has len(Poles)+Degree+1 entries with the
// first and last knots repeated Degree+1 times.
type BSplineCurve struct {
	Poles  []v3.Vec
	Knots  []float64 // flattened, non-decreasing
	Degree int
}

// NewBSpline constructs a clamped B-spline with a uniform knot vector
// over [0, 1].
func NewBSpline(poles []v3.Vec, degree int) (*BSplineCurve, error) {
	if degree < 1 {
		return nil, fmt.Errorf("bspline: degree must be >= 1, got %d", degree)
	}
	if len(poles) < degree+1 {
		return nil, fmt.Errorf("bspline: degree %d needs at least %d poles, got %d",
			degree, degree+1, len(poles))
	}
	n := len(poles)
	knots := make([]float64, n+degree+1)
	interior := n - degree // number of spans
	for i := range knots {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= n:
			knots[i] = 1
		default:
			knots[i] = float64(i-degree) / float64(interior)
		}
	}
	c := &BSplineCurve{Poles: make([]v3.Vec, n), Knots: knots, Degree: degree}
	copy(c.Poles, poles)
	return c, nil
}

func (c *BSplineCurve) Kind() CurveKind { return KindBSpline }

func (c *BSplineCurve) FirstParameter() float64 { return c.Knots[c.Degree] }
func (c *BSplineCurve) LastParameter() float64  { return c.Knots[len(c.Knots)-1-c.Degree] }

func (c *BSplineCurve) Closed() bool {
	return EqualPoints(c.Value(c.FirstParameter()), c.Value(c.LastParameter()))
}

// findSpan locates the knot span index k with Knots[k] <= u < Knots[k+1],
// clamped so that k indexes a non-empty span.
func (c *BSplineCurve) findSpan(u float64) int {
	n := len(c.Poles) - 1
	if u >= c.Knots[n+1] {
		return n
	}
	if u <= c.Knots[c.Degree] {
		return c.Degree
	}
	lo, hi := c.Degree, n+1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if u < c.Knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// Value evaluates the curve at u by de Boor recursion.
func (c *BSplineCurve) Value(u float64) v3.Vec {
	p := c.Degree
	k := c.findSpan(u)

	d := make([]v3.Vec, p+1)
	for j := 0; j <= p; j++ {
		d[j] = c.Poles[k-p+j]
	}
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			i := k - p + j
			denom := c.Knots[i+p-r+1] - c.Knots[i]
			var alpha float64
			if denom != 0 {
				alpha = (u - c.Knots[i]) / denom
			}
			d[j] = d[j-1].MulScalar(1 - alpha).Add(d[j].MulScalar(alpha))
		}
	}
	return d[p]
}

// Tangent evaluates the derivative B-spline. ok is false where the
// derivative vanishes (coincident consecutive poles can cause this at
// the ends).
func (c *BSplineCurve) Tangent(u float64) (v3.Vec, bool) {
	dc := c.derivative()
	d := dc.Value(u)
	if d.Length() <= DefaultTolerance {
		return v3.Vec{}, false
	}
	return d.Normalize(), true
}

// derivative returns the degree-1 lower B-spline that is the hodograph
// of c.
func (c *BSplineCurve) derivative() *BSplineCurve {
	p := c.Degree
	n := len(c.Poles)
	poles := make([]v3.Vec, n-1)
	for i := 0; i < n-1; i++ {
		denom := c.Knots[i+p+1] - c.Knots[i+1]
		if denom == 0 {
			poles[i] = v3.Vec{}
			continue
		}
		poles[i] = c.Poles[i+1].Sub(c.Poles[i]).MulScalar(float64(p) / denom)
	}
	return &BSplineCurve{Poles: poles, Knots: c.Knots[1 : len(c.Knots)-1], Degree: p - 1}
}

func (c *BSplineCurve) Transformed(m sdf.M44) Curve {
	poles := make([]v3.Vec, len(c.Poles))
	for i, p := range c.Poles {
		poles[i] = m.MulPosition(p)
	}
	knots := make([]float64, len(c.Knots))
	copy(knots, c.Knots)
	return &BSplineCurve{Poles: poles, Knots: knots, Degree: c.Degree}
}

func (c *BSplineCurve) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "BSplineCurve (degree %d, poles", c.Degree)
	for _, p := range c.Poles {
		b.WriteByte(' ')
		b.WriteString(fmtVec(p))
	}
	b.WriteByte(')')
	return b.String()
}
