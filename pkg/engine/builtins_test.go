package engine

import (
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/contour/pkg/brep"
	"github.com/chazu/contour/pkg/sketch"
)

// evalOK evaluates source and fails the test on any error.
func evalOK(t *testing.T, src string) *sketchResult {
	t.Helper()
	eng := NewEngine()
	sk, evalErrs, err := eng.Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return &sketchResult{t: t, sk: sk}
}

type sketchResult struct {
	t  *testing.T
	sk *sketch.Sketch
}

func (r *sketchResult) edge(name string) *brep.Edge {
	r.t.Helper()
	e, ok := r.sk.Lookup(name).(*brep.Edge)
	if !ok {
		r.t.Fatalf("shape %q: expected edge, got %T", name, r.sk.Lookup(name))
	}
	return e
}

func (r *sketchResult) wire(name string) *brep.Wire {
	r.t.Helper()
	w, ok := r.sk.Lookup(name).(*brep.Wire)
	if !ok {
		r.t.Fatalf("shape %q: expected wire, got %T", name, r.sk.Lookup(name))
	}
	return w
}

// ---------------------------------------------------------------------------
// Preprocessing
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	got := preprocessSource(`(circle :radius 5)`)
	want := `(circle "__kw_radius" 5)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPreprocessKebabCase(t *testing.T) {
	got := preprocessSource(`(orient e :make-arc true)`)
	if !strings.Contains(got, `"__kw_make-arc"`) {
		t.Errorf("keyword hyphen should survive inside the marker string, got %q", got)
	}

	got = preprocessSource(`(my-func 1)`)
	if !strings.Contains(got, "my_func") {
		t.Errorf("kebab identifier should become underscore, got %q", got)
	}
}

func TestPreprocessLeavesSubtraction(t *testing.T) {
	got := preprocessSource(`(- 5 3)`)
	if got != `(- 5 3)` {
		t.Errorf("minus operator mangled: %q", got)
	}
}

func TestPreprocessProtectsStrings(t *testing.T) {
	src := `(defshape "my-shape:x" (line (vec3 0 0 0) (vec3 1 0 0)))`
	got := preprocessSource(src)
	if !strings.Contains(got, `"my-shape:x"`) {
		t.Errorf("string literal mangled: %q", got)
	}
}

func TestPreprocessComments(t *testing.T) {
	got := preprocessSource(";; a comment\n(vec3 1 2 3)")
	if !strings.HasPrefix(got, "// a comment") {
		t.Errorf("comment not converted: %q", got)
	}
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

func TestBuiltinArc(t *testing.T) {
	r := evalOK(t, `(defshape "corner"
  (arc (vec3 1 0 0) (vec3 0 1 0) (vec3 -1 0 0)))`)

	e := r.edge("corner")
	if e.Curve.Kind() != brep.KindCircle {
		t.Fatalf("curve kind = %s, want Circle", e.Curve.Kind())
	}
	c := e.Curve.(*brep.Circle)
	if !brep.EqualPoints(c.Center, v3.Vec{}) {
		t.Errorf("center = %v, want origin", c.Center)
	}
	if math.Abs(c.Radius-1) > 1e-9 {
		t.Errorf("radius = %g, want 1", c.Radius)
	}
}

func TestBuiltinCircleDefaults(t *testing.T) {
	r := evalOK(t, `(defshape "hole" (circle :radius 2.5))`)

	e := r.edge("hole")
	c := e.Curve.(*brep.Circle)
	if math.Abs(c.Radius-2.5) > 1e-9 {
		t.Errorf("radius = %g, want 2.5", c.Radius)
	}
	// Default axis is +Z.
	if math.Abs(c.Axis.Z-1) > 1e-9 {
		t.Errorf("axis = %v, want +Z", c.Axis)
	}
	if !e.Closed() {
		t.Error("circle edge should be closed")
	}
}

func TestBuiltinCircleRejectsZeroRadius(t *testing.T) {
	eng := NewEngine()
	_, evalErrs, err := eng.Evaluate(`(circle :center (vec3 0 0 0))`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected error for missing radius")
	}
}

func TestBuiltinEllipse(t *testing.T) {
	r := evalOK(t, `(defshape "oval" (ellipse :major 4 :minor 2))`)

	e := r.edge("oval")
	el := e.Curve.(*brep.Ellipse)
	if el.MajorRadius != 4 || el.MinorRadius != 2 {
		t.Errorf("radii = %g, %g", el.MajorRadius, el.MinorRadius)
	}
}

func TestBuiltinBezierAndBspline(t *testing.T) {
	r := evalOK(t, `
(defshape "bz" (bezier (vec3 0 0 0) (vec3 1 1 0) (vec3 2 0 0)))
(defshape "bs" (bspline :degree 2 (vec3 0 0 0) (vec3 1 1 0) (vec3 2 0 0)))`)

	if r.edge("bz").Curve.Kind() != brep.KindBezier {
		t.Error("bz should be a Bezier edge")
	}
	bs := r.edge("bs")
	if bs.Curve.Kind() != brep.KindBSpline {
		t.Error("bs should be a BSpline edge")
	}
	if bs.Curve.(*brep.BSplineCurve).Degree != 2 {
		t.Errorf("degree = %d, want 2", bs.Curve.(*brep.BSplineCurve).Degree)
	}
}

func TestBuiltinWire(t *testing.T) {
	r := evalOK(t, `(defshape "path" (wire
  (line (vec3 0 0 0) (vec3 1 0 0))
  (line (vec3 1 0 0) (vec3 1 1 0))))`)

	w := r.wire("path")
	if len(w.Edges) != 2 {
		t.Fatalf("wire has %d edges, want 2", len(w.Edges))
	}
}

func TestBuiltinInvert(t *testing.T) {
	r := evalOK(t, `(defshape "rev" (invert (line (vec3 0 0 0) (vec3 3 0 0))))`)

	e := r.edge("rev")
	if !brep.EqualPoints(e.FirstVertex().Point, v3.Vec{X: 3}) {
		t.Errorf("first vertex = %v, want (3 0 0)", e.FirstVertex().Point)
	}
	if !brep.EqualPoints(e.LastVertex().Point, v3.Vec{}) {
		t.Errorf("last vertex = %v, want origin", e.LastVertex().Point)
	}
}

func TestBuiltinMidpointAndOrientEvaluate(t *testing.T) {
	// midpoint and orient return values rather than registering
	// shapes; they must evaluate without error.
	evalOK(t, `(midpoint (line (vec3 0 0 0) (vec3 2 0 0)))`)
	evalOK(t, `(orient (line (vec3 0 0 0) (vec3 1 0 1)) :normal (vec3 0 1 0))`)
	evalOK(t, `(orient (arc (vec3 1 0 0) (vec3 0 1 0) (vec3 -1 0 0)) :make-arc true)`)
}

func TestBuiltinMidpointUnsupported(t *testing.T) {
	eng := NewEngine()
	_, evalErrs, err := eng.Evaluate(`(midpoint (bezier (vec3 0 0 0) (vec3 1 1 0) (vec3 2 0 0)))`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected error for bezier midpoint")
	}
}

func TestBuiltinWireRejectsNonEdges(t *testing.T) {
	eng := NewEngine()
	_, evalErrs, err := eng.Evaluate(`(wire (vec3 0 0 0))`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected error for non-edge wire element")
	}
}
