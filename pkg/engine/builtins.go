package engine

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/contour/pkg/brep"
	"github.com/chazu/contour/pkg/edges"
	"github.com/chazu/contour/pkg/sketch"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Contour Lisp source before it reaches
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" string literal.
//     This avoids registering keyword symbols as globals, which would
//     collide with user variables of the same name.
//
//  2. Kebab-case to underscore: make-arc -> make_arc. zygomys reads a
//     hyphen inside an identifier as subtraction.
//
//  3. ; line comments become // comments, which is what zygomys
//     expects.
//
// All three transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"' || b[i] == '`':
			quote := b[i]
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != quote {
				if quote == '"' && b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}

		case b[i] == ';':
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			// := assignment passes through untouched.
			result = append(result, b[i], b[i+1])
			i += 2

		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, []byte(kwPrefix)...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j

		case b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]):
			// Hyphen between identifier characters, not a minus.
			result = append(result, '_')
			i++

		default:
			result = append(result, b[i])
			i++
		}
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a point or direction vector.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a brep edge or wire so it can flow between builtins.
type sexpShape struct {
	shape brep.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	switch sh := s.shape.(type) {
	case *brep.Edge:
		return fmt.Sprintf("(edge %s)", sh.Curve.Kind())
	case *brep.Wire:
		return fmt.Sprintf("(wire %d edges)", len(sh.Edges))
	}
	return "(shape)"
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpCurve wraps a bare curve, as returned by orient.
type sexpCurve struct {
	curve brep.Curve
}

func (c *sexpCurve) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(curve %s)", c.curve)
}
func (c *sexpCurve) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string, returning
// the bare keyword name when it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds a parsed mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

func toShape(s zygo.Sexp) (brep.Shape, error) {
	if sh, ok := s.(*sexpShape); ok {
		return sh.shape, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

func toEdge(s zygo.Sexp) (*brep.Edge, error) {
	sh, err := toShape(s)
	if err != nil {
		return nil, err
	}
	e, ok := sh.(*brep.Edge)
	if !ok {
		return nil, fmt.Errorf("expected edge, got %s", sh.ShapeType())
	}
	return e, nil
}

// toPoints extracts all positional args as vectors.
func toPoints(args []zygo.Sexp) ([]v3.Vec, error) {
	pts := make([]v3.Vec, len(args))
	for i, a := range args {
		v, err := toVec3(a)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		pts[i] = v
	}
	return pts, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the sketch DSL builtins into a zygomys
// environment. The builtins construct brep shapes and register them on
// the provided sketch during evaluation.
//
// Source must be preprocessed with preprocessSource first so that
// :keyword tokens arrive as marker strings.
func registerBuiltins(env *zygo.Zlisp, sk *sketch.Sketch) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: v3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (line (vec3 0 0 0) (vec3 10 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("line requires 2 points, got %d", len(args))
		}
		p1, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		p2, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		e, err := brep.NewLineEdge(p1, p2)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		return &sexpShape{shape: e}, nil
	})

	// -----------------------------------------------------------------------
	// (arc p1 p2 p3) — circular arc from p1 through p2 to p3
	// -----------------------------------------------------------------------
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("arc requires 3 points, got %d", len(args))
		}
		pts, err := toPoints(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: %w", err)
		}
		e, err := brep.ArcThroughPoints(pts[0], pts[1], pts[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: %w", err)
		}
		return &sexpShape{shape: e}, nil
	})

	// -----------------------------------------------------------------------
	// (circle :center (vec3 0 0 0) :axis (vec3 0 0 1) :radius 5)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		center := v3.Vec{}
		axis := v3.Vec{Z: 1}
		radius := 0.0

		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: center: %w", err)
			}
			center = c
		}
		if v, ok := pa.kw["axis"]; ok {
			a, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: axis: %w", err)
			}
			axis = a
		}
		if v, ok := pa.kw["radius"]; ok {
			r, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
			}
			radius = r
		}

		e, err := brep.NewCircleEdge(center, axis, radius)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		return &sexpShape{shape: e}, nil
	})

	// -----------------------------------------------------------------------
	// (ellipse :center v :axis v :major 10 :minor 5)
	// -----------------------------------------------------------------------
	env.AddFunction("ellipse", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		center := v3.Vec{}
		axis := v3.Vec{Z: 1}
		major, minor := 0.0, 0.0

		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ellipse: center: %w", err)
			}
			center = c
		}
		if v, ok := pa.kw["axis"]; ok {
			a, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ellipse: axis: %w", err)
			}
			axis = a
		}
		if v, ok := pa.kw["major"]; ok {
			r, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ellipse: major: %w", err)
			}
			major = r
		}
		if v, ok := pa.kw["minor"]; ok {
			r, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ellipse: minor: %w", err)
			}
			minor = r
		}

		e, err := brep.NewEllipseEdge(center, axis, major, minor)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ellipse: %w", err)
		}
		return &sexpShape{shape: e}, nil
	})

	// -----------------------------------------------------------------------
	// (bezier p1 p2 p3 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("bezier", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := toPoints(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bezier: %w", err)
		}
		e, err := brep.NewBezierEdge(pts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bezier: %w", err)
		}
		return &sexpShape{shape: e}, nil
	})

	// -----------------------------------------------------------------------
	// (bspline :degree 3 p1 p2 p3 p4 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("bspline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		degree := 3
		if v, ok := pa.kw["degree"]; ok {
			d, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("bspline: degree: %w", err)
			}
			degree = d
		}
		pts, err := toPoints(pa.positional)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bspline: %w", err)
		}
		e, err := brep.NewBSplineEdge(pts, degree)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bspline: %w", err)
		}
		return &sexpShape{shape: e}, nil
	})

	// -----------------------------------------------------------------------
	// (wire e1 e2 e3 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("wire", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("wire requires at least one edge")
		}
		es := make([]*brep.Edge, len(args))
		for i, a := range args {
			e, err := toEdge(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("wire: edge %d: %w", i, err)
			}
			es[i] = e
		}
		return &sexpShape{shape: brep.NewWire(es...)}, nil
	})

	// -----------------------------------------------------------------------
	// (defshape "name" shape)
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a shape")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		sh, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}
		if err := sk.Add(shapeName, sh); err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}
		return args[1], nil
	})

	// -----------------------------------------------------------------------
	// (invert shape)
	// -----------------------------------------------------------------------
	env.AddFunction("invert", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("invert requires a shape")
		}
		sh, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("invert: %w", err)
		}
		return &sexpShape{shape: edges.Invert(sh)}, nil
	})

	// -----------------------------------------------------------------------
	// (midpoint edge)
	// -----------------------------------------------------------------------
	env.AddFunction("midpoint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("midpoint requires an edge")
		}
		e, err := toEdge(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("midpoint: %w", err)
		}
		mp, ok := edges.Midpoint(e)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("midpoint: no closed-form midpoint for %s", e.Curve.Kind())
		}
		return &sexpVec3{vec: mp}, nil
	})

	// -----------------------------------------------------------------------
	// (orient edge :normal (vec3 0 1 0) :make-arc true)
	// -----------------------------------------------------------------------
	env.AddFunction("orient", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("orient requires an edge")
		}
		e, err := toEdge(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("orient: %w", err)
		}

		var normal *v3.Vec
		if v, ok := pa.kw["normal"]; ok {
			n, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("orient: normal: %w", err)
			}
			normal = &n
		}
		makeArc := false
		if v, ok := pa.kw["make-arc"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("orient: make-arc: %w", err)
			}
			makeArc = b
		}

		return &sexpCurve{curve: edges.Orient(e, normal, makeArc)}, nil
	})
}
