package sketch

import (
	"fmt"

	"github.com/chazu/contour/pkg/brep"
	"github.com/chazu/contour/pkg/edges"
)

// ShortEdgeLength is the advisory threshold for suspiciously short
// edges, in model units (mm).
const ShortEdgeLength = 0.01

// NearClosedGap is the advisory threshold for wires whose endpoints
// almost meet.
const NearClosedGap = 0.1

// Validate runs all geometric checks over a sketch. Errors are
// blocking, warnings are advisory.
func Validate(s *Sketch) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validateRadii(s)...)
	errs = append(errs, validateDegenerateEdges(s)...)
	errs = append(errs, validateDuplicateEdges(s)...)
	errs = append(errs, validateWireContinuity(s)...)

	warnings = append(warnings, warnShortEdges(s)...)
	warnings = append(warnings, warnNearClosedWires(s)...)

	return errs, warnings
}

// validateRadii checks that every circle and ellipse carries positive
// radii. Constructors enforce this; hand-built curves may not.
func validateRadii(s *Sketch) []ValidationError {
	var errs []ValidationError

	all, names := s.Edges()
	for i, e := range all {
		switch c := e.Curve.(type) {
		case *brep.Circle:
			if c.Radius <= 0 {
				errs = append(errs, ValidationError{
					Name:     names[i],
					Message:  fmt.Sprintf("circle radius is %g, must be positive", c.Radius),
					Severity: SeverityError,
				})
			}
		case *brep.Ellipse:
			if c.MinorRadius <= 0 || c.MajorRadius < c.MinorRadius {
				errs = append(errs, ValidationError{
					Name:     names[i],
					Message:  fmt.Sprintf("ellipse radii %g, %g are invalid", c.MajorRadius, c.MinorRadius),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateDegenerateEdges checks that no open edge collapses to a
// point.
func validateDegenerateEdges(s *Sketch) []ValidationError {
	var errs []ValidationError

	all, names := s.Edges()
	for i, e := range all {
		if e.Curve.Kind() != brep.KindLine {
			continue
		}
		if e.ChordLength() <= brep.DefaultTolerance {
			errs = append(errs, ValidationError{
				Name:     names[i],
				Message:  "degenerate line edge: endpoints coincide",
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateDuplicateEdges flags edges registered twice with the same
// geometry. Detection uses the same equality as edge lookup.
func validateDuplicateEdges(s *Sketch) []ValidationError {
	var errs []ValidationError

	all, names := s.Edges()
	for i, e := range all {
		if j, ok := edges.Find(e, all[:i]); ok {
			errs = append(errs, ValidationError{
				Name:     names[i],
				Message:  fmt.Sprintf("duplicate edge: same geometry already registered as %q", names[j]),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// connected reports whether two consecutive wire edges share an
// endpoint in any orientation.
func connected(a, b *brep.Edge) bool {
	a1, a2 := a.FirstVertex().Point, a.LastVertex().Point
	b1, b2 := b.FirstVertex().Point, b.LastVertex().Point
	return brep.EqualPoints(a2, b1) || brep.EqualPoints(a2, b2) ||
		brep.EqualPoints(a1, b1) || brep.EqualPoints(a1, b2)
}

// validateWireContinuity checks that consecutive wire edges share an
// endpoint.
func validateWireContinuity(s *Sketch) []ValidationError {
	var errs []ValidationError

	for _, ent := range s.Entries() {
		w, ok := ent.Shape.(*brep.Wire)
		if !ok {
			continue
		}
		for i := 0; i+1 < len(w.Edges); i++ {
			if !connected(w.Edges[i], w.Edges[i+1]) {
				errs = append(errs, ValidationError{
					Name:     ent.Name,
					Message:  fmt.Sprintf("wire edges %d and %d do not share an endpoint", i, i+1),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// warnShortEdges flags open edges whose endpoints are closer than
// ShortEdgeLength.
func warnShortEdges(s *Sketch) []ValidationWarning {
	var warnings []ValidationWarning

	all, names := s.Edges()
	for i, e := range all {
		if e.Closed() {
			continue
		}
		l := e.ChordLength()
		if l > brep.DefaultTolerance && l < ShortEdgeLength {
			warnings = append(warnings, ValidationWarning{
				Name:    names[i],
				Message: fmt.Sprintf("edge chord length %g is below %g", l, ShortEdgeLength),
			})
		}
	}
	return warnings
}

// warnNearClosedWires flags wires whose free endpoints almost meet.
// A gap below tolerance counts as closed and is not flagged.
func warnNearClosedWires(s *Sketch) []ValidationWarning {
	var warnings []ValidationWarning

	for _, ent := range s.Entries() {
		w, ok := ent.Shape.(*brep.Wire)
		if !ok || len(w.Edges) == 0 {
			continue
		}
		first := w.Edges[0].FirstVertex().Point
		last := w.Edges[len(w.Edges)-1].LastVertex().Point
		gap := first.Sub(last).Length()
		if gap > brep.DefaultTolerance && gap < NearClosedGap {
			warnings = append(warnings, ValidationWarning{
				Name:    ent.Name,
				Message: fmt.Sprintf("wire endpoints are %g apart, nearly closed", gap),
			})
		}
	}
	return warnings
}
