package brep

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultTolerance is the point-coincidence tolerance in model units (mm).
const DefaultTolerance = 1e-7

// EqualPoints reports whether two points coincide within DefaultTolerance.
func EqualPoints(a, b v3.Vec) bool {
	return a.Sub(b).Length() <= DefaultTolerance
}

// EqualVecs reports whether two vectors coincide within the given tolerance.
func EqualVecs(a, b v3.Vec, tolerance float64) bool {
	return a.Sub(b).Length() <= tolerance
}

// Angle returns the unsigned angle in radians between two vectors,
// in [0, pi]. Zero-length input yields 0.
func Angle(a, b v3.Vec) float64 {
	cross := a.Cross(b).Length()
	dot := a.Dot(b)
	if cross == 0 && dot == 0 {
		return 0
	}
	return math.Atan2(cross, dot)
}

// perpTo returns a unit vector perpendicular to a. The choice is
// deterministic: the coordinate axis least aligned with a is used as
// the reference.
func perpTo(a v3.Vec) v3.Vec {
	ax, ay, az := math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)
	ref := v3.Vec{X: 1}
	if ay <= ax && ay <= az {
		ref = v3.Vec{Y: 1}
	} else if az <= ax && az <= ay {
		ref = v3.Vec{Z: 1}
	}
	return a.Cross(ref).Normalize()
}

// fmtVec renders a vector for curve definition strings. %g keeps the
// output stable and free of trailing zeros so string comparison works
// as a definition-equality check.
func fmtVec(v v3.Vec) string {
	return fmt.Sprintf("[%g %g %g]", v.X, v.Y, v.Z)
}
