package brep

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Placement records how a shape was positioned: an axis-angle rotation
// followed by a translation. The zero value is the identity placement.
type Placement struct {
	Axis  v3.Vec  // rotation axis, need not be unit length
	Angle float64 // radians
	Trans v3.Vec
}

// IsIdentity reports whether the placement performs no transformation.
func (p Placement) IsIdentity() bool {
	return p.Angle == 0 && p.Trans.Length() == 0
}

// Matrix returns the placement as a homogeneous transform.
func (p Placement) Matrix() sdf.M44 {
	m := sdf.Translate3d(p.Trans)
	if p.Angle != 0 && p.Axis.Length() > 0 {
		m = m.Mul(sdf.Rotate3d(p.Axis.Normalize(), p.Angle))
	}
	return m
}

// Apply transforms a point by the placement.
func (p Placement) Apply(v v3.Vec) v3.Vec {
	if p.IsIdentity() {
		return v
	}
	return p.Matrix().MulPosition(v)
}

// rotationAbout builds the transform that rotates by angle radians
// around the given axis through base.
func rotationAbout(base, axis v3.Vec, angle float64) sdf.M44 {
	if axis.Length() == 0 || angle == 0 {
		return sdf.Translate3d(v3.Vec{})
	}
	m := sdf.Translate3d(base)
	m = m.Mul(sdf.Rotate3d(axis.Normalize(), angle))
	return m.Mul(sdf.Translate3d(base.MulScalar(-1)))
}
