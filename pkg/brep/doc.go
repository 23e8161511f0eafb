// Package brep defines the boundary-representation curve, edge, and wire
// types that the rest of Contour operates on. Curves are parametric and
// live in world coordinates; edges bound a curve to a parameter range and
// wires chain edges end to end.
package brep
