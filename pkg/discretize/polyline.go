package discretize

// Polyline is a sampled curve suitable for rendering. Points is flat:
// 3 floats per point (x,y,z).
type Polyline struct {
	Points []float64 `json:"points"` // [x0,y0,z0, x1,y1,z1, ...]
	Name   string    `json:"name"`   // which sketch shape this came from
	Closed bool      `json:"closed"` // last point joins back to the first
}

// PointCount returns the number of points.
func (p *Polyline) PointCount() int {
	return len(p.Points) / 3
}

// IsEmpty returns true if the polyline has no points.
func (p *Polyline) IsEmpty() bool {
	return len(p.Points) == 0
}
