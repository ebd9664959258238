package scene

import (
	"github.com/Carmen-Shannon/oxy-view/common"
)

// Shape is a drawable leaf. Its geometry is opaque to the viewer: only the
// bounding sphere and the sort key take part in culling and draw ordering.
type Shape struct {
	name    string
	bounds  common.Sphere
	key     int
	payload any
}

var _ Node = &Shape{}

// NewShape creates a shape leaf.
//
// Parameters:
//   - name: the shape's identifier
//   - bounds: the local bounding sphere
//   - options: functional options (sort key, payload)
//
// Returns:
//   - *Shape: the new shape
func NewShape(name string, bounds common.Sphere, options ...ShapeBuilderOption) *Shape {
	s := &Shape{
		name:   name,
		bounds: bounds,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Shape) Name() string {
	return s.name
}

// Key returns the draw-list sort key, typically a material or shader id.
func (s *Shape) Key() int {
	return s.key
}

// Payload returns the opaque geometry attached to the shape.
func (s *Shape) Payload() any {
	return s.payload
}

func (s *Shape) Accept(v Visitor) error {
	return v.VisitShape(s)
}

func (s *Shape) Bounds() common.Sphere {
	return s.bounds
}
