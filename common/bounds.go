package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere is a bounding sphere. A negative radius marks an invalid (empty) sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// InvalidSphere returns the empty bounding sphere.
//
// Returns:
//   - Sphere: a sphere with radius -1
func InvalidSphere() Sphere {
	return Sphere{Radius: -1}
}

// Valid reports whether the sphere bounds anything.
//
// Returns:
//   - bool: true if the radius is not negative
func (s Sphere) Valid() bool {
	return s.Radius >= 0
}

// Union returns the smallest sphere enclosing both s and o.
// Invalid spheres are ignored; the union of two invalid spheres is invalid.
//
// Parameters:
//   - o: the sphere to merge with s
//
// Returns:
//   - Sphere: the enclosing sphere
func (s Sphere) Union(o Sphere) Sphere {
	if !o.Valid() {
		return s
	}
	if !s.Valid() {
		return o
	}

	d := o.Center.Sub(s.Center)
	dist := d.Len()

	// One sphere already contains the other.
	if dist+o.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= o.Radius {
		return o
	}

	radius := (dist + s.Radius + o.Radius) * 0.5
	center := s.Center
	if dist > 0 {
		center = s.Center.Add(d.Mul((radius - s.Radius) / dist))
	}
	return Sphere{Center: center, Radius: radius}
}

// Transform returns the sphere moved into the space described by m.
// The radius is scaled by the largest axis scale of m, so the result still encloses
// the transformed volume under non-uniform scaling.
//
// Parameters:
//   - m: the transform to apply
//
// Returns:
//   - Sphere: the transformed sphere, or s unchanged if it is invalid
func (s Sphere) Transform(m mgl32.Mat4) Sphere {
	if !s.Valid() {
		return s
	}
	return Sphere{
		Center: mgl32.TransformCoordinate(s.Center, m),
		Radius: s.Radius * mgl32.ExtractMaxScale(m),
	}
}
