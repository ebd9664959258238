package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance returns the distance from v to the plane. Positive is the inner side.
func (p Plane) SignedDistance(v mgl32.Vec3) float32 {
	return p.Normal.Dot(v) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// Containment is the result of testing a volume against a frustum.
type Containment int

const (
	// Outside means the volume lies entirely outside at least one plane.
	Outside Containment = iota
	// Intersects means the volume straddles at least one plane.
	Intersects
	// Inside means the volume lies entirely inside all six planes.
	Inside
)

// ExtractFrustum extracts frustum planes from a view-projection matrix
// using the Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined projection * view matrix (column-major, as mgl32 stores it)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	var f Frustum

	r0 := viewProj.Row(0)
	r1 := viewProj.Row(1)
	r2 := viewProj.Row(2)
	r3 := viewProj.Row(3)

	f.Planes[FrustumLeft] = planeFromRow(r3.Add(r0))
	f.Planes[FrustumRight] = planeFromRow(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFromRow(r3.Add(r1))
	f.Planes[FrustumTop] = planeFromRow(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFromRow(r3.Add(r2))
	f.Planes[FrustumFar] = planeFromRow(r3.Sub(r2))

	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// TestSphere classifies a bounding sphere against the frustum.
// Invalid spheres are always Outside.
//
// Parameters:
//   - s: the sphere to test, in the same space the frustum was extracted in
//
// Returns:
//   - Containment: Outside, Intersects or Inside
func (f *Frustum) TestSphere(s Sphere) Containment {
	if !s.Valid() {
		return Outside
	}
	result := Inside
	for i := range f.Planes {
		d := f.Planes[i].SignedDistance(s.Center)
		if d < -s.Radius {
			return Outside
		}
		if d < s.Radius {
			result = Intersects
		}
	}
	return result
}

func planeFromRow(r mgl32.Vec4) Plane {
	return Plane{Normal: mgl32.Vec3{r[0], r[1], r[2]}, Distance: r[3]}
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := float32(math.Sqrt(float64(p.Normal.Dot(p.Normal))))

	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
}
