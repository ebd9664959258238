package draw

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// KeyColor spreads draw-list keys over the hue circle so neighbouring keys get
// distinguishable colors.
//
// Parameters:
//   - key: the draw-list key
//
// Returns:
//   - mgl32.Vec3: RGB color in [0, 1]
func KeyColor(key int) mgl32.Vec3 {
	h := math.Mod(float64(uint32(key))*0.618033988749895, 1)
	return hsvToRGB(float32(h), 0.6, 0.95)
}

// UnitCircle returns n points evenly spaced on the unit circle, starting at (1, 0).
// n is raised to 3 when smaller.
func UnitCircle(n int) []mgl32.Vec2 {
	if n < 3 {
		n = 3
	}
	circle := make([]mgl32.Vec2, n)
	for i := range circle {
		a := 2 * math.Pi * float64(i) / float64(n)
		circle[i] = mgl32.Vec2{float32(math.Cos(a)), float32(math.Sin(a))}
	}
	return circle
}

func hsvToRGB(h, s, v float32) mgl32.Vec3 {
	i := int(h * 6)
	f := h*6 - float32(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	switch i % 6 {
	case 0:
		return mgl32.Vec3{v, t, p}
	case 1:
		return mgl32.Vec3{q, v, p}
	case 2:
		return mgl32.Vec3{p, v, t}
	case 3:
		return mgl32.Vec3{p, q, v}
	case 4:
		return mgl32.Vec3{t, p, v}
	default:
		return mgl32.Vec3{v, p, q}
	}
}
