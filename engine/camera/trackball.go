package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Trackball is an orbiting navigation provider. It keeps a target point and
// spherical coordinates (radius, azimuth, elevation) of the eye around it and
// accumulates mouse drags into them.
type Trackball interface {
	Provider
	LookAtAller

	// Eye returns the world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// Target returns the orbit center.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at point
	Target() mgl32.Vec3

	// SetTarget moves the orbit center, keeping radius and angles.
	//
	// Parameters:
	//   - target: the new look-at point
	SetTarget(target mgl32.Vec3)

	// Radius returns the distance from the eye to the target.
	//
	// Returns:
	//   - float32: current orbit radius
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the configured limits.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians (0 = +Z).
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetAngles sets azimuth and elevation, clamping the elevation.
	//
	// Parameters:
	//   - azimuth: horizontal angle in radians
	//   - elevation: vertical angle in radians
	SetAngles(azimuth, elevation float32)

	// Begin starts a drag at the given cursor position.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	Begin(x, y float64)

	// Rotate orbits the eye by the cursor movement since the previous call.
	// Does nothing outside a drag.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	Rotate(x, y float64)

	// Pan moves target and eye along the view plane by the cursor movement
	// since the previous call. Does nothing outside a drag.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	Pan(x, y float64)

	// End finishes the current drag.
	End()

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true between Begin and End
	Dragging() bool

	// Zoom scales the radius. Positive steps move the eye closer.
	//
	// Parameters:
	//   - steps: wheel steps, fractional values allowed
	Zoom(steps float32)
}
