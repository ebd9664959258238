package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TrackballBuilderOption is a functional option for configuring a Trackball.
type TrackballBuilderOption func(*trackballImpl)

// WithTarget sets the initial orbit center.
//
// Parameters:
//   - target: the look-at point
//
// Returns:
//   - TrackballBuilderOption: functional option to set the target
func WithTarget(target mgl32.Vec3) TrackballBuilderOption {
	return func(tb *trackballImpl) {
		tb.target = target
	}
}

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - TrackballBuilderOption: functional option to set the radius
func WithRadius(radius float32) TrackballBuilderOption {
	return func(tb *trackballImpl) {
		tb.radius = radius
	}
}

// WithRadiusLimits sets the zoom limits.
//
// Parameters:
//   - minRadius: closest allowed distance
//   - maxRadius: farthest allowed distance
//
// Returns:
//   - TrackballBuilderOption: functional option to set the limits
func WithRadiusLimits(minRadius, maxRadius float32) TrackballBuilderOption {
	return func(tb *trackballImpl) {
		tb.minRadius = minRadius
		tb.maxRadius = maxRadius
	}
}

// WithAngles sets the initial azimuth and elevation.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - TrackballBuilderOption: functional option to set the angles
func WithAngles(azimuth, elevation float32) TrackballBuilderOption {
	return func(tb *trackballImpl) {
		tb.azimuth = azimuth
		tb.elevation = elevation
	}
}

// WithElevationLimits sets the vertical angle limits.
//
// Parameters:
//   - minElevation: lowest elevation in radians
//   - maxElevation: highest elevation in radians
//
// Returns:
//   - TrackballBuilderOption: functional option to set the limits
func WithElevationLimits(minElevation, maxElevation float32) TrackballBuilderOption {
	return func(tb *trackballImpl) {
		tb.minElevation = minElevation
		tb.maxElevation = maxElevation
	}
}

// WithRotateSensitivity sets the radians of rotation per pixel dragged.
//
// Parameters:
//   - s: radians per pixel
//
// Returns:
//   - TrackballBuilderOption: functional option to set the sensitivity
func WithRotateSensitivity(s float32) TrackballBuilderOption {
	return func(tb *trackballImpl) {
		tb.rotateSensitivity = s
	}
}

// WithPanSensitivity sets the pan distance per pixel as a fraction of the radius.
//
// Parameters:
//   - s: radius fraction per pixel
//
// Returns:
//   - TrackballBuilderOption: functional option to set the sensitivity
func WithPanSensitivity(s float32) TrackballBuilderOption {
	return func(tb *trackballImpl) {
		tb.panSensitivity = s
	}
}

// WithZoomFactor sets the radius ratio applied per zoom step.
//
// Parameters:
//   - f: ratio greater than 1
//
// Returns:
//   - TrackballBuilderOption: functional option to set the factor
func WithZoomFactor(f float32) TrackballBuilderOption {
	return func(tb *trackballImpl) {
		if f > 1 {
			tb.zoomFactor = f
		}
	}
}
