package cull

import (
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
)

// FrustumCullBuilderOption is a functional option for configuring a FrustumCull.
// Use the With* functions to create options.
type FrustumCullBuilderOption func(c *FrustumCull)

// WithKeyFunc sets the function that picks a shape's draw-list key.
// The default uses Shape.Key.
//
// Parameters:
//   - fn: key function, nil keeps the default
//
// Returns:
//   - FrustumCullBuilderOption: option function to apply
func WithKeyFunc(fn func(s *scene.Shape) int) FrustumCullBuilderOption {
	return func(c *FrustumCull) {
		if fn != nil {
			c.keyFunc = fn
		}
	}
}

// WithMinPixelSize rejects shapes whose bounding sphere projects to a diameter
// smaller than the given number of viewport pixels. 0 disables the test.
//
// Parameters:
//   - pixels: minimum projected diameter in pixels
//
// Returns:
//   - FrustumCullBuilderOption: option function to apply
func WithMinPixelSize(pixels float32) FrustumCullBuilderOption {
	return func(c *FrustumCull) {
		c.minPixelSize = pixels
	}
}
