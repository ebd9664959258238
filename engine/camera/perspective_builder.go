package camera

// PerspectiveBuilderOption is a functional option for configuring a Perspective.
type PerspectiveBuilderOption func(*perspectiveImpl)

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - PerspectiveBuilderOption: a function that sets the field of view
func WithFov(fov float32) PerspectiveBuilderOption {
	return func(p *perspectiveImpl) {
		p.fov = fov
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - PerspectiveBuilderOption: a function that sets the aspect ratio
func WithAspect(aspect float32) PerspectiveBuilderOption {
	return func(p *perspectiveImpl) {
		p.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - PerspectiveBuilderOption: a function that sets the near plane
func WithNear(near float32) PerspectiveBuilderOption {
	return func(p *perspectiveImpl) {
		p.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - PerspectiveBuilderOption: functional option to set the far plane
func WithFar(far float32) PerspectiveBuilderOption {
	return func(p *perspectiveImpl) {
		p.far = far
	}
}
