package scene

// ShapeBuilderOption is a functional option for configuring a Shape.
// Use the With* functions to create options.
type ShapeBuilderOption func(s *Shape)

// WithKey sets the shape's draw-list sort key.
//
// Parameters:
//   - key: the sort key (material, shader or pass id)
//
// Returns:
//   - ShapeBuilderOption: option function to apply
func WithKey(key int) ShapeBuilderOption {
	return func(s *Shape) {
		s.key = key
	}
}

// WithPayload attaches opaque geometry data for the draw method.
//
// Parameters:
//   - payload: any value understood by the configured draw method
//
// Returns:
//   - ShapeBuilderOption: option function to apply
func WithPayload(payload any) ShapeBuilderOption {
	return func(s *Shape) {
		s.payload = payload
	}
}
