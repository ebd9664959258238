package drawgl

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MethodBuilderOption is a functional option for configuring the OpenGL draw method.
// Use the With* functions to create options.
type MethodBuilderOption func(m *method)

// WithClearColor sets the color the frame is cleared to before drawing.
//
// Parameters:
//   - c: RGBA clear color
//
// Returns:
//   - MethodBuilderOption: option function to apply
func WithClearColor(c mgl32.Vec4) MethodBuilderOption {
	return func(m *method) {
		m.clearColor = c
	}
}

// WithoutClear leaves the color and depth buffers untouched, for methods stacked
// after another one in the draw pipeline.
//
// Returns:
//   - MethodBuilderOption: option function to apply
func WithoutClear() MethodBuilderOption {
	return func(m *method) {
		m.clear = false
	}
}

// WithLineWidth sets the wireframe line width in pixels.
//
// Parameters:
//   - w: line width
//
// Returns:
//   - MethodBuilderOption: option function to apply
func WithLineWidth(w float32) MethodBuilderOption {
	return func(m *method) {
		m.lineWidth = w
	}
}

// WithSegments sets how many segments approximate each circle. Minimum 3.
//
// Parameters:
//   - n: segment count
//
// Returns:
//   - MethodBuilderOption: option function to apply
func WithSegments(n int) MethodBuilderOption {
	return func(m *method) {
		m.segments = n
	}
}
