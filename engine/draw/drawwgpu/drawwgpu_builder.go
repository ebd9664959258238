package drawwgpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// MethodBuilderOption is a functional option for configuring the WebGPU draw method.
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

// WithoutClear loads the previous surface contents instead of clearing them.
//
// Returns:
//   - MethodBuilderOption: option function to apply
func WithoutClear() MethodBuilderOption {
	return func(m *method) {
		m.clear = false
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

// WithVSync selects FIFO presentation when enabled (the default) and
// immediate presentation otherwise.
//
// Parameters:
//   - enabled: whether presentation waits for vertical blank
//
// Returns:
//   - MethodBuilderOption: option function to apply
func WithVSync(enabled bool) MethodBuilderOption {
	return func(m *method) {
		if enabled {
			m.presentMode = wgpu.PresentModeFifo
		} else {
			m.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithForceFallbackAdapter requests the software fallback adapter.
//
// Returns:
//   - MethodBuilderOption: option function to apply
func WithForceFallbackAdapter() MethodBuilderOption {
	return func(m *method) {
		m.forceFallbackAdapter = true
	}
}
