package engine

import (
	"github.com/Carmen-Shannon/oxy-view/engine/viewer"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables render-pass statistics output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithPaintRate sets how many paint events per second the engine emits.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target paints per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPaintRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.paintRate = paintInterval(fps)
	}
}

// WithWindow sets the window providing the rendering context and input.
// Without a window the engine runs headless until Quit.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithViewer sets the viewer driven by the engine rather than creating a default one.
//
// Parameters:
//   - v: the viewer to drive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewer(v viewer.Viewer) EngineBuilderOption {
	return func(e *engine) {
		e.viewer = v
	}
}
