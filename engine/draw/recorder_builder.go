package draw

// RecorderBuilderOption is a functional option for configuring a Recorder.
// Use the With* functions to create options.
type RecorderBuilderOption func(r *Recorder)

// WithOnDraw sets a hook called after each recorded element, on the drawing goroutine.
//
// Parameters:
//   - fn: the hook
//
// Returns:
//   - RecorderBuilderOption: option function to apply
func WithOnDraw(fn func(c Call)) RecorderBuilderOption {
	return func(r *Recorder) {
		r.onDraw = fn
	}
}
