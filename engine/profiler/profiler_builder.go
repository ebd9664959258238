package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithInterval sets how often Tick reports. Non-positive values are ignored.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogFunc redirects report output, log.Printf by default.
//
// Parameters:
//   - logf: a printf-style output function
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogFunc(logf func(format string, args ...any)) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logf != nil {
			p.logf = logf
		}
	}
}
