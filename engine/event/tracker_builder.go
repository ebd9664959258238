package event

import (
	"time"
)

// TrackerBuilderOption is a functional option for configuring a Tracker.
// Use the With* functions to create options.
type TrackerBuilderOption func(t *Tracker)

// WithDoubleClickTime sets the longest gap between two presses forming a double click.
//
// Parameters:
//   - d: the maximum gap, default 400ms
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithDoubleClickTime(d time.Duration) TrackerBuilderOption {
	return func(t *Tracker) {
		t.doubleClickTime = d
	}
}

// WithDoubleClickDistance sets how far in pixels the cursor may move between the
// two presses of a double click.
//
// Parameters:
//   - px: the maximum distance, default 4
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithDoubleClickDistance(px float64) TrackerBuilderOption {
	return func(t *Tracker) {
		t.doubleClickDistance = px
	}
}

// WithClock replaces time.Now, for tests.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithClock(now func() time.Time) TrackerBuilderOption {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}
