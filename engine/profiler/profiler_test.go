package profiler

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/engine/viewer"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRecordAverages(t *testing.T) {
	p := NewProfiler()
	p.Record(viewer.PassStats{Swapped: true, Cull: 2 * time.Millisecond, Draw: 4 * time.Millisecond, Elements: 3})
	p.Record(viewer.PassStats{Swapped: true, Cull: 4 * time.Millisecond, Draw: 6 * time.Millisecond, Elements: 5, TimedOut: true})
	p.Record(viewer.PassStats{Swapped: true, Cancelled: true, TimedOut: true})
	p.Record(viewer.PassStats{})

	got := p.Snapshot()
	want := Stats{
		Passes:      3,
		TimedOut:    2,
		Cancelled:   1,
		Skipped:     1,
		AvgCull:     2 * time.Millisecond,
		AvgDraw:     10 * time.Millisecond / 3,
		AvgElements: 8.0 / 3,
	}
	if got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	if got := NewProfiler().Snapshot(); got != (Stats{}) {
		t.Errorf("Snapshot() = %+v, want zero", got)
	}
}

func TestTickInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var lines []string
	p := NewProfiler(
		WithInterval(2*time.Second),
		WithClock(clock.now),
		WithLogFunc(func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}),
	)

	for range 4 {
		p.Record(viewer.PassStats{Swapped: true})
	}
	clock.advance(time.Second)
	if p.Tick() {
		t.Fatal("Tick() = true before the interval elapsed")
	}

	clock.advance(time.Second)
	if !p.Tick() {
		t.Fatal("Tick() = false after the interval elapsed")
	}
	if len(lines) != 1 {
		t.Fatalf("logged %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "FPS: 2.00") {
		t.Errorf("report %q does not contain FPS: 2.00", lines[0])
	}
	if got := p.Snapshot(); got.Passes != 0 {
		t.Errorf("Passes after report = %d, want 0", got.Passes)
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	p := NewProfiler(WithInterval(-1), WithClock(nil), WithLogFunc(nil))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
	if p.now == nil || p.logf == nil {
		t.Error("nil clock or log function replaced the defaults")
	}
}
