package event

import (
	"math"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
)

// Tracker turns raw input callbacks into events. It keeps the keys and buttons
// held down, the last cursor position, and detects double clicks.
//
// The state carried by an event already reflects that event: a MousePress
// includes its button in ButtonsDown, a KeyRelease no longer includes its key.
type Tracker struct {
	sink Sink

	doubleClickTime     time.Duration
	doubleClickDistance float64
	now                 func() time.Time

	mu        sync.Mutex
	state     State
	x, y      float64
	lastPress struct {
		valid  bool
		button gpucontext.MouseButton
		at     time.Time
		x, y   float64
	}
}

// NewTracker creates a tracker emitting events to sink.
//
// Parameters:
//   - sink: the receiver of produced events
//   - options: functional options for double-click detection
//
// Returns:
//   - *Tracker: the new tracker
func NewTracker(sink Sink, options ...TrackerBuilderOption) *Tracker {
	t := &Tracker{
		sink:                sink,
		doubleClickTime:     400 * time.Millisecond,
		doubleClickDistance: 4,
		now:                 time.Now,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// State returns the current modifier state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Cursor returns the last known cursor position.
func (t *Tracker) Cursor() (x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.x, t.y
}

func (t *Tracker) KeyPress(k gpucontext.Key, mods gpucontext.Modifiers) {
	t.mu.Lock()
	t.state.Keys = t.state.Keys.With(k)
	e := KeyPress{State: t.state, Key: k, Mods: mods}
	t.mu.Unlock()
	t.emit(e)
}

func (t *Tracker) KeyRelease(k gpucontext.Key, mods gpucontext.Modifiers) {
	t.mu.Lock()
	t.state.Keys = t.state.Keys.Without(k)
	e := KeyRelease{State: t.state, Key: k, Mods: mods}
	t.mu.Unlock()
	t.emit(e)
}

func (t *Tracker) MouseMove(x, y float64) {
	t.mu.Lock()
	t.x, t.y = x, y
	e := MouseMove{State: t.state, X: x, Y: y}
	t.mu.Unlock()
	t.emit(e)
}

// MousePress emits a MousePress, followed by a MouseDoubleClick when it is the
// second press of the same button within the double-click time and distance.
func (t *Tracker) MousePress(b gpucontext.MouseButton, x, y float64) {
	now := t.now()

	t.mu.Lock()
	t.x, t.y = x, y
	t.state.Buttons = t.state.Buttons.With(b)
	press := MousePress{State: t.state, Button: b, X: x, Y: y}

	lp := &t.lastPress
	double := lp.valid && lp.button == b &&
		now.Sub(lp.at) <= t.doubleClickTime &&
		math.Hypot(x-lp.x, y-lp.y) <= t.doubleClickDistance
	if double {
		lp.valid = false
	} else {
		lp.valid, lp.button, lp.at, lp.x, lp.y = true, b, now, x, y
	}
	t.mu.Unlock()

	t.emit(press)
	if double {
		t.emit(MouseDoubleClick{State: press.State, Button: b, X: x, Y: y})
	}
}

func (t *Tracker) MouseRelease(b gpucontext.MouseButton, x, y float64) {
	t.mu.Lock()
	t.x, t.y = x, y
	t.state.Buttons = t.state.Buttons.Without(b)
	e := MouseRelease{State: t.state, Button: b, X: x, Y: y}
	t.mu.Unlock()
	t.emit(e)
}

// Scroll emits a MouseWheel at the last known cursor position.
func (t *Tracker) Scroll(dx, dy float64) {
	t.mu.Lock()
	e := MouseWheel{State: t.state, X: t.x, Y: t.y, DeltaX: dx, DeltaY: dy}
	t.mu.Unlock()
	t.emit(e)
}

func (t *Tracker) Resize(width, height int) {
	t.emit(Resize{State: t.State(), Width: width, Height: height})
}

func (t *Tracker) Paint() {
	t.emit(Paint{State: t.State()})
}

// Focus drops all held keys and buttons when focus is lost, since their
// release events will go to another window.
func (t *Tracker) Focus(focused bool) {
	if focused {
		return
	}
	t.mu.Lock()
	t.state = State{}
	t.lastPress.valid = false
	t.mu.Unlock()
}

func (t *Tracker) emit(e Event) {
	if t.sink != nil {
		t.sink.Notify(e)
	}
}

// Attach subscribes a new tracker to every input callback of src.
//
// Parameters:
//   - src: the window event source
//   - sink: the receiver of produced events
//   - options: tracker options
//
// Returns:
//   - *Tracker: the tracker fed by src
func Attach(src gpucontext.EventSource, sink Sink, options ...TrackerBuilderOption) *Tracker {
	t := NewTracker(sink, options...)
	src.OnKeyPress(t.KeyPress)
	src.OnKeyRelease(t.KeyRelease)
	src.OnMouseMove(t.MouseMove)
	src.OnMousePress(t.MousePress)
	src.OnMouseRelease(t.MouseRelease)
	src.OnScroll(t.Scroll)
	src.OnResize(t.Resize)
	src.OnFocus(t.Focus)
	return t
}
