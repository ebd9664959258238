package draw

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
)

// Call is one element drawn by a Recorder.
type Call struct {
	Key     int
	Element *drawlists.Element
}

// Recorder is a headless draw method. It walks the draw lists in ascending key
// order and records every element instead of issuing graphics calls.
type Recorder struct {
	visitor.Stage

	lists  *drawlists.DrawLists
	onDraw func(c Call)

	mu    sync.Mutex
	calls []Call
	draws int
}

var _ Method = &Recorder{}

// NewRecorder creates a recording draw method.
//
// Parameters:
//   - options: functional options for the recorder
//
// Returns:
//   - *Recorder: the new recorder
func NewRecorder(options ...RecorderBuilderOption) *Recorder {
	r := &Recorder{Stage: visitor.NewStage()}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// NewRecorderFactory returns a factory creating a fresh Recorder per call.
//
// Parameters:
//   - options: options applied to every created recorder
//
// Returns:
//   - Factory: the recorder factory
func NewRecorderFactory(options ...RecorderBuilderOption) Factory {
	return FactoryFunc(func(any) Method {
		return NewRecorder(options...)
	})
}

func (r *Recorder) SetDrawLists(d *drawlists.DrawLists) { r.lists = d }
func (r *Recorder) DrawLists() *drawlists.DrawLists     { return r.lists }

// Reset drops the calls of the previous frame.
func (r *Recorder) Reset() {
	r.Stage.Reset()
	r.mu.Lock()
	r.calls = r.calls[:0]
	r.mu.Unlock()
}

func (r *Recorder) Draw() error {
	r.mu.Lock()
	r.draws++
	r.mu.Unlock()

	if r.lists == nil {
		return nil
	}

	var keys []int
	var elems []*drawlists.Element
	r.lists.Keys(&keys)
	for _, key := range keys {
		elems = elems[:0]
		r.lists.Elements(key, &elems)
		for _, e := range elems {
			if err := r.CheckDeadline(); err != nil {
				common.Logger().Debug("draw: recorder stopped", "key", key, "err", err)
				return err
			}
			c := Call{Key: key, Element: e}
			r.mu.Lock()
			r.calls = append(r.calls, c)
			r.mu.Unlock()
			if r.onDraw != nil {
				r.onDraw(c)
			}
		}
	}
	return nil
}

// Calls returns a copy of the calls recorded since the last Reset.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Draws returns how many times Draw was called over the recorder's lifetime.
func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}
