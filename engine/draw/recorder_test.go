package draw

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
	"github.com/go-gl/mathgl/mgl32"
)

func element(name string) *drawlists.Element {
	return &drawlists.Element{
		Shape: scene.NewShape(name, common.Sphere{Radius: 1}),
		World: mgl32.Ident4(),
	}
}

func TestRecorderKeyOrder(t *testing.T) {
	lists := drawlists.New()
	lists.Append(5, element("e"))
	lists.Append(1, element("a"))
	lists.Append(3, element("c"))
	lists.Append(1, element("b"))

	r := NewRecorder()
	r.SetDrawLists(lists)
	if err := r.Draw(); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	want := []struct {
		key  int
		name string
	}{{1, "a"}, {1, "b"}, {3, "c"}, {5, "e"}}
	calls := r.Calls()
	if len(calls) != len(want) {
		t.Fatalf("Calls() len = %d, want %d", len(calls), len(want))
	}
	for i, w := range want {
		if calls[i].Key != w.key || calls[i].Element.Shape.Name() != w.name {
			t.Errorf("Calls()[%d] = (%d, %s), want (%d, %s)",
				i, calls[i].Key, calls[i].Element.Shape.Name(), w.key, w.name)
		}
	}
}

func TestRecorderEmpty(t *testing.T) {
	r := NewRecorder()
	if err := r.Draw(); err != nil {
		t.Fatalf("Draw() without lists = %v", err)
	}
	r.SetDrawLists(drawlists.New())
	if err := r.Draw(); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if got := len(r.Calls()); got != 0 {
		t.Errorf("Calls() len = %d, want 0", got)
	}
	if got := r.Draws(); got != 2 {
		t.Errorf("Draws() = %d, want 2", got)
	}
}

func TestRecorderDeadline(t *testing.T) {
	lists := drawlists.New()
	lists.Append(0, element("a"))
	lists.Append(0, element("b"))

	r := NewRecorder()
	r.SetDrawLists(lists)
	r.SetDeadline(time.Now().Add(-time.Millisecond))
	if err := r.Draw(); !errors.Is(err, visitor.ErrTimedOut) {
		t.Fatalf("Draw() = %v, want ErrTimedOut", err)
	}
	if got := len(r.Calls()); got != 0 {
		t.Errorf("Calls() len = %d, want 0", got)
	}
}

func TestRecorderTruncatesMidFrame(t *testing.T) {
	lists := drawlists.New()
	for _, name := range []string{"a", "b", "c"} {
		lists.Append(0, element(name))
	}

	var r *Recorder
	r = NewRecorder(WithOnDraw(func(Call) {
		r.SetDeadline(time.Now().Add(-time.Millisecond))
	}))
	r.SetDrawLists(lists)
	if err := r.Draw(); !errors.Is(err, visitor.ErrTimedOut) {
		t.Fatalf("Draw() = %v, want ErrTimedOut", err)
	}
	if got := len(r.Calls()); got != 1 {
		t.Errorf("Calls() len = %d, want 1", got)
	}
}

func TestRecorderReset(t *testing.T) {
	lists := drawlists.New()
	lists.Append(0, element("a"))

	r := NewRecorder()
	r.SetDrawLists(lists)
	_ = r.Draw()
	r.Reset()
	if got := len(r.Calls()); got != 0 {
		t.Errorf("Calls() after Reset len = %d, want 0", got)
	}
	if r.DrawLists() != lists {
		t.Error("Reset() dropped the draw lists")
	}
}
