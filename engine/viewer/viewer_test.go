package viewer

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/cull"
	"github.com/Carmen-Shannon/oxy-view/engine/draw"
	"github.com/Carmen-Shannon/oxy-view/engine/event"
	"github.com/Carmen-Shannon/oxy-view/engine/jobs"
	"github.com/Carmen-Shannon/oxy-view/engine/listener"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
)

func TestRenderPassSwapsOnce(t *testing.T) {
	q := newTestQueue(t)
	ctx := &fakeContext{}
	rec := draw.NewRecorder()
	root := scene.NewGroup("root",
		unitShape("near", 0, 0, 0, 2),
		unitShape("other", 0, 1, 0, 1),
		unitShape("hidden", 0, 0, 50, 1),
	)
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(ctx),
		WithScene(root),
		WithNavigationProvider(camera.NewFixed(mgl32.Translate3D(0, 0, -10))),
		WithDrawPipeline(rec),
		WithViewport(common.Viewport{Width: 100, Height: 100}),
	)
	defer v.Close()

	job := v.RenderJobAdd(nil, nil, 0)
	if job == nil {
		t.Fatal("RenderJobAdd() = nil")
	}
	q.Wait(job)

	if got := ctx.current.Load(); got != 1 {
		t.Errorf("MakeContextCurrent calls = %d, want 1", got)
	}
	if got := ctx.swaps.Load(); got != 1 {
		t.Errorf("SwapRenderingBuffers calls = %d, want 1", got)
	}
	if got := v.RenderJobCount(); got != 0 {
		t.Errorf("RenderJobCount() = %d, want 0", got)
	}

	calls := rec.Calls()
	if len(calls) != 2 {
		t.Fatalf("recorded %d draw calls, want 2", len(calls))
	}
	if calls[0].Element.Shape.Name() != "other" || calls[1].Element.Shape.Name() != "near" {
		t.Errorf("draw order = [%s %s], want [other near]", calls[0].Element.Shape.Name(), calls[1].Element.Shape.Name())
	}
}

func TestRenderPassWithoutContext(t *testing.T) {
	q := newTestQueue(t)
	spy := &spyCull{}
	v := NewViewer(
		WithJobQueue(q),
		WithScene(unitShape("s", 0, 0, 0, 0)),
		WithCullPipeline(spy),
		WithDrawPipeline(),
	)
	defer v.Close()

	q.Wait(v.RenderJobAdd(nil, nil, 0))
	if _, _, _, _, visits := spy.snapshot(); visits != 0 {
		t.Errorf("cull visited %d nodes without a context, want 0", visits)
	}
	if got := v.RenderJobCount(); got != 0 {
		t.Errorf("RenderJobCount() = %d, want 0", got)
	}
}

func TestEmptySceneScenario(t *testing.T) {
	q := newTestQueue(t)
	ctx := &fakeContext{}
	rec := draw.NewRecorder()
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(ctx),
		WithScene(scene.NewGroup("empty")),
		WithNavigationProvider(camera.Identity{}),
		WithDrawPipeline(rec),
		WithViewport(common.Viewport{Width: 100, Height: 100}),
	)
	defer v.Close()

	q.Wait(v.RenderJobAdd(nil, nil, 0))

	if got := v.DrawLists().Len(); got != 0 {
		t.Errorf("DrawLists().Len() = %d, want 0", got)
	}
	if got := len(rec.Calls()); got != 0 {
		t.Errorf("draw calls = %d, want 0", got)
	}
	if got := rec.Draws(); got != 1 {
		t.Errorf("Draws() = %d, want 1", got)
	}
	if got := ctx.swaps.Load(); got != 1 {
		t.Errorf("swaps = %d, want 1", got)
	}
}

func TestResizeScenario(t *testing.T) {
	proj := camera.NewPerspective()
	v := NewViewer(WithProjectionProvider(proj), WithDrawPipeline())
	defer v.Close()

	v.Notify(event.Resize{Width: 200, Height: 100})
	if got, want := v.Viewport(), (common.Viewport{Width: 200, Height: 100}); got != want {
		t.Errorf("Viewport() = %+v, want %+v", got, want)
	}
	if got := proj.Aspect(); got != 2 {
		t.Errorf("Aspect() = %v, want 2", got)
	}

	v.Notify(event.Resize{Width: 0, Height: 50})
	v.Notify(event.Resize{Width: 50, Height: -1})
	if got := v.Viewport(); got.Width != 200 || got.Height != 100 {
		t.Errorf("Viewport() after non-positive resize = %+v, want unchanged", got)
	}
}

func TestResizeWithoutNotifier(t *testing.T) {
	v := NewViewer(WithProjectionProvider(camera.Identity{}), WithDrawPipeline())
	defer v.Close()

	v.Notify(event.Resize{Width: 30, Height: 20})
	if got := v.Viewport(); got.Width != 30 || got.Height != 20 {
		t.Errorf("Viewport() = %+v, want 30x20", got)
	}
}

func TestPaintAdmissionCap(t *testing.T) {
	q := newTestQueue(t)
	gate := newGateCull()
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(&fakeContext{}),
		WithScene(unitShape("s", 0, 0, 0, 0)),
		WithCullPipeline(gate),
		WithDrawPipeline(),
		WithTimeAllowed(0),
	)
	defer v.Close()

	v.Notify(event.Paint{})
	<-gate.started
	v.Notify(event.Paint{})
	if got := v.RenderJobCount(); got != 2 {
		t.Fatalf("RenderJobCount() after two paints = %d, want 2", got)
	}

	for range 5 {
		v.Notify(event.Paint{})
	}
	if got := v.RenderJobCount(); got != 2 {
		t.Errorf("RenderJobCount() after extra paints = %d, want 2", got)
	}

	gate.open()
	eventually(t, "passes to finish", func() bool { return v.RenderJobCount() == 0 })
}

func TestRenderJobAddIgnoresCap(t *testing.T) {
	q := newTestQueue(t)
	gate := newGateCull()
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(&fakeContext{}),
		WithScene(unitShape("s", 0, 0, 0, 0)),
		WithCullPipeline(gate),
		WithDrawPipeline(),
		WithTimeAllowed(0),
	)
	defer v.Close()
	defer gate.open()

	for range 3 {
		if v.RenderJobAdd(nil, nil, 0) == nil {
			t.Fatal("RenderJobAdd() = nil")
		}
	}
	if got := v.RenderJobCount(); got != 3 {
		t.Errorf("RenderJobCount() = %d, want 3", got)
	}
}

func TestRenderJobCancel(t *testing.T) {
	q := newTestQueue(t)
	ctx := &fakeContext{}
	gate := newGateCull()
	rec := draw.NewRecorder()

	var mu sync.Mutex
	var stats []PassStats
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(ctx),
		WithScene(unitShape("s", 0, 0, 0, 0)),
		WithCullPipeline(gate),
		WithDrawPipeline(rec),
		WithTimeAllowed(0),
	)
	defer v.Close()
	v.SetPassObserver(func(s PassStats) {
		mu.Lock()
		stats = append(stats, s)
		mu.Unlock()
	})

	job := v.RenderJobAdd(nil, nil, 0)
	<-gate.started
	v.RenderJobCancel(job)

	select {
	case <-job.Done():
	default:
		t.Fatal("RenderJobCancel() returned before the pass finished")
	}
	if got := v.RenderJobCount(); got != 0 {
		t.Errorf("RenderJobCount() = %d, want 0", got)
	}
	if got := ctx.swaps.Load(); got != 1 {
		t.Errorf("swaps = %d, want 1", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(stats) != 1 {
		t.Fatalf("observed %d passes, want 1", len(stats))
	}
	if !stats[0].Cancelled || !stats[0].TimedOut || !stats[0].Swapped {
		t.Errorf("stats = %+v, want cancelled, timed out and swapped", stats[0])
	}
}

func TestRenderJobsCancel(t *testing.T) {
	q := newTestQueue(t)
	gate := newGateCull()
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(&fakeContext{}),
		WithScene(unitShape("s", 0, 0, 0, 0)),
		WithCullPipeline(gate),
		WithDrawPipeline(),
		WithTimeAllowed(0),
	)
	defer v.Close()

	a := v.RenderJobAdd(nil, nil, 0)
	b := v.RenderJobAdd(nil, nil, 0)
	<-gate.started

	v.RenderJobsCancel()
	for _, job := range []*jobs.Job{a, b} {
		select {
		case <-job.Done():
		default:
			t.Error("RenderJobsCancel() returned before a job finished")
		}
	}
	if got := v.RenderJobCount(); got != 0 {
		t.Errorf("RenderJobCount() = %d, want 0", got)
	}
	v.RenderJobCancel(nil)
}

func TestTimedOutStageStillDraws(t *testing.T) {
	q := newTestQueue(t)
	ctx := &fakeContext{}
	gate := newGateCull()
	rec := draw.NewRecorder()
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(ctx),
		WithScene(unitShape("s", 0, 0, 0, 0)),
		WithCullPipeline(gate),
		WithDrawPipeline(rec),
	)
	defer v.Close()

	q.Wait(v.RenderJobAdd(nil, nil, 20*time.Millisecond))

	if got := rec.Draws(); got != 1 {
		t.Errorf("Draws() = %d, want 1 after a cull timeout", got)
	}
	if got := ctx.swaps.Load(); got != 1 {
		t.Errorf("swaps = %d, want 1", got)
	}
}

func TestPanickingStage(t *testing.T) {
	q := newTestQueue(t)
	ctx := &fakeContext{}
	rec := draw.NewRecorder()
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(ctx),
		WithScene(unitShape("s", 0, 0, 0, 0)),
		WithCullPipeline(&spyCull{panics: true}),
		WithDrawPipeline(rec),
	)
	defer v.Close()

	q.Wait(v.RenderJobAdd(nil, nil, 0))
	if got := rec.Draws(); got != 1 {
		t.Errorf("Draws() = %d, want 1 after a panicking cull stage", got)
	}
	if got := ctx.swaps.Load(); got != 1 {
		t.Errorf("swaps = %d, want 1", got)
	}
	if got := v.RenderJobCount(); got != 0 {
		t.Errorf("RenderJobCount() = %d, want 0", got)
	}
}

func TestStageConfiguration(t *testing.T) {
	q := newTestQueue(t)
	spyA, spyB := &spyCull{}, &spyCull{}
	nav := mgl32.Translate3D(1, 2, 3)
	proj := mgl32.Scale3D(2, 2, 2)
	vp := common.Viewport{Width: 64, Height: 32}
	v := NewViewer(
		WithJobQueue(q),
		WithRenderingContext(&fakeContext{}),
		WithScene(unitShape("s", 0, 0, 0, 0)),
		WithCullPipeline(spyA, spyB),
		WithDrawPipeline(),
		WithViewport(vp),
		WithNavigationProvider(camera.NewFixed(nav)),
		WithProjectionProvider(camera.NewFixed(proj)),
	)
	defer v.Close()

	q.Wait(v.RenderJobAdd(nil, nil, 400*time.Millisecond))
	gotNav, gotProj, gotVP, budget, visits := spyA.snapshot()
	if visits != 1 {
		t.Fatalf("visits = %d, want 1", visits)
	}
	if gotNav != nav || gotProj != proj || gotVP != vp {
		t.Errorf("stage got (%v, %v, %+v), want the viewer's configuration", gotNav, gotProj, gotVP)
	}
	// Two cull stages share half of 400ms.
	if budget <= 0 || budget > 100*time.Millisecond {
		t.Errorf("stage budget = %v, want at most 100ms", budget)
	}

	override := mgl32.Translate3D(-1, 0, 0)
	q.Wait(v.RenderJobAdd(camera.NewFixed(override), camera.Identity{}, 0))
	gotNav, gotProj, _, _, _ = spyB.snapshot()
	if gotNav != override || gotProj != mgl32.Ident4() {
		t.Errorf("overrides ignored: nav %v, proj %v", gotNav, gotProj)
	}

	v.SetNavigationProvider(nil)
	q.Wait(v.RenderJobAdd(nil, nil, 0))
	if gotNav, _, _, _, _ = spyB.snapshot(); gotNav != mgl32.Ident4() {
		t.Errorf("nav without provider = %v, want identity", gotNav)
	}
}

func TestStageBudget(t *testing.T) {
	tests := []struct {
		total time.Duration
		n     int
		want  time.Duration
	}{
		{100 * time.Millisecond, 1, 50 * time.Millisecond},
		{100 * time.Millisecond, 2, 25 * time.Millisecond},
		{100 * time.Millisecond, 0, 0},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := stageBudget(tt.total, tt.n); got != tt.want {
			t.Errorf("stageBudget(%v, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
	}
}

func TestLookAtAll(t *testing.T) {
	nav := camera.NewFixed(mgl32.Ident4())
	v := NewViewer(WithNavigationProvider(nav), WithDrawPipeline())
	defer v.Close()

	v.LookAtAll()
	if nav.Matrix() != mgl32.Ident4() {
		t.Error("LookAtAll() without scene changed the navigation matrix")
	}

	v.SetScene(unitShape("s", 0, 0, 0, 0))
	v.LookAtAll()
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if got := nav.Matrix(); !got.ApproxEqual(want) {
		t.Errorf("Matrix() = %v, want %v", got, want)
	}

	v.SetNavigationProvider(camera.Identity{})
	v.LookAtAll()
}

func TestDefaultListeners(t *testing.T) {
	v := NewViewer(WithDrawPipeline())
	defer v.Close()

	for _, typ := range []event.Type{event.TypePaint, event.TypeResize} {
		entries := v.ListenerGet(typ)
		if len(entries) != 1 || entries[0].Priority != 0 {
			t.Errorf("ListenerGet(%v) = %+v, want one entry at priority 0", typ, entries)
		}
	}

	v.ListenerClear(event.TypeResize)
	v.Notify(event.Resize{Width: 10, Height: 10})
	if got := v.Viewport(); !got.Empty() {
		t.Errorf("Viewport() = %+v after clearing resize listeners, want empty", got)
	}
}

func TestListenerAPI(t *testing.T) {
	v := NewViewer(WithDrawPipeline())
	defer v.Close()

	var got []int
	mk := func(p int) listener.Entry {
		return listener.Entry{Priority: p, Handler: listener.NewHandler(func(event.Event) { got = append(got, p) })}
	}
	high, low := mk(5), mk(-5)
	v.ListenerAdd(event.TypeKeyPress, high)
	v.ListenerAdd(event.TypeKeyPress, low)
	v.Notify(event.KeyPress{Key: gpucontext.KeyA})
	if len(got) != 2 || got[0] != -5 || got[1] != 5 {
		t.Errorf("dispatch order = %v, want [-5 5]", got)
	}

	if !v.ListenerRemove(event.TypeKeyPress, low) {
		t.Error("ListenerRemove() = false")
	}
	v.ListenerSet(event.TypeKeyPress, nil)
	if n := len(v.ListenerGet(event.TypeKeyPress)); n != 0 {
		t.Errorf("ListenerGet() after empty Set has %d entries", n)
	}
}

func TestPipelineAccessors(t *testing.T) {
	v := NewViewer()
	defer v.Close()

	if got := len(v.CullPipeline()); got != 1 {
		t.Fatalf("default cull pipeline has %d stages, want 1", got)
	}
	if _, ok := v.CullPipeline()[0].(*cull.FrustumCull); !ok {
		t.Error("default cull stage is not a FrustumCull")
	}

	rec := draw.NewRecorder()
	v.SetDrawPipeline([]draw.Method{nil, rec})
	stages := v.DrawPipeline()
	if len(stages) != 1 || stages[0] != rec {
		t.Errorf("DrawPipeline() = %v, want [rec]", stages)
	}
	stages[0] = nil
	if v.DrawPipeline()[0] != rec {
		t.Error("mutating DrawPipeline() result changed the viewer")
	}

	v.SetUpdatePipeline(nil)
	if got := len(v.UpdatePipeline()); got != 0 {
		t.Errorf("UpdatePipeline() len = %d, want 0", got)
	}
}

func TestDrawMethodFactory(t *testing.T) {
	v := NewViewer(WithDrawMethodFactory(draw.NewRecorderFactory()))
	defer v.Close()
	stages := v.DrawPipeline()
	if len(stages) != 1 {
		t.Fatalf("DrawPipeline() len = %d, want 1", len(stages))
	}
	if _, ok := stages[0].(*draw.Recorder); !ok {
		t.Errorf("draw stage is %T, want *draw.Recorder", stages[0])
	}
}

func TestTimeAllowed(t *testing.T) {
	v := NewViewer(WithDrawPipeline())
	defer v.Close()
	if got := v.TimeAllowed(); got != 100*time.Millisecond {
		t.Errorf("TimeAllowed() = %v, want 100ms", got)
	}
	v.SetTimeAllowed(time.Second)
	if got := v.TimeAllowed(); got != time.Second {
		t.Errorf("TimeAllowed() = %v, want 1s", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("SetTimeAllowed(-1) did not panic")
		}
	}()
	v.SetTimeAllowed(-1)
}

func TestCloseRefusesJobs(t *testing.T) {
	v := NewViewer(WithRenderingContext(&fakeContext{}), WithDrawPipeline())
	v.Close()
	if job := v.RenderJobAdd(nil, nil, 0); job != nil {
		t.Error("RenderJobAdd() after Close returned a job")
	}
	v.Notify(event.Paint{})
	if got := v.RenderJobCount(); got != 0 {
		t.Errorf("RenderJobCount() = %d, want 0", got)
	}
}

func TestAttachTrackball(t *testing.T) {
	v := NewViewer(WithDrawPipeline())
	defer v.Close()

	tb := camera.NewTrackball(camera.WithRotateSensitivity(0.01))
	detach := v.AttachTrackball(tb)
	if v.NavigationProvider() != camera.Provider(tb) {
		t.Fatal("AttachTrackball() did not install the trackball")
	}

	left := event.Buttons(gpucontext.MouseButtonLeft)
	v.Notify(event.MousePress{State: event.State{Buttons: left}, Button: gpucontext.MouseButtonLeft})
	v.Notify(event.MouseMove{State: event.State{Buttons: left}, X: 10})
	v.Notify(event.MouseRelease{Button: gpucontext.MouseButtonLeft, X: 10})

	if got := tb.Azimuth(); !mgl32.FloatEqual(got, -0.1) {
		t.Errorf("Azimuth() = %v, want -0.1", got)
	}
	if tb.Dragging() {
		t.Error("Dragging() = true after release")
	}

	before := tb.Radius()
	v.Notify(event.MouseWheel{DeltaY: -1})
	if tb.Radius() >= before {
		t.Errorf("Radius() = %v after wheel up, want below %v", tb.Radius(), before)
	}

	detach()
	if n := len(v.ListenerGet(event.TypeMouseMove)); n != 0 {
		t.Errorf("%d mouse-move listeners left after detach", n)
	}
}
