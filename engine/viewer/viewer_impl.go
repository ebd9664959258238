package viewer

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/cull"
	"github.com/Carmen-Shannon/oxy-view/engine/draw"
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/event"
	"github.com/Carmen-Shannon/oxy-view/engine/jobs"
	"github.com/Carmen-Shannon/oxy-view/engine/listener"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
	"github.com/go-gl/mathgl/mgl32"
)

// Boxes let interface values live in atomic pointers; a nil box reads as nil.
type (
	sceneBox    struct{ node scene.Node }
	providerBox struct{ p camera.Provider }
	contextBox  struct{ ctx RenderingContext }
)

type viewerImpl struct {
	scene       atomic.Pointer[sceneBox]
	nav         atomic.Pointer[providerBox]
	proj        atomic.Pointer[providerBox]
	context     atomic.Pointer[contextBox]
	viewport    atomic.Pointer[common.Viewport]
	timeAllowed atomic.Int64
	observer    atomic.Pointer[func(PassStats)]

	updateMu     sync.Mutex
	updateStages []visitor.Visitor
	cullMu       sync.Mutex
	cullStages   []cull.Visitor
	drawMu       sync.Mutex
	drawStages   []draw.Method

	lists     *drawlists.DrawLists
	listeners *listener.Table

	queue       JobQueue
	ownedQueue  jobs.Queue
	workers     int
	maxInFlight int
	factory     draw.Factory

	// passMu serialises the stage part of concurrent passes: stage instances and
	// the draw lists are shared by every pass.
	passMu sync.Mutex

	inFlightMu sync.Mutex
	inFlight   map[*jobs.Job]struct{}
	closed     bool

	paintEntry  listener.Entry
	resizeEntry listener.Entry
}

var _ Viewer = &viewerImpl{}

// NewViewer creates a viewer. Unless overridden it has an identity Fixed
// navigation provider, a default Perspective projection, a 100ms frame budget,
// one FrustumCull stage, a draw stage from the best registered draw plugin (if
// any), and its own job queue.
//
// Parameters:
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the new viewer
func NewViewer(options ...ViewerBuilderOption) Viewer {
	v := &viewerImpl{
		lists:       drawlists.New(),
		listeners:   listener.NewTable(),
		workers:     2,
		maxInFlight: 2,
		inFlight:    make(map[*jobs.Job]struct{}),
	}
	v.nav.Store(&providerBox{p: camera.NewFixed(mgl32.Ident4())})
	v.proj.Store(&providerBox{p: camera.NewPerspective()})
	v.viewport.Store(&common.Viewport{})
	v.timeAllowed.Store(int64(100 * time.Millisecond))
	v.cullStages = []cull.Visitor{cull.NewFrustumCull()}

	for _, option := range options {
		option(v)
	}

	if v.queue == nil {
		v.ownedQueue = jobs.NewQueue(jobs.WithWorkers(v.workers))
		v.queue = v.ownedQueue
	}

	v.drawMu.Lock()
	if v.drawStages == nil {
		f := common.Coalesce(v.factory, draw.Best())
		if f != nil {
			if m := f.CreateDrawMethod(v.RenderingContext()); m != nil {
				v.drawStages = []draw.Method{m}
			}
		} else {
			common.Logger().Debug("viewer: no draw plugin, draw pipeline is empty")
		}
	}
	v.drawMu.Unlock()

	v.paintEntry = listener.Entry{Handler: listener.NewHandler(v.onPaint)}
	v.resizeEntry = listener.Entry{Handler: listener.NewHandler(v.onResize)}
	v.listeners.Add(event.TypePaint, v.paintEntry)
	v.listeners.Add(event.TypeResize, v.resizeEntry)
	return v
}

func (v *viewerImpl) Scene() scene.Node {
	if b := v.scene.Load(); b != nil {
		return b.node
	}
	return nil
}

func (v *viewerImpl) SetScene(root scene.Node) {
	v.scene.Store(&sceneBox{node: root})
}

func (v *viewerImpl) NodeGet() scene.Node {
	return v.Scene()
}

func (v *viewerImpl) NavigationProvider() camera.Provider {
	if b := v.nav.Load(); b != nil {
		return b.p
	}
	return nil
}

func (v *viewerImpl) SetNavigationProvider(p camera.Provider) {
	v.nav.Store(&providerBox{p: p})
}

func (v *viewerImpl) ProjectionProvider() camera.Provider {
	if b := v.proj.Load(); b != nil {
		return b.p
	}
	return nil
}

func (v *viewerImpl) SetProjectionProvider(p camera.Provider) {
	v.proj.Store(&providerBox{p: p})
}

func (v *viewerImpl) TimeAllowed() time.Duration {
	return time.Duration(v.timeAllowed.Load())
}

func (v *viewerImpl) SetTimeAllowed(d time.Duration) {
	if d < 0 {
		panic("viewer: negative time budget")
	}
	v.timeAllowed.Store(int64(d))
}

func (v *viewerImpl) Viewport() common.Viewport {
	return *v.viewport.Load()
}

func (v *viewerImpl) setViewport(vp common.Viewport) {
	v.viewport.Store(&vp)
}

func (v *viewerImpl) RenderingContext() RenderingContext {
	if b := v.context.Load(); b != nil {
		return b.ctx
	}
	return nil
}

func (v *viewerImpl) SetRenderingContext(ctx RenderingContext) {
	v.context.Store(&contextBox{ctx: ctx})
}

func (v *viewerImpl) UpdatePipeline() []visitor.Visitor {
	v.updateMu.Lock()
	defer v.updateMu.Unlock()
	return slices.Clone(v.updateStages)
}

func (v *viewerImpl) SetUpdatePipeline(stages []visitor.Visitor) {
	stages = dropNil(stages)
	v.updateMu.Lock()
	defer v.updateMu.Unlock()
	v.updateStages = stages
}

func (v *viewerImpl) CullPipeline() []cull.Visitor {
	v.cullMu.Lock()
	defer v.cullMu.Unlock()
	return slices.Clone(v.cullStages)
}

func (v *viewerImpl) SetCullPipeline(stages []cull.Visitor) {
	stages = dropNil(stages)
	v.cullMu.Lock()
	defer v.cullMu.Unlock()
	v.cullStages = stages
}

func (v *viewerImpl) DrawPipeline() []draw.Method {
	v.drawMu.Lock()
	defer v.drawMu.Unlock()
	return slices.Clone(v.drawStages)
}

func (v *viewerImpl) SetDrawPipeline(stages []draw.Method) {
	stages = dropNil(stages)
	v.drawMu.Lock()
	defer v.drawMu.Unlock()
	v.drawStages = stages
}

func (v *viewerImpl) DrawLists() *drawlists.DrawLists {
	return v.lists
}

func (v *viewerImpl) ListenerAdd(t event.Type, e listener.Entry) {
	v.listeners.Add(t, e)
}

func (v *viewerImpl) ListenerRemove(t event.Type, e listener.Entry) bool {
	return v.listeners.Remove(t, e)
}

func (v *viewerImpl) ListenerSet(t event.Type, entries []listener.Entry) {
	v.listeners.Set(t, entries)
}

func (v *viewerImpl) ListenerGet(t event.Type) []listener.Entry {
	return v.listeners.Get(t)
}

func (v *viewerImpl) ListenerClear(t event.Type) {
	v.listeners.Clear(t)
}

// Notify dispatches e to the listeners of its type on the calling goroutine.
func (v *viewerImpl) Notify(e event.Event) {
	v.listeners.Notify(e)
}

func (v *viewerImpl) LookAtAll() {
	la, ok := v.NavigationProvider().(camera.LookAtAller)
	if !ok {
		common.Logger().Debug("viewer: navigation provider cannot look at all")
		return
	}
	la.LookAtAll(v)
}

func (v *viewerImpl) SetPassObserver(fn func(s PassStats)) {
	if fn == nil {
		v.observer.Store(nil)
		return
	}
	v.observer.Store(&fn)
}

func (v *viewerImpl) Close() {
	v.inFlightMu.Lock()
	v.closed = true
	v.inFlightMu.Unlock()

	v.RenderJobsCancel()
	if v.ownedQueue != nil {
		v.ownedQueue.Close()
	}

	// Passes still running hold passMu; GPU-backed methods are released after them.
	v.passMu.Lock()
	defer v.passMu.Unlock()
	for _, m := range v.DrawPipeline() {
		if r, ok := m.(releaser); ok {
			r.Release()
		}
	}
}

// releaser is implemented by draw methods holding GPU resources.
type releaser interface {
	Release()
}

// dropNil returns a copy of stages without nil entries.
func dropNil[T comparable](stages []T) []T {
	var zero T
	out := make([]T, 0, len(stages))
	for _, s := range stages {
		if s != zero {
			out = append(out, s)
		}
	}
	return out
}
