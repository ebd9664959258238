package viewer

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/cull"
	"github.com/Carmen-Shannon/oxy-view/engine/draw"
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/jobs"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeContext struct {
	current atomic.Int32
	swaps   atomic.Int32
}

func (c *fakeContext) MakeContextCurrent()   { c.current.Add(1) }
func (c *fakeContext) SwapRenderingBuffers() { c.swaps.Add(1) }

// gateCull blocks every visit until released or until its deadline passes.
type gateCull struct {
	visitor.Stage
	lists *drawlists.DrawLists

	started chan struct{}
	release chan struct{}
	once    sync.Once
}

var _ cull.Visitor = &gateCull{}

func newGateCull() *gateCull {
	return &gateCull{
		Stage:   visitor.NewStage(),
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (g *gateCull) open() {
	g.once.Do(func() { close(g.release) })
}

func (g *gateCull) SetDrawLists(d *drawlists.DrawLists) { g.lists = d }
func (g *gateCull) DrawLists() *drawlists.DrawLists     { return g.lists }

func (g *gateCull) VisitGroup(*scene.Group) error         { return g.wait() }
func (g *gateCull) VisitTransform(*scene.Transform) error { return g.wait() }
func (g *gateCull) VisitShape(*scene.Shape) error         { return g.wait() }

func (g *gateCull) wait() error {
	select {
	case g.started <- struct{}{}:
	default:
	}
	for {
		select {
		case <-g.release:
			return nil
		case <-time.After(time.Millisecond):
			if err := g.CheckDeadline(); err != nil {
				return err
			}
		}
	}
}

// spyCull records the matrices and deadline it was configured with.
type spyCull struct {
	visitor.Stage
	lists *drawlists.DrawLists

	mu       sync.Mutex
	nav      mgl32.Mat4
	proj     mgl32.Mat4
	viewport common.Viewport
	budget   time.Duration
	visits   int
	panics   bool
}

var _ cull.Visitor = &spyCull{}

func (s *spyCull) SetDrawLists(d *drawlists.DrawLists) { s.lists = d }
func (s *spyCull) DrawLists() *drawlists.DrawLists     { return s.lists }

func (s *spyCull) VisitGroup(*scene.Group) error         { return s.visit() }
func (s *spyCull) VisitTransform(*scene.Transform) error { return s.visit() }
func (s *spyCull) VisitShape(*scene.Shape) error         { return s.visit() }

func (s *spyCull) visit() error {
	s.mu.Lock()
	s.nav = s.NavigationMatrix()
	s.proj = s.ProjectionMatrix()
	s.viewport = s.Viewport()
	if d := s.Deadline(); !d.IsZero() {
		s.budget = time.Until(d)
	}
	s.visits++
	panics := s.panics
	s.mu.Unlock()
	if panics {
		panic("spy cull")
	}
	return nil
}

func (s *spyCull) snapshot() (nav, proj mgl32.Mat4, vp common.Viewport, budget time.Duration, visits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav, s.proj, s.viewport, s.budget, s.visits
}

func newTestQueue(t *testing.T) jobs.Queue {
	t.Helper()
	q := jobs.NewQueue(jobs.WithWorkers(2), jobs.WithQueueSize(16))
	t.Cleanup(q.Close)
	return q
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func unitShape(name string, x, y, z float32, key int) *scene.Shape {
	return scene.NewShape(name, common.Sphere{Center: mgl32.Vec3{x, y, z}, Radius: 1}, scene.WithKey(key))
}

// stageLog collects events from several stages in the order they happen.
type stageLog struct {
	mu     sync.Mutex
	events []string
}

func (l *stageLog) add(e string) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *stageLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

// orderStage logs its resets and visits and, given draw lists, stages every
// shape it visits. It serves as both an update and a cull stage.
type orderStage struct {
	visitor.Stage
	name  string
	log   *stageLog
	lists *drawlists.DrawLists

	mu       sync.Mutex
	nav      mgl32.Mat4
	proj     mgl32.Mat4
	viewport common.Viewport
	job      *jobs.Job
	deadline time.Time
}

var (
	_ visitor.Visitor = &orderStage{}
	_ cull.Visitor    = &orderStage{}
)

func newOrderStage(name string, log *stageLog) *orderStage {
	return &orderStage{Stage: visitor.NewStage(), name: name, log: log}
}

func (s *orderStage) Reset() {
	s.log.add("reset " + s.name)
	s.Stage.Reset()
}

func (s *orderStage) SetDrawLists(d *drawlists.DrawLists) { s.lists = d }
func (s *orderStage) DrawLists() *drawlists.DrawLists     { return s.lists }

func (s *orderStage) VisitGroup(g *scene.Group) error {
	s.record()
	return g.Traverse(s)
}

func (s *orderStage) VisitTransform(t *scene.Transform) error {
	s.record()
	return t.Traverse(s)
}

func (s *orderStage) VisitShape(sh *scene.Shape) error {
	s.record()
	if s.lists != nil {
		s.lists.Append(sh.Key(), &drawlists.Element{Shape: sh, World: mgl32.Ident4()})
	}
	return nil
}

func (s *orderStage) record() {
	s.mu.Lock()
	s.nav = s.NavigationMatrix()
	s.proj = s.ProjectionMatrix()
	s.viewport = s.Viewport()
	s.job = s.Job()
	s.deadline = s.Deadline()
	s.mu.Unlock()
	s.log.add(s.name)
}

func (s *orderStage) config() (nav, proj mgl32.Mat4, vp common.Viewport, job *jobs.Job, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav, s.proj, s.viewport, s.job, s.deadline
}

// releasingRecorder is a draw method holding resources freed by Release.
type releasingRecorder struct {
	*draw.Recorder
	released atomic.Bool
}

func (r *releasingRecorder) Release() { r.released.Store(true) }
