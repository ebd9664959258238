// Package viewer is the render-job orchestrator. A Viewer owns a scene, the
// update, cull and draw pipelines, the listener table events are dispatched
// through, and the set of render jobs in flight. Paint events are turned into
// asynchronous, cancellable, deadline-bounded render passes on a job queue so
// the event goroutine never blocks on rendering.
package viewer

import (
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
)

// RenderingContext is the drawable a render pass binds to its worker thread.
type RenderingContext interface {
	// MakeContextCurrent binds the context to the calling OS thread.
	MakeContextCurrent()

	// SwapRenderingBuffers presents the frame and releases the context.
	SwapRenderingBuffers()
}

// JobQueue runs render passes in the background. jobs.Queue implements it.
type JobQueue interface {
	Add(work func(job *jobs.Job)) *jobs.Job
	Remove(job *jobs.Job) bool
	Wait(job *jobs.Job)
}

// PassStats describes one finished render pass.
type PassStats struct {
	Job     uint64
	Started time.Time

	Update time.Duration
	Cull   time.Duration
	Draw   time.Duration

	// Elements is the number of staged draw-list elements after culling.
	Elements int

	// TimedOut is set when any cull or draw stage ran out of budget.
	TimedOut bool

	// Cancelled is set when the job was cancelled before the pass ended.
	Cancelled bool

	// Swapped is set when buffers were swapped, i.e. a rendering context was bound.
	Swapped bool
}

// Viewer defines the interface of the render-job orchestrator.
type Viewer interface {
	event.Sink
	camera.NodeProvider

	// Scene returns the root node rendered by new passes, or nil.
	//
	// Returns:
	//   - scene.Node: the scene root
	Scene() scene.Node

	// SetScene replaces the scene. Passes already running keep the old one.
	//
	// Parameters:
	//   - root: the new scene root, nil for none
	SetScene(root scene.Node)

	// NavigationProvider returns the provider of the view matrix.
	//
	// Returns:
	//   - camera.Provider: the navigation provider, or nil
	NavigationProvider() camera.Provider

	// SetNavigationProvider replaces the provider of the view matrix.
	//
	// Parameters:
	//   - p: the new provider, nil for identity
	SetNavigationProvider(p camera.Provider)

	// ProjectionProvider returns the provider of the projection matrix.
	//
	// Returns:
	//   - camera.Provider: the projection provider, or nil
	ProjectionProvider() camera.Provider

	// SetProjectionProvider replaces the provider of the projection matrix.
	//
	// Parameters:
	//   - p: the new provider, nil for identity
	SetProjectionProvider(p camera.Provider)

	// TimeAllowed returns the default per-frame time budget.
	//
	// Returns:
	//   - time.Duration: the default budget
	TimeAllowed() time.Duration

	// SetTimeAllowed sets the default per-frame time budget. Panics on a negative budget.
	//
	// Parameters:
	//   - d: the new budget, 0 disables deadlines
	SetTimeAllowed(d time.Duration)

	// Viewport returns the drawable rectangle, updated by resize events.
	//
	// Returns:
	//   - common.Viewport: the current viewport
	Viewport() common.Viewport

	// RenderingContext returns the context passes render into, or nil.
	//
	// Returns:
	//   - RenderingContext: the rendering context
	RenderingContext() RenderingContext

	// SetRenderingContext replaces the rendering context. Without one, passes do nothing.
	//
	// Parameters:
	//   - ctx: the new context
	SetRenderingContext(ctx RenderingContext)

	// UpdatePipeline returns a copy of the update stages.
	UpdatePipeline() []visitor.Visitor
	// SetUpdatePipeline replaces the update stages. Nil stages are dropped.
	SetUpdatePipeline(stages []visitor.Visitor)
	// CullPipeline returns a copy of the cull stages.
	CullPipeline() []cull.Visitor
	// SetCullPipeline replaces the cull stages. Nil stages are dropped.
	SetCullPipeline(stages []cull.Visitor)
	// DrawPipeline returns a copy of the draw stages.
	DrawPipeline() []draw.Method
	// SetDrawPipeline replaces the draw stages. Nil stages are dropped.
	SetDrawPipeline(stages []draw.Method)

	// DrawLists returns the lists shared by every cull and draw stage.
	//
	// Returns:
	//   - *drawlists.DrawLists: the shared draw lists
	DrawLists() *drawlists.DrawLists

	// ListenerAdd registers an entry for events of type t. Entries without a handler are ignored.
	ListenerAdd(t event.Type, e listener.Entry)
	// ListenerRemove unregisters an entry equal to e.
	ListenerRemove(t event.Type, e listener.Entry) bool
	// ListenerSet replaces every entry for t.
	ListenerSet(t event.Type, entries []listener.Entry)
	// ListenerGet returns the entries for t in dispatch order.
	ListenerGet(t event.Type) []listener.Entry
	// ListenerClear drops every entry for t, the default paint and resize listeners included.
	ListenerClear(t event.Type)

	// RenderJobAdd submits a render pass and returns immediately.
	//
	// Parameters:
	//   - nav: navigation override, nil for the viewer's provider
	//   - proj: projection override, nil for the viewer's provider
	//   - timeAllowed: frame budget, 0 for the viewer default
	//
	// Returns:
	//   - *jobs.Job: the job, or nil when rendering is unavailable
	RenderJobAdd(nav, proj camera.Provider, timeAllowed time.Duration) *jobs.Job

	// RenderJobCancel cancels a job and waits until it has stopped. Every step is
	// attempted even if another fails. Must not be called from inside a pass.
	//
	// Parameters:
	//   - job: the job to cancel, nil is ignored
	RenderJobCancel(job *jobs.Job)

	// RenderJobsCancel cancels every in-flight job and waits for them.
	RenderJobsCancel()

	// RenderJobCount returns the number of render jobs in flight.
	//
	// Returns:
	//   - int: the in-flight count
	RenderJobCount() int

	// LookAtAll frames the whole scene if the navigation provider can.
	LookAtAll()

	// AttachTrackball makes tb the navigation provider and drives it from mouse
	// events: left drag rotates, right drag pans, the wheel zooms.
	//
	// Parameters:
	//   - tb: the trackball to drive
	//
	// Returns:
	//   - func(): removes the listeners again
	AttachTrackball(tb camera.Trackball) func()

	// SetPassObserver sets a function called with the stats of every finished pass,
	// on the pass goroutine.
	//
	// Parameters:
	//   - fn: the observer, nil to remove it
	SetPassObserver(fn func(s PassStats))

	// Close cancels every job and stops a queue the viewer created itself.
	// Further render jobs are refused. Draw methods with a Release method are
	// released once no pass is running.
	Close()
}
