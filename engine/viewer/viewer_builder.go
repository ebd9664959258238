package viewer

import (
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/cull"
	"github.com/Carmen-Shannon/oxy-view/engine/draw"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
// Use the With* functions to create options.
type ViewerBuilderOption func(v *viewerImpl)

// WithScene sets the initial scene root.
//
// Parameters:
//   - root: the scene root
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithScene(root scene.Node) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.SetScene(root)
	}
}

// WithNavigationProvider sets the provider of the view matrix.
//
// Parameters:
//   - p: the navigation provider
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithNavigationProvider(p camera.Provider) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.SetNavigationProvider(p)
	}
}

// WithProjectionProvider sets the provider of the projection matrix.
//
// Parameters:
//   - p: the projection provider
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithProjectionProvider(p camera.Provider) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.SetProjectionProvider(p)
	}
}

// WithTimeAllowed sets the default per-frame time budget. 0 disables deadlines.
//
// Parameters:
//   - d: the budget
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithTimeAllowed(d time.Duration) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.SetTimeAllowed(d)
	}
}

// WithViewport sets the viewport used until the first resize event.
//
// Parameters:
//   - vp: the initial viewport
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithViewport(vp common.Viewport) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.setViewport(vp)
	}
}

// WithRenderingContext sets the context passes render into.
//
// Parameters:
//   - ctx: the rendering context
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithRenderingContext(ctx RenderingContext) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.SetRenderingContext(ctx)
	}
}

// WithJobQueue makes the viewer use q instead of creating its own queue.
// The viewer never closes a queue it did not create.
//
// Parameters:
//   - q: the job queue
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithJobQueue(q JobQueue) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.queue = q
	}
}

// WithWorkers sets the worker count of the queue the viewer creates.
// Ignored together with WithJobQueue.
//
// Parameters:
//   - n: number of worker goroutines
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithWorkers(n int) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if n > 0 {
			v.workers = n
		}
	}
}

// WithMaxInFlight sets how many paint-triggered passes may run at once. Default 2.
//
// Parameters:
//   - n: the admission cap
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithMaxInFlight(n int) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if n > 0 {
			v.maxInFlight = n
		}
	}
}

// WithUpdatePipeline sets the update stages.
//
// Parameters:
//   - stages: the update visitors, run in order
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithUpdatePipeline(stages ...visitor.Visitor) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.SetUpdatePipeline(stages)
	}
}

// WithCullPipeline replaces the default FrustumCull stage.
//
// Parameters:
//   - stages: the cull visitors, run in order
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithCullPipeline(stages ...cull.Visitor) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.SetCullPipeline(stages)
	}
}

// WithDrawPipeline sets the draw stages; no draw plugin is consulted.
//
// Parameters:
//   - stages: the draw methods, run in order
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithDrawPipeline(stages ...draw.Method) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.SetDrawPipeline(stages)
	}
}

// WithDrawMethodFactory sets the factory the initial draw stage is created
// from, instead of the best plugin of the default draw registry.
//
// Parameters:
//   - f: the draw-method factory
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithDrawMethodFactory(f draw.Factory) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.factory = f
	}
}
