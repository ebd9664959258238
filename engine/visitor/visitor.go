// Package visitor holds the per-frame state shared by every pipeline stage
// (update visitors, cull visitors and draw methods) and the deadline contract
// they all follow.
package visitor

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/jobs"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrTimedOut is returned by a stage whose deadline passed, or whose job was
// cancelled, before it finished. The render pass treats it as "stop this stage,
// keep what was produced", never as a failure of the frame.
var ErrTimedOut = errors.New("visitor: timed out")

// Stager is the configuration surface every pipeline stage exposes to the
// render pass.
type Stager interface {
	SetNavigationMatrix(m mgl32.Mat4)
	NavigationMatrix() mgl32.Mat4
	SetProjectionMatrix(m mgl32.Mat4)
	ProjectionMatrix() mgl32.Mat4
	SetViewport(vp common.Viewport)
	Viewport() common.Viewport

	// SetDeadline sets the wall-clock time after which the stage must stop.
	// The zero time means no deadline.
	SetDeadline(t time.Time)
	Deadline() time.Time

	// SetJob sets the render job the stage runs for, polled for cancellation.
	SetJob(job *jobs.Job)
	Job() *jobs.Job

	// Reset prepares the stage for a new frame on a possibly different goroutine.
	// Per-traversal state is dropped; configured matrices and viewport are kept.
	Reset()
}

// Visitor is an update-pipeline stage: a scene traversal with stage state.
type Visitor interface {
	scene.Visitor
	Stager
}

// Stage is embedded by stage implementations to provide the Stager methods.
// A Stage is used by one render pass at a time and is not safe for concurrent use.
type Stage struct {
	nav      mgl32.Mat4
	proj     mgl32.Mat4
	viewport common.Viewport
	deadline time.Time
	job      *jobs.Job
}

// NewStage returns a stage with identity matrices.
func NewStage() Stage {
	return Stage{nav: mgl32.Ident4(), proj: mgl32.Ident4()}
}

func (s *Stage) SetNavigationMatrix(m mgl32.Mat4) { s.nav = m }
func (s *Stage) NavigationMatrix() mgl32.Mat4     { return s.nav }
func (s *Stage) SetProjectionMatrix(m mgl32.Mat4) { s.proj = m }
func (s *Stage) ProjectionMatrix() mgl32.Mat4     { return s.proj }
func (s *Stage) SetViewport(vp common.Viewport)   { s.viewport = vp }
func (s *Stage) Viewport() common.Viewport        { return s.viewport }
func (s *Stage) SetDeadline(t time.Time)          { s.deadline = t }
func (s *Stage) Deadline() time.Time              { return s.deadline }
func (s *Stage) SetJob(job *jobs.Job)             { s.job = job }
func (s *Stage) Job() *jobs.Job                   { return s.job }

// Reset drops the deadline and job of the previous frame.
func (s *Stage) Reset() {
	s.deadline = time.Time{}
	s.job = nil
}

// CheckDeadline reports ErrTimedOut once the deadline has passed or the job was
// cancelled. Stages call it at traversal granularity (once per node or element).
//
// Returns:
//   - error: ErrTimedOut or nil
func (s *Stage) CheckDeadline() error {
	if s.job.Cancelled() {
		return ErrTimedOut
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return ErrTimedOut
	}
	return nil
}
