package viewer

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/jobs"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
	"github.com/go-gl/mathgl/mgl32"
)

func (v *viewerImpl) RenderJobAdd(nav, proj camera.Provider, timeAllowed time.Duration) *jobs.Job {
	return v.renderJobAdd(nav, proj, timeAllowed, 0)
}

// renderJobAdd submits a pass unless the viewer is closed or limit (when
// positive) jobs are already in flight. The in-flight lock is held across the
// submission, so the pass cannot remove its job before it was inserted.
func (v *viewerImpl) renderJobAdd(nav, proj camera.Provider, timeAllowed time.Duration, limit int) *jobs.Job {
	if v.queue == nil {
		return nil
	}

	v.inFlightMu.Lock()
	defer v.inFlightMu.Unlock()
	if v.closed || (limit > 0 && len(v.inFlight) >= limit) {
		return nil
	}

	job := v.queue.Add(func(job *jobs.Job) {
		v.render(job, nav, proj, timeAllowed)
	})
	if job == nil {
		common.Logger().Debug("viewer: job queue refused render pass")
		return nil
	}
	v.inFlight[job] = struct{}{}
	return job
}

func (v *viewerImpl) RenderJobCancel(job *jobs.Job) {
	if job == nil {
		return
	}
	v.cancel(job)
	attempt("wait", func() { v.queue.Wait(job) })
}

func (v *viewerImpl) RenderJobsCancel() {
	v.inFlightMu.Lock()
	pending := make([]*jobs.Job, 0, len(v.inFlight))
	for job := range v.inFlight {
		pending = append(pending, job)
	}
	v.inFlightMu.Unlock()

	for _, job := range pending {
		v.cancel(job)
	}
	for _, job := range pending {
		attempt("wait", func() { v.queue.Wait(job) })
	}
}

// cancel runs the non-blocking cancellation steps, each independently of the others.
func (v *viewerImpl) cancel(job *jobs.Job) {
	attempt("queue remove", func() { v.queue.Remove(job) })
	attempt("in-flight remove", func() { v.inFlightRemove(job) })
	attempt("job cancel", job.Cancel)
}

func (v *viewerImpl) RenderJobCount() int {
	v.inFlightMu.Lock()
	defer v.inFlightMu.Unlock()
	return len(v.inFlight)
}

func (v *viewerImpl) inFlightRemove(job *jobs.Job) {
	v.inFlightMu.Lock()
	defer v.inFlightMu.Unlock()
	delete(v.inFlight, job)
}

// attempt runs fn and swallows a panic, logging it.
func attempt(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Warn("viewer: step failed", "step", step, "panic", r)
		}
	}()
	fn()
}

// render is one render pass. It runs on a job-queue worker goroutine.
func (v *viewerImpl) render(job *jobs.Job, nav, proj camera.Provider, timeAllowed time.Duration) {
	stats := PassStats{Job: job.ID(), Started: time.Now()}

	defer v.inFlightRemove(job)
	defer v.observe(job, &stats)

	// Rendering contexts are bound to OS threads; keep the goroutine on one.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx := v.RenderingContext()
	if ctx == nil {
		common.Logger().Debug("viewer: no rendering context, pass skipped", "job", job.ID())
		return
	}
	defer func() {
		attempt("swap buffers", ctx.SwapRenderingBuffers)
		stats.Swapped = true
	}()
	ctx.MakeContextCurrent()

	v.passMu.Lock()
	defer v.passMu.Unlock()

	navM := resolve(nav, v.NavigationProvider())
	projM := resolve(proj, v.ProjectionProvider())
	vp := v.Viewport()

	v.lists.Clear(false)

	updates := v.UpdatePipeline()
	culls := v.CullPipeline()
	draws := v.DrawPipeline()
	for _, s := range updates {
		s.Reset()
	}
	for _, s := range culls {
		s.Reset()
	}
	for _, s := range draws {
		s.Reset()
	}

	if timeAllowed <= 0 {
		timeAllowed = v.TimeAllowed()
	}
	root := v.Scene()

	start := time.Now()
	if root != nil {
		for _, s := range updates {
			s.SetNavigationMatrix(navM)
			s.SetProjectionMatrix(projM)
			s.SetViewport(vp)
			s.SetJob(job)
			v.runStage(job, "update", func() error { return root.Accept(s) })
		}
	}
	stats.Update = time.Since(start)

	start = time.Now()
	if root != nil && len(culls) > 0 {
		budget := stageBudget(timeAllowed, len(culls))
		for _, s := range culls {
			s.SetNavigationMatrix(navM)
			s.SetProjectionMatrix(projM)
			s.SetViewport(vp)
			s.SetDrawLists(v.lists)
			s.SetJob(job)
			s.SetDeadline(deadline(budget))
			if v.runStage(job, "cull", func() error { return root.Accept(s) }) {
				stats.TimedOut = true
			}
		}
	}
	stats.Cull = time.Since(start)
	stats.Elements = v.lists.Len()

	start = time.Now()
	if len(draws) > 0 {
		budget := stageBudget(timeAllowed, len(draws))
		for _, s := range draws {
			s.SetNavigationMatrix(navM)
			s.SetProjectionMatrix(projM)
			s.SetViewport(vp)
			s.SetDrawLists(v.lists)
			s.SetJob(job)
			s.SetDeadline(deadline(budget))
			if v.runStage(job, "draw", s.Draw) {
				stats.TimedOut = true
			}
		}
	}
	stats.Draw = time.Since(start)
}

// runStage runs one pipeline stage. Timeouts, errors and panics end only that
// stage. It reports whether the stage timed out.
func (v *viewerImpl) runStage(job *jobs.Job, kind string, fn func() error) (timedOut bool) {
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("viewer: stage panicked", "job", job.ID(), "stage", kind, "panic", r)
		}
	}()

	err := fn()
	switch {
	case err == nil:
		return false
	case errors.Is(err, visitor.ErrTimedOut):
		common.Logger().Debug("viewer: stage timed out", "job", job.ID(), "stage", kind, "cancelled", job.Cancelled())
		return true
	default:
		common.Logger().Warn("viewer: stage failed", "job", job.ID(), "stage", kind, "err", fmt.Errorf("%s stage: %w", kind, err))
		return false
	}
}

func (v *viewerImpl) observe(job *jobs.Job, stats *PassStats) {
	stats.Cancelled = job.Cancelled()
	if fn := v.observer.Load(); fn != nil {
		attempt("pass observer", func() { (*fn)(*stats) })
	}
}

// resolve picks the override, then the configured provider, then identity.
func resolve(override, configured camera.Provider) mgl32.Mat4 {
	if override != nil {
		return override.Matrix()
	}
	if configured != nil {
		return configured.Matrix()
	}
	return mgl32.Ident4()
}

// stageBudget splits half of the frame budget evenly over n stages.
// A zero budget means no deadline.
func stageBudget(timeAllowed time.Duration, n int) time.Duration {
	if timeAllowed <= 0 || n <= 0 {
		return 0
	}
	return timeAllowed / time.Duration(2*n)
}

func deadline(budget time.Duration) time.Time {
	if budget <= 0 {
		return time.Time{}
	}
	return time.Now().Add(budget)
}
