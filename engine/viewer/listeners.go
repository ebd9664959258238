package viewer

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/event"
	"github.com/Carmen-Shannon/oxy-view/engine/listener"
	"github.com/gogpu/gpucontext"
)

// onPaint admits a render pass with the current providers and default budget
// unless maxInFlight passes are already running. Excess paints are dropped.
func (v *viewerImpl) onPaint(event.Event) {
	if v.renderJobAdd(nil, nil, 0, v.maxInFlight) == nil {
		common.Logger().Debug("viewer: paint dropped", "inFlight", v.RenderJobCount())
	}
}

// onResize forwards the size to a resize-aware projection and stores the viewport.
func (v *viewerImpl) onResize(e event.Event) {
	r, ok := e.(event.Resize)
	if !ok || r.Width <= 0 || r.Height <= 0 {
		return
	}
	if rn, ok := v.ProjectionProvider().(camera.ResizeNotifier); ok {
		rn.ResizeNotify(r.Width, r.Height)
	}
	v.setViewport(common.Viewport{Width: r.Width, Height: r.Height})
}

// repaint asks for a new frame after a navigation change.
func (v *viewerImpl) repaint() {
	v.Notify(event.Paint{})
}

func (v *viewerImpl) AttachTrackball(tb camera.Trackball) func() {
	if tb == nil {
		return func() {}
	}
	v.SetNavigationProvider(tb)

	left := event.Buttons(gpucontext.MouseButtonLeft)
	right := event.Buttons(gpucontext.MouseButtonRight)

	type binding struct {
		t event.Type
		e listener.Entry
	}
	bindings := []binding{
		{event.TypeMousePress, listener.Entry{
			Priority: 10,
			Handler: listener.NewHandler(func(e event.Event) {
				p, ok := e.(event.MousePress)
				if ok && (p.Button == gpucontext.MouseButtonLeft || p.Button == gpucontext.MouseButtonRight) {
					tb.Begin(p.X, p.Y)
				}
			}),
		}},
		{event.TypeMouseMove, listener.Entry{
			Priority:      10,
			FilterButtons: true,
			Buttons:       left,
			Handler: listener.NewHandler(func(e event.Event) {
				if m, ok := e.(event.MouseMove); ok {
					tb.Rotate(m.X, m.Y)
					v.repaint()
				}
			}),
		}},
		{event.TypeMouseMove, listener.Entry{
			Priority:      10,
			FilterButtons: true,
			Buttons:       right,
			Handler: listener.NewHandler(func(e event.Event) {
				if m, ok := e.(event.MouseMove); ok {
					tb.Pan(m.X, m.Y)
					v.repaint()
				}
			}),
		}},
		{event.TypeMouseRelease, listener.Entry{
			Priority:      10,
			FilterButtons: true,
			Handler: listener.NewHandler(func(event.Event) {
				tb.End()
			}),
		}},
		{event.TypeMouseWheel, listener.Entry{
			Priority: 10,
			Handler: listener.NewHandler(func(e event.Event) {
				if w, ok := e.(event.MouseWheel); ok {
					tb.Zoom(float32(-w.DeltaY))
					v.repaint()
				}
			}),
		}},
		{event.TypeMouseDoubleClick, listener.Entry{
			Priority: 10,
			Handler: listener.NewHandler(func(event.Event) {
				tb.LookAtAll(v)
				v.repaint()
			}),
		}},
	}
	for _, b := range bindings {
		v.ListenerAdd(b.t, b.e)
	}

	return func() {
		for _, b := range bindings {
			v.ListenerRemove(b.t, b.e)
		}
	}
}
