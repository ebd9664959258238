// Package drawwgpu is a draw-method plugin for WebGPU through wgpu-native. Like
// drawgl it draws every staged element as a wireframe of its bounding sphere,
// but it owns its own surface, so the window must be created without a GL
// context (window.WithoutGLContext). The GPU device is created on the first Draw.
package drawwgpu

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/draw"
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// SurfaceProvider is the rendering-context capability the plugin needs.
// window.Window satisfies it.
type SurfaceProvider interface {
	// SurfaceDescriptor returns the platform surface to present to, or nil.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// ErrNoSurface is returned by Draw when the rendering context has no surface.
var ErrNoSurface = errors.New("drawwgpu: rendering context has no surface")

type method struct {
	visitor.Stage

	mu       sync.Mutex
	lists    *drawlists.DrawLists
	surfaces SurfaceProvider

	clearColor           mgl32.Vec4
	clear                bool
	segments             int
	presentMode          wgpu.PresentMode
	forceFallbackAdapter bool

	circle   []mgl32.Vec2
	vertices []vertex
	gpu      *gpu
}

var _ draw.Method = &method{}

// NewMethod creates a WebGPU draw method presenting to the surface of surfaces.
//
// Parameters:
//   - surfaces: the rendering context providing the surface
//   - options: functional options for clearing, presentation and wireframe detail
//
// Returns:
//   - draw.Method: the new draw method
func NewMethod(surfaces SurfaceProvider, options ...MethodBuilderOption) draw.Method {
	m := &method{
		Stage:       visitor.NewStage(),
		surfaces:    surfaces,
		clearColor:  mgl32.Vec4{0.1, 0.1, 0.12, 1},
		clear:       true,
		segments:    32,
		presentMode: wgpu.PresentModeFifo,
	}
	for _, opt := range options {
		opt(m)
	}
	m.circle = draw.UnitCircle(m.segments)
	return m
}

// Register installs the WebGPU factory in the default draw registry under
// draw.PluginWGPU. The factory declines rendering contexts that are not a
// SurfaceProvider, so a lower priority plugin can serve them instead.
//
// Parameters:
//   - options: options applied to every created method
func Register(options ...MethodBuilderOption) {
	draw.Register(draw.PluginWGPU, NewFactory(options...))
}

// NewFactory returns a factory creating WebGPU methods for SurfaceProvider contexts.
//
// Parameters:
//   - options: options applied to every created method
//
// Returns:
//   - draw.Factory: the factory
func NewFactory(options ...MethodBuilderOption) draw.Factory {
	return draw.FactoryFunc(func(ctx any) draw.Method {
		sp, ok := ctx.(SurfaceProvider)
		if !ok {
			return nil
		}
		return NewMethod(sp, options...)
	})
}

func (m *method) SetDrawLists(d *drawlists.DrawLists) {
	m.mu.Lock()
	m.lists = d
	m.mu.Unlock()
}

func (m *method) DrawLists() *drawlists.DrawLists {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}

// Draw builds the frame's line list on the CPU, uploads it and presents it.
// When the deadline passes mid-frame, the elements gathered so far are still
// presented and visitor.ErrTimedOut is returned.
func (m *method) Draw() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	vp := m.Viewport()
	if vp.Empty() {
		return nil
	}
	if m.gpu == nil {
		desc := m.surfaces.SurfaceDescriptor()
		if desc == nil {
			return ErrNoSurface
		}
		g, err := newGPU(desc, m.forceFallbackAdapter, m.presentMode)
		if err != nil {
			return err
		}
		m.gpu = g
		common.Logger().Info("drawwgpu: device created", "format", g.format.String())
	}
	m.gpu.resize(uint32(vp.Width), uint32(vp.Height))

	var stopped error
	m.vertices = m.vertices[:0]
	if m.lists != nil {
		m.vertices, stopped = m.appendLists(m.vertices)
	}
	if err := m.gpu.frame(m.clear, m.clearColor, m.vertices); err != nil {
		return err
	}
	return stopped
}

// appendLists appends the wireframes of every staged element, key by key.
func (m *method) appendLists(dst []vertex) ([]vertex, error) {
	viewProj := clipSpace(m.ProjectionMatrix()).Mul4(m.NavigationMatrix())

	var keys []int
	var elems []*drawlists.Element
	m.lists.Keys(&keys)
	for _, key := range keys {
		c := draw.KeyColor(key)

		elems = elems[:0]
		m.lists.Elements(key, &elems)
		for _, e := range elems {
			if err := m.CheckDeadline(); err != nil {
				return dst, err
			}
			dst = appendSphere(dst, viewProj.Mul4(e.World), e.Shape.Bounds(), c, m.circle)
		}
	}
	return dst, nil
}

// Release frees the GPU objects. The method recreates them on the next Draw.
func (m *method) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gpu != nil {
		m.gpu.release()
		m.gpu = nil
	}
}
