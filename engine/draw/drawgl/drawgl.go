// Package drawgl is a draw-method plugin for the OpenGL 2.1 fixed-function
// pipeline. It draws every staged element as a wireframe of its bounding sphere,
// which is enough to inspect culling and navigation without knowing the
// geometry payload. The rendering context must be current on the calling thread.
package drawgl

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/draw"
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	initOnce sync.Once
	initErr  error
)

type method struct {
	visitor.Stage

	lists      *drawlists.DrawLists
	clearColor mgl32.Vec4
	clear      bool
	lineWidth  float32
	segments   int

	circle []mgl32.Vec2
}

var _ draw.Method = &method{}

// NewMethod creates an OpenGL draw method.
//
// Parameters:
//   - options: functional options for clearing and wireframe detail
//
// Returns:
//   - draw.Method: the new draw method
func NewMethod(options ...MethodBuilderOption) draw.Method {
	m := &method{
		Stage:      visitor.NewStage(),
		clearColor: mgl32.Vec4{0.1, 0.1, 0.12, 1},
		clear:      true,
		lineWidth:  1,
		segments:   32,
	}
	for _, opt := range options {
		opt(m)
	}
	m.circle = draw.UnitCircle(m.segments)
	return m
}

// Register installs the OpenGL factory in the default draw registry under draw.PluginGL.
//
// Parameters:
//   - options: options applied to every created method
func Register(options ...MethodBuilderOption) {
	draw.Register(draw.PluginGL, draw.FactoryFunc(func(any) draw.Method {
		return NewMethod(options...)
	}))
}

func (m *method) SetDrawLists(d *drawlists.DrawLists) { m.lists = d }
func (m *method) DrawLists() *drawlists.DrawLists     { return m.lists }

func (m *method) Draw() error {
	initOnce.Do(func() {
		if initErr = gl.Init(); initErr == nil {
			common.Logger().Info("drawgl: OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))
		}
	})
	if initErr != nil {
		return fmt.Errorf("drawgl: init: %w", initErr)
	}

	vp := m.Viewport()
	if !vp.Empty() {
		gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	}
	if m.clear {
		gl.ClearColor(m.clearColor[0], m.clearColor[1], m.clearColor[2], m.clearColor[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}
	if m.lists == nil {
		return nil
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.LineWidth(m.lineWidth)

	proj := m.ProjectionMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&proj[0])
	gl.MatrixMode(gl.MODELVIEW)

	nav := m.NavigationMatrix()
	var keys []int
	var elems []*drawlists.Element
	m.lists.Keys(&keys)
	for _, key := range keys {
		c := draw.KeyColor(key)
		gl.Color3f(c[0], c[1], c[2])

		elems = elems[:0]
		m.lists.Elements(key, &elems)
		for _, e := range elems {
			if err := m.CheckDeadline(); err != nil {
				return err
			}
			mv := nav.Mul4(e.World)
			gl.LoadMatrixf(&mv[0])
			m.drawSphere(e.Shape.Bounds())
		}
	}
	return nil
}

// drawSphere draws three great circles of s, one per axis plane.
func (m *method) drawSphere(s common.Sphere) {
	if !s.Valid() {
		return
	}
	cx, cy, cz, r := s.Center[0], s.Center[1], s.Center[2], s.Radius

	gl.Begin(gl.LINE_LOOP)
	for _, p := range m.circle {
		gl.Vertex3f(cx+p[0]*r, cy+p[1]*r, cz)
	}
	gl.End()

	gl.Begin(gl.LINE_LOOP)
	for _, p := range m.circle {
		gl.Vertex3f(cx+p[0]*r, cy, cz+p[1]*r)
	}
	gl.End()

	gl.Begin(gl.LINE_LOOP)
	for _, p := range m.circle {
		gl.Vertex3f(cx, cy+p[0]*r, cz+p[1]*r)
	}
	gl.End()
}
