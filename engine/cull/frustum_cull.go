package cull

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
	"github.com/go-gl/mathgl/mgl32"
)

// FrustumCull stages every shape whose world-space bounding sphere is not
// entirely outside the view frustum built from projection * navigation.
//
// The frustum is built on the first visit after Reset or after a matrix change.
type FrustumCull struct {
	visitor.Stage

	lists        *drawlists.DrawLists
	keyFunc      func(s *scene.Shape) int
	minPixelSize float32

	ready   bool
	frustum common.Frustum
	stack   []mgl32.Mat4

	accepted int
	culled   int
}

var _ Visitor = &FrustumCull{}

// NewFrustumCull creates a frustum cull visitor.
//
// Parameters:
//   - options: functional options (sort key function, small-feature threshold)
//
// Returns:
//   - *FrustumCull: the new visitor
func NewFrustumCull(options ...FrustumCullBuilderOption) *FrustumCull {
	c := &FrustumCull{
		Stage:   visitor.NewStage(),
		keyFunc: (*scene.Shape).Key,
		stack:   make([]mgl32.Mat4, 0, 16),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *FrustumCull) SetDrawLists(d *drawlists.DrawLists) { c.lists = d }
func (c *FrustumCull) DrawLists() *drawlists.DrawLists     { return c.lists }

func (c *FrustumCull) SetNavigationMatrix(m mgl32.Mat4) {
	c.Stage.SetNavigationMatrix(m)
	c.ready = false
}

func (c *FrustumCull) SetProjectionMatrix(m mgl32.Mat4) {
	c.Stage.SetProjectionMatrix(m)
	c.ready = false
}

// Reset clears the matrix stack and counters. Matrices, viewport and target lists persist.
func (c *FrustumCull) Reset() {
	c.Stage.Reset()
	c.ready = false
	c.stack = c.stack[:0]
	c.accepted = 0
	c.culled = 0
}

// Accepted returns the number of shapes staged since the last Reset.
func (c *FrustumCull) Accepted() int {
	return c.accepted
}

// Culled returns the number of nodes rejected since the last Reset.
func (c *FrustumCull) Culled() int {
	return c.culled
}

func (c *FrustumCull) VisitGroup(g *scene.Group) error {
	if err := c.enter(); err != nil {
		return err
	}
	if !c.visible(g.Bounds()) {
		return nil
	}
	return g.Traverse(c)
}

func (c *FrustumCull) VisitTransform(t *scene.Transform) error {
	if err := c.enter(); err != nil {
		return err
	}
	if !c.visible(t.Bounds()) {
		return nil
	}

	c.stack = append(c.stack, c.world().Mul4(t.Matrix()))
	defer func() { c.stack = c.stack[:len(c.stack)-1] }()
	return t.Traverse(c)
}

func (c *FrustumCull) VisitShape(s *scene.Shape) error {
	if err := c.enter(); err != nil {
		return err
	}
	if !c.visible(s.Bounds()) {
		return nil
	}
	if c.tooSmall(s.Bounds().Transform(c.world())) {
		c.culled++
		return nil
	}

	c.accepted++
	if c.lists != nil {
		c.lists.Append(c.keyFunc(s), &drawlists.Element{Shape: s, World: c.world()})
	}
	return nil
}

// enter polls the deadline and lazily builds the frustum.
func (c *FrustumCull) enter() error {
	if err := c.CheckDeadline(); err != nil {
		return err
	}
	if !c.ready {
		c.frustum = common.ExtractFrustum(c.ProjectionMatrix().Mul4(c.NavigationMatrix()))
		c.stack = append(c.stack[:0], mgl32.Ident4())
		c.ready = true
	}
	return nil
}

func (c *FrustumCull) world() mgl32.Mat4 {
	return c.stack[len(c.stack)-1]
}

// visible tests a sphere given in the current node's parent space.
func (c *FrustumCull) visible(local common.Sphere) bool {
	if c.frustum.TestSphere(local.Transform(c.world())) == common.Outside {
		c.culled++
		return false
	}
	return true
}

// tooSmall reports whether the sphere projects to fewer than minPixelSize pixels.
func (c *FrustumCull) tooSmall(world common.Sphere) bool {
	vp := c.Viewport()
	if c.minPixelSize <= 0 || vp.Empty() {
		return false
	}
	eye := mgl32.TransformCoordinate(world.Center, c.NavigationMatrix())
	depth := -eye.Z()
	if depth <= world.Radius {
		return false
	}
	proj := c.ProjectionMatrix()
	pixels := world.Radius * proj[5] * float32(vp.Height) / depth
	return pixels < c.minPixelSize
}
