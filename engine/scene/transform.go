package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a group whose children live in a local coordinate frame.
type Transform struct {
	Group

	matrixMu sync.RWMutex
	matrix   mgl32.Mat4
}

var _ Node = &Transform{}

// NewTransform creates a transform node.
//
// Parameters:
//   - name: the node's identifier
//   - m: the local-to-parent matrix
//   - children: initial children
//
// Returns:
//   - *Transform: the new node
func NewTransform(name string, m mgl32.Mat4, children ...Node) *Transform {
	t := &Transform{matrix: m}
	t.name = name
	t.init()
	for _, c := range children {
		t.Add(c)
	}
	return t
}

// Matrix returns the local-to-parent matrix.
func (t *Transform) Matrix() mgl32.Mat4 {
	t.matrixMu.RLock()
	defer t.matrixMu.RUnlock()
	return t.matrix
}

// SetMatrix replaces the local-to-parent matrix and invalidates the cached
// bounds of every ancestor group.
func (t *Transform) SetMatrix(m mgl32.Mat4) {
	t.matrixMu.Lock()
	t.matrix = m
	t.matrixMu.Unlock()

	t.Group.invalidateParents()
}

func (t *Transform) Accept(v Visitor) error {
	return v.VisitTransform(t)
}

// Bounds returns the children's bounds moved into the parent's space.
func (t *Transform) Bounds() common.Sphere {
	return t.Group.Bounds().Transform(t.Matrix())
}
