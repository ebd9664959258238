// Package scene defines the opaque scene graph the viewer traverses.
//
// The node kind set is closed: Group, Transform and Shape. Traversal uses
// double dispatch (Node.Accept calls the matching Visitor method), and every
// visit returns an error so a visitor can stop a traversal early, for example
// when its frame deadline passes.
//
// Nodes are shared by pointer. A scene may be referenced by several viewers and by
// several in-flight render passes at once, so Group children are guarded for
// concurrent Accept calls while Add/Remove lock for write.
package scene

import (
	"github.com/Carmen-Shannon/oxy-view/common"
)

// Node is a traversable scene graph node.
type Node interface {
	// Accept dispatches to the Visitor method matching the node kind.
	//
	// Parameters:
	//   - v: the visitor
	//
	// Returns:
	//   - error: the error returned by the visitor, which stops the traversal
	Accept(v Visitor) error

	// Bounds returns the node's bounding sphere in its parent's space.
	//
	// Returns:
	//   - common.Sphere: the bounding sphere, invalid when the node bounds nothing
	Bounds() common.Sphere
}

// Visitor is implemented by every traversal over the scene graph.
type Visitor interface {
	// VisitGroup is called for *Group nodes. Implementations call g.Traverse(v)
	// to descend.
	VisitGroup(g *Group) error

	// VisitTransform is called for *Transform nodes. Implementations call
	// t.Traverse(v) to descend.
	VisitTransform(t *Transform) error

	// VisitShape is called for *Shape leaves.
	VisitShape(s *Shape) error
}

// Document supplies the root of a scene, typically backed by a loaded file.
type Document interface {
	// NodeGet returns the scene root, or nil when nothing is loaded.
	NodeGet() Node
}
