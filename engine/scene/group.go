package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// Group is an interior node holding an ordered list of children.
//
// Bounds are cached. Add folds the new child into a valid cache; Remove, and
// SetMatrix on a descendant Transform, invalidate the cache of every ancestor
// group so the next Bounds call recomputes only the stale path.
type Group struct {
	mu       sync.RWMutex
	name     string
	children []Node

	// parents are the groups holding this one as a child, once per Add.
	parents []*Group

	bounds      common.Sphere
	boundsValid bool
	// boundsGen counts invalidations so a recomputation racing one is not cached.
	boundsGen uint64
}

var _ Node = &Group{}

// NewGroup creates a group with the given children.
//
// Parameters:
//   - name: the group's identifier
//   - children: initial children, nil entries are skipped
//
// Returns:
//   - *Group: the new group
func NewGroup(name string, children ...Node) *Group {
	g := &Group{name: name}
	g.init()
	for _, c := range children {
		g.Add(c)
	}
	return g
}

func (g *Group) init() {
	g.bounds = common.InvalidSphere()
	g.boundsValid = true
}

func (g *Group) Name() string {
	return g.name
}

// Add appends a child. Nil children are ignored.
func (g *Group) Add(child Node) {
	if child == nil {
		return
	}
	if c := asGroup(child); c != nil {
		c.addParent(g)
	}
	b := child.Bounds()

	g.mu.Lock()
	g.children = append(g.children, child)
	if g.boundsValid {
		g.bounds = g.bounds.Union(b)
	}
	g.boundsGen++
	parents := g.parents
	g.mu.Unlock()

	invalidateAll(parents)
}

// Remove removes the first occurrence of child.
//
// Returns:
//   - bool: true if the child was found
func (g *Group) Remove(child Node) bool {
	g.mu.Lock()
	i := slices.Index(g.children, child)
	if i < 0 {
		g.mu.Unlock()
		return false
	}
	g.children = slices.Delete(g.children, i, i+1)
	g.mu.Unlock()

	if c := asGroup(child); c != nil {
		c.removeParent(g)
	}
	g.invalidate()
	return true
}

// Children returns a copy of the child list.
func (g *Group) Children() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.children)
}

// Len returns the number of children.
func (g *Group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.children)
}

func (g *Group) Accept(v Visitor) error {
	return v.VisitGroup(g)
}

// Traverse calls Accept on every child in order, stopping at the first error.
// The child list is snapshotted first so visitors may run while the group is edited.
//
// Parameters:
//   - v: the visitor to pass to each child
//
// Returns:
//   - error: the first error returned by a child
func (g *Group) Traverse(v Visitor) error {
	for _, c := range g.Children() {
		if err := c.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// Bounds returns the union of the children's bounds, from the cache when valid.
func (g *Group) Bounds() common.Sphere {
	g.mu.RLock()
	if g.boundsValid {
		b := g.bounds
		g.mu.RUnlock()
		return b
	}
	gen := g.boundsGen
	children := slices.Clone(g.children)
	g.mu.RUnlock()

	b := common.InvalidSphere()
	for _, c := range children {
		b = b.Union(c.Bounds())
	}

	g.mu.Lock()
	if g.boundsGen == gen {
		g.bounds = b
		g.boundsValid = true
	}
	g.mu.Unlock()
	return b
}

// invalidate drops the cached bounds of g and of every ancestor.
func (g *Group) invalidate() {
	g.mu.Lock()
	g.boundsValid = false
	g.boundsGen++
	parents := g.parents
	g.mu.Unlock()

	invalidateAll(parents)
}

// invalidateParents drops the cached bounds of every ancestor but keeps g's own.
func (g *Group) invalidateParents() {
	g.mu.RLock()
	parents := g.parents
	g.mu.RUnlock()

	invalidateAll(parents)
}

func (g *Group) addParent(p *Group) {
	g.mu.Lock()
	g.parents = append(slices.Clip(g.parents), p)
	g.mu.Unlock()
}

func (g *Group) removeParent(p *Group) {
	g.mu.Lock()
	if i := slices.Index(g.parents, p); i >= 0 {
		g.parents = slices.Delete(slices.Clone(g.parents), i, i+1)
	}
	g.mu.Unlock()
}

func invalidateAll(groups []*Group) {
	for _, p := range groups {
		p.invalidate()
	}
}

// asGroup returns the group embedded in n, or nil for leaves.
func asGroup(n Node) *Group {
	switch n := n.(type) {
	case *Group:
		return n
	case *Transform:
		return &n.Group
	}
	return nil
}
