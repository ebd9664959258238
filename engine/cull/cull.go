// Package cull provides the cull-pipeline stage contract and the default
// view-frustum cull visitor.
package cull

import (
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
)

// Visitor is a cull-pipeline stage. It traverses the scene and stages visible
// content into the configured draw lists. When its deadline passes it returns
// visitor.ErrTimedOut from the traversal; whatever it staged so far stays.
type Visitor interface {
	visitor.Visitor

	// SetDrawLists sets the lists visible content is appended to.
	SetDrawLists(d *drawlists.DrawLists)

	// DrawLists returns the configured target lists.
	DrawLists() *drawlists.DrawLists
}
