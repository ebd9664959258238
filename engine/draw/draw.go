// Package draw defines the draw-pipeline stage contract, the factory capability
// plugins use to supply concrete draw methods, and a headless recording method.
package draw

import (
	"github.com/Carmen-Shannon/oxy-view/engine/drawlists"
	"github.com/Carmen-Shannon/oxy-view/engine/visitor"
)

// Method is a draw-pipeline stage. Draw consumes the configured draw lists key by
// key and issues drawing operations for each element. When the stage deadline
// passes or the job is cancelled, Draw returns visitor.ErrTimedOut and the rest
// of the frame is left undrawn.
type Method interface {
	visitor.Stager

	// SetDrawLists sets the lists consumed by Draw.
	SetDrawLists(d *drawlists.DrawLists)

	// DrawLists returns the configured lists.
	DrawLists() *drawlists.DrawLists

	// Draw issues the drawing operations for the current frame.
	Draw() error
}

// Factory creates draw methods. It is the capability a draw plugin exposes.
type Factory interface {
	// CreateDrawMethod returns a new draw method bound to ctx, usually the
	// viewer's rendering context. A nil result means the plugin cannot serve ctx.
	CreateDrawMethod(ctx any) Method
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func(ctx any) Method

var _ Factory = FactoryFunc(nil)

func (f FactoryFunc) CreateDrawMethod(ctx any) Method {
	return f(ctx)
}
