// Package event defines the closed set of viewer events, the keyboard and mouse
// state each of them carries, and the translation of raw window input into events.
package event

import (
	"github.com/gogpu/gpucontext"
)

// Type identifies an event variant. Listener tables are keyed by it.
type Type int

const (
	TypePaint Type = iota
	TypeResize
	TypeMouseMove
	TypeMousePress
	TypeMouseRelease
	TypeMouseDoubleClick
	TypeMouseWheel
	TypeKeyPress
	TypeKeyRelease
)

var typeNames = [...]string{
	TypePaint:            "Paint",
	TypeResize:           "Resize",
	TypeMouseMove:        "MouseMove",
	TypeMousePress:       "MousePress",
	TypeMouseRelease:     "MouseRelease",
	TypeMouseDoubleClick: "MouseDoubleClick",
	TypeMouseWheel:       "MouseWheel",
	TypeKeyPress:         "KeyPress",
	TypeKeyRelease:       "KeyRelease",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// Types returns every event variant in declaration order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// Event is an immutable input notification. Every variant carries the keys and
// mouse buttons held down when it was produced.
type Event interface {
	Type() Type
	KeysDown() KeySet
	ButtonsDown() ButtonSet
}

// Sink receives events, usually a viewer.
type Sink interface {
	Notify(e Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(e Event)

func (f SinkFunc) Notify(e Event) {
	f(e)
}

// State is the modifier snapshot embedded in every event.
type State struct {
	Keys    KeySet
	Buttons ButtonSet
}

func (s State) KeysDown() KeySet       { return s.Keys }
func (s State) ButtonsDown() ButtonSet { return s.Buttons }

// Paint asks for a new frame.
type Paint struct {
	State
}

// Resize reports a new drawable size in pixels.
type Resize struct {
	State
	Width, Height int
}

// MouseMove reports the cursor position in window pixels.
type MouseMove struct {
	State
	X, Y float64
}

// MousePress reports a button going down.
type MousePress struct {
	State
	Button gpucontext.MouseButton
	X, Y   float64
}

// MouseRelease reports a button going up.
type MouseRelease struct {
	State
	Button gpucontext.MouseButton
	X, Y   float64
}

// MouseDoubleClick follows the second of two quick presses of the same button.
type MouseDoubleClick struct {
	State
	Button gpucontext.MouseButton
	X, Y   float64
}

// MouseWheel reports a scroll at the cursor position. Positive DeltaY scrolls down.
type MouseWheel struct {
	State
	X, Y           float64
	DeltaX, DeltaY float64
}

// KeyPress reports a key going down.
type KeyPress struct {
	State
	Key  gpucontext.Key
	Mods gpucontext.Modifiers
}

// KeyRelease reports a key going up.
type KeyRelease struct {
	State
	Key  gpucontext.Key
	Mods gpucontext.Modifiers
}

func (Paint) Type() Type            { return TypePaint }
func (Resize) Type() Type           { return TypeResize }
func (MouseMove) Type() Type        { return TypeMouseMove }
func (MousePress) Type() Type       { return TypeMousePress }
func (MouseRelease) Type() Type     { return TypeMouseRelease }
func (MouseDoubleClick) Type() Type { return TypeMouseDoubleClick }
func (MouseWheel) Type() Type       { return TypeMouseWheel }
func (KeyPress) Type() Type         { return TypeKeyPress }
func (KeyRelease) Type() Type       { return TypeKeyRelease }
