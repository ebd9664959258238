// Package camera provides the matrix providers a viewer uses for navigation
// (view) and projection transforms. Providers may also implement the optional
// ResizeNotifier and LookAtAller capabilities, which callers discover with a
// type assertion and skip when absent.
package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Provider returns a 4x4 transform. Implementations must be safe for concurrent use.
type Provider interface {
	Matrix() mgl32.Mat4
}

// ResizeNotifier is implemented by providers that depend on the drawable size.
type ResizeNotifier interface {
	// ResizeNotify reports a new drawable size in pixels. Non-positive sizes are ignored.
	ResizeNotify(width, height int)
}

// NodeProvider gives access to the scene a provider should frame.
type NodeProvider interface {
	// NodeGet returns the scene root, or nil when no scene is bound.
	NodeGet() scene.Node
}

// LookAtAller is implemented by navigation providers able to frame a whole scene.
type LookAtAller interface {
	// LookAtAll points the provider at the bounding sphere of np's scene.
	// It reports false and leaves the provider unchanged when there is nothing to frame.
	LookAtAll(np NodeProvider) bool
}

// FrameSphere returns a look-at triple viewing s from +Z at twice its radius.
//
// Parameters:
//   - s: the sphere to frame
//
// Returns:
//   - eye, center, up: the look-at vectors
func FrameSphere(s common.Sphere) (eye, center, up mgl32.Vec3) {
	r := s.Radius
	if r <= 0 {
		r = 1
	}
	center = s.Center
	eye = center.Add(mgl32.Vec3{0, 0, 2 * r})
	up = mgl32.Vec3{0, 1, 0}
	return eye, center, up
}

// sceneBounds fetches the bounding sphere of np's scene.
func sceneBounds(np NodeProvider) (common.Sphere, bool) {
	if np == nil {
		return common.InvalidSphere(), false
	}
	node := np.NodeGet()
	if node == nil {
		return common.InvalidSphere(), false
	}
	b := node.Bounds()
	return b, b.Valid()
}

// Identity always returns the identity matrix.
type Identity struct{}

var _ Provider = Identity{}

func (Identity) Matrix() mgl32.Mat4 {
	return mgl32.Ident4()
}

// Fixed returns a stored matrix. LookAtAll replaces it with a view of the scene.
type Fixed struct {
	mu sync.RWMutex
	m  mgl32.Mat4
}

var (
	_ Provider    = &Fixed{}
	_ LookAtAller = &Fixed{}
)

// NewFixed creates a provider returning m.
func NewFixed(m mgl32.Mat4) *Fixed {
	return &Fixed{m: m}
}

func (f *Fixed) Matrix() mgl32.Mat4 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.m
}

func (f *Fixed) Set(m mgl32.Mat4) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m = m
}

func (f *Fixed) LookAtAll(np NodeProvider) bool {
	b, ok := sceneBounds(np)
	if !ok {
		return false
	}
	f.Set(mgl32.LookAtV(FrameSphere(b)))
	return true
}

// Calculated returns whatever its function computes at call time.
type Calculated struct {
	fn func() mgl32.Mat4
}

var _ Provider = &Calculated{}

// NewCalculated creates a provider calling fn on every Matrix call.
// A nil fn yields the identity.
func NewCalculated(fn func() mgl32.Mat4) *Calculated {
	return &Calculated{fn: fn}
}

func (c *Calculated) Matrix() mgl32.Mat4 {
	if c.fn == nil {
		return mgl32.Ident4()
	}
	return c.fn()
}

// Compose returns a provider whose matrix is the product of the given providers,
// left to right, evaluated at call time. Nil providers are skipped.
//
// Parameters:
//   - providers: the factors, outermost first
//
// Returns:
//   - *Calculated: the composed provider
func Compose(providers ...Provider) *Calculated {
	return NewCalculated(func() mgl32.Mat4 {
		m := mgl32.Ident4()
		for _, p := range providers {
			if p != nil {
				m = m.Mul4(p.Matrix())
			}
		}
		return m
	})
}
