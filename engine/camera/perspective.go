package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type perspectiveImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	matrix mgl32.Mat4
}

// Perspective is a projection provider derived from field of view, aspect ratio
// and clip distances. Resizing the drawable recomputes the aspect ratio.
type Perspective interface {
	Provider
	ResizeNotifier

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFov sets the vertical field of view in degrees.
	//
	// Parameters:
	//   - fov: field of view in degrees
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetClip sets the near and far clipping plane distances.
	//
	// Parameters:
	//   - near: near plane distance
	//   - far: far plane distance
	SetClip(near, far float32)
}

var _ Perspective = &perspectiveImpl{}

// NewPerspective creates a perspective projection with fov 45°, aspect 1,
// near 2 and far 10000 unless overridden.
//
// Parameters:
//   - options: functional options to configure the projection
//
// Returns:
//   - Perspective: the new provider
func NewPerspective(options ...PerspectiveBuilderOption) Perspective {
	p := &perspectiveImpl{
		mu:     &sync.Mutex{},
		fov:    45,
		aspect: 1,
		near:   2,
		far:    10000,
	}
	for _, option := range options {
		option(p)
	}
	p.update()
	return p
}

func (p *perspectiveImpl) Matrix() mgl32.Mat4 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.matrix
}

func (p *perspectiveImpl) ResizeNotify(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.SetAspect(float32(width) / float32(height))
}

func (p *perspectiveImpl) Fov() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fov
}

func (p *perspectiveImpl) Aspect() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.aspect
}

func (p *perspectiveImpl) Near() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.near
}

func (p *perspectiveImpl) Far() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.far
}

func (p *perspectiveImpl) SetFov(fov float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fov = fov
	p.update()
}

func (p *perspectiveImpl) SetAspect(aspect float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aspect = aspect
	p.update()
}

func (p *perspectiveImpl) SetClip(near, far float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.near = near
	p.far = far
	p.update()
}

// update recomputes the projection matrix. Caller must hold the mutex.
func (p *perspectiveImpl) update() {
	p.matrix = mgl32.Perspective(mgl32.DegToRad(p.fov), p.aspect, p.near, p.far)
}
