package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// trackballImpl is the orbit controller behind Trackball. The eye position is
// derived from target + spherical coordinates after every change.
type trackballImpl struct {
	mu *sync.Mutex

	eye    mgl32.Vec3
	target mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	rotateSensitivity float32
	panSensitivity    float32
	zoomFactor        float32

	dragging     bool
	lastX, lastY float64
}

var _ Trackball = &trackballImpl{}

// NewTrackball creates an orbit navigation provider looking at the origin from +Z.
//
// Parameters:
//   - options: functional options to configure the trackball
//
// Returns:
//   - Trackball: the newly created trackball
func NewTrackball(options ...TrackballBuilderOption) Trackball {
	tb := &trackballImpl{
		mu: &sync.Mutex{},

		radius: 10,

		minRadius:    1e-3,
		maxRadius:    1e6,
		minElevation: -float32(math.Pi/2 - 0.01),
		maxElevation: float32(math.Pi/2 - 0.01),

		rotateSensitivity: 0.005,
		panSensitivity:    0.001,
		zoomFactor:        1.1,
	}
	for _, option := range options {
		option(tb)
	}
	tb.radius = mgl32.Clamp(tb.radius, tb.minRadius, tb.maxRadius)
	tb.elevation = mgl32.Clamp(tb.elevation, tb.minElevation, tb.maxElevation)
	tb.updateEye()
	return tb
}

// updateEye recomputes the eye from spherical coordinates. Caller must hold the mutex.
func (tb *trackballImpl) updateEye() {
	cosElev := float32(math.Cos(float64(tb.elevation)))
	sinElev := float32(math.Sin(float64(tb.elevation)))
	cosAzim := float32(math.Cos(float64(tb.azimuth)))
	sinAzim := float32(math.Sin(float64(tb.azimuth)))

	tb.eye = tb.target.Add(mgl32.Vec3{
		tb.radius * cosElev * sinAzim,
		tb.radius * sinElev,
		tb.radius * cosElev * cosAzim,
	})
}

// localAxes returns the view-space right and up axes in world space, matching LookAt.
// Caller must hold the mutex.
func (tb *trackballImpl) localAxes() (right, up mgl32.Vec3) {
	backward := tb.eye.Sub(tb.target)
	if backward.Len() < 1e-8 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	backward = backward.Normalize()
	right = mgl32.Vec3{0, 1, 0}.Cross(backward)
	if right.Len() < 1e-8 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	return right, up
}

func (tb *trackballImpl) Matrix() mgl32.Mat4 {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return mgl32.LookAtV(tb.eye, tb.target, mgl32.Vec3{0, 1, 0})
}

func (tb *trackballImpl) LookAtAll(np NodeProvider) bool {
	b, ok := sceneBounds(np)
	if !ok {
		return false
	}
	eye, center, _ := FrameSphere(b)

	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.target = center
	tb.radius = mgl32.Clamp(eye.Sub(center).Len(), tb.minRadius, tb.maxRadius)
	tb.azimuth = 0
	tb.elevation = 0
	tb.updateEye()
	return true
}

func (tb *trackballImpl) Eye() mgl32.Vec3 {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.eye
}

func (tb *trackballImpl) Target() mgl32.Vec3 {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.target
}

func (tb *trackballImpl) SetTarget(target mgl32.Vec3) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.target = target
	tb.updateEye()
}

func (tb *trackballImpl) Radius() float32 {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.radius
}

func (tb *trackballImpl) SetRadius(radius float32) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.radius = mgl32.Clamp(radius, tb.minRadius, tb.maxRadius)
	tb.updateEye()
}

func (tb *trackballImpl) Azimuth() float32 {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.azimuth
}

func (tb *trackballImpl) Elevation() float32 {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.elevation
}

func (tb *trackballImpl) SetAngles(azimuth, elevation float32) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.azimuth = azimuth
	tb.elevation = mgl32.Clamp(elevation, tb.minElevation, tb.maxElevation)
	tb.updateEye()
}

func (tb *trackballImpl) Begin(x, y float64) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.dragging = true
	tb.lastX, tb.lastY = x, y
}

func (tb *trackballImpl) Rotate(x, y float64) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	dx, dy, ok := tb.delta(x, y)
	if !ok {
		return
	}
	// Dragging right swings the eye left around the target, dragging down raises it.
	tb.azimuth -= dx * tb.rotateSensitivity
	tb.elevation = mgl32.Clamp(tb.elevation+dy*tb.rotateSensitivity, tb.minElevation, tb.maxElevation)
	tb.updateEye()
}

func (tb *trackballImpl) Pan(x, y float64) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	dx, dy, ok := tb.delta(x, y)
	if !ok {
		return
	}
	right, up := tb.localAxes()
	scale := tb.radius * tb.panSensitivity
	// Window y grows downward; the scene follows the cursor.
	offset := right.Mul(-dx * scale).Add(up.Mul(dy * scale))
	tb.target = tb.target.Add(offset)
	tb.eye = tb.eye.Add(offset)
}

// delta returns the cursor movement since the last drag call. Caller must hold the mutex.
func (tb *trackballImpl) delta(x, y float64) (dx, dy float32, ok bool) {
	if !tb.dragging {
		return 0, 0, false
	}
	dx, dy = float32(x-tb.lastX), float32(y-tb.lastY)
	tb.lastX, tb.lastY = x, y
	return dx, dy, true
}

func (tb *trackballImpl) End() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.dragging = false
}

func (tb *trackballImpl) Dragging() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.dragging
}

func (tb *trackballImpl) Zoom(steps float32) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	factor := float32(math.Pow(float64(tb.zoomFactor), float64(-steps)))
	tb.radius = mgl32.Clamp(tb.radius*factor, tb.minRadius, tb.maxRadius)
	tb.updateEye()
}
