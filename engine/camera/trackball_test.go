package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTrackballDefaults(t *testing.T) {
	tb := NewTrackball(WithRadius(5))
	if got := tb.Eye(); !got.ApproxEqual(mgl32.Vec3{0, 0, 5}) {
		t.Errorf("Eye() = %v, want (0, 0, 5)", got)
	}
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if got := tb.Matrix(); !got.ApproxEqual(want) {
		t.Errorf("Matrix() = %v, want %v", got, want)
	}
}

func TestTrackballRotate(t *testing.T) {
	tb := NewTrackball(WithRadius(5), WithRotateSensitivity(0.01))
	before := tb.Matrix()

	tb.Rotate(100, 0)
	if tb.Matrix() != before {
		t.Fatal("Rotate() outside a drag changed the matrix")
	}

	tb.Begin(0, 0)
	tb.Rotate(50, 20)
	tb.End()

	if tb.Matrix() == before {
		t.Fatal("drag did not change the matrix")
	}
	if !mgl32.FloatEqual(tb.Azimuth(), -0.5) {
		t.Errorf("Azimuth() = %v, want -0.5", tb.Azimuth())
	}
	if !mgl32.FloatEqual(tb.Elevation(), 0.2) {
		t.Errorf("Elevation() = %v, want 0.2", tb.Elevation())
	}
	if d := tb.Eye().Sub(tb.Target()).Len(); !mgl32.FloatEqualThreshold(d, 5, 1e-4) {
		t.Errorf("eye distance = %v, want 5", d)
	}
	if tb.Dragging() {
		t.Error("Dragging() = true after End")
	}
}

func TestTrackballElevationClamp(t *testing.T) {
	tb := NewTrackball(WithElevationLimits(-0.5, 0.5), WithRotateSensitivity(1))
	tb.Begin(0, 0)
	tb.Rotate(0, 10)
	if got := tb.Elevation(); got != 0.5 {
		t.Errorf("Elevation() = %v, want 0.5", got)
	}
	tb.Rotate(0, -30)
	if got := tb.Elevation(); got != -0.5 {
		t.Errorf("Elevation() = %v, want -0.5", got)
	}
}

func TestTrackballPan(t *testing.T) {
	tb := NewTrackball(WithRadius(10), WithPanSensitivity(0.01))
	tb.Begin(0, 0)
	tb.Pan(10, 0)
	tb.End()

	// Looking down -Z, right is +X: dragging right moves the target left.
	if got := tb.Target(); !got.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Errorf("Target() = %v, want (-1, 0, 0)", got)
	}
	if d := tb.Eye().Sub(tb.Target()).Len(); !mgl32.FloatEqualThreshold(d, 10, 1e-4) {
		t.Errorf("eye distance after pan = %v, want 10", d)
	}
}

func TestTrackballZoom(t *testing.T) {
	tb := NewTrackball(WithRadius(10), WithZoomFactor(2), WithRadiusLimits(1, 100))
	tb.Zoom(1)
	if got := tb.Radius(); !mgl32.FloatEqual(got, 5) {
		t.Errorf("Radius() after Zoom(1) = %v, want 5", got)
	}
	tb.Zoom(-2)
	if got := tb.Radius(); !mgl32.FloatEqual(got, 20) {
		t.Errorf("Radius() after Zoom(-2) = %v, want 20", got)
	}
	tb.Zoom(10)
	if got := tb.Radius(); got != 1 {
		t.Errorf("Radius() = %v, want clamp to 1", got)
	}
}

func TestTrackballLookAtAll(t *testing.T) {
	tb := NewTrackball(WithAngles(1, 0.3))
	if !tb.LookAtAll(sceneAt(mgl32.Vec3{1, 2, 3}, 4)) {
		t.Fatal("LookAtAll() = false, want true")
	}
	if got := tb.Eye(); !got.ApproxEqualThreshold(mgl32.Vec3{1, 2, 11}, 1e-5) {
		t.Errorf("Eye() = %v, want (1, 2, 11)", got)
	}
	if got := tb.Target(); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Target() = %v, want (1, 2, 3)", got)
	}

	before := tb.Matrix()
	if tb.LookAtAll(noScene()) {
		t.Error("LookAtAll() without scene = true")
	}
	if tb.Matrix() != before {
		t.Error("LookAtAll() without scene changed the matrix")
	}
}
