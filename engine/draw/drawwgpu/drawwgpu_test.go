package drawwgpu

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/draw"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

type nullSurface struct{}

func (nullSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }

func TestFactoryDeclinesOtherContexts(t *testing.T) {
	f := NewFactory()
	if m := f.CreateDrawMethod(nil); m != nil {
		t.Errorf("CreateDrawMethod(nil) = %v, want nil", m)
	}
	if m := f.CreateDrawMethod("not a window"); m != nil {
		t.Errorf("CreateDrawMethod(string) = %v, want nil", m)
	}
	if m := f.CreateDrawMethod(nullSurface{}); m == nil {
		t.Error("CreateDrawMethod(SurfaceProvider) = nil, want a method")
	}
}

func TestRegister(t *testing.T) {
	Register()
	defer draw.Default().Unregister(draw.PluginWGPU)
	if f := draw.Default().Lookup(draw.PluginWGPU); f == nil {
		t.Fatal("Lookup(wgpu) = nil after Register")
	}
}

func TestDrawWithoutSurface(t *testing.T) {
	m := NewMethod(nullSurface{})

	if err := m.Draw(); err != nil {
		t.Fatalf("Draw() with empty viewport = %v, want nil", err)
	}

	m.SetViewport(common.Viewport{Width: 64, Height: 48})
	if err := m.Draw(); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("Draw() = %v, want ErrNoSurface", err)
	}
	m.(*method).Release()
}

func TestOptions(t *testing.T) {
	m := NewMethod(nullSurface{},
		WithClearColor(mgl32.Vec4{1, 0, 0, 1}),
		WithoutClear(),
		WithSegments(1),
		WithVSync(false),
		WithForceFallbackAdapter(),
	).(*method)

	if m.clearColor != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("clearColor = %v", m.clearColor)
	}
	if m.clear {
		t.Error("clear = true, want false")
	}
	if len(m.circle) != 3 {
		t.Errorf("len(circle) = %d, want 3", len(m.circle))
	}
	if m.presentMode != wgpu.PresentModeImmediate {
		t.Errorf("presentMode = %v, want immediate", m.presentMode)
	}
	if !m.forceFallbackAdapter {
		t.Error("forceFallbackAdapter = false, want true")
	}
}

func TestAppendSphere(t *testing.T) {
	circle := draw.UnitCircle(8)
	s := common.Sphere{Center: mgl32.Vec3{1, 2, 3}, Radius: 2}
	c := mgl32.Vec3{0.5, 0.25, 1}

	got := appendSphere(nil, mgl32.Ident4(), s, c, circle)
	if want := 3 * 2 * len(circle); len(got) != want {
		t.Fatalf("len = %d, want %d", len(got), want)
	}
	for i, v := range got {
		if v.color != (mgl32.Vec4{0.5, 0.25, 1, 1}) {
			t.Fatalf("vertex %d color = %v", i, v.color)
		}
		d := v.position.Vec3().Sub(s.Center).Len()
		if d < s.Radius-1e-4 || d > s.Radius+1e-4 {
			t.Fatalf("vertex %d at distance %v from center, want %v", i, d, s.Radius)
		}
		if v.position[3] != 1 {
			t.Fatalf("vertex %d w = %v, want 1", i, v.position[3])
		}
	}
	// Each segment ends where the next one starts.
	if !got[1].position.ApproxEqual(got[2].position) {
		t.Errorf("segments not connected: %v != %v", got[1].position, got[2].position)
	}

	moved := appendSphere(nil, mgl32.Translate3D(10, 0, 0), s, c, circle)
	if want := got[0].position.Add(mgl32.Vec4{10, 0, 0, 0}); !moved[0].position.ApproxEqual(want) {
		t.Errorf("translated vertex = %v, want %v", moved[0].position, want)
	}

	if out := appendSphere(got[:0], mgl32.Ident4(), common.InvalidSphere(), c, circle); len(out) != 0 {
		t.Errorf("invalid sphere appended %d vertices", len(out))
	}
}

func TestClipSpace(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 1, 100)
	clip := clipSpace(proj)

	tests := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near plane", -1, 0},
		{"far plane", -100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := clip.Mul4x1(mgl32.Vec4{0, 0, tt.z, 1})
			if got := p[2] / p[3]; got < tt.depth-1e-4 || got > tt.depth+1e-4 {
				t.Errorf("depth = %v, want %v", got, tt.depth)
			}
		})
	}
}

func TestBufferCapacity(t *testing.T) {
	tests := []struct {
		need uint64
		want uint64
	}{
		{0, minVertexBufferSize},
		{minVertexBufferSize, minVertexBufferSize},
		{minVertexBufferSize + 1, 2 * minVertexBufferSize},
		{5 * minVertexBufferSize, 8 * minVertexBufferSize},
	}
	for _, tt := range tests {
		if got := bufferCapacity(tt.need); got != tt.want {
			t.Errorf("bufferCapacity(%d) = %d, want %d", tt.need, got, tt.want)
		}
	}
}

func TestVertexLayout(t *testing.T) {
	l := vertexLayout()
	if l.ArrayStride != 32 {
		t.Errorf("ArrayStride = %d, want 32", l.ArrayStride)
	}
	if len(l.Attributes) != 2 || l.Attributes[1].Offset != 16 {
		t.Errorf("Attributes = %+v, want position at 0 and color at 16", l.Attributes)
	}
}
