package drawwgpu

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// vertex is one line-list endpoint in clip space.
type vertex struct {
	position mgl32.Vec4
	color    mgl32.Vec4
}

const (
	vertexSize          = uint64(unsafe.Sizeof(vertex{}))
	minVertexBufferSize = 64 << 10
)

// depthRemap maps OpenGL clip depth, -w..w, onto the 0..w range WebGPU clips to.
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// clipSpace adapts an OpenGL style projection matrix to WebGPU clip space.
func clipSpace(proj mgl32.Mat4) mgl32.Mat4 {
	return depthRemap.Mul4(proj)
}

func vertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: vertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x4, Offset: uint64(unsafe.Offsetof(vertex{}.color)), ShaderLocation: 1},
		},
	}
}

// bufferCapacity rounds need up to a power of two no smaller than minVertexBufferSize.
func bufferCapacity(need uint64) uint64 {
	c := uint64(minVertexBufferSize)
	for c < need {
		c <<= 1
	}
	return c
}

// appendSphere appends three great circles of s, one per axis plane, as line
// segments transformed by mvp. Invalid spheres add nothing.
func appendSphere(dst []vertex, mvp mgl32.Mat4, s common.Sphere, c mgl32.Vec3, circle []mgl32.Vec2) []vertex {
	if !s.Valid() || len(circle) == 0 {
		return dst
	}
	color := c.Vec4(1)
	cx, cy, cz, r := s.Center[0], s.Center[1], s.Center[2], s.Radius
	on := [3]func(p mgl32.Vec2) mgl32.Vec4{
		func(p mgl32.Vec2) mgl32.Vec4 { return mgl32.Vec4{cx + p[0]*r, cy + p[1]*r, cz, 1} },
		func(p mgl32.Vec2) mgl32.Vec4 { return mgl32.Vec4{cx + p[0]*r, cy, cz + p[1]*r, 1} },
		func(p mgl32.Vec2) mgl32.Vec4 { return mgl32.Vec4{cx, cy + p[0]*r, cz + p[1]*r, 1} },
	}
	n := len(circle)
	for _, plane := range on {
		for i := range circle {
			a, b := plane(circle[i]), plane(circle[(i+1)%n])
			dst = append(dst,
				vertex{position: mvp.Mul4x1(a), color: color},
				vertex{position: mvp.Mul4x1(b), color: color},
			)
		}
	}
	return dst
}
