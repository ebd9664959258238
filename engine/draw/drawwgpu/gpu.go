package drawwgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

const lineShader = `
struct VertexOut {
	@builtin(position) position: vec4<f32>,
	@location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) position: vec4<f32>, @location(1) color: vec4<f32>) -> VertexOut {
	var out: VertexOut;
	out.position = position;
	out.color = color;
	return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
	return in.color;
}
`

// gpu holds the wgpu objects of one surface. It is not safe for concurrent use.
type gpu struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	pipeline *wgpu.RenderPipeline

	vertexBuffer *wgpu.Buffer

	format      wgpu.TextureFormat
	alphaMode   wgpu.CompositeAlphaMode
	presentMode wgpu.PresentMode
	width       uint32
	height      uint32
}

// newGPU creates the instance, surface, adapter, device and line pipeline.
// On failure everything created so far is released.
//
// Parameters:
//   - desc: the platform surface descriptor
//   - forceFallbackAdapter: request the software adapter
//   - presentMode: the surface presentation mode
//
// Returns:
//   - *gpu: the ready device, surface not yet configured
//   - error: error if any wgpu object could not be created
func newGPU(desc *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, presentMode wgpu.PresentMode) (g *gpu, err error) {
	g = &gpu{presentMode: presentMode}
	defer func() {
		if err != nil {
			g.release()
			g = nil
		}
	}()

	g.instance = wgpu.CreateInstance(nil)
	g.surface = g.instance.CreateSurface(desc)

	g.adapter, err = g.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    g.surface,
	})
	if err != nil {
		return g, fmt.Errorf("drawwgpu: request adapter: %w", err)
	}

	g.device, err = g.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "oxy-view device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return g, fmt.Errorf("drawwgpu: request device: %w", err)
	}
	g.queue = g.device.GetQueue()

	caps := g.surface.GetCapabilities(g.adapter)
	if len(caps.Formats) == 0 {
		return g, fmt.Errorf("drawwgpu: surface reports no formats")
	}
	g.format = caps.Formats[0]
	if len(caps.AlphaModes) > 0 {
		g.alphaMode = caps.AlphaModes[0]
	}

	g.pipeline, err = g.createPipeline()
	return g, err
}

func (g *gpu) createPipeline() (*wgpu.RenderPipeline, error) {
	module, err := g.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "wireframe shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: lineShader},
	})
	if err != nil {
		return nil, fmt.Errorf("drawwgpu: shader module: %w", err)
	}
	defer module.Release()

	layout, err := g.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "wireframe pipeline layout",
	})
	if err != nil {
		return nil, fmt.Errorf("drawwgpu: pipeline layout: %w", err)
	}
	defer layout.Release()

	pipeline, err := g.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "wireframe pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    g.format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("drawwgpu: render pipeline: %w", err)
	}
	return pipeline, nil
}

// resize reconfigures the surface when the requested size differs from the current one.
func (g *gpu) resize(width, height uint32) {
	if width == 0 || height == 0 || (width == g.width && height == g.height) {
		return
	}
	g.surface.Configure(g.adapter, g.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      g.format,
		Width:       width,
		Height:      height,
		PresentMode: g.presentMode,
		AlphaMode:   g.alphaMode,
	})
	g.width, g.height = width, height
}

// upload writes vertices to the vertex buffer, growing it first when too small.
func (g *gpu) upload(vertices []vertex) error {
	data := wgpu.ToBytes(vertices)
	need := uint64(len(data))
	if g.vertexBuffer == nil || g.vertexBuffer.GetSize() < need {
		if g.vertexBuffer != nil {
			g.vertexBuffer.Release()
			g.vertexBuffer = nil
		}
		buf, err := g.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "wireframe vertices",
			Size:  bufferCapacity(need),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("drawwgpu: vertex buffer: %w", err)
		}
		g.vertexBuffer = buf
	}
	return g.queue.WriteBuffer(g.vertexBuffer, 0, data)
}

// frame records one render pass drawing vertices as a line list, submits it
// and presents the surface texture.
func (g *gpu) frame(clear bool, clearColor mgl32.Vec4, vertices []vertex) error {
	if len(vertices) > 0 {
		if err := g.upload(vertices); err != nil {
			return err
		}
	}

	surfaceTexture, err := g.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("drawwgpu: acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("drawwgpu: surface view: %w", err)
	}
	defer view.Release()

	encoder, err := g.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("drawwgpu: command encoder: %w", err)
	}
	defer encoder.Release()

	loadOp := wgpu.LoadOpLoad
	if clear {
		loadOp = wgpu.LoadOpClear
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  loadOp,
			StoreOp: wgpu.StoreOpStore,
			ClearValue: wgpu.Color{
				R: float64(clearColor[0]),
				G: float64(clearColor[1]),
				B: float64(clearColor[2]),
				A: float64(clearColor[3]),
			},
		}},
	})
	if len(vertices) > 0 {
		pass.SetPipeline(g.pipeline)
		pass.SetVertexBuffer(0, g.vertexBuffer, 0, wgpu.WholeSize)
		pass.Draw(uint32(len(vertices)), 1, 0, 0)
	}
	err = pass.End()
	pass.Release()
	if err != nil {
		return fmt.Errorf("drawwgpu: end render pass: %w", err)
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("drawwgpu: finish commands: %w", err)
	}
	defer commandBuffer.Release()

	g.queue.Submit(commandBuffer)
	g.surface.Present()
	return nil
}

// release frees every created object, newest first.
func (g *gpu) release() {
	if g.vertexBuffer != nil {
		g.vertexBuffer.Release()
		g.vertexBuffer = nil
	}
	if g.pipeline != nil {
		g.pipeline.Release()
		g.pipeline = nil
	}
	if g.queue != nil {
		g.queue.Release()
		g.queue = nil
	}
	if g.device != nil {
		g.device.Release()
		g.device = nil
	}
	if g.adapter != nil {
		g.adapter.Release()
		g.adapter = nil
	}
	if g.surface != nil {
		g.surface.Release()
		g.surface = nil
	}
	if g.instance != nil {
		g.instance.Release()
		g.instance = nil
	}
}
