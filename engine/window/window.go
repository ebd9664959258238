package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/gpucontext"
)

// Window provides a platform window with an OpenGL context (or a bare WebGPU
// surface, see WithoutGLContext) and input events.
// Wraps platform-specific window implementations with a common interface.
//
// Input is delivered through the gpucontext.EventSource registrations on the
// goroutine running ProcessMessages. The rendering context may be made current
// on any goroutine; it is held from MakeContextCurrent until the matching
// SwapRenderingBuffers.
type Window interface {
	gpucontext.EventSource

	// MakeContextCurrent binds the window's GL context to the calling OS thread,
	// waiting while another thread holds it.
	MakeContextCurrent()

	// SwapRenderingBuffers presents the back buffer and releases the GL context.
	// Calling it without holding the context still swaps but releases nothing.
	SwapRenderingBuffers()

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	// It must be called from the goroutine running ProcessMessages.
	RequestClose()

	// Close closes the window and releases platform resources.
	// It must be called from the goroutine that created the window.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// SurfaceDescriptor returns the platform surface a WebGPU instance can
	// present to, or nil once the window is closed.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// swapInterval is the number of screen refreshes to wait for per swap.
	swapInterval int

	// noGLContext creates the window without a client API, for WebGPU surfaces.
	noGLContext bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// contextSlot holds a token while some thread owns the GL context.
	contextSlot chan struct{}

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	onKeyPress     func(key gpucontext.Key, mods gpucontext.Modifiers)
	onKeyRelease   func(key gpucontext.Key, mods gpucontext.Modifiers)
	onTextInput    func(text string)
	onMouseMove    func(x, y float64)
	onMousePress   func(button gpucontext.MouseButton, x, y float64)
	onMouseRelease func(button gpucontext.MouseButton, x, y float64)
	onScroll       func(dx, dy float64)
	onResize       func(width, height int)
	onFocus        func(focused bool)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order. The calling
// goroutine is locked to its OS thread and must run ProcessMessages.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:        "oxy-view",
		maxWidth:     3840,
		maxHeight:    2160,
		minWidth:     320,
		minHeight:    200,
		width:        1280,
		height:       720,
		swapInterval: 1,
		contextSlot:  make(chan struct{}, 1),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) OnKeyPress(fn func(key gpucontext.Key, mods gpucontext.Modifiers)) {
	w.onKeyPress = fn
}

func (w *engineWindow) OnKeyRelease(fn func(key gpucontext.Key, mods gpucontext.Modifiers)) {
	w.onKeyRelease = fn
}

func (w *engineWindow) OnTextInput(fn func(text string)) {
	w.onTextInput = fn
}

func (w *engineWindow) OnMouseMove(fn func(x, y float64)) {
	w.onMouseMove = fn
}

func (w *engineWindow) OnMousePress(fn func(button gpucontext.MouseButton, x, y float64)) {
	w.onMousePress = fn
}

func (w *engineWindow) OnMouseRelease(fn func(button gpucontext.MouseButton, x, y float64)) {
	w.onMouseRelease = fn
}

func (w *engineWindow) OnScroll(fn func(dx, dy float64)) {
	w.onScroll = fn
}

func (w *engineWindow) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *engineWindow) OnFocus(fn func(focused bool)) {
	w.onFocus = fn
}

// GLFW reports no IME composition, so these registrations are ignored.
func (w *engineWindow) OnIMECompositionStart(func())                           {}
func (w *engineWindow) OnIMECompositionUpdate(func(state gpucontext.IMEState)) {}
func (w *engineWindow) OnIMECompositionEnd(func(committed string))             {}

func (w *engineWindow) MakeContextCurrent() {
	w.contextSlot <- struct{}{}
	platformMakeContextCurrent(w)
}

func (w *engineWindow) SwapRenderingBuffers() {
	platformSwapBuffers(w)
	select {
	case <-w.contextSlot:
		platformDetachContext(w)
	default:
	}
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	// Wait out a pass that still holds the context.
	w.contextSlot <- struct{}{}
	defer func() { <-w.contextSlot }()
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}
