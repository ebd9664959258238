package window

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running atomic.Bool
}

// newPlatformWindow creates the GLFW window with a legacy OpenGL 2.1 context and
// input callbacks, and stores it as the internal window. The context is left
// detached so render passes can bind it from their own threads.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	if w.noGLContext {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, 2)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	}

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent: w,
		window: win,
	}
	gw.running.Store(true)
	w.internalWindow = gw

	// The swap interval applies to the current context, so set it once here.
	if !w.noGLContext {
		win.MakeContextCurrent()
		glfw.SwapInterval(w.swapInterval)
		glfw.DetachCurrentContext()
	}

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running.Store(false)
			win.SetShouldClose(true)
			return
		}
		k, m := translateKey(key), translateMods(mods)
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyPress != nil {
				w.onKeyPress(k, m)
			}
		case glfw.Release:
			if w.onKeyRelease != nil {
				w.onKeyRelease(k, m)
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCharCallback
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		if w.onTextInput != nil {
			w.onTextInput(string(char))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			// GLFW reports wheel-up as positive y; events use positive for scrolling down.
			w.onScroll(xoff, -yoff)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			if w.onMousePress != nil {
				w.onMousePress(b, xpos, ypos)
			}
		case glfw.Release:
			if w.onMouseRelease != nil {
				w.onMouseRelease(b, xpos, ypos)
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(xpos, ypos)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFocusCallback
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if w.onFocus != nil {
			w.onFocus(focused)
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// platformMakeContextCurrent binds the GL context to the calling thread.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.MakeContextCurrent
func platformMakeContextCurrent(w *engineWindow) {
	if w.internalWindow == nil || w.noGLContext {
		return
	}
	w.internalWindow.(*glfwWindow).window.MakeContextCurrent()
}

// platformSwapBuffers presents the back buffer. GLFW allows this from any thread.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SwapBuffers
func platformSwapBuffers(w *engineWindow) {
	if w.internalWindow == nil || w.noGLContext {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	if !gw.running.Load() {
		return
	}
	gw.window.SwapBuffers()
}

// platformDetachContext releases whatever context is current on the calling thread.
func platformDetachContext(w *engineWindow) {
	if w.noGLContext {
		return
	}
	glfw.DetachCurrentContext()
}

// platformGetSurfaceDescriptor creates a wgpu.SurfaceDescriptor for the GLFW window
// through the wgpuglfw bridge, which has per-platform implementations.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.internalWindow.(*glfwWindow).window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running.Load() && !gw.window.ShouldClose()
}

// platformRequestClose clears the running flag and marks the GLFW window for closing.
func platformRequestClose(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running.Store(false)
	gw.window.SetShouldClose(true)
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running.Store(false)
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
