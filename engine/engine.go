package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-view/engine/event"
	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/viewer"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

// engine implements the Engine interface.
// Coordinates the window message loop, the paint loop and the viewer.
type engine struct {
	paintRateChannel chan time.Duration // Channel for dynamic paint rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window  window.Window
	viewer  viewer.Viewer
	tracker *event.Tracker

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	paintRate    time.Duration
	tickCallback func(deltaTime float32)

	// paintDue is set by the paint ticker and consumed by the window message
	// loop, so windowed frames start on the thread delivering input.
	paintDue  atomic.Bool
	lastFrame time.Time
}

// Engine is the application entry point.
// It feeds window input to a viewer and requests frames at a fixed paint rate.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Viewer returns the viewer receiving events and rendering frames.
	//
	// Returns:
	//   - viewer.Viewer: the viewer instance
	Viewer() viewer.Viewer

	// EnableProfiler enables render-pass statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables render-pass statistics output.
	DisableProfiler()

	// SetPaintRate sets how many paint events per second the engine emits.
	// Paints beyond what the viewer can render are dropped by the viewer.
	//
	// Parameters:
	//   - fps: target paints per second (defaults to 60 if <= 0)
	SetPaintRate(fps float64)

	// SetTickCallback registers the function called before each paint.
	// Use this for animation that changes the scene or the providers. With a
	// window, the callback and every event listener run on the goroutine
	// running Run; headless, they run on the paint goroutine.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Run starts the paint loop and the window message loop.
	// Blocks until the window closes or Quit is called, then shuts down the
	// viewer and the window.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A viewer is created when none is given. When a window is given it becomes
// the viewer's rendering context, its input is tracked into viewer events, and
// its current size is sent as an initial resize.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		paintRateChannel: make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		profiler:         profiler.NewProfiler(),
		paintRate:        time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.viewer == nil {
		e.viewer = viewer.NewViewer()
	}
	e.viewer.SetPassObserver(func(s viewer.PassStats) {
		if e.profilingEnabled.Load() {
			e.profiler.Record(s)
		}
	})

	if e.window != nil {
		e.viewer.SetRenderingContext(e.window)
		e.tracker = event.Attach(e.window, e.viewer)
		e.tracker.Resize(e.window.Width(), e.window.Height())
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Viewer() viewer.Viewer {
	return e.viewer
}

func (e *engine) Run() {
	e.running.Store(true)
	e.wg.Add(1)
	go e.handlePaint()

	if e.window != nil {
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				e.window.RequestClose()
				return
			default:
			}
			if e.paintDue.CompareAndSwap(true, false) {
				e.loopFrame()
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
	e.viewer.Close()
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("window close failed: %v", err)
		}
	}
	e.running.Store(false)
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handlePaint runs the fixed-rate paint ticker in its own goroutine.
// With a window each tick only marks a frame as due and the message loop runs
// it, so input and paint events reach the viewer from one thread. Headless,
// the frame runs here. Listens for dynamic rate changes via paintRateChannel
// and exits when the quit channel is closed. Recovers from panics to avoid
// crashing the process and signals quit on recovery.
func (e *engine) handlePaint() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("paint goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.paintRate)
	defer ticker.Stop()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			if e.window != nil {
				e.paintDue.Store(true)
				continue
			}
			e.frame()
		case newRate := <-e.paintRateChannel:
			ticker.Reset(newRate)
			e.paintRate = newRate
		}
	}
}

// loopFrame runs a due frame from the window message loop. A panic in the tick
// callback or a listener stops the engine instead of unwinding the loop.
func (e *engine) loopFrame() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame recovered from panic: %v", r)
			e.signalQuit()
		}
	}()
	e.frame()
}

// frame fires the tick callback, then a paint event. It always runs on the
// same goroutine for a given engine.
func (e *engine) frame() {
	now := time.Now()
	if e.lastFrame.IsZero() {
		e.lastFrame = now
	}
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	e.paint()

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
}

// paint emits a paint event carrying the tracked modifier state.
func (e *engine) paint() {
	if e.tracker != nil {
		e.tracker.Paint()
		return
	}
	e.viewer.Notify(event.Paint{})
}

// EnableProfiler enables render-pass statistics output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables render-pass statistics output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetPaintRate sets the paint rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetPaintRate(fps float64) {
	newRate := paintInterval(fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.paintRateChannel <- newRate:
		default:
			select {
			case <-e.paintRateChannel:
			default:
			}
			e.paintRateChannel <- newRate
		}
	} else {
		e.paintRate = newRate
	}
}

// SetTickCallback registers the function called before each paint.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// paintInterval converts a rate to a ticker period, defaulting to 60Hz.
func paintInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
