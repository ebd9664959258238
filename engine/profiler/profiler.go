package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-view/engine/viewer"
)

// Stats summarises the render passes recorded since the last report.
type Stats struct {
	Passes    int
	TimedOut  int
	Cancelled int
	Skipped   int

	AvgCull     time.Duration
	AvgDraw     time.Duration
	AvgElements float64
}

// Profiler collects viewer render-pass statistics and memory usage.
// Outputs a summary to the log at a configurable interval.
//
// Record may be called from render workers while Tick runs on the application loop.
type Profiler struct {
	mu sync.Mutex

	passes    int
	timedOut  int
	cancelled int
	skipped   int
	cullTotal time.Duration
	drawTotal time.Duration
	elements  int

	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now  func() time.Time
	logf func(format string, args ...any)
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and output goes to the standard logger.
//
// Parameters:
//   - options: functional options for interval, clock and output
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logf:           log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Record adds one finished render pass. Passes that never swapped had no
// rendering context and count as skipped.
//
// Parameters:
//   - s: the statistics of the pass
func (p *Profiler) Record(s viewer.PassStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !s.Swapped {
		p.skipped++
		return
	}
	p.passes++
	if s.TimedOut {
		p.timedOut++
	}
	if s.Cancelled {
		p.cancelled++
	}
	p.cullTotal += s.Cull
	p.drawTotal += s.Draw
	p.elements += s.Elements
}

// Snapshot returns the statistics accumulated since the last report without resetting them.
//
// Returns:
//   - Stats: the current summary
func (p *Profiler) Snapshot() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats()
}

// stats builds the summary. Caller must hold the mutex.
func (p *Profiler) stats() Stats {
	s := Stats{
		Passes:    p.passes,
		TimedOut:  p.timedOut,
		Cancelled: p.cancelled,
		Skipped:   p.skipped,
	}
	if p.passes > 0 {
		s.AvgCull = p.cullTotal / time.Duration(p.passes)
		s.AvgDraw = p.drawTotal / time.Duration(p.passes)
		s.AvgElements = float64(p.elements) / float64(p.passes)
	}
	return s
}

// Tick should be called regularly from the application loop.
// Logs pass and memory statistics when the update interval has elapsed, then
// starts a new reporting window.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	s := p.stats()
	fps := float64(s.Passes) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	// TotalAlloc only grows, so its delta is the allocation churn of the window.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
			maxPauseUs = pause
		}
	}

	p.logf("[Profiler] FPS: %.2f | Cull: %v | Draw: %v | Elements: %.1f | Timed out: %d | Cancelled: %d | Skipped: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC max: %d µs | Sys: %.2f MB",
		fps, s.AvgCull, s.AvgDraw, s.AvgElements, s.TimedOut, s.Cancelled, s.Skipped, allocMB, allocRateMB, maxPauseUs, sysMB)

	p.passes, p.timedOut, p.cancelled, p.skipped = 0, 0, 0, 0
	p.cullTotal, p.drawTotal, p.elements = 0, 0, 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
