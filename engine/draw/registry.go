package draw

import (
	"github.com/gogpu/gpucontext"
)

// Plugin names in the default preference order.
const (
	PluginGL       = "gl"
	PluginWGPU     = "wgpu"
	PluginRecorder = "recorder"
)

// Registry discovers draw-method factories by name. The highest priority
// registered plugin wins; an empty registry yields a nil factory.
type Registry struct {
	plugins *gpucontext.Registry[Factory]
}

// NewRegistry creates a registry preferring the given plugin names in order.
// With no names the default order (gl, wgpu, then recorder) is used.
//
// Parameters:
//   - priority: plugin names, most preferred first
//
// Returns:
//   - *Registry: the new registry
func NewRegistry(priority ...string) *Registry {
	if len(priority) == 0 {
		priority = []string{PluginGL, PluginWGPU, PluginRecorder}
	}
	return &Registry{
		plugins: gpucontext.NewRegistry[Factory](gpucontext.WithPriority(priority...)),
	}
}

// Register installs a factory under name, replacing any previous one.
// A nil factory is ignored.
func (r *Registry) Register(name string, f Factory) {
	if f == nil {
		return
	}
	r.plugins.Register(name, func() Factory { return f })
}

func (r *Registry) Unregister(name string) {
	r.plugins.Unregister(name)
}

// Lookup returns the factory registered under name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.plugins.Get(name)
}

// Best returns the most preferred registered factory, or nil when none is.
func (r *Registry) Best() Factory {
	return r.plugins.Best()
}

// BestName returns the name of the factory Best would return.
func (r *Registry) BestName() string {
	return r.plugins.BestName()
}

// Available lists the registered plugin names in no particular order.
func (r *Registry) Available() []string {
	return r.plugins.Available()
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry plugins install themselves into.
func Default() *Registry {
	return defaultRegistry
}

// Register installs a factory in the default registry.
func Register(name string, f Factory) {
	defaultRegistry.Register(name, f)
}

// Best returns the most preferred factory of the default registry, or nil.
func Best() Factory {
	return defaultRegistry.Best()
}
