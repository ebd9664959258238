// Package drawlists implements the key-bucketed staging area written by cull
// visitors and read by draw methods.
package drawlists

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Element is one drawable produced by culling: a shape and the world matrix it was
// reached with. Elements are shared by pointer between the lists and every reader.
type Element struct {
	Shape *scene.Shape
	World mgl32.Mat4
}

// DrawLists maps an integer sort key (material, shader, pass) to the ordered
// elements staged under it. Every method takes the same mutex for the duration
// of its map access and never calls out while holding it.
type DrawLists struct {
	mu      sync.Mutex
	buckets map[int][]*Element
}

// New creates empty draw lists.
//
// Returns:
//   - *DrawLists: the new lists
func New() *DrawLists {
	return &DrawLists{buckets: make(map[int][]*Element)}
}

// Append adds e to the end of the bucket for key, creating the bucket if absent.
//
// Parameters:
//   - key: the sort key
//   - e: the element to stage
func (d *DrawLists) Append(key int, e *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buckets[key] = append(d.buckets[key], e)
}

// Clear empties every bucket. Empty buckets stay in the map unless deleteBuckets
// is true, which avoids map churn between frames with a stable key set.
//
// Parameters:
//   - deleteBuckets: also drop the bucket entries
func (d *DrawLists) Clear(deleteBuckets bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if deleteBuckets {
		clear(d.buckets)
		return
	}
	for k, b := range d.buckets {
		clear(b)
		d.buckets[k] = b[:0]
	}
}

// Elements appends the bucket for key to out. The element handles are shared,
// the slice is not. A missing key leaves out unchanged.
//
// Parameters:
//   - key: the sort key
//   - out: destination slice
func (d *DrawLists) Elements(key int, out *[]*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[key]
	if !ok {
		return
	}
	*out = append(*out, b...)
}

// Keys appends the keys currently present to out, in ascending order.
//
// Parameters:
//   - out: destination slice
func (d *DrawLists) Keys(out *[]int) {
	d.mu.Lock()
	start := len(*out)
	for k := range d.buckets {
		*out = append(*out, k)
	}
	d.mu.Unlock()
	slices.Sort((*out)[start:])
}

// Len returns the total number of staged elements.
func (d *DrawLists) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, b := range d.buckets {
		n += len(b)
	}
	return n
}
