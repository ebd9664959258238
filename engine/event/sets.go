package event

import (
	"math/bits"

	"github.com/gogpu/gpucontext"
)

// KeySet is a set of keys held down. Keys above 255 are not tracked.
// Two sets are equal exactly when they compare equal with ==.
type KeySet [4]uint64

// Keys builds a set from the given keys.
func Keys(keys ...gpucontext.Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// With returns s with k added.
func (s KeySet) With(k gpucontext.Key) KeySet {
	if k < 256 {
		s[k>>6] |= 1 << (k & 63)
	}
	return s
}

// Without returns s with k removed.
func (s KeySet) Without(k gpucontext.Key) KeySet {
	if k < 256 {
		s[k>>6] &^= 1 << (k & 63)
	}
	return s
}

func (s KeySet) Has(k gpucontext.Key) bool {
	return k < 256 && s[k>>6]&(1<<(k&63)) != 0
}

func (s KeySet) Empty() bool {
	return s == KeySet{}
}

func (s KeySet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// Slice returns the keys in ascending order.
func (s KeySet) Slice() []gpucontext.Key {
	out := make([]gpucontext.Key, 0, s.Len())
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, gpucontext.Key(i*64+b))
			w &^= 1 << b
		}
	}
	return out
}

// ButtonSet is a set of mouse buttons held down. Buttons above 7 are not tracked.
type ButtonSet uint8

// Buttons builds a set from the given buttons.
func Buttons(buttons ...gpucontext.MouseButton) ButtonSet {
	var s ButtonSet
	for _, b := range buttons {
		s = s.With(b)
	}
	return s
}

func (s ButtonSet) With(b gpucontext.MouseButton) ButtonSet {
	if b < 8 {
		s |= 1 << b
	}
	return s
}

func (s ButtonSet) Without(b gpucontext.MouseButton) ButtonSet {
	if b < 8 {
		s &^= 1 << b
	}
	return s
}

func (s ButtonSet) Has(b gpucontext.MouseButton) bool {
	return b < 8 && s&(1<<b) != 0
}

func (s ButtonSet) Empty() bool {
	return s == 0
}
