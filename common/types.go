// package common contains plain value types shared by the viewer packages: bounding volumes,
// frustum planes, viewports and the package-wide logger. They are not interface-wrapped structs.
package common

// Viewport is a window-space rectangle in pixels.
type Viewport struct {
	// X and Y are the lower-left corner of the rectangle.
	X, Y int
	// Width and Height are the rectangle extent. Zero means "not yet sized".
	Width, Height int
}

// Aspect returns Width / Height, or 1 when the viewport has no height.
//
// Returns:
//   - float32: the aspect ratio
func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Empty reports whether the viewport covers no pixels.
//
// Returns:
//   - bool: true if width or height is not positive
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}
