// Package camera provides a pan and zoom view into the cell grid.
package camera

// Camera controls which part of the grid fills the square viewport.
// Positions are in cell units. The lattice has hard edges, so the view is
// kept inside [0, Side) on both axes.
type Camera struct {
	// Position is the view center in cell coordinates
	X, Y float32

	// Zoom level (1.0 = whole grid visible, 2.0 = half the grid per axis)
	Zoom float32

	// ViewSize is the viewport edge in screen pixels
	ViewSize float32

	// Side is the grid edge in cells
	Side float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole grid.
func New(viewSize float32, side int) *Camera {
	c := &Camera{
		ViewSize: viewSize,
		MinZoom:  1.0,
		MaxZoom:  16.0,
	}
	c.Resize(side)
	return c
}

// Visible returns the number of cells visible along each axis.
func (c *Camera) Visible() float32 {
	return c.Side / c.Zoom
}

// SourceRect returns the grid region to draw, in cells.
func (c *Camera) SourceRect() (x, y, w, h float32) {
	v := c.Visible()
	return c.X - v/2, c.Y - v/2, v, v
}

// CellToScreen converts cell coordinates to a screen position.
func (c *Camera) CellToScreen(cx, cy float32) (sx, sy float32) {
	scale := c.ViewSize / c.Visible()
	return c.ViewSize/2 + (cx-c.X)*scale, c.ViewSize/2 + (cy-c.Y)*scale
}

// ScreenToCell converts a screen position to the cell under it.
// ok is false when the position is outside the viewport.
func (c *Camera) ScreenToCell(sx, sy float32) (cx, cy int, ok bool) {
	if sx < 0 || sy < 0 || sx >= c.ViewSize || sy >= c.ViewSize {
		return 0, 0, false
	}
	scale := c.Visible() / c.ViewSize
	last := int(c.Side) - 1
	cx = clampInt(int(c.X+(sx-c.ViewSize/2)*scale), 0, last)
	cy = clampInt(int(c.Y+(sy-c.ViewSize/2)*scale), 0, last)
	return cx, cy, true
}

// Resize points the camera at a grid with a new side and resets the view.
func (c *Camera) Resize(side int) {
	c.Side = float32(side)
	c.Reset()
}

// Pan moves the view by the given delta in screen pixels, stopping at the
// grid edges.
func (c *Camera) Pan(dx, dy float32) {
	scale := c.Visible() / c.ViewSize
	c.X += dx * scale
	c.Y += dy * scale
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.Side / 2
	c.Y = c.Side / 2
	c.Zoom = 1.0
}

// clampCenter keeps the visible region inside the grid.
func (c *Camera) clampCenter() {
	half := c.Visible() / 2
	c.X = clamp(c.X, half, c.Side-half)
	c.Y = clamp(c.Y, half, c.Side-half)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func clampInt(x, min, max int) int {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
