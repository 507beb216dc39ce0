// Package camera provides a 2D camera for viewing the arena.
package camera

// Camera controls the viewport into a bounded world. At zoom 1 the whole
// world is visible; zooming in never lets the view leave the world.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = whole world fits the viewport)
	Zoom float64

	ViewportW, ViewportH float64
	WorldW, WorldH       float64

	MaxZoom float64

	// scale maps world units to pixels at zoom 1
	scale float64
}

// New creates a camera showing the whole world.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		WorldW:  worldW,
		WorldH:  worldH,
		MaxZoom: 6.0,
	}
	c.Resize(viewportW, viewportH)
	c.Reset()
	return c
}

// Scale returns pixels per world unit at the current zoom.
func (c *Camera) Scale() float64 {
	return c.scale * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	s := c.Scale()
	return c.ViewportW/2 + (wx-c.X)*s, c.ViewportH/2 + (wy-c.Y)*s
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	s := c.Scale()
	return c.X + (sx-c.ViewportW/2)/s, c.Y + (sy-c.ViewportH/2)/s
}

// IsVisible reports whether a circle at (wx, wy) may be on screen.
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return abs(wx-c.X) <= halfW && abs(wy-c.Y) <= halfH
}

// Resize updates the viewport and keeps the world fitted at zoom 1.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.scale = min(viewportW/c.WorldW, viewportH/c.WorldH)
	c.constrain()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.constrain()
}

// SetZoom sets the zoom level, clamped to [1, MaxZoom].
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, 1, c.MaxZoom)
	c.constrain()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the whole-world view.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// constrain keeps the view inside the world where the world is larger than
// the view, and centered on any axis where it is not.
func (c *Camera) constrain() {
	if c.Zoom < 1 {
		c.Zoom = 1
	}
	s := c.Scale()
	if s <= 0 {
		return
	}
	c.X = constrainAxis(c.X, c.ViewportW/(2*s), c.WorldW)
	c.Y = constrainAxis(c.Y, c.ViewportH/(2*s), c.WorldH)
}

func constrainAxis(center, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
