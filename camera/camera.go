// Package camera maps world coordinates of the graph to screen coordinates.
package camera

import (
	"math"

	"github.com/quartercastle/vector"
	"golang.org/x/image/math/f64"
)

const (
	// Speed is the pan distance per frame in screen pixels.
	Speed = 7.0
	// ZoomSpeed is the zoom factor per unit of scroll delta.
	ZoomSpeed = 1.1
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Camera holds the viewport and the world to screen transform. The transform
// is only ever changed by translations and uniform positive scales, so it
// always has an inverse.
type Camera struct {
	Width, Height float64
	// VX and VY are the pan directions held by the keyboard, -1, 0 or 1.
	VX, VY float64
	Zoom   float64
	// world -> screen: x' = m[0]*x + m[1]*y + m[2], y' = m[3]*x + m[4]*y + m[5]
	m f64.Aff3
}

func New(width, height float64) *Camera {
	return &Camera{Width: width, Height: height, Zoom: 1, m: identity}
}

// Transform returns the current world to screen matrix.
func (c *Camera) Transform() f64.Aff3 {
	return c.m
}

// Translate moves the world origin by (dx, dy) world units.
func (c *Camera) Translate(dx, dy float64) {
	c.m[2] += c.m[0]*dx + c.m[1]*dy
	c.m[5] += c.m[3]*dx + c.m[4]*dy
}

// Scale scales world space by s around the world origin.
func (c *Camera) Scale(s float64) {
	c.m[0] *= s
	c.m[1] *= s
	c.m[3] *= s
	c.m[4] *= s
}

// PanStep applies one frame of keyboard panning.
func (c *Camera) PanStep() {
	if c.VX == 0 && c.VY == 0 {
		return
	}
	c.Translate(-Speed*c.VX/c.Zoom, -Speed*c.VY/c.Zoom)
}

// ZoomAt zooms by ZoomSpeed^delta keeping the world point under the screen
// position (x, y) fixed.
func (c *Camera) ZoomAt(x, y, delta float64) {
	if delta == 0 {
		return
	}
	zoom := math.Pow(ZoomSpeed, delta)
	c.Zoom *= zoom
	pivot := c.ToWorld(x, y)
	c.Translate(pivot.X(), pivot.Y())
	c.Scale(zoom)
	c.Translate(-pivot.X(), -pivot.Y())
}

// DragPan moves the camera so that the world point under screen position
// from ends up under screen position to.
func (c *Camera) DragPan(fromX, fromY, toX, toY float64) {
	from := c.ToWorld(fromX, fromY)
	to := c.ToWorld(toX, toY)
	c.Translate(to.X()-from.X(), to.Y()-from.Y())
}

func (c *Camera) ToScreen(world vector.Vector) f64.Vec2 {
	x, y := world.X(), world.Y()
	return f64.Vec2{
		c.m[0]*x + c.m[1]*y + c.m[2],
		c.m[3]*x + c.m[4]*y + c.m[5],
	}
}

// ToWorld applies the exact inverse of the current transform.
func (c *Camera) ToWorld(x, y float64) vector.Vector {
	inv := c.inverse()
	return vector.Vector{
		inv[0]*x + inv[1]*y + inv[2],
		inv[3]*x + inv[4]*y + inv[5],
	}
}

func (c *Camera) inverse() f64.Aff3 {
	m := c.m
	det := m[0]*m[4] - m[1]*m[3]
	return f64.Aff3{
		m[4] / det, -m[1] / det, (m[1]*m[5] - m[4]*m[2]) / det,
		-m[3] / det, m[0] / det, (m[3]*m[2] - m[0]*m[5]) / det,
	}
}

// Reset restores the identity transform.
func (c *Camera) Reset() {
	c.m = identity
	c.Zoom = 1
}

// Scaled converts a world length into a screen length.
func (c *Camera) Scaled(length float64) float64 {
	return length * math.Hypot(c.m[0], c.m[3])
}
