package camera

import (
	"math"
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f64"
)

func assertVec(t *testing.T, exp vector.Vector, act vector.Vector) {
	t.Helper()
	assert.InDelta(t, exp.X(), act.X(), 1e-9)
	assert.InDelta(t, exp.Y(), act.Y(), 1e-9)
}

func TestCamera_identity(t *testing.T) {
	c := New(800, 600)
	assert.Equal(t, f64.Vec2{3, 4}, c.ToScreen(vector.Vector{3, 4}))
	assertVec(t, vector.Vector{3, 4}, c.ToWorld(3, 4))
}

func TestCamera_roundTrip(t *testing.T) {
	c := New(800, 600)
	c.Translate(30, -12)
	c.ZoomAt(100, 200, 3)
	c.Translate(-5, 7)
	c.ZoomAt(400, 10, -2)
	for _, p := range []vector.Vector{{0, 0}, {150, -80}, {-1e4, 3e3}} {
		s := c.ToScreen(p)
		assertVec(t, p, c.ToWorld(s[0], s[1]))
	}
}

func TestCamera_ZoomAt_keepsPointUnderCursor(t *testing.T) {
	c := New(800, 600)
	c.Translate(40, 40)
	before := c.ToWorld(250, 120)
	c.ZoomAt(250, 120, 3)
	assertVec(t, before, c.ToWorld(250, 120))
	assert.InDelta(t, math.Pow(1.1, 3), c.Zoom, 1e-12)
	assert.InDelta(t, math.Pow(1.1, 3)*10, c.Scaled(10), 1e-9)

	c.ZoomAt(250, 120, 0)
	assert.InDelta(t, math.Pow(1.1, 3), c.Zoom, 1e-12, "zero delta is ignored")
}

func TestCamera_PanStep(t *testing.T) {
	c := New(800, 600)
	c.PanStep()
	assert.Equal(t, identity, c.Transform(), "no key held")

	c.VX = 1
	c.PanStep()
	assert.Equal(t, f64.Vec2{-Speed, 0}, c.ToScreen(vector.Vector{0, 0}))

	c.Reset()
	c.ZoomAt(0, 0, math.Log(2)/math.Log(ZoomSpeed))
	c.VX, c.VY = 0, -1
	c.PanStep()
	// the world moves Speed/Zoom world units, which is Speed screen pixels
	s := c.ToScreen(vector.Vector{0, 0})
	assert.InDelta(t, 0, s[0], 1e-9)
	assert.InDelta(t, Speed, s[1], 1e-9)
}

func TestCamera_DragPan(t *testing.T) {
	c := New(800, 600)
	c.ZoomAt(10, 10, 5)
	grabbed := c.ToWorld(100, 100)
	c.DragPan(100, 100, 160, 90)
	assertVec(t, grabbed, c.ToWorld(160, 90))
}

func TestCamera_Reset(t *testing.T) {
	c := New(800, 600)
	c.Translate(3, 3)
	c.ZoomAt(1, 1, 2)
	c.Reset()
	assert.Equal(t, identity, c.Transform())
	assert.Equal(t, 1.0, c.Zoom)
}
