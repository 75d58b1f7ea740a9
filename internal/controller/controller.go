package controller

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/suxatcode/klinekart/camera"
	"github.com/suxatcode/klinekart/interaction"
	"github.com/suxatcode/klinekart/layout"
	"github.com/suxatcode/klinekart/render"
	"github.com/suxatcode/klinekart/scheduler"
)

// WheelDeltaPerNotch is the zoom delta of one mouse wheel notch.
const WheelDeltaPerNotch = 3.0

type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyDebug
	KeyResetCamera
	KeyRandomize
)

var keyNames = map[string]Key{
	"ArrowUp":    KeyUp,
	"w":          KeyUp,
	"ArrowDown":  KeyDown,
	"s":          KeyDown,
	"ArrowLeft":  KeyLeft,
	"a":          KeyLeft,
	"ArrowRight": KeyRight,
	"d":          KeyRight,
	"p":          KeyDebug,
	"o":          KeyResetCamera,
	"r":          KeyRandomize,
}

// KeyFromName maps a key name like "ArrowUp" or "w" to its action.
func KeyFromName(name string) Key {
	return keyNames[name]
}

// Controller is one viewing session: it owns the camera and pointer, drives
// the logic loop and renders every frame.
type Controller struct {
	Sim       *layout.ForceSimulation
	Camera    *camera.Camera
	Pointer   *interaction.Pointer
	Scheduler *scheduler.Scheduler
	Renderer  *render.Renderer
	Navigator interaction.Navigator
	Debug     bool
}

func NewController(sim *layout.ForceSimulation, surface render.Surface, images render.Images, nav interaction.Navigator, clock scheduler.Clock) *Controller {
	w, h := surface.Size()
	return &Controller{
		Sim:       sim,
		Camera:    camera.New(float64(w), float64(h)),
		Pointer:   interaction.NewPointer(),
		Scheduler: scheduler.New(clock),
		Renderer:  render.NewRenderer(surface, images),
		Navigator: nav,
	}
}

// KeyDown starts panning while a direction key is held.
func (c *Controller) KeyDown(k Key) {
	switch k {
	case KeyUp:
		c.Camera.VY = -1
	case KeyDown:
		c.Camera.VY = 1
	case KeyLeft:
		c.Camera.VX = -1
	case KeyRight:
		c.Camera.VX = 1
	}
}

// KeyUp stops panning, toggles, resets and randomizes act on release.
func (c *Controller) KeyUp(k Key) {
	switch k {
	case KeyUp, KeyDown:
		c.Camera.VY = 0
	case KeyLeft, KeyRight:
		c.Camera.VX = 0
	case KeyDebug:
		c.Debug = !c.Debug
		log.Debug().Msgf("debug overlay: %v", c.Debug)
	case KeyResetCamera:
		c.Camera.Reset()
		log.Debug().Msg("camera reset")
	case KeyRandomize:
		c.Sim.Randomize()
		log.Debug().Msg("randomized node positions")
	}
}

// Scroll zooms around the screen position (x, y) by the given number of
// wheel notches, positive zooms in.
func (c *Controller) Scroll(x, y, notches float64) {
	c.Camera.ZoomAt(x, y, notches*WheelDeltaPerNotch)
}

func (c *Controller) PointerMove(x, y float64) {
	c.Pointer.Move(x, y, c.Camera, c.Sim)
}

func (c *Controller) PointerDown() {
	c.Pointer.Press()
}

func (c *Controller) PointerUp() {
	c.Pointer.Release()
}

// Resize adapts the viewport, the surface is resized by its owner.
func (c *Controller) Resize(width, height int) {
	c.Camera.Width, c.Camera.Height = float64(width), float64(height)
}

// Hovered is the node under the pointer in the last frame, or -1.
func (c *Controller) Hovered() int {
	return c.Pointer.Hovered
}

// Frame runs one frame: keyboard pan, due logic ticks, pointer resolution
// and rendering. Only a failing navigation is returned.
func (c *Controller) Frame(now time.Time) error {
	c.Camera.PanStep()
	c.Scheduler.Advance(now, c.Sim.Tick)

	c.Pointer.Refresh(c.Camera)
	err := c.Pointer.Resolve(c.Sim.Graph(), c.Sim, c.Navigator)

	c.Render()
	stats := c.Scheduler.Stats
	stats.Frame(now)
	if c.Scheduler.Metrics != nil {
		c.Scheduler.Metrics.Observe(stats)
	}
	c.Pointer.EndFrame()
	return err
}

// Render draws the current state without advancing the simulation.
func (c *Controller) Render() {
	stats := c.Scheduler.Stats
	c.Renderer.Render(render.Frame{
		Graph:     c.Sim.Graph(),
		Camera:    c.Camera,
		Hovered:   c.Pointer.Hovered,
		Debug:     c.Debug,
		FrameRate: stats.DisplayedFrameRate(),
		LogicTime: stats.LogicTime(),
		Skipped:   stats.Skipped,
		Tiers:     c.Sim.Tiers(),
	})
}
