// Package interaction turns pointer input into hover, click and drag
// actions on the nodes of a graph.
package interaction

import (
	"math"

	"github.com/quartercastle/vector"
	"github.com/suxatcode/klinekart/camera"
	"github.com/suxatcode/klinekart/graph"
	"golang.org/x/image/math/f64"
)

// Simulation is the part of the force simulation pointer handling drives.
type Simulation interface {
	Drag(i int, pos vector.Vector)
	MoveDragged(pos vector.Vector)
	Release()
	Dragged() (int, bool)
}

// Candidate is a node touched by the pointer in the current frame.
type Candidate struct {
	Node   int
	DistSq float64
}

type Pointer struct {
	Screen f64.Vec2
	World  vector.Vector
	Down   bool
	// Released is set for exactly one frame after the button went up.
	Released bool
	// Hovered is the node under the pointer after Resolve, or -1.
	Hovered    int
	Candidates []Candidate
	// Clicked is the node clicked in the current frame, or -1.
	Clicked int

	pressedNow bool
	pressedAt  f64.Vec2
	// pressed is the node under the pointer when the button went down.
	pressed int
	moved   bool
}

// ClickSlop is the distance in pixels the pointer may travel between press
// and release for the release to still count as a click.
const ClickSlop = 3.0

func NewPointer() *Pointer {
	return &Pointer{World: vector.Vector{0, 0}, Hovered: -1, Clicked: -1, pressed: -1}
}

// Move records the new screen position. Holding the button while no node is
// dragged pans the camera, so the world point under the pointer stays put.
func (p *Pointer) Move(x, y float64, cam *camera.Camera, sim Simulation) {
	if _, dragging := sim.Dragged(); p.Down && !dragging {
		cam.DragPan(p.Screen[0], p.Screen[1], x, y)
	}
	if p.Down && math.Hypot(x-p.pressedAt[0], y-p.pressedAt[1]) > ClickSlop {
		p.moved = true
	}
	p.Screen = f64.Vec2{x, y}
	p.World = cam.ToWorld(x, y)
}

// Refresh recomputes the world position after the camera moved underneath
// a still pointer.
func (p *Pointer) Refresh(cam *camera.Camera) {
	p.World = cam.ToWorld(p.Screen[0], p.Screen[1])
}

func (p *Pointer) Press() {
	p.Down = true
	p.pressedNow = true
	p.pressedAt = p.Screen
	p.pressed = -1
	p.moved = false
}

func (p *Pointer) Release() {
	p.Down = false
	p.Released = true
}

// Resolve hit-tests the graph against the pointer and applies the resulting
// hover, click and drag transitions. A press on a node starts dragging it. A
// release counts as a click when it happens over the node that was pressed
// and the pointer stayed within ClickSlop in between, whether the press came
// in an earlier frame or in this one.
func (p *Pointer) Resolve(g *graph.Graph, sim Simulation, nav Navigator) error {
	p.Candidates = HitTest(g, p.World, p.Candidates[:0])
	p.Hovered, p.Clicked = -1, -1
	nearest, found := Nearest(p.Candidates)
	if p.pressedNow {
		p.pressed = nearest
	}

	_, dragging := sim.Dragged()
	if dragging && !p.Released {
		sim.MoveDragged(p.World)
		return nil
	}
	if !found {
		if p.Released {
			p.release(sim)
		}
		return nil
	}

	var err error
	p.Hovered = nearest
	switch {
	case p.Released:
		if nearest == p.pressed && !p.moved {
			p.Clicked = nearest
			if user := g.Nodes[nearest].User; user.ID >= 0 {
				err = nav.OpenProfile(user.ID)
			}
		}
		p.release(sim)
	case p.pressedNow && !dragging:
		sim.Drag(nearest, p.World)
	}
	return err
}

func (p *Pointer) release(sim Simulation) {
	sim.Release()
	p.pressed = -1
	p.moved = false
}

// EndFrame clears the single-frame state.
func (p *Pointer) EndFrame() {
	p.Candidates = p.Candidates[:0]
	p.Released = false
	p.pressedNow = false
}
