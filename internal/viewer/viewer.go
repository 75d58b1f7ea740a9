// Package viewer shows a controller session in a desktop window.
package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/klinekart/internal/controller"
	"github.com/suxatcode/klinekart/render"
	"github.com/suxatcode/klinekart/scheduler"
)

var keys = map[ebiten.Key]controller.Key{
	ebiten.KeyArrowUp:    controller.KeyUp,
	ebiten.KeyW:          controller.KeyUp,
	ebiten.KeyArrowDown:  controller.KeyDown,
	ebiten.KeyS:          controller.KeyDown,
	ebiten.KeyArrowLeft:  controller.KeyLeft,
	ebiten.KeyA:          controller.KeyLeft,
	ebiten.KeyArrowRight: controller.KeyRight,
	ebiten.KeyD:          controller.KeyRight,
	ebiten.KeyP:          controller.KeyDebug,
	ebiten.KeyO:          controller.KeyResetCamera,
	ebiten.KeyR:          controller.KeyRandomize,
}

// Game implements ebiten.Game on top of a controller drawing into a raster.
type Game struct {
	ctrl   *controller.Controller
	raster *render.Raster
	clock  scheduler.Clock

	cursorX, cursorY int
	hovering         bool
}

func New(ctrl *controller.Controller, raster *render.Raster) *Game {
	return &Game{ctrl: ctrl, raster: raster, clock: scheduler.SystemClock{}}
}

func (g *Game) Update() error {
	for key, action := range keys {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.KeyDown(action)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.ctrl.KeyUp(action)
		}
	}

	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.ctrl.PointerMove(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ctrl.PointerDown()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.ctrl.PointerUp()
	}
	if _, wheel := ebiten.Wheel(); wheel != 0 {
		g.ctrl.Scroll(float64(x), float64(y), wheel)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.ctrl.Frame(g.clock.Now()); err != nil {
		log.Error().Msgf("%v", err)
	}
	screen.WritePixels(g.raster.Image().Pix)

	hovering := g.ctrl.Hovered() >= 0
	if hovering != g.hovering {
		g.hovering = hovering
		if hovering {
			ebiten.SetCursorShape(ebiten.CursorShapePointer)
		} else {
			ebiten.SetCursorShape(ebiten.CursorShapeDefault)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := g.raster.Size(); w != outsideWidth || h != outsideHeight {
		g.raster.Resize(outsideWidth, outsideHeight)
		g.ctrl.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and blocks until it is closed.
func Run(g *Game, title string) error {
	w, h := g.raster.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return errors.Wrap(ebiten.RunGame(g), "run viewer")
}
