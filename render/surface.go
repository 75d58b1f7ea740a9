// Package render draws a laid out graph onto a Surface.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/math/f64"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Segment is a straight line in screen space.
type Segment struct {
	From, To f64.Vec2
}

// Surface is a drawing target in screen coordinates.
type Surface interface {
	Size() (width, height int)
	Clear(c color.Color)
	// StrokeLines strokes all segments as one path.
	StrokeLines(segments []Segment, width float64, c color.Color)
	FillCircle(center f64.Vec2, radius float64, c color.Color)
	// DrawImage scales img into the square of side size at topLeft.
	DrawImage(img image.Image, topLeft f64.Vec2, size float64)
	// DrawImageCircle scales img into the square around center and clips it
	// to the inscribed circle.
	DrawImageCircle(img image.Image, center f64.Vec2, radius float64)
	// FillRadialGradient fills the circle with a gradient running through
	// stops from the center outward.
	FillRadialGradient(center f64.Vec2, radius float64, stops []Stop)
	Text(s string, x, y, size float64, c color.Color, align Align)
}
