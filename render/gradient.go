package render

import (
	"image"
	"image/color"
	"math"
)

// Stop is a color at offset 0..1 along the gradient.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// radialGradient is an unbounded image whose color depends on the distance
// to the center.
type radialGradient struct {
	cx, cy, radius float64
	stops          []Stop
}

func (g *radialGradient) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g *radialGradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *radialGradient) At(x, y int) color.Color {
	dist := math.Hypot(float64(x)+0.5-g.cx, float64(y)+0.5-g.cy)
	return g.colorAt(dist / g.radius)
}

func (g *radialGradient) colorAt(t float64) color.NRGBA {
	if len(g.stops) == 0 {
		return color.NRGBA{}
	}
	if t <= g.stops[0].Offset {
		return g.stops[0].Color
	}
	for i := 1; i < len(g.stops); i++ {
		a, b := g.stops[i-1], g.stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return g.stops[len(g.stops)-1].Color
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
