package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"
)

// kappa places the control points of a cubic bezier quarter circle.
const kappa = 0.5522847498

const (
	minTextSize = 1.0
	maxTextSize = 400.0
)

// Raster is a Surface backed by an in-memory RGBA image.
type Raster struct {
	img   *image.RGBA
	z     *xvector.Rasterizer
	font  *opentype.Font
	faces map[int]font.Face
}

func NewRaster(width, height int) (*Raster, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse go regular font")
	}
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		z:     xvector.NewRasterizer(width, height),
		font:  fnt,
		faces: map[int]font.Face{},
	}, nil
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image when the size changed.
func (r *Raster) Resize(width, height int) {
	if w, h := r.Size(); w == width && h == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *Raster) Clear(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) StrokeLines(segments []Segment, width float64, c color.Color) {
	if len(segments) == 0 || width <= 0 {
		return
	}
	bounds := r.img.Bounds()
	r.z.Reset(bounds.Dx(), bounds.Dy())
	half := width / 2
	view := [4]float64{-width, -width, float64(bounds.Dx()) + width, float64(bounds.Dy()) + width}
	drawn := 0
	for _, seg := range segments {
		from, to, ok := clipSegment(seg.From, seg.To, view)
		if !ok {
			continue
		}
		dx, dy := to[0]-from[0], to[1]-from[1]
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		// the normal keeps every quad in the same winding
		nx, ny := -dy/length*half, dx/length*half
		r.z.MoveTo(float32(from[0]+nx), float32(from[1]+ny))
		r.z.LineTo(float32(to[0]+nx), float32(to[1]+ny))
		r.z.LineTo(float32(to[0]-nx), float32(to[1]-ny))
		r.z.LineTo(float32(from[0]-nx), float32(from[1]-ny))
		r.z.ClosePath()
		drawn++
	}
	if drawn == 0 {
		return
	}
	r.z.Draw(r.img, bounds, image.NewUniform(c), image.Point{})
}

// circleBox returns the pixel box covering the circle, clipped to the image.
func (r *Raster) circleBox(center f64.Vec2, radius float64) (image.Rectangle, bool) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return image.Rectangle{}, false
	}
	box := image.Rect(
		int(math.Floor(center[0]-radius)), int(math.Floor(center[1]-radius)),
		int(math.Ceil(center[0]+radius)), int(math.Ceil(center[1]+radius)),
	).Intersect(r.img.Bounds())
	return box, !box.Empty()
}

// circlePath resets the rasterizer to box and adds the circle in box local
// coordinates.
func (r *Raster) circlePath(box image.Rectangle, center f64.Vec2, radius float64) {
	r.z.Reset(box.Dx(), box.Dy())
	cx := float32(center[0] - float64(box.Min.X))
	cy := float32(center[1] - float64(box.Min.Y))
	rad := float32(radius)
	k := rad * kappa
	r.z.MoveTo(cx+rad, cy)
	r.z.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	r.z.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	r.z.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	r.z.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	r.z.ClosePath()
}

func (r *Raster) FillCircle(center f64.Vec2, radius float64, c color.Color) {
	box, ok := r.circleBox(center, radius)
	if !ok {
		return
	}
	r.circlePath(box, center, radius)
	r.z.Draw(r.img, box, image.NewUniform(c), image.Point{})
}

func (r *Raster) DrawImage(img image.Image, topLeft f64.Vec2, size float64) {
	dr := image.Rect(
		int(math.Round(topLeft[0])), int(math.Round(topLeft[1])),
		int(math.Round(topLeft[0]+size)), int(math.Round(topLeft[1]+size)),
	)
	if dr.Intersect(r.img.Bounds()).Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(r.img, dr, img, img.Bounds(), xdraw.Over, nil)
}

func (r *Raster) DrawImageCircle(img image.Image, center f64.Vec2, radius float64) {
	box, ok := r.circleBox(center, radius)
	if !ok {
		return
	}
	// scale only the visible part of the image
	scaled := image.NewRGBA(box)
	dr := image.Rect(
		int(math.Round(center[0]-radius)), int(math.Round(center[1]-radius)),
		int(math.Round(center[0]+radius)), int(math.Round(center[1]+radius)),
	)
	xdraw.ApproxBiLinear.Scale(scaled, dr, img, img.Bounds(), xdraw.Src, nil)
	r.circlePath(box, center, radius)
	r.z.Draw(r.img, box, scaled, box.Min)
}

func (r *Raster) FillRadialGradient(center f64.Vec2, radius float64, stops []Stop) {
	box, ok := r.circleBox(center, radius)
	if !ok {
		return
	}
	r.circlePath(box, center, radius)
	r.z.Draw(r.img, box, &radialGradient{cx: center[0], cy: center[1], radius: radius, stops: stops}, box.Min)
}

func (r *Raster) face(size float64) (font.Face, error) {
	key := int(math.Round(size * 4))
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(key) / 4,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "font face of size %.2f", size)
	}
	r.faces[key] = face
	return face, nil
}

// Text draws s with its baseline at y. Sizes below one pixel are skipped.
func (r *Raster) Text(s string, x, y, size float64, c color.Color, align Align) {
	if size < minTextSize || s == "" {
		return
	}
	size = math.Min(size, maxTextSize)
	face, err := r.face(size)
	if err != nil {
		return
	}
	dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	switch align {
	case AlignCenter:
		dot.X -= font.MeasureString(face, s) / 2
	case AlignRight:
		dot.X -= font.MeasureString(face, s)
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(s)
}

// clipSegment clips the segment from a to b against view {minX, minY, maxX,
// maxY} using the Liang-Barsky parametrization.
func clipSegment(a, b f64.Vec2, view [4]float64) (f64.Vec2, f64.Vec2, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b[0]-a[0], b[1]-a[1]
	for _, edge := range [4][2]float64{
		{-dx, a[0] - view[0]},
		{dx, view[2] - a[0]},
		{-dy, a[1] - view[1]},
		{dy, view[3] - a[1]},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return f64.Vec2{a[0] + t0*dx, a[1] + t0*dy}, f64.Vec2{a[0] + t1*dx, a[1] + t1*dy}, true
}
