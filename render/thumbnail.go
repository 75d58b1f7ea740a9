package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
	xvector "golang.org/x/image/vector"
)

type thumbKey struct {
	src  string
	size int
}

// Thumbnails caches circular avatar thumbnails per image source and node
// size. Nodes sharing an avatar and an association count share one entry.
type Thumbnails struct {
	cache map[thumbKey]*image.RGBA
}

func NewThumbnails() *Thumbnails {
	return &Thumbnails{cache: map[thumbKey]*image.RGBA{}}
}

func (t *Thumbnails) Len() int {
	return len(t.cache)
}

// Get returns the thumbnail of img clipped to a circle of diameter size,
// rendering it on first use.
func (t *Thumbnails) Get(src string, img image.Image, size int) *image.RGBA {
	key := thumbKey{src: src, size: size}
	if thumb, ok := t.cache[key]; ok {
		return thumb
	}
	thumb := circularThumbnail(img, size)
	t.cache[key] = thumb
	return thumb
}

func circularThumbnail(img image.Image, size int) *image.RGBA {
	bounds := image.Rect(0, 0, size, size)
	scaled := image.NewRGBA(bounds)
	xdraw.ApproxBiLinear.Scale(scaled, bounds, img, img.Bounds(), xdraw.Src, nil)

	thumb := image.NewRGBA(bounds)
	z := xvector.NewRasterizer(size, size)
	half := float32(size) / 2
	k := half * kappa
	z.MoveTo(2*half, half)
	z.CubeTo(2*half, half+k, half+k, 2*half, half, 2*half)
	z.CubeTo(half-k, 2*half, 0, half+k, 0, half)
	z.CubeTo(0, half-k, half-k, 0, half, 0)
	z.CubeTo(half+k, 0, 2*half, half-k, 2*half, half)
	z.ClosePath()
	z.Draw(thumb, bounds, scaled, image.Point{})
	return thumb
}
