package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/suxatcode/klinekart/camera"
	"github.com/suxatcode/klinekart/graph"
	"github.com/suxatcode/klinekart/layout"
	"golang.org/x/image/math/f64"
)

const (
	// SharpZoom is the zoom from which avatars are drawn from the full image
	// instead of the cached thumbnail.
	SharpZoom = 0.85

	connectionWidth  = 1.0
	highlightWidth   = 3.0
	neighborTextSize = 18.0
	hoveredTextSize  = 26.0
	debugTextSize    = 18.0
	overlayTextSize  = 24.0
	// labelOffset is the distance between a node's rim and its name.
	labelOffset = 15.0
)

var (
	Background  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Connection  = color.NRGBA{A: 0xff}
	Placeholder = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	Highlight   = color.NRGBA{R: 0xd8, G: 0x34, B: 0x80, A: 0xff}
	Title       = color.NRGBA{R: 0xd9, G: 0x03, B: 0x68, A: 0xff}
	Overlay     = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	DebugText   = color.NRGBA{A: 0xff}

	halo = []Stop{
		{Offset: 0, Color: color.NRGBA{R: 216, G: 52, B: 128, A: 255}},
		{Offset: 0.8, Color: color.NRGBA{R: 216, G: 52, B: 128, A: 230}},
		{Offset: 1, Color: color.NRGBA{R: 216, G: 52, B: 128, A: 0}},
	}
)

// Images provides loaded avatars by source.
type Images interface {
	Get(src string) (image.Image, bool)
}

// Frame is everything drawn in one frame.
type Frame struct {
	Graph  *graph.Graph
	Camera *camera.Camera
	// Hovered is the node under the pointer, or -1.
	Hovered   int
	Debug     bool
	FrameRate float64
	LogicTime time.Duration
	Skipped   int
	Tiers     layout.Tiers
}

type Renderer struct {
	surface Surface
	images  Images
	thumbs  *Thumbnails
	lines   []Segment
}

func NewRenderer(surface Surface, images Images) *Renderer {
	return &Renderer{surface: surface, images: images, thumbs: NewThumbnails()}
}

func (r *Renderer) Thumbnails() *Thumbnails {
	return r.thumbs
}

func (r *Renderer) Render(f Frame) {
	s := r.surface
	width, height := s.Size()
	w, h := float64(width), float64(height)
	s.Clear(Background)

	s.Text(fmt.Sprintf("Klinekart  %.0ffps", f.FrameRate), w-20, h-20, overlayTextSize, Overlay, AlignRight)
	if f.Debug {
		r.renderDebugCounters(f, w, h)
	}

	r.renderConnections(f)
	for i := range f.Graph.Nodes {
		r.renderNode(f, i)
	}
	if f.Hovered >= 0 && f.Hovered < len(f.Graph.Nodes) {
		r.renderHovered(f, f.Hovered)
	}
	if f.Debug {
		r.renderIslands(f)
	}
}

func (r *Renderer) renderConnections(f Frame) {
	r.lines = r.lines[:0]
	for _, edge := range f.Graph.Edges {
		r.lines = append(r.lines, Segment{
			From: f.Camera.ToScreen(f.Graph.Nodes[edge.A].Pos),
			To:   f.Camera.ToScreen(f.Graph.Nodes[edge.B].Pos),
		})
	}
	r.surface.StrokeLines(r.lines, f.Camera.Scaled(connectionWidth), Connection)
}

func (r *Renderer) visible(center f64.Vec2, radius float64) bool {
	width, height := r.surface.Size()
	return center[0]+radius >= 0 && center[1]+radius >= 0 &&
		center[0]-radius <= float64(width) && center[1]-radius <= float64(height)
}

func (r *Renderer) renderNode(f Frame, i int) {
	node := f.Graph.Nodes[i]
	center := f.Camera.ToScreen(node.Pos)
	size := f.Camera.Scaled(node.Size())
	radius := size / 2
	if !r.visible(center, radius) {
		return
	}
	img, loaded := r.images.Get(node.User.Img)
	if !loaded {
		r.surface.FillCircle(center, radius, Placeholder)
		return
	}
	if f.Camera.Zoom < SharpZoom {
		thumb := r.thumbs.Get(node.User.Img, img, int(math.Ceil(node.Size())))
		r.surface.DrawImage(thumb, f64.Vec2{center[0] - radius, center[1] - radius}, size)
		return
	}
	r.surface.DrawImageCircle(img, center, radius)
}

func (r *Renderer) renderName(f Frame, i int, size float64, c color.Color) {
	node := f.Graph.Nodes[i]
	pos := f.Camera.ToScreen(node.Pos)
	above := f.Camera.Scaled(node.Size()/2 + labelOffset)
	r.surface.Text(node.User.Name, pos[0], pos[1]-above, f.Camera.Scaled(size), c, AlignCenter)
}

// renderHovered redraws the hovered node and its neighbors on top of
// everything else.
func (r *Renderer) renderHovered(f Frame, i int) {
	g := f.Graph
	from := f.Camera.ToScreen(g.Nodes[i].Pos)
	for _, neighbor := range g.Neighbors(i) {
		to := f.Camera.ToScreen(g.Nodes[neighbor].Pos)
		r.surface.StrokeLines([]Segment{{From: from, To: to}}, f.Camera.Scaled(highlightWidth), Highlight)
		r.renderName(f, neighbor, neighborTextSize, Highlight)
		r.renderNode(f, neighbor)
	}
	r.surface.FillRadialGradient(from, f.Camera.Scaled(g.Nodes[i].Size()/1.5), halo)
	r.renderNode(f, i)
	r.renderName(f, i, hoveredTextSize, Title)
}

func (r *Renderer) renderIslands(f Frame) {
	size := f.Camera.Scaled(debugTextSize)
	line := f.Camera.Scaled(22)
	for i, island := range f.Graph.Islands {
		c := f.Camera.ToScreen(island.Centroid)
		for k, text := range []string{
			fmt.Sprintf("Island %d", i+1),
			fmt.Sprintf("Centroid: (%.2f, %.2f)", island.Centroid.X(), island.Centroid.Y()),
			fmt.Sprintf("Velocity: (%.2f, %.2f)", island.Vel.X(), island.Vel.Y()),
			fmt.Sprintf("Mass: %.2f", island.Mass),
		} {
			r.surface.Text(text, c[0], c[1]+float64(k-1)*line, size, DebugText, AlignCenter)
		}
	}
}

func (r *Renderer) renderDebugCounters(f Frame, w, h float64) {
	s := r.surface
	s.Text("1337 h4xx0r m0d3", 20, h-20, overlayTextSize, Overlay, AlignLeft)
	for k, text := range []string{
		fmt.Sprintf("Zoom: %.2f", f.Camera.Zoom),
		fmt.Sprintf("Node count: %d", len(f.Graph.Nodes)),
		fmt.Sprintf("Connection count: %d", len(f.Graph.Edges)),
		fmt.Sprintf("Island count: %d", len(f.Graph.Islands)),
		fmt.Sprintf("Average logic update time: %.0f", float64(f.LogicTime)/float64(time.Millisecond)),
		fmt.Sprintf("Skipped ticks: %d", f.Skipped),
		fmt.Sprintf("Tiers: sibling %s, island %s, node %s, render %s", f.Tiers.Sibling, f.Tiers.Island, f.Tiers.Node, f.Tiers.Render),
	} {
		s.Text(text, w-350, h-20-float64(k)*22, overlayTextSize, Overlay, AlignLeft)
	}
}
