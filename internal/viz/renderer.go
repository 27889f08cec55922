package viz

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gravitas-015/hexpath/pkg/grid"
	"github.com/gravitas-015/hexpath/pkg/hex"
	"github.com/gravitas-015/hexpath/pkg/search"
)

// Cell palette, roughly matching the original demo: cool tones for the
// static grid, warm tones for search progress.
var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	OpenColor       = color.RGBA{70, 100, 120, 255}
	ObstacleColor   = color.RGBA{40, 40, 48, 255}
	StartColor      = color.RGBA{60, 180, 75, 255}
	GoalColor       = color.RGBA{220, 50, 47, 255}
	FrontierColor   = color.RGBA{230, 200, 60, 255}
	VisitedColor    = color.RGBA{100, 140, 200, 255}
	PathColor       = color.RGBA{255, 140, 0, 255}
	OutlineColor    = color.RGBA{25, 30, 40, 255}
)

// Renderer draws a grid plus one engine snapshot onto an ebiten image.
// It owns scratch vertex buffers so per-frame drawing does not allocate.
type Renderer struct {
	hexSize      float64
	screenWidth  int
	screenHeight int

	whiteImg *ebiten.Image
	fillVs   []ebiten.Vertex
	fillIs   []uint16
}

func NewRenderer(hexSize float64, screenWidth, screenHeight int) *Renderer {
	whiteImg := ebiten.NewImage(1, 1)
	whiteImg.Fill(color.White)

	return &Renderer{
		hexSize:      hexSize,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		whiteImg:     whiteImg,
		fillVs:       make([]ebiten.Vertex, 0, 18),
		fillIs:       make([]uint16, 0, 18),
	}
}

// Draw renders every cell of g colored by classification and the snapshot's
// frontier/visited/path membership. Search overlays win over the base cell
// color; start and goal always stay visible.
func (r *Renderer) Draw(screen *ebiten.Image, g *grid.Grid, snap search.Snapshot) {
	onPath := make(map[hex.Axial]bool, len(snap.Path))
	for _, c := range snap.Path {
		onPath[c] = true
	}

	for _, c := range g.All() {
		cell, err := g.Classify(c)
		if err != nil {
			continue
		}
		fill := OpenColor
		switch {
		case cell == grid.Start:
			fill = StartColor
		case cell == grid.Goal:
			fill = GoalColor
		case cell == grid.Obstacle:
			fill = ObstacleColor
		case onPath[c]:
			fill = PathColor
		case snap.Frontier[c]:
			fill = FrontierColor
		case snap.Visited[c]:
			fill = VisitedColor
		}
		r.drawHex(screen, c, fill)
	}
}

// drawHex fills one pointy-top hex centered on the cell's pixel position.
func (r *Renderer) drawHex(target *ebiten.Image, c hex.Axial, fill color.RGBA) {
	x, y := hex.ToPixel(c, r.hexSize)
	x += float64(r.screenWidth) / 2
	y += float64(r.screenHeight) / 2

	path := vector.Path{}
	for i := 0; i < 6; i++ {
		angle := math.Pi/3*float64(i) + math.Pi/6
		px := x + r.hexSize*0.95*math.Cos(angle)
		py := y + r.hexSize*0.95*math.Sin(angle)
		if i == 0 {
			path.MoveTo(float32(px), float32(py))
		} else {
			path.LineTo(float32(px), float32(py))
		}
	}
	path.Close()

	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	for i := range r.fillVs {
		r.fillVs[i].ColorR = float32(fill.R) / 255
		r.fillVs[i].ColorG = float32(fill.G) / 255
		r.fillVs[i].ColorB = float32(fill.B) / 255
		r.fillVs[i].ColorA = float32(fill.A) / 255
	}
	target.DrawTriangles(r.fillVs, r.fillIs, r.whiteImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}
