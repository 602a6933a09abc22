package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/isowalk/ecs"
	"github.com/milk9111/isowalk/ecs/component"
	"github.com/milk9111/isowalk/grid"
	"github.com/milk9111/isowalk/input"
	"github.com/milk9111/isowalk/iso"
	"golang.org/x/image/colornames"
)

var (
	tileFill      = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	tileHighlight = color.RGBA{R: 0x5f, G: 0x5f, B: 0x41, A: 0xff}
	tileStroke    = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	tileBlocked   = colornames.Dimgray
	pathColor     = colornames.Gold
	entityColor   = colornames.Orange
	facingColor   = colornames.White
)

// RenderSystem draws the grid, the hovered tile and every entity with a
// Transform. It is the only system that knows about ebiten images.
type RenderSystem struct {
	mapper *iso.Mapper
	grid   *grid.Grid
	router *input.Router
	debug  bool
	white  *ebiten.Image
}

func NewRenderSystem(mapper *iso.Mapper, g *grid.Grid, router *input.Router) *RenderSystem {
	return &RenderSystem{mapper: mapper, grid: g, router: router}
}

func (r *RenderSystem) SetGrid(g *grid.Grid) {
	r.grid = g
}

// SetDebug toggles drawing of the planned path and the HUD line.
func (r *RenderSystem) SetDebug(debug bool) {
	r.debug = debug
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || r.mapper == nil || r.grid == nil {
		return
	}
	if r.white == nil {
		r.white = ebiten.NewImage(3, 3)
		r.white.Fill(color.White)
	}

	origin := r.router.Origin()
	hovered, hasHovered := r.router.Hovered()

	width, height := r.grid.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fill := color.Color(tileFill)
			if !r.grid.IsWalkable(x, y) {
				fill = tileBlocked
			}
			if hasHovered && hovered.X == x && hovered.Y == y {
				fill = tileHighlight
			}
			c := r.mapper.TileCorners(x, y, origin)
			r.fillDiamond(screen, c, fill)
			strokeDiamond(screen, c, tileStroke)
		}
	}

	entities := make([]ecs.Entity, 0, 4)
	ecs.ForEach(w, component.TransformComponent, func(e ecs.Entity, _ *component.Transform) {
		entities = append(entities, e)
	})
	sort.SliceStable(entities, func(i, j int) bool {
		ti, _ := ecs.Get(w, entities[i], component.TransformComponent)
		tj, _ := ecs.Get(w, entities[j], component.TransformComponent)
		return ti.Depth < tj.Depth
	})

	for _, e := range entities {
		if r.debug {
			r.drawPath(w, e, screen, origin)
		}
		r.drawEntity(w, e, screen)
	}
}

func (r *RenderSystem) drawPath(w *ecs.World, e ecs.Entity, screen *ebiten.Image, origin iso.Origin) {
	m, ok := ecs.Get(w, e, component.MotionComponent)
	if !ok || m.Controller == nil {
		return
	}
	for _, p := range m.Controller.Remaining() {
		sx, sy := r.mapper.GridToScreenAt(float64(p.X), float64(p.Y), origin)
		vector.FillRect(screen, float32(sx-3), float32(sy-3), 6, 6, pathColor, false)
	}
}

func (r *RenderSystem) drawEntity(w *ecs.World, e ecs.Entity, screen *ebiten.Image) {
	t, _ := ecs.Get(w, e, component.TransformComponent)
	radius := float32(r.mapper.Config().TileHeight / 3)
	vector.FillCircle(screen, float32(t.X), float32(t.Y), radius, entityColor, true)

	m, ok := ecs.Get(w, e, component.MotionComponent)
	if !ok || m.Controller == nil {
		return
	}
	facing := m.Controller.Facing()
	dx, dy := facing.Delta()
	fx, fy := r.mapper.GridToScreen(float64(dx), float64(dy))
	if l := math.Hypot(fx, fy); l > 0 {
		fx, fy = fx/l*float64(radius)*1.6, fy/l*float64(radius)*1.6
	}
	vector.StrokeLine(screen, float32(t.X), float32(t.Y), float32(t.X+fx), float32(t.Y+fy), 2, facingColor, true)

	if !r.debug {
		return
	}
	frame := 0
	if a, ok := ecs.Get(w, e, component.AnimationComponent); ok {
		frame = a.Frame
	}
	x, y := m.Controller.Position()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("pos %.2f,%.2f  facing %s  %s  frame %d  TPS %.0f",
		x, y, facing, m.Controller.State(), frame, ebiten.ActualTPS()), 8, 8)
}

func (r *RenderSystem) fillDiamond(screen *ebiten.Image, c iso.Corners, clr color.Color) {
	cr, cg, cb, ca := clr.RGBA()
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(cr) / 0xffff,
			ColorG: float32(cg) / 0xffff,
			ColorB: float32(cb) / 0xffff,
			ColorA: float32(ca) / 0xffff,
		}
	}
	vs := []ebiten.Vertex{
		vertex(c.TopX, c.TopY),
		vertex(c.RightX, c.RightY),
		vertex(c.BottomX, c.BottomY),
		vertex(c.LeftX, c.LeftY),
	}
	is := []uint16{0, 1, 2, 0, 2, 3}
	screen.DrawTriangles(vs, is, r.white, nil)
}

func strokeDiamond(screen *ebiten.Image, c iso.Corners, clr color.Color) {
	vector.StrokeLine(screen, float32(c.TopX), float32(c.TopY), float32(c.RightX), float32(c.RightY), 2, clr, true)
	vector.StrokeLine(screen, float32(c.RightX), float32(c.RightY), float32(c.BottomX), float32(c.BottomY), 2, clr, true)
	vector.StrokeLine(screen, float32(c.BottomX), float32(c.BottomY), float32(c.LeftX), float32(c.LeftY), 2, clr, true)
	vector.StrokeLine(screen, float32(c.LeftX), float32(c.LeftY), float32(c.TopX), float32(c.TopY), 2, clr, true)
}
