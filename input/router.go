// Package input turns pointer events into path requests for the controlled
// entity.
package input

import (
	"github.com/milk9111/isowalk/grid"
	"github.com/milk9111/isowalk/iso"
	"github.com/milk9111/isowalk/logging"
	"github.com/milk9111/isowalk/navigation"
	"github.com/sirupsen/logrus"
)

// Mover is the part of motion.Controller the router drives.
type Mover interface {
	Tile() grid.Point
	SetPath(path []grid.Point)
}

// Router maps screen positions to tiles. Clicks on walkable tiles request a
// path from the mover's current tile; the result is applied by Update once
// the planner delivers it.
type Router struct {
	mapper  *iso.Mapper
	grid    *grid.Grid
	planner *navigation.Planner
	mover   Mover
	origin  iso.Origin
	log     logrus.FieldLogger

	hovered    grid.Point
	hasHovered bool
}

type Config struct {
	Mapper  *iso.Mapper
	Grid    *grid.Grid
	Planner *navigation.Planner
	Mover   Mover
	Origin  iso.Origin
	Logger  logrus.FieldLogger
}

func NewRouter(cfg Config) *Router {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Router{
		mapper:  cfg.Mapper,
		grid:    cfg.Grid,
		planner: cfg.Planner,
		mover:   cfg.Mover,
		origin:  cfg.Origin,
		log:     log,
	}
}

// SetViewport recenters the grid origin for a new window size.
func (r *Router) SetViewport(width, height float64) {
	r.origin = iso.CenterOrigin(width, height)
}

// SetOrigin places grid (0,0) at an explicit screen position.
func (r *Router) SetOrigin(origin iso.Origin) {
	r.origin = origin
}

func (r *Router) Origin() iso.Origin {
	return r.origin
}

// SetGrid swaps the grid, e.g. after the world spec is reloaded.
func (r *Router) SetGrid(g *grid.Grid) {
	r.grid = g
	if r.hasHovered && !g.InBounds(r.hovered.X, r.hovered.Y) {
		r.hasHovered = false
	}
}

// Pick returns the tile under a screen position and whether it is on the grid.
func (r *Router) Pick(sx, sy float64) (grid.Point, bool) {
	x, y := r.mapper.ScreenToGrid(sx, sy, r.origin)
	p := grid.Point{X: x, Y: y}
	return p, r.grid.InBounds(x, y)
}

// Hover updates the highlighted tile. Off-grid positions clear it.
func (r *Router) Hover(sx, sy float64) (grid.Point, bool) {
	p, ok := r.Pick(sx, sy)
	r.hovered, r.hasHovered = p, ok
	return p, ok
}

func (r *Router) Hovered() (grid.Point, bool) {
	return r.hovered, r.hasHovered
}

// Click requests a path to the tile under (sx, sy). Off-grid and blocked
// tiles are ignored silently and report false.
func (r *Router) Click(sx, sy float64) bool {
	goal, ok := r.Pick(sx, sy)
	if !ok || !r.grid.IsWalkable(goal.X, goal.Y) {
		return false
	}
	start := r.mover.Tile()
	gen := r.planner.Request(r.grid, start, goal)
	r.log.WithFields(logrus.Fields{
		"generation": gen,
		"start":      start,
		"goal":       goal,
	}).Debug("input: path requested")
	return true
}

// Update hands a delivered path to the mover. Empty paths, meaning no route
// or already there, leave the mover alone. It reports whether a path was
// applied.
func (r *Router) Update() bool {
	res, ok := r.planner.Poll()
	if !ok {
		return false
	}
	if res.Err != nil {
		r.log.WithError(res.Err).WithField("generation", res.Generation).Warn("input: search failed")
		return false
	}
	if len(res.Path) == 0 {
		r.log.WithField("goal", res.Goal).Debug("input: no path")
		return false
	}
	r.mover.SetPath(res.Path)
	return true
}
