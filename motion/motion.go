// Package motion moves an entity along a tile path one frame at a time.
package motion

import (
	"math"

	"github.com/milk9111/isowalk/common"
	"github.com/milk9111/isowalk/grid"
)

const (
	DefaultSpeed         = 2.0
	DefaultSnapThreshold = 0.1
)

// State is the controller's movement state.
type State uint8

const (
	Idle State = iota
	Moving
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	}
	return "unknown"
}

// Frame is what the renderer needs each tick.
type Frame struct {
	X         float64
	Y         float64
	Facing    Direction
	State     State
	Target    grid.Point
	Remaining int
}

// Controller owns one entity's continuous position and the path it follows.
// It is not safe for concurrent use; drive it from the tick loop.
type Controller struct {
	x, y   float64
	path   []grid.Point
	index  int
	target grid.Point
	moving bool
	facing Direction
	speed  float64
	snap   float64
}

type Option func(*Controller)

// WithSpeed sets the speed in tiles per second.
func WithSpeed(speed float64) Option {
	return func(c *Controller) {
		if speed > 0 {
			c.speed = speed
		}
	}
}

func WithSnapThreshold(threshold float64) Option {
	return func(c *Controller) {
		if threshold > 0 {
			c.snap = threshold
		}
	}
}

func WithFacing(d Direction) Option {
	return func(c *Controller) {
		if d.Valid() {
			c.facing = d
		}
	}
}

func New(x, y float64, opts ...Option) *Controller {
	c := &Controller{
		x:      x,
		y:      y,
		target: grid.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))},
		facing: S,
		speed:  DefaultSpeed,
		snap:   DefaultSnapThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// SetPath starts following path from the current position. An empty path is
// ignored and leaves the controller as it was.
func (c *Controller) SetPath(path []grid.Point) {
	if len(path) == 0 {
		return
	}
	c.path = append(c.path[:0:0], path...)
	c.index = 0
	c.moving = true
	c.retarget()
}

// Stop drops the current path and leaves the entity where it is.
func (c *Controller) Stop() {
	c.path = nil
	c.index = 0
	c.moving = false
}

// Advance moves the entity for dt seconds.
//
// Within snap threshold of the target the position snaps onto it and the next
// path tile becomes the target; past the last tile the controller goes idle and
// keeps its facing. Otherwise the entity steps speed*dt toward the target
// without overshooting, snapping when the step ends inside the threshold.
// Distance left over after reaching a tile carries on toward the next one in
// the same call, so dt values summing to length/speed finish the path.
func (c *Controller) Advance(dt float64) {
	if !c.moving {
		return
	}
	budget := 0.0
	if dt > 0 {
		budget = c.speed * dt
	}

	for c.moving {
		tx, ty := float64(c.target.X), float64(c.target.Y)
		dist := common.Distance(c.x, c.y, tx, ty)

		if dist < c.snap {
			c.arrive()
			continue
		}
		if budget <= 0 {
			return
		}

		ratio := math.Min(budget/dist, 1)
		c.x = common.Lerp(c.x, tx, ratio)
		c.y = common.Lerp(c.y, ty, ratio)
		if ratio < 1 {
			// Rounding can leave the entity a hair short of the tile.
			if common.Distance(c.x, c.y, tx, ty) < c.snap {
				c.arrive()
				budget = 0
				continue
			}
			return
		}
		budget -= dist
		c.arrive()
	}
}

func (c *Controller) arrive() {
	c.x = float64(c.target.X)
	c.y = float64(c.target.Y)
	c.index++
	if c.index >= len(c.path) {
		c.moving = false
		return
	}
	c.retarget()
}

func (c *Controller) retarget() {
	c.target = c.path[c.index]
	c.facing = facingToward(c.x, c.y, float64(c.target.X), float64(c.target.Y))
}

func (c *Controller) Position() (float64, float64) {
	return c.x, c.y
}

// Tile is the tile a new search should start from.
func (c *Controller) Tile() grid.Point {
	return grid.Point{X: int(math.Floor(c.x)), Y: int(math.Floor(c.y))}
}

func (c *Controller) Facing() Direction {
	return c.facing
}

func (c *Controller) State() State {
	if c.moving {
		return Moving
	}
	return Idle
}

func (c *Controller) Moving() bool {
	return c.moving
}

func (c *Controller) Speed() float64 {
	return c.speed
}

func (c *Controller) Target() grid.Point {
	return c.target
}

// Remaining returns a copy of the tiles still to visit, current target first.
func (c *Controller) Remaining() []grid.Point {
	if !c.moving {
		return nil
	}
	return append([]grid.Point(nil), c.path[c.index:]...)
}

func (c *Controller) Frame() Frame {
	f := Frame{
		X:      c.x,
		Y:      c.y,
		Facing: c.facing,
		State:  c.State(),
		Target: c.target,
	}
	if c.moving {
		f.Remaining = len(c.path) - c.index
	}
	return f
}

// Teleport places the entity on a tile and stops it.
func (c *Controller) Teleport(p grid.Point) {
	c.Stop()
	c.x = float64(p.X)
	c.y = float64(p.Y)
	c.target = p
}
