package motion

import (
	"math"
	"testing"

	"github.com/milk9111/isowalk/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y int) grid.Point {
	return grid.Point{X: x, Y: y}
}

func TestNewDefaults(t *testing.T) {
	c := New(5, 5)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, S, c.Facing())
	assert.Equal(t, DefaultSpeed, c.Speed())
	assert.Equal(t, pt(5, 5), c.Tile())
	assert.Nil(t, c.Remaining())
}

func TestSetPathEmptyStaysIdle(t *testing.T) {
	c := New(2, 2, WithFacing(NE))
	c.SetPath(nil)
	c.SetPath([]grid.Point{})
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, NE, c.Facing())

	c.Advance(1)
	x, y := c.Position()
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 2.0, y)
}

func TestSetPathStartsMoving(t *testing.T) {
	c := New(4, 6)
	c.SetPath([]grid.Point{pt(3, 5), pt(2, 4)})
	assert.Equal(t, Moving, c.State())
	assert.Equal(t, pt(3, 5), c.Target())
	assert.Equal(t, N, c.Facing())
	assert.Equal(t, []grid.Point{pt(3, 5), pt(2, 4)}, c.Remaining())
}

func TestSetPathCopiesInput(t *testing.T) {
	path := []grid.Point{pt(1, 0), pt(2, 0)}
	c := New(0, 0)
	c.SetPath(path)
	path[1] = pt(9, 9)
	assert.Equal(t, []grid.Point{pt(1, 0), pt(2, 0)}, c.Remaining())
}

func TestAdvanceConverges(t *testing.T) {
	cases := []struct {
		name  string
		start grid.Point
		path  []grid.Point
	}{
		{"straight", pt(0, 0), []grid.Point{pt(1, 0), pt(2, 0)}},
		{"diagonal_then_straight", pt(0, 0), []grid.Point{pt(1, 1), pt(2, 1)}},
		{"diagonal", pt(3, 3), []grid.Point{pt(4, 4), pt(5, 5)}},
		{"turn", pt(5, 5), []grid.Point{pt(5, 4), pt(6, 3)}},
		{"single", pt(1, 1), []grid.Point{pt(1, 2)}},
	}
	speeds := []float64{0.7, 1, 2, 3, 3.3, 3.5, 5}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			length := 0.0
			prev := c.start
			for _, p := range c.path {
				length += math.Hypot(float64(p.X-prev.X), float64(p.Y-prev.Y))
				prev = p
			}
			goal := c.path[len(c.path)-1]

			for _, speed := range speeds {
				for steps := 1; steps <= 400; steps++ {
					ctrl := New(float64(c.start.X), float64(c.start.Y), WithSpeed(speed))
					ctrl.SetPath(c.path)
					dt := length / speed / float64(steps)
					for i := 0; i < steps; i++ {
						ctrl.Advance(dt)
					}

					require.Equal(t, Idle, ctrl.State(), "speed=%v steps=%d", speed, steps)
					x, y := ctrl.Position()
					require.Equal(t, float64(goal.X), x, "speed=%v steps=%d", speed, steps)
					require.Equal(t, float64(goal.Y), y, "speed=%v steps=%d", speed, steps)
					require.Equal(t, goal, ctrl.Tile())
				}
			}
		})
	}
}

func TestAdvanceSnapsAfterPartialStep(t *testing.T) {
	c := New(0, 0, WithSpeed(1))
	c.SetPath([]grid.Point{pt(1, 0)})
	c.Advance(0.95)
	x, y := c.Position()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, Idle, c.State())
}

func TestAdvanceNeverOvershoots(t *testing.T) {
	c := New(0, 0, WithSpeed(2))
	c.SetPath([]grid.Point{pt(3, 0)})
	for i := 0; i < 200 && c.Moving(); i++ {
		c.Advance(1.0 / 60)
		x, y := c.Position()
		require.LessOrEqual(t, x, 3.0)
		require.Equal(t, 0.0, y)
	}
	assert.Equal(t, Idle, c.State())
}

func TestAdvancePartialStep(t *testing.T) {
	c := New(0, 0, WithSpeed(2))
	c.SetPath([]grid.Point{pt(1, 0)})
	c.Advance(0.25)
	x, y := c.Position()
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, Moving, c.State())
}

func TestAdvanceSnapsWithinThreshold(t *testing.T) {
	c := New(0.95, 0, WithSpeed(2))
	c.SetPath([]grid.Point{pt(1, 0)})
	c.Advance(0)
	x, _ := c.Position()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, Idle, c.State())
}

func TestAdvanceUpdatesFacingPerTarget(t *testing.T) {
	c := New(4, 6, WithSpeed(1))
	c.SetPath([]grid.Point{pt(5, 6), pt(5, 5), pt(5, 4)})
	assert.Equal(t, SE, c.Facing())

	c.Advance(1)
	assert.Equal(t, pt(5, 5), c.Target())
	assert.Equal(t, NE, c.Facing())

	c.Advance(1.5)
	assert.Equal(t, pt(5, 4), c.Target())
	assert.Equal(t, NE, c.Facing())

	c.Advance(10)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, NE, c.Facing(), "facing is kept once idle")
}

func TestSetPathWhileMovingRetargets(t *testing.T) {
	c := New(0, 0, WithSpeed(1))
	c.SetPath([]grid.Point{pt(1, 0), pt(2, 0)})
	c.Advance(0.5)
	c.SetPath([]grid.Point{pt(0, 1)})
	assert.Equal(t, pt(0, 1), c.Target())
	assert.Equal(t, 1, c.Frame().Remaining)

	c.Advance(5)
	x, y := c.Position()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 1.0, y)
}

func TestStopAndTeleport(t *testing.T) {
	c := New(0, 0)
	c.SetPath([]grid.Point{pt(3, 3)})
	c.Advance(0.1)
	c.Stop()
	assert.Equal(t, Idle, c.State())
	x, _ := c.Position()
	assert.Greater(t, x, 0.0)

	c.Teleport(pt(7, 2))
	assert.Equal(t, pt(7, 2), c.Tile())
	assert.Equal(t, Idle, c.State())
}

func TestFrame(t *testing.T) {
	c := New(2, 2)
	c.SetPath([]grid.Point{pt(3, 3), pt(4, 4)})
	f := c.Frame()
	assert.Equal(t, Frame{X: 2, Y: 2, Facing: S, State: Moving, Target: pt(3, 3), Remaining: 2}, f)
	assert.Equal(t, "moving", f.State.String())
	assert.Equal(t, "idle", Idle.String())
}
