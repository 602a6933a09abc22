package pathfind

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/milk9111/isowalk/common"
	"github.com/milk9111/isowalk/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y int) grid.Point {
	return grid.Point{X: x, Y: y}
}

// requireWalkablePath checks every step is one tile from the previous one and
// lands on a walkable tile.
func requireWalkablePath(t *testing.T, g *grid.Grid, start grid.Point, path Path) {
	t.Helper()
	prev := start
	for i, step := range path {
		require.True(t, g.IsWalkable(step.X, step.Y), "step %d %v not walkable", i, step)
		dx := common.Abs(step.X - prev.X)
		dy := common.Abs(step.Y - prev.Y)
		require.True(t, dx <= 1 && dy <= 1 && dx+dy > 0, "step %d %v not adjacent to %v", i, step, prev)
		prev = step
	}
}

func TestFindPathPreconditions(t *testing.T) {
	g := grid.New(10, grid.WithObstacles(pt(4, 4)))
	pf := New(g)

	cases := []struct {
		name        string
		start, goal grid.Point
	}{
		{"same_tile", pt(2, 2), pt(2, 2)},
		{"blocked_goal", pt(0, 0), pt(4, 4)},
		{"blocked_start", pt(4, 4), pt(0, 0)},
		{"goal_out_of_bounds", pt(0, 0), pt(10, 3)},
		{"start_out_of_bounds", pt(-1, 0), pt(3, 3)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Empty(t, pf.FindPath(c.start, c.goal))
		})
	}
}

func TestFindPathTrivialForEveryTile(t *testing.T) {
	g := grid.New(6)
	pf := New(g)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			assert.Empty(t, pf.FindPath(pt(x, y), pt(x, y)))
		}
	}
}

func TestFindPathManhattanOptimalWithoutDiagonals(t *testing.T) {
	g := grid.New(8, grid.WithConnectivity(grid.Conn4))
	pf := New(g)
	pairs := [][2]grid.Point{
		{pt(0, 0), pt(7, 7)},
		{pt(7, 0), pt(0, 7)},
		{pt(3, 3), pt(3, 6)},
		{pt(5, 2), pt(1, 2)},
		{pt(2, 6), pt(6, 1)},
	}
	for _, pr := range pairs {
		start, goal := pr[0], pr[1]
		path := pf.FindPath(start, goal)
		want := common.Abs(goal.X-start.X) + common.Abs(goal.Y-start.Y)
		require.Len(t, path, want, "%v -> %v", start, goal)
		assert.Equal(t, goal, path[len(path)-1])
		requireWalkablePath(t, g, start, path)
		for i, step := range path {
			prev := start
			if i > 0 {
				prev = path[i-1]
			}
			assert.True(t, step.X == prev.X || step.Y == prev.Y, "diagonal step %v -> %v", prev, step)
		}
	}
}

func TestFindPathEnclosedGoal(t *testing.T) {
	// Ring of walls around (5,5).
	ring := []grid.Point{
		pt(4, 4), pt(5, 4), pt(6, 4),
		pt(4, 5), pt(6, 5),
		pt(4, 6), pt(5, 6), pt(6, 6),
	}
	g := grid.New(10, grid.WithObstacles(ring...))
	pf := New(g)

	require.True(t, g.IsWalkable(5, 5))
	assert.Empty(t, pf.FindPath(pt(0, 0), pt(5, 5)))

	res, err := pf.Search(context.Background(), pt(0, 0), pt(5, 5))
	require.NoError(t, err)
	assert.Empty(t, res.Path)
	// Everything reachable was expanded: 100 tiles minus the ring and the
	// enclosed goal.
	assert.Equal(t, 100-len(ring)-1, res.Expanded)
}

func TestFindPathAvoidsObstacles(t *testing.T) {
	walls := []grid.Point{pt(3, 2), pt(3, 3), pt(3, 4)}
	g := grid.New(10, grid.WithObstacles(walls...))
	pf := New(g)

	path := pf.FindPath(pt(0, 0), pt(9, 9))
	require.NotEmpty(t, path)
	assert.Equal(t, pt(9, 9), path[len(path)-1])
	assert.NotContains(t, path, pt(0, 0))
	for _, w := range walls {
		assert.NotContains(t, path, w)
	}
	requireWalkablePath(t, g, pt(0, 0), path)
}

func TestFindPathDiagonalOpenField(t *testing.T) {
	g := grid.New(10)
	pf := New(g)
	path := pf.FindPath(pt(0, 0), pt(9, 9))
	want := Path{pt(1, 1), pt(2, 2), pt(3, 3), pt(4, 4), pt(5, 5), pt(6, 6), pt(7, 7), pt(8, 8), pt(9, 9)}
	assert.Equal(t, want, path)
	assert.InDelta(t, 9*DiagonalCost, path.Length(pt(0, 0)), 1e-9)
}

func TestFindPathDeterministic(t *testing.T) {
	g := grid.New(10, grid.WithObstacles(pt(3, 2), pt(3, 3), pt(3, 4), pt(6, 5), pt(6, 6)))
	first := New(g).FindPath(pt(5, 5), pt(0, 9))
	require.NotEmpty(t, first)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, New(g).FindPath(pt(5, 5), pt(0, 9)))
	}
}

func TestSearchCostMatchesPathLength(t *testing.T) {
	g := grid.New(10, grid.WithObstacles(pt(3, 2), pt(3, 3), pt(3, 4)))
	res, err := New(g).Search(context.Background(), pt(1, 3), pt(8, 3))
	require.NoError(t, err)
	require.NotEmpty(t, res.Path)
	assert.InDelta(t, res.Path.Length(pt(1, 3)), res.Cost, 1e-9)
	assert.Equal(t, len(res.Visited), res.Expanded)
	assert.Equal(t, pt(1, 3), res.Visited[0])
}

// dijkstraCost is an O(V^2) reference for the cheapest path cost.
func dijkstraCost(g *grid.Grid, start, goal grid.Point) float64 {
	w, h := g.Size()
	dist := make([]float64, w*h)
	done := make([]bool, w*h)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[start.Y*w+start.X] = 0
	for {
		best := -1
		for i := range dist {
			if !done[i] && !math.IsInf(dist[i], 1) && (best < 0 || dist[i] < dist[best]) {
				best = i
			}
		}
		if best < 0 {
			return math.Inf(1)
		}
		done[best] = true
		cur := pt(best%w, best/w)
		if cur == goal {
			return dist[best]
		}
		for _, n := range g.Neighbors(cur.X, cur.Y) {
			idx := n.Y*w + n.X
			if d := dist[best] + stepCost(cur, n.Point()); d < dist[idx] {
				dist[idx] = d
			}
		}
	}
}

func TestOctileIsOptimal(t *testing.T) {
	walls := []grid.Point{
		pt(2, 0), pt(2, 1), pt(2, 2), pt(2, 3), pt(2, 4), pt(2, 5),
		pt(5, 3), pt(5, 4), pt(5, 5), pt(5, 6), pt(5, 7), pt(5, 8), pt(5, 9),
		pt(7, 1), pt(8, 1), pt(7, 2),
	}
	g := grid.New(10, grid.WithObstacles(walls...))
	pf := New(g, WithHeuristic(Octile))
	pairs := [][2]grid.Point{
		{pt(0, 0), pt(9, 9)},
		{pt(0, 9), pt(9, 0)},
		{pt(4, 8), pt(8, 0)},
		{pt(1, 5), pt(6, 9)},
	}
	for _, pr := range pairs {
		res, err := pf.Search(context.Background(), pr[0], pr[1])
		require.NoError(t, err)
		require.NotEmpty(t, res.Path)
		assert.InDelta(t, dijkstraCost(g, pr[0], pr[1]), res.Cost, 1e-9, "%v -> %v", pr[0], pr[1])
	}
}

func TestManhattanNeverBeatsOptimal(t *testing.T) {
	g := grid.New(10, grid.WithObstacles(pt(3, 2), pt(3, 3), pt(3, 4), pt(6, 5), pt(6, 6)))
	pf := New(g)
	for _, goal := range []grid.Point{pt(9, 9), pt(0, 9), pt(9, 0), pt(7, 5)} {
		res, err := pf.Search(context.Background(), pt(0, 3), goal)
		require.NoError(t, err)
		require.NotEmpty(t, res.Path)
		assert.GreaterOrEqual(t, res.Cost+1e-9, dijkstraCost(g, pt(0, 3), goal))
	}
}

func TestSearchHonoursContext(t *testing.T) {
	g := grid.New(30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(g).Search(ctx, pt(0, 0), pt(29, 29))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSearchNodeLimit(t *testing.T) {
	g := grid.New(20)
	pf := New(g, WithMaxNodes(5))
	res, err := pf.Search(context.Background(), pt(0, 0), pt(19, 19))
	assert.True(t, errors.Is(err, ErrSearchLimit))
	assert.Empty(t, res.Path)
	assert.Equal(t, 5, res.Expanded)
	assert.Empty(t, pf.FindPath(pt(0, 0), pt(19, 19)))

	// A goal close enough is still found under the cap.
	assert.Equal(t, Path{pt(1, 1)}, pf.FindPath(pt(0, 0), pt(1, 1)))
}

func TestHeuristicByName(t *testing.T) {
	h, ok := HeuristicByName("")
	require.True(t, ok)
	assert.Equal(t, 7.0, h(pt(0, 0), pt(3, 4)))

	h, ok = HeuristicByName("octile")
	require.True(t, ok)
	assert.InDelta(t, 1+3*DiagonalCost, h(pt(0, 0), pt(3, 4)), 1e-9)

	_, ok = HeuristicByName("euclid")
	assert.False(t, ok)
}

func BenchmarkFindPath(b *testing.B) {
	g := grid.New(64)
	for y := 4; y < 60; y += 8 {
		for x := 0; x < 56; x++ {
			g.SetWalkable(x+(y/8%2)*8, y, false)
		}
	}
	pf := New(g)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pf.FindPath(pt(0, 0), pt(63, 63))
	}
}

var _ Graph = (*grid.Grid)(nil)

func TestGraphNeighborsMatchGrid(t *testing.T) {
	g := grid.New(5, grid.WithObstacles(pt(2, 1)))
	var graph Graph = g
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			got := graph.AppendNeighbors(nil, x, y)
			assert.Equal(t, g.Neighbors(x, y), got, "(%d,%d)", x, y)
		}
	}
}
