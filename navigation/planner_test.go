package navigation

import (
	"testing"
	"time"

	"github.com/milk9111/isowalk/grid"
	"github.com/milk9111/isowalk/pathfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y int) grid.Point {
	return grid.Point{X: x, Y: y}
}

func TestPollEmpty(t *testing.T) {
	p := New()
	defer p.Close()
	_, ok := p.Poll()
	assert.False(t, ok)
	assert.Zero(t, p.Generation())
}

func TestSyncPlanner(t *testing.T) {
	g := grid.New(10)
	p := New(WithSync())
	defer p.Close()

	gen := p.Request(g, pt(0, 0), pt(3, 3))
	assert.Equal(t, uint64(1), gen)

	res, ok := p.Poll()
	require.True(t, ok)
	assert.Equal(t, gen, res.Generation)
	assert.NoError(t, res.Err)
	assert.Equal(t, pathfind.Path{pt(1, 1), pt(2, 2), pt(3, 3)}, res.Path)

	_, ok = p.Poll()
	assert.False(t, ok, "a result is delivered once")
}

func TestAsyncPlanner(t *testing.T) {
	g := grid.New(10, grid.WithObstacles(pt(3, 2), pt(3, 3), pt(3, 4)))
	p := New()
	defer p.Close()

	gen := p.Request(g, pt(0, 0), pt(9, 9))
	p.Wait()

	res, ok := p.Poll()
	require.True(t, ok)
	assert.Equal(t, gen, res.Generation)
	require.NotEmpty(t, res.Path)
	assert.Equal(t, pt(9, 9), res.Path[len(res.Path)-1])
	assert.Equal(t, pathfind.New(g).FindPath(pt(0, 0), pt(9, 9)), res.Path)
}

func TestSupersededResultsAreDropped(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
	}{
		{"async", nil},
		{"sync", []Option{WithSync()}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := grid.New(12)
			p := New(c.opts...)
			defer p.Close()

			first := p.Request(g, pt(0, 0), pt(11, 11))
			second := p.Request(g, pt(0, 0), pt(0, 5))
			require.Greater(t, second, first)
			p.Wait()

			res, ok := p.Poll()
			require.True(t, ok)
			assert.Equal(t, second, res.Generation)
			assert.Equal(t, pt(0, 5), res.Goal)

			stats := p.Stats()
			assert.Equal(t, uint64(2), stats.Requested)
			assert.Equal(t, uint64(1), stats.Delivered)
			assert.Equal(t, uint64(1), stats.Dropped)
		})
	}
}

func TestSearchUsesSnapshot(t *testing.T) {
	g := grid.New(6)
	p := New()
	defer p.Close()

	p.Request(g, pt(0, 0), pt(5, 0))
	// Editing the live grid after the request does not affect the search.
	for y := 0; y < 6; y++ {
		g.SetWalkable(3, y, false)
	}
	p.Wait()

	res, ok := p.Poll()
	require.True(t, ok)
	assert.Contains(t, res.Path, pt(3, 0))
}

func TestUnreachableGoalDeliversEmptyPath(t *testing.T) {
	g := grid.New(5, grid.WithObstacles(pt(1, 0), pt(1, 1), pt(0, 1)))
	p := New(WithSync())
	defer p.Close()

	p.Request(g, pt(0, 0), pt(4, 4))
	res, ok := p.Poll()
	require.True(t, ok)
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Path)
}

func TestPlannerPathfindOptions(t *testing.T) {
	g := grid.New(20)
	p := New(WithSync(), WithPathfindOptions(pathfind.WithMaxNodes(3)))
	defer p.Close()

	p.Request(g, pt(0, 0), pt(19, 19))
	res, ok := p.Poll()
	require.True(t, ok)
	assert.ErrorIs(t, res.Err, pathfind.ErrSearchLimit)
	assert.Empty(t, res.Path)
}

func TestCloseIsIdempotent(t *testing.T) {
	g := grid.New(4)
	p := New()
	p.Request(g, pt(0, 0), pt(3, 3))
	p.Close()
	p.Close()

	gen := p.Generation()
	assert.Equal(t, gen, p.Request(g, pt(0, 0), pt(1, 1)), "requests after close are ignored")
}

func TestWaitReturnsWithManyUnpolledRequests(t *testing.T) {
	g := grid.New(10)
	p := New()
	defer p.Close()

	var last uint64
	for i := 0; i < 12; i++ {
		last = p.Request(g, pt(0, 0), pt(9, i%10))
	}

	waited := make(chan struct{})
	go func() {
		p.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait blocked with unpolled requests")
	}

	res, ok := p.Poll()
	require.True(t, ok)
	assert.Equal(t, last, res.Generation)
	_, ok = p.Poll()
	assert.False(t, ok)

	stats := p.Stats()
	assert.Equal(t, uint64(12), stats.Requested)
	assert.Equal(t, uint64(1), stats.Delivered)
	assert.Equal(t, uint64(11), stats.Dropped)
}

func TestSetPathfindOptionsAppliesToLaterRequests(t *testing.T) {
	g := grid.New(20)
	p := New(WithSync(), WithPathfindOptions(pathfind.WithMaxNodes(3)))
	defer p.Close()

	p.Request(g, pt(0, 0), pt(19, 19))
	res, ok := p.Poll()
	require.True(t, ok)
	require.ErrorIs(t, res.Err, pathfind.ErrSearchLimit)

	p.SetPathfindOptions(pathfind.WithHeuristic(pathfind.Octile))
	p.Request(g, pt(0, 0), pt(19, 19))
	res, ok = p.Poll()
	require.True(t, ok)
	assert.NoError(t, res.Err)
	assert.Len(t, res.Path, 19)
}
