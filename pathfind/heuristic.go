package pathfind

import (
	"github.com/milk9111/isowalk/common"
	"github.com/milk9111/isowalk/grid"
)

const (
	OrthogonalCost = 1.0
	DiagonalCost   = 1.4
)

// Heuristic estimates the remaining cost from a to b.
type Heuristic func(a, b grid.Point) float64

// Manhattan is |dx|+|dy|. It is the default even though it overestimates
// diagonal travel, so searches with diagonals can return a slightly longer
// path than the cheapest one.
func Manhattan(a, b grid.Point) float64 {
	return float64(common.Abs(a.X-b.X) + common.Abs(a.Y-b.Y))
}

// Octile matches the 1 / 1.4 step costs and never overestimates.
func Octile(a, b grid.Point) float64 {
	dx := common.Abs(a.X - b.X)
	dy := common.Abs(a.Y - b.Y)
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(hi-lo)*OrthogonalCost + float64(lo)*DiagonalCost
}

// HeuristicByName resolves the names used in world specs.
func HeuristicByName(name string) (Heuristic, bool) {
	switch name {
	case "", "manhattan":
		return Manhattan, true
	case "octile":
		return Octile, true
	}
	return nil, false
}

func stepCost(from, to grid.Point) float64 {
	if from.X != to.X && from.Y != to.Y {
		return DiagonalCost
	}
	return OrthogonalCost
}
