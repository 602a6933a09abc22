package component

import "github.com/milk9111/isowalk/grid"

// Pathfinding records the last path handed to an entity, for debug drawing.
type Pathfinding struct {
	Goal      grid.Point
	Path      []grid.Point
	Requested int
	Applied   int
}

var PathfindingComponent = NewComponent[Pathfinding]()
