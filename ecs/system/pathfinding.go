package system

import (
	"github.com/milk9111/isowalk/ecs"
	"github.com/milk9111/isowalk/ecs/component"
	"github.com/milk9111/isowalk/input"
)

// PathfindingSystem feeds the player's pointer into the router and applies
// paths the planner has finished.
type PathfindingSystem struct {
	router *input.Router
}

func NewPathfindingSystem(router *input.Router) *PathfindingSystem {
	return &PathfindingSystem{router: router}
}

func (ps *PathfindingSystem) Update(w *ecs.World) {
	if ps == nil || ps.router == nil || w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	pf, _ := ecs.Get(w, player, component.PathfindingComponent)

	if ptr, ok := ecs.Get(w, player, component.PointerComponent); ok {
		if ptr.Moved {
			ps.router.Hover(ptr.X, ptr.Y)
		}
		if ptr.Clicked && ps.router.Click(ptr.X, ptr.Y) && pf != nil {
			pf.Goal, _ = ps.router.Pick(ptr.X, ptr.Y)
			pf.Requested++
		}
		ptr.Moved = false
		ptr.Clicked = false
	}

	if !ps.router.Update() {
		return
	}

	m, ok := ecs.Get(w, player, component.MotionComponent)
	if !ok || m.Controller == nil {
		return
	}
	remaining := m.Controller.Remaining()
	if pf != nil {
		pf.Path = remaining
		pf.Applied++
	}
	if len(remaining) > 0 {
		w.Events().Push(ecs.Event{
			Type: ecs.EventPathAssigned,
			Data: ecs.PathAssigned{Entity: player, Goal: remaining[len(remaining)-1], Steps: len(remaining)},
		})
	}
}
