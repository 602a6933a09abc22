package system

import (
	"github.com/milk9111/isowalk/ecs"
	"github.com/milk9111/isowalk/ecs/component"
)

// MotionSystem advances every path-following entity by a fixed tick and
// emits an Arrived event when one reaches the end of its path.
type MotionSystem struct {
	dt float64
}

func NewMotionSystem(dt float64) *MotionSystem {
	return &MotionSystem{dt: dt}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.MotionComponent, func(e ecs.Entity, m *component.Motion) {
		if m.Controller == nil {
			return
		}
		wasMoving := m.Controller.Moving()
		m.Controller.Advance(s.dt)
		if wasMoving && !m.Controller.Moving() {
			w.Events().Push(ecs.Event{
				Type: ecs.EventArrived,
				Data: ecs.Arrived{Entity: e, Tile: m.Controller.Tile()},
			})
		}
	})
}
