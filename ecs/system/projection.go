package system

import (
	"github.com/milk9111/isowalk/ecs"
	"github.com/milk9111/isowalk/ecs/component"
	"github.com/milk9111/isowalk/iso"
)

// ProjectionSystem writes each moving entity's screen position into its
// Transform. Characters stand half a tile above the projected point so their
// feet sit on the tile.
type ProjectionSystem struct {
	mapper *iso.Mapper
	origin iso.Origin
}

func NewProjectionSystem(mapper *iso.Mapper, origin iso.Origin) *ProjectionSystem {
	return &ProjectionSystem{mapper: mapper, origin: origin}
}

func (s *ProjectionSystem) SetOrigin(origin iso.Origin) {
	s.origin = origin
}

func (s *ProjectionSystem) Update(w *ecs.World) {
	if s == nil || s.mapper == nil || w == nil {
		return
	}
	lift := s.mapper.Config().TileHeight / 2
	ecs.ForEach2(w, component.MotionComponent, component.TransformComponent, func(e ecs.Entity, m *component.Motion, t *component.Transform) {
		if m.Controller == nil {
			return
		}
		x, y := m.Controller.Position()
		sx, sy := s.mapper.GridToScreenAt(x, y, s.origin)
		t.X = sx
		t.Y = sy - lift
		t.Depth = x + y
	})
}
