package system

import (
	"github.com/milk9111/isowalk/ecs"
	"github.com/milk9111/isowalk/ecs/component"
	"github.com/milk9111/isowalk/motion"
)

const (
	defaultIdleFrames   = 12
	defaultWalkFrames   = 8
	defaultFrameSeconds = 0.1
)

// AnimationSystem picks the sprite row from the facing and cycles frames for
// the current idle/walk state.
type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	return &AnimationSystem{dt: dt}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.AnimationComponent, component.MotionComponent, func(e ecs.Entity, a *component.Animation, m *component.Motion) {
		if m.Controller == nil {
			return
		}
		if a.IdleFrames <= 0 {
			a.IdleFrames = defaultIdleFrames
		}
		if a.WalkFrames <= 0 {
			a.WalkFrames = defaultWalkFrames
		}
		if a.FrameSeconds <= 0 {
			a.FrameSeconds = defaultFrameSeconds
		}

		walking := m.Controller.State() == motion.Moving
		if walking != a.Walking {
			a.Walking = walking
			a.Frame = 0
			a.Elapsed = 0
		}
		a.Row = m.Controller.Facing().SheetRow()

		count := a.IdleFrames
		if a.Walking {
			count = a.WalkFrames
		}
		a.Elapsed += s.dt
		for a.Elapsed >= a.FrameSeconds {
			a.Elapsed -= a.FrameSeconds
			a.Frame = (a.Frame + 1) % count
		}
	})
}
