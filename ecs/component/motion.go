package component

import "github.com/milk9111/isowalk/motion"

// Motion attaches a path-following controller to an entity.
type Motion struct {
	Controller *motion.Controller
}

var MotionComponent = NewComponent[Motion]()
