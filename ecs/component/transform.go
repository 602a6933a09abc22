package component

// Transform is a screen-space position. Depth orders drawing back to front.
type Transform struct {
	X     float64
	Y     float64
	Depth float64
}

var TransformComponent = NewComponent[Transform]()
