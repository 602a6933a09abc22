package component

// Animation selects the sprite sheet cell for a walking character: Row comes
// from the facing, Frame cycles every FrameSeconds through IdleFrames or
// WalkFrames.
type Animation struct {
	IdleFrames   int
	WalkFrames   int
	FrameSeconds float64

	Walking bool
	Frame   int
	Row     int
	Elapsed float64
}

var AnimationComponent = NewComponent[Animation]()
