package component

// Pointer holds this tick's pointer state in screen pixels.
type Pointer struct {
	X       float64
	Y       float64
	Moved   bool
	Clicked bool
}

var PointerComponent = NewComponent[Pointer]()
