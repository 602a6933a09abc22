package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/isowalk/ecs"
	"github.com/milk9111/isowalk/ecs/component"
)

// InputSystem copies the mouse state into every Pointer component.
type InputSystem struct {
	lastX, lastY int
}

func NewInputSystem() *InputSystem {
	return &InputSystem{lastX: -1, lastY: -1}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	x, y := ebiten.CursorPosition()
	moved := x != i.lastX || y != i.lastY
	i.lastX, i.lastY = x, y
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if touches := inpututil.AppendJustPressedTouchIDs(nil); len(touches) > 0 {
		x, y = ebiten.TouchPosition(touches[0])
		clicked = true
		moved = true
	}

	ecs.ForEach(w, component.PointerComponent, func(e ecs.Entity, p *component.Pointer) {
		p.X = float64(x)
		p.Y = float64(y)
		p.Moved = p.Moved || moved
		p.Clicked = p.Clicked || clicked
	})
}
