package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive     = errors.New("ecs: entity not alive")
	ErrInvalidComponentID = errors.New("ecs: invalid component id")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentHandle identifies one component type in a world. Create handles
// once at package level with NewComponent.
type ComponentHandle[T any] struct {
	id   ComponentID
	name string
}

func NewComponent[T any]() ComponentHandle[T] {
	var zero T
	return ComponentHandle[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: fmt.Sprintf("%T", zero),
	}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Name() string {
	return h.name
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}
