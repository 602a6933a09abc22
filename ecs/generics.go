package ecs

import (
	"fmt"

	"github.com/milk9111/isowalk/ecs/component"
)

func setFor[T any](w *World, h component.ComponentHandle[T], create bool) *sparseSet[T] {
	if w == nil || !h.Valid() {
		return nil
	}
	if s, ok := w.stores[h.ID()]; ok {
		return s.(*sparseSet[T])
	}
	if !create {
		return nil
	}
	s := &sparseSet[T]{}
	w.stores[h.ID()] = s
	return s
}

// Add sets the component on e, replacing any previous value.
func Add[T any](w *World, e Entity, h component.ComponentHandle[T], value T) error {
	if !h.Valid() {
		return component.ErrInvalidComponentID
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add %s to %s: %w", h.Name(), e, component.ErrEntityNotAlive)
	}
	setFor(w, h, true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	s := setFor(w, h, false)
	if s == nil {
		return false
	}
	if _, ok := s.get(e); !ok {
		return false
	}
	return s.remove(e.id())
}

func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	_, ok := Get(w, e, h)
	return ok
}

// Get returns a pointer to e's component. The pointer stays valid until the
// component is removed.
func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (*T, bool) {
	s := setFor(w, h, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

// ForEach calls fn for every entity with the component. fn must not add or
// remove components of the same type.
func ForEach[T any](w *World, h component.ComponentHandle[T], fn func(Entity, *T)) {
	s := setFor(w, h, false)
	if s == nil {
		return
	}
	for i := 0; i < len(s.dense); i++ {
		fn(s.dense[i], s.values[i])
	}
}

// ForEach2 iterates the entities that have both components, driven by the
// first one.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	sa := setFor(w, ha, false)
	sb := setFor(w, hb, false)
	if sa == nil || sb == nil {
		return
	}
	for i := 0; i < len(sa.dense); i++ {
		e := sa.dense[i]
		if b, ok := sb.get(e); ok {
			fn(e, sa.values[i], b)
		}
	}
}

// First returns any entity with the component, typically a singleton tag.
func First[T any](w *World, h component.ComponentHandle[T]) (Entity, bool) {
	s := setFor(w, h, false)
	if s == nil || len(s.dense) == 0 {
		return 0, false
	}
	return s.dense[0], true
}

// Count returns how many entities carry the component.
func Count[T any](w *World, h component.ComponentHandle[T]) int {
	s := setFor(w, h, false)
	if s == nil {
		return 0
	}
	return s.len()
}
