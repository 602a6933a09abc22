package ecs

// store is the type-erased view the world needs to clean up after a
// destroyed entity.
type store interface {
	remove(id entityID) bool
	len() int
}

// sparseSet keeps components densely packed for iteration with O(1) lookup by
// entity id. Values are stored by pointer so pointers handed out by Get stay
// valid while the set grows.
type sparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int
}

func (s *sparseSet[T]) index(id entityID) int {
	if id == 0 || int(id) > len(s.sparse) {
		return -1
	}
	return s.sparse[id-1]
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx := s.index(e.id())
	if idx < 0 || s.dense[idx] != e {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v T) {
	id := e.id()
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 {
		s.dense[idx] = e
		*s.values[idx] = v
		return
	}
	val := v
	s.dense = append(s.dense, e)
	s.values = append(s.values, &val)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet[T]) remove(id entityID) bool {
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.dense[last] = 0
	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}
