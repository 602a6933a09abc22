package ecs

import "github.com/milk9111/isowalk/grid"

// EventType names what an Event carries.
type EventType string

const (
	// EventPathAssigned carries PathAssigned.
	EventPathAssigned EventType = "path_assigned"
	// EventArrived carries Arrived.
	EventArrived EventType = "arrived"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

type PathAssigned struct {
	Entity Entity
	Goal   grid.Point
	Steps  int
}

type Arrived struct {
	Entity Entity
	Tile   grid.Point
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
