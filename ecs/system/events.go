package system

import (
	"github.com/milk9111/isowalk/ecs"
	"github.com/milk9111/isowalk/logging"
	"github.com/sirupsen/logrus"
)

// EventLogSystem logs the tick's events. Schedule it last so it sees
// everything earlier systems pushed.
type EventLogSystem struct {
	log logrus.FieldLogger
}

func NewEventLogSystem(log logrus.FieldLogger) *EventLogSystem {
	if log == nil {
		log = logging.Discard()
	}
	return &EventLogSystem{log: log}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Peek() {
		switch data := evt.Data.(type) {
		case ecs.PathAssigned:
			s.log.WithFields(logrus.Fields{
				"entity": data.Entity.String(),
				"goal":   data.Goal,
				"steps":  data.Steps,
			}).Info("path assigned")
		case ecs.Arrived:
			s.log.WithFields(logrus.Fields{
				"entity": data.Entity.String(),
				"tile":   data.Tile,
			}).Info("arrived")
		default:
			s.log.WithField("type", evt.Type).Debug("event")
		}
	}
}
