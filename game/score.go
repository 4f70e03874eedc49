package game

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/event"
)

// scoreboard tallies world events for the HUD
type scoreboard struct {
	log     *zap.Logger
	spawned int
	erased  int
}

func newScoreboard(log *zap.Logger) *scoreboard {
	return &scoreboard{log: log}
}

func (s *scoreboard) EventTypes() []event.EventType {
	return []event.EventType{event.EventEnemySpawned, event.EventEnemyErased, event.EventScheduleExhausted}
}

func (s *scoreboard) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventEnemySpawned:
		s.spawned++
	case event.EventEnemyErased:
		s.erased++
	case event.EventScheduleExhausted:
		s.log.Info("last beat reached",
			zap.Int64("frame", ev.Frame),
			zap.Int("spawned", s.spawned),
			zap.Int("erased", s.erased),
		)
	}
}

func (s *scoreboard) reset() {
	s.spawned, s.erased = 0, 0
}
