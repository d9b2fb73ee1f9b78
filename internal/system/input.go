package system

import (
	"time"

	coresys "github.com/l1jgo/gridsim/internal/core/system"
	"github.com/l1jgo/gridsim/internal/input"
	"github.com/l1jgo/gridsim/internal/world"
	"go.uber.org/zap"
)

// InputSystem drains the input source and broadcasts every translated event
// to all entities. Phase 0 (Input).
type InputSystem struct {
	source input.Source
	world  *world.World
	log    *zap.Logger
}

func NewInputSystem(source input.Source, w *world.World, log *zap.Logger) *InputSystem {
	return &InputSystem{source: source, world: w, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for _, ev := range s.source.Poll() {
		handled := s.world.Broadcast(ev)
		if ce := s.log.Check(zap.DebugLevel, "input event"); ce != nil {
			ce.Write(zap.String("type", string(ev.Type())), zap.Int("handled", handled))
		}
	}
}
