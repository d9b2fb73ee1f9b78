package system

import (
	"time"

	"github.com/l1jgo/gridsim/internal/core/event"
	coresys "github.com/l1jgo/gridsim/internal/core/system"
	"github.com/l1jgo/gridsim/internal/world"
)

// StepSystem broadcasts the per-frame heartbeat. The counter starts at 0 for
// every new StepSystem and increases by one per frame. Phase 1 (Step).
type StepSystem struct {
	world *world.World
	count int
}

func NewStepSystem(w *world.World) *StepSystem {
	return &StepSystem{world: w}
}

func (s *StepSystem) Phase() coresys.Phase { return coresys.PhaseStep }

func (s *StepSystem) Update(_ time.Duration) {
	s.world.Broadcast(event.Step{Count: s.count})
	s.count++
}

// Count returns how many Step events have been broadcast.
func (s *StepSystem) Count() int { return s.count }
