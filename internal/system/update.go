package system

import (
	"time"

	coresys "github.com/l1jgo/gridsim/internal/core/system"
	"github.com/l1jgo/gridsim/internal/world"
)

// UpdateSystem moves entities, reports collisions and bound crossings, and
// flushes the deferred deletion queue. Phase 2 (Update).
type UpdateSystem struct {
	world *world.World
}

func NewUpdateSystem(w *world.World) *UpdateSystem {
	return &UpdateSystem{world: w}
}

func (s *UpdateSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *UpdateSystem) Update(_ time.Duration) {
	s.world.Update()
}
