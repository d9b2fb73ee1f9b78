package system

import (
	"time"

	coresys "github.com/l1jgo/gridsim/internal/core/system"
	"github.com/l1jgo/gridsim/internal/display"
	"github.com/l1jgo/gridsim/internal/world"
	"go.uber.org/zap"
)

// DrawSystem renders all entities lowest altitude first. Phase 3 (Draw).
type DrawSystem struct {
	world   *world.World
	display display.Display
}

func NewDrawSystem(w *world.World, d display.Display) *DrawSystem {
	return &DrawSystem{world: w, display: d}
}

func (s *DrawSystem) Phase() coresys.Phase { return coresys.PhaseDraw }

func (s *DrawSystem) Update(_ time.Duration) {
	s.world.Draw(s.display)
}

// SwapSystem presents the finished frame. Phase 4 (Swap).
type SwapSystem struct {
	display display.Display
	log     *zap.Logger
}

func NewSwapSystem(d display.Display, log *zap.Logger) *SwapSystem {
	return &SwapSystem{display: d, log: log}
}

func (s *SwapSystem) Phase() coresys.Phase { return coresys.PhaseSwap }

func (s *SwapSystem) Update(_ time.Duration) {
	if err := s.display.SwapBuffers(); err != nil {
		s.log.Warn("swap buffers failed", zap.Error(err))
	}
}
