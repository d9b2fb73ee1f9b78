package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput  Phase = iota // 0: poll input, broadcast translated events
	PhaseStep                // 1: broadcast the step heartbeat
	PhaseUpdate              // 2: move, collide, report bounds, flush deletions
	PhaseDraw                // 3: render entities by altitude
	PhaseSwap                // 4: present the back buffer
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseStep:
		return "step"
	case PhaseUpdate:
		return "update"
	case PhaseDraw:
		return "draw"
	case PhaseSwap:
		return "swap"
	}
	return "unknown"
}

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
