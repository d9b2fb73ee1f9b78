package system

import (
	"testing"
	"time"
)

type recordingSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (s *recordingSystem) Phase() Phase { return s.phase }
func (s *recordingSystem) Update(time.Duration) {
	*s.log = append(*s.log, s.name)
}

func TestRunnerOrdersByPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{"swap", PhaseSwap, &log})
	r.Register(&recordingSystem{"update", PhaseUpdate, &log})
	r.Register(&recordingSystem{"input", PhaseInput, &log})
	r.Register(&recordingSystem{"draw", PhaseDraw, &log})
	r.Register(&recordingSystem{"step", PhaseStep, &log})
	r.Register(&recordingSystem{"step2", PhaseStep, &log})

	r.Tick(time.Millisecond)

	want := []string{"input", "step", "step2", "update", "draw", "swap"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, log[i], want[i])
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseUpdate.String() != "update" {
		t.Errorf("PhaseUpdate.String() = %q", PhaseUpdate.String())
	}
	if Phase(99).String() != "unknown" {
		t.Errorf("Phase(99).String() = %q", Phase(99).String())
	}
}
