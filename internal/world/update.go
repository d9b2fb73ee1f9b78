package world

import (
	"github.com/l1jgo/gridsim/internal/core/event"
	"github.com/l1jgo/gridsim/internal/core/vec"
	"github.com/l1jgo/gridsim/internal/display"
	"go.uber.org/zap"
)

// frameStats counts what happened during one Update.
type frameStats struct {
	moved      int
	collisions int
	blocked    int
	out        int
	destroyed  int
}

// Update advances the world one frame:
//
//  1. every active entity with non-zero velocity predicts its next position;
//  2. a solid mover is checked against every other solid entity, cell by
//     cell; each hit sends one Collision to both, and Hard against Hard
//     cancels the move;
//  3. an uncancelled move is committed;
//  4. a committed position outside [0,h)x[0,v) sends one Out to the mover;
//  5. entities marked for deletion are destroyed and the mark list cleared;
//     deferred removals leave the registry without a destroy hook.
//
// Handlers may mark any entity for deletion, including themselves.
func (w *World) Update() {
	w.busy++
	defer func() { w.busy-- }()

	var st frameStats
	for i := 0; i < w.active.Len(); i++ {
		e, _ := w.active.At(i)
		o := e.Base()
		if o.Velocity().IsZero() {
			continue
		}
		w.move(e, o.PredictPosition(), &st)
	}

	// Destroy hooks may mark more entities; they are handled in this pass.
	for i := 0; i < w.deletions.Len(); i++ {
		e, _ := w.deletions.At(i)
		w.release(e)
		st.destroyed++
	}
	w.deletions.Clear()

	for i := 0; i < w.removals.Len(); i++ {
		e, _ := w.removals.At(i)
		_ = w.active.Remove(e) // a destroyed entity is already gone
	}
	w.removals.Clear()

	if ce := w.log.Check(zap.DebugLevel, "world updated"); ce != nil {
		ce.Write(
			zap.Int("moved", st.moved),
			zap.Int("collisions", st.collisions),
			zap.Int("blocked", st.blocked),
			zap.Int("out", st.out),
			zap.Int("destroyed", st.destroyed),
		)
	}
}

func (w *World) move(e Entity, to vec.Vector, st *frameStats) {
	o := e.Base()
	if o.IsSolid() {
		for j := 0; j < w.active.Len(); j++ {
			other, _ := w.active.At(j)
			if other == e {
				continue
			}
			ob := other.Base()
			if !ob.IsSolid() || !to.SameCell(ob.Position()) {
				continue
			}

			ev := event.Collision{Object1: e, Object2: other, Position: to}
			e.HandleEvent(ev)
			other.HandleEvent(ev)
			st.collisions++

			if o.Solidness() == Hard && ob.Solidness() == Hard {
				st.blocked++
				return
			}
		}
	}

	o.SetPosition(to)
	st.moved++

	if w.outOfBounds(to) {
		e.HandleEvent(event.Out{})
		st.out++
	}
}

func (w *World) outOfBounds(p vec.Vector) bool {
	return p.X < 0 || p.X >= float64(w.horizontal) ||
		p.Y < 0 || p.Y >= float64(w.vertical)
}

// Draw renders every active entity, lowest altitude first. Entities sharing
// an altitude draw in registry order. Deletions requested while drawing wait
// for the next Update.
func (w *World) Draw(d display.Display) {
	w.busy++
	defer func() { w.busy-- }()

	for alt := 0; alt <= MaxAltitude; alt++ {
		for i := 0; i < w.active.Len(); i++ {
			e, _ := w.active.At(i)
			if e.Base().Altitude() != alt {
				continue
			}
			if err := e.Draw(d); err != nil {
				w.log.Warn("draw failed", zap.Uint64("id", uint64(e.ID())), zap.Error(err))
			}
		}
	}
}
