package world

import (
	"fmt"

	"github.com/l1jgo/gridsim/internal/config"
	"github.com/l1jgo/gridsim/internal/core/ecs"
	"github.com/l1jgo/gridsim/internal/core/event"
	"go.uber.org/zap"
)

// World is the authoritative registry of live entities. It owns the active
// set and the pending-deletion set, moves entities every frame and reports
// collisions and bound crossings.
// Accessed only from the frame loop goroutine; no locks needed.
type World struct {
	active    *ecs.Registry[Entity]
	deletions *ecs.Registry[Entity]
	removals  *ecs.Registry[Entity]
	ids       *ecs.IDAllocator

	horizontal int
	vertical   int

	// busy is non-zero while the World iterates the active registry. Despawn
	// and RemoveObject requests made during that time are deferred to the end
	// of the next Update.
	busy int

	log *zap.Logger
}

func New(cfg config.WorldConfig, log *zap.Logger) *World {
	return &World{
		active:     ecs.NewRegistry[Entity](cfg.MaxObjects),
		deletions:  ecs.NewRegistry[Entity](cfg.MaxObjects),
		removals:   ecs.NewRegistry[Entity](cfg.MaxObjects),
		ids:        ecs.NewIDAllocator(),
		horizontal: cfg.Horizontal,
		vertical:   cfg.Vertical,
		log:        log,
	}
}

// StartUp resets both registries.
func (w *World) StartUp() error {
	w.active.Clear()
	w.deletions.Clear()
	w.removals.Clear()
	w.log.Info("world started",
		zap.Int("capacity", w.active.Cap()),
		zap.Int("horizontal", w.horizontal),
		zap.Int("vertical", w.vertical),
	)
	return nil
}

// ShutDown destroys every live entity and clears both registries.
func (w *World) ShutDown() error {
	all := w.active.Clone()
	for i := 0; i < all.Len(); i++ {
		e, _ := all.At(i)
		w.release(e)
	}
	w.active.Clear()
	w.deletions.Clear()
	w.removals.Clear()
	w.log.Info("world shut down", zap.Int("destroyed", all.Len()))
	return nil
}

// SetBoundary sets the world bounds used for out-of-bounds reporting.
func (w *World) SetBoundary(horizontal, vertical int) {
	w.horizontal = horizontal
	w.vertical = vertical
}

func (w *World) Horizontal() int { return w.horizontal }
func (w *World) Vertical() int   { return w.vertical }

// Spawn allocates a fresh Object, lets build wrap it in a game entity and
// registers the result in one step. A nil build registers the bare Object.
// On ErrCapacity nothing is registered.
func (w *World) Spawn(build func(*Object) Entity) (Entity, error) {
	o := newObject(w.ids.Next())
	var e Entity = o
	if build != nil {
		e = build(o)
	}
	if e == nil || e.Base() != o {
		return nil, fmt.Errorf("spawn object %d: entity does not wrap its base object", o.id)
	}
	if err := w.active.Insert(e); err != nil {
		w.log.Warn("spawn rejected", zap.Uint64("id", uint64(o.id)), zap.Error(err))
		return nil, fmt.Errorf("spawn object %d: %w", o.id, err)
	}
	w.log.Debug("object created", zap.Uint64("id", uint64(o.id)), zap.String("type", e.Type()))
	return e, nil
}

// Spawn is the typed form of World.Spawn.
func Spawn[E Entity](w *World, build func(*Object) E) (E, error) {
	var out E
	_, err := w.Spawn(func(o *Object) Entity {
		out = build(o)
		return out
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return out, nil
}

// SpawnObject registers a plain Object.
func (w *World) SpawnObject() (*Object, error) {
	return Spawn(w, func(o *Object) *Object { return o })
}

// Despawn deregisters e and releases it. While the World is dispatching or
// updating, the request is deferred through MarkForDelete so the registry
// being iterated is never modified.
func (w *World) Despawn(e Entity) error {
	if !w.active.Contains(e) {
		return fmt.Errorf("despawn object %d: %w", e.ID(), ecs.ErrNotFound)
	}
	if w.busy > 0 {
		return w.MarkForDelete(e)
	}
	_ = w.active.Remove(e)
	_ = w.deletions.Remove(e) // may not have been marked
	w.finalize(e)
	return nil
}

// release removes e from the active registry and runs its destroy hook.
// A miss is logged; the entity was already gone.
func (w *World) release(e Entity) {
	if err := w.active.Remove(e); err != nil {
		w.log.Warn("destroy: object not active", zap.Uint64("id", uint64(e.ID())))
		return
	}
	w.finalize(e)
}

func (w *World) finalize(e Entity) {
	if d, ok := e.(Destroyer); ok {
		d.OnDestroy()
	}
	w.log.Debug("object destroyed", zap.Uint64("id", uint64(e.ID())), zap.String("type", e.Type()))
}

// InsertObject adds e to the active registry directly.
func (w *World) InsertObject(e Entity) error {
	return w.active.Insert(e)
}

// RemoveObject removes e from the active registry without running its destroy
// hook. During dispatch the removal waits for the end of the next Update.
func (w *World) RemoveObject(e Entity) error {
	if !w.active.Contains(e) {
		return fmt.Errorf("remove object %d: %w", e.ID(), ecs.ErrNotFound)
	}
	if w.busy > 0 {
		if w.removals.Contains(e) {
			return nil
		}
		if err := w.removals.Insert(e); err != nil {
			return fmt.Errorf("remove object %d: %w", e.ID(), err)
		}
		return nil
	}
	_ = w.active.Remove(e)
	return nil
}

// AllObjects returns a copy of the active registry.
func (w *World) AllObjects() *ecs.Registry[Entity] {
	return w.active.Clone()
}

// Count returns the number of active entities.
func (w *World) Count() int { return w.active.Len() }

// ObjectsOfType returns the active entities whose type tag equals typ, in
// registry order.
func (w *World) ObjectsOfType(typ string) *ecs.Registry[Entity] {
	out := ecs.NewRegistry[Entity](w.active.Cap())
	for i := 0; i < w.active.Len(); i++ {
		e, _ := w.active.At(i)
		if e.Type() == typ {
			_ = out.Insert(e) // same capacity, cannot overflow
		}
	}
	return out
}

// Lookup finds an active entity by ID.
func (w *World) Lookup(id ecs.EntityID) (Entity, bool) {
	for i := 0; i < w.active.Len(); i++ {
		e, _ := w.active.At(i)
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// MarkForDelete queues e for destruction at the end of the next Update.
// Marking an entity that is already queued is a no-op.
func (w *World) MarkForDelete(e Entity) error {
	if w.deletions.Contains(e) {
		return nil
	}
	if err := w.deletions.Insert(e); err != nil {
		return fmt.Errorf("mark object %d for delete: %w", e.ID(), err)
	}
	return nil
}

// PendingDeletions returns how many entities are queued for destruction.
func (w *World) PendingDeletions() int { return w.deletions.Len() }

// Broadcast delivers ev to every active entity and returns how many handled
// it. Entities spawned by a handler do not receive the event being delivered.
func (w *World) Broadcast(ev event.Event) int {
	w.busy++
	defer func() { w.busy-- }()

	handled := 0
	n := w.active.Len()
	for i := 0; i < n; i++ {
		e, ok := w.active.At(i)
		if !ok {
			break
		}
		if e.HandleEvent(ev) {
			handled++
		}
	}
	return handled
}
