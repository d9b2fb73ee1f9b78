package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/gridsim/internal/core/vec"
	"github.com/l1jgo/gridsim/internal/display"
	"github.com/l1jgo/gridsim/internal/scripting"
	"github.com/l1jgo/gridsim/internal/world"
	"gopkg.in/yaml.v3"
)

// SceneEntry describes one entity to spawn at startup. Empty fields keep the
// object defaults.
type SceneEntry struct {
	Type      string  `yaml:"type,omitempty"`
	Glyph     string  `yaml:"glyph,omitempty"`
	Color     string  `yaml:"color,omitempty"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	VX        float64 `yaml:"vx,omitempty"`
	VY        float64 `yaml:"vy,omitempty"`
	Altitude  *int    `yaml:"altitude,omitempty"`
	Solidness string  `yaml:"solidness,omitempty"`
	Script    string  `yaml:"script,omitempty"` // behaviour name; empty spawns a plain object
}

// Scene is an ordered list of spawn entries.
type Scene struct {
	Entries []SceneEntry
}

// LoadScene loads a scene YAML file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func ParseScene(raw []byte) (*Scene, error) {
	var entries []SceneEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &Scene{Entries: entries}, nil
}

// Marshal encodes the scene back to YAML.
func (s *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s.Entries)
}

// Count returns the number of entries.
func (s *Scene) Count() int {
	return len(s.Entries)
}

// Populate spawns every entry into w, in file order. Entries with a script
// are bound to that behaviour in engine, which may be nil for scenes without
// scripts. On the first invalid entry the offending entity is despawned and
// the entities spawned so far are returned with the error.
func (s *Scene) Populate(w *world.World, engine *scripting.Engine) ([]world.Entity, error) {
	spawned := make([]world.Entity, 0, len(s.Entries))
	for i := range s.Entries {
		e, err := s.Entries[i].spawn(w, engine)
		if err != nil {
			return spawned, fmt.Errorf("scene entry %d: %w", i, err)
		}
		spawned = append(spawned, e)
	}
	return spawned, nil
}

func (se *SceneEntry) spawn(w *world.World, engine *scripting.Engine) (world.Entity, error) {
	var (
		e   world.Entity
		err error
	)
	switch {
	case se.Script == "":
		e, err = w.SpawnObject()
	case engine == nil:
		return nil, fmt.Errorf("script %q: no scripting engine", se.Script)
	default:
		e, err = engine.Spawn(se.Script)
	}
	if err != nil {
		return nil, err
	}
	if err := se.apply(e.Base()); err != nil {
		if derr := w.Despawn(e); derr != nil {
			return nil, fmt.Errorf("%w (despawn: %v)", err, derr)
		}
		return nil, err
	}
	return e, nil
}

func (se *SceneEntry) apply(o *world.Object) error {
	if se.Type != "" {
		o.SetType(se.Type)
	}
	if se.Glyph != "" {
		o.SetGlyph(se.Glyph)
	}
	if se.Color != "" {
		c, err := display.ParseColor(se.Color)
		if err != nil {
			return err
		}
		o.SetColor(c)
	}
	if se.Solidness != "" {
		s, err := world.ParseSolidness(se.Solidness)
		if err != nil {
			return err
		}
		if err := o.SetSolidness(s); err != nil {
			return err
		}
	}
	if se.Altitude != nil {
		if err := o.SetAltitude(*se.Altitude); err != nil {
			return err
		}
	}
	o.SetPosition(vec.New(se.X, se.Y))
	o.SetVelocity(vec.New(se.VX, se.VY))
	return nil
}
