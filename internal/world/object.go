package world

import (
	"errors"
	"fmt"
	"strings"

	"github.com/l1jgo/gridsim/internal/core/ecs"
	"github.com/l1jgo/gridsim/internal/core/event"
	"github.com/l1jgo/gridsim/internal/core/vec"
	"github.com/l1jgo/gridsim/internal/display"
)

// MaxAltitude is the highest draw layer. Altitude only affects draw order.
const MaxAltitude = 4

// ErrInvalidRange is returned when a setter is given a value outside its domain.
// The object is left unchanged.
var ErrInvalidRange = errors.New("value out of range")

// Solidness decides how an object takes part in collisions.
type Solidness int

const (
	Hard     Solidness = iota // collides and blocks movement
	Soft                      // collides, never blocks
	Spectral                  // never collides
)

func (s Solidness) String() string {
	switch s {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Spectral:
		return "spectral"
	}
	return fmt.Sprintf("Solidness(%d)", int(s))
}

func (s Solidness) valid() bool { return s == Hard || s == Soft || s == Spectral }

// ParseSolidness maps "hard", "soft" or "spectral" (case-insensitive) to a Solidness.
func ParseSolidness(name string) (Solidness, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hard":
		return Hard, nil
	case "soft":
		return Soft, nil
	case "spectral":
		return Spectral, nil
	}
	return Hard, fmt.Errorf("solidness %q: %w", name, ErrInvalidRange)
}

// Entity is anything the World simulates. Game types embed *Object and
// override HandleEvent and Draw. Entities must be pointer types: the World
// compares them by identity.
type Entity interface {
	ID() ecs.EntityID
	Type() string
	Base() *Object
	HandleEvent(ev event.Event) bool
	Draw(d display.Display) error
}

// Destroyer is implemented by entities that want to observe their own
// destruction. OnDestroy runs once, after the entity left the active registry.
type Destroyer interface {
	OnDestroy()
}

// Object holds the identity and spatial state shared by every entity.
// Accessed only from the frame loop goroutine; no locks needed.
type Object struct {
	id        ecs.EntityID
	typ       string
	position  vec.Vector
	altitude  int
	speed     float64
	direction vec.Vector // unit length, or zero before any motion is set
	solidness Solidness
	glyph     string
	color     display.Color
}

func newObject(id ecs.EntityID) *Object {
	return &Object{
		id:        id,
		typ:       "Object",
		altitude:  MaxAltitude / 2,
		solidness: Hard,
		glyph:     "*",
		color:     display.ColorGreen,
	}
}

func (o *Object) ID() ecs.EntityID { return o.id }
func (o *Object) Base() *Object    { return o }

func (o *Object) Type() string     { return o.typ }
func (o *Object) SetType(t string) { o.typ = t }

func (o *Object) Position() vec.Vector     { return o.position }
func (o *Object) SetPosition(p vec.Vector) { o.position = p }

func (o *Object) Altitude() int { return o.altitude }

// SetAltitude moves the object to draw layer a, which must lie in [0, MaxAltitude].
func (o *Object) SetAltitude(a int) error {
	if a < 0 || a > MaxAltitude {
		return fmt.Errorf("altitude %d outside [0, %d]: %w", a, MaxAltitude, ErrInvalidRange)
	}
	o.altitude = a
	return nil
}

func (o *Object) Speed() float64     { return o.speed }
func (o *Object) SetSpeed(s float64) { o.speed = s }

func (o *Object) Direction() vec.Vector { return o.direction }

// SetDirection stores d normalised. A zero d clears the direction.
func (o *Object) SetDirection(d vec.Vector) { o.direction = d.Normalize() }

// Velocity is direction scaled by speed.
func (o *Object) Velocity() vec.Vector { return o.direction.Scale(o.speed) }

// SetVelocity splits v into speed |v| and direction v/|v|. For the zero
// vector the speed becomes 0 and the previous direction is kept.
func (o *Object) SetVelocity(v vec.Vector) {
	o.speed = v.Magnitude()
	if !v.IsZero() {
		o.direction = v.Normalize()
	}
}

// PredictPosition returns where the object would be after one step.
// It does not move the object.
func (o *Object) PredictPosition() vec.Vector {
	return o.position.Add(o.Velocity())
}

func (o *Object) Solidness() Solidness { return o.solidness }

// SetSolidness accepts only Hard, Soft or Spectral.
func (o *Object) SetSolidness(s Solidness) error {
	if !s.valid() {
		return fmt.Errorf("solidness %d: %w", int(s), ErrInvalidRange)
	}
	o.solidness = s
	return nil
}

// IsSolid reports whether the object takes part in collisions. Only Hard
// objects also block movement.
func (o *Object) IsSolid() bool {
	return o.solidness == Hard || o.solidness == Soft
}

func (o *Object) Glyph() string     { return o.glyph }
func (o *Object) SetGlyph(g string) { o.glyph = g }

func (o *Object) Color() display.Color     { return o.color }
func (o *Object) SetColor(c display.Color) { o.color = c }

// HandleEvent is the default reaction: nothing is handled.
func (o *Object) HandleEvent(event.Event) bool { return false }

// Draw renders the glyph at the object's position.
func (o *Object) Draw(d display.Display) error {
	return d.DrawString(o.position, o.glyph, display.LeftJustified, o.color)
}
