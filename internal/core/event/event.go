package event

import "github.com/l1jgo/gridsim/internal/core/ecs"

// Type tags an event. Tags compare by value, so two independently built
// events of the same kind carry equal tags.
type Type string

const (
	TypeUndefined Type = "undefined"
	TypeStep      Type = "step"
	TypeOut       Type = "out"
	TypeCollision Type = "collision"
	TypeKeyboard  Type = "keyboard"
	TypeMouse     Type = "mouse"
)

// Event is the closed set of values delivered to entities. The unexported
// method seals the union: every variant lives in this package, and game code
// defines its own kinds through Custom.
type Event interface {
	Type() Type
	isEvent()
}

// Handler reacts to an event and reports whether it handled it.
type Handler interface {
	HandleEvent(ev Event) bool
}

// Subject is the view of an entity carried by events that reference one.
// Handlers type-assert it back to their concrete entity types.
type Subject interface {
	ID() ecs.EntityID
	Type() string
}

// Undefined is the zero event.
type Undefined struct{}

func (Undefined) Type() Type { return TypeUndefined }
func (Undefined) isEvent()   {}

// Custom carries a game-defined tag and an optional payload.
type Custom struct {
	Tag     Type
	Payload any
}

func (c Custom) Type() Type {
	if c.Tag == "" {
		return TypeUndefined
	}
	return c.Tag
}
func (Custom) isEvent() {}
