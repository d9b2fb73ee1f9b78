package event

import "github.com/l1jgo/gridsim/internal/core/vec"

// Step is broadcast once per frame before the world moves anything.
type Step struct {
	Count int
}

func (Step) Type() Type { return TypeStep }
func (Step) isEvent()   {}

// Out is sent to an entity whose committed position left the world bounds.
type Out struct{}

func (Out) Type() Type { return TypeOut }
func (Out) isEvent()   {}

// Collision is sent to both entities when a move lands on an occupied cell.
// Object1 is the entity that moved; Position is the contested position.
type Collision struct {
	Object1  Subject
	Object2  Subject
	Position vec.Vector
}

func (Collision) Type() Type { return TypeCollision }
func (Collision) isEvent()   {}

// Other returns whichever participant is not self, or nil if self is neither.
func (c Collision) Other(self Subject) Subject {
	switch {
	case c.Object1 != nil && self != nil && c.Object1.ID() == self.ID():
		return c.Object2
	case c.Object2 != nil && self != nil && c.Object2.ID() == self.ID():
		return c.Object1
	}
	return nil
}
