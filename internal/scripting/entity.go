package scripting

import (
	"fmt"

	"github.com/l1jgo/gridsim/internal/core/event"
	"github.com/l1jgo/gridsim/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Entity is a world entity whose reactions are written in Lua. Every event
// is forwarded to <behaviour>.on_event(obj, ev); the boolean result is the
// handled flag. If the behaviour defines on_destroy(obj) it runs when the
// entity is destroyed.
type Entity struct {
	*world.Object
	behaviour string
	engine    *Engine
	ud        *lua.LUserData
	state     *lua.LTable
}

// NewEntity binds o to a loaded behaviour. Pass it as the build function of
// world.Spawn.
func (e *Engine) NewEntity(o *world.Object, behaviour string) *Entity {
	ent := &Entity{
		Object:    o,
		behaviour: behaviour,
		engine:    e,
		state:     e.vm.NewTable(),
	}
	ud := e.vm.NewUserData()
	ud.Value = ent
	e.vm.SetMetatable(ud, e.vm.GetTypeMetatable(objectTypeName))
	ent.ud = ud
	return ent
}

// Spawn creates a scripted entity in w. It fails before allocating anything
// when the behaviour is not loaded.
func (e *Engine) Spawn(behaviour string) (*Entity, error) {
	if _, err := e.behaviour(behaviour); err != nil {
		return nil, err
	}
	return world.Spawn(e.world, func(o *world.Object) *Entity {
		return e.NewEntity(o, behaviour)
	})
}

func (s *Entity) Behaviour() string { return s.behaviour }

func (s *Entity) HandleEvent(ev event.Event) bool {
	result, err := s.engine.call(s.behaviour, "on_event", s.ud, eventTable(s.engine.vm, s, ev))
	if err != nil {
		s.engine.log.Error("lua on_event error",
			zap.String("behaviour", s.behaviour),
			zap.Uint64("id", uint64(s.ID())),
			zap.String("event", string(ev.Type())),
			zap.Error(err),
		)
		return false
	}
	return lua.LVAsBool(result)
}

func (s *Entity) OnDestroy() {
	if _, err := s.engine.call(s.behaviour, "on_destroy", s.ud); err != nil {
		s.engine.log.Error("lua on_destroy error",
			zap.String("behaviour", s.behaviour),
			zap.Uint64("id", uint64(s.ID())),
			zap.Error(err),
		)
	}
}

func (s *Entity) String() string {
	return fmt.Sprintf("%s#%d(%s)", s.Type(), s.ID(), s.behaviour)
}

// eventTable flattens ev into the table handed to on_event.
func eventTable(L *lua.LState, self world.Entity, ev event.Event) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("type", lua.LString(ev.Type()))

	switch v := ev.(type) {
	case event.Step:
		t.RawSetString("count", lua.LNumber(v.Count))
	case event.Collision:
		t.RawSetString("x", lua.LNumber(v.Position.X))
		t.RawSetString("y", lua.LNumber(v.Position.Y))
		if other := v.Other(self); other != nil {
			t.RawSetString("other", lua.LNumber(other.ID()))
			t.RawSetString("other_type", lua.LString(other.Type()))
		}
	case event.Keyboard:
		t.RawSetString("key", lua.LString(v.Key.String()))
		switch v.Action {
		case event.KeyPressed:
			t.RawSetString("action", lua.LString("pressed"))
		case event.KeyReleased:
			t.RawSetString("action", lua.LString("released"))
		}
	case event.Mouse:
		t.RawSetString("x", lua.LNumber(v.Position.X))
		t.RawSetString("y", lua.LNumber(v.Position.Y))
		t.RawSetString("button", lua.LString(v.Button.String()))
		switch v.Action {
		case event.MouseClicked:
			t.RawSetString("action", lua.LString("clicked"))
		case event.MouseMoved:
			t.RawSetString("action", lua.LString("moved"))
		}
	case event.Custom:
		t.RawSetString("tag", lua.LString(v.Tag))
		switch p := v.Payload.(type) {
		case string:
			t.RawSetString("payload", lua.LString(p))
		case int:
			t.RawSetString("payload", lua.LNumber(p))
		case float64:
			t.RawSetString("payload", lua.LNumber(p))
		case bool:
			t.RawSetString("payload", lua.LBool(p))
		}
	}
	return t
}
