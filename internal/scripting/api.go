package scripting

import (
	"github.com/l1jgo/gridsim/internal/core/vec"
	"github.com/l1jgo/gridsim/internal/display"
	lua "github.com/yuin/gopher-lua"
)

// checkEntity pulls the *Entity out of the obj argument.
func checkEntity(L *lua.LState) *Entity {
	ud := L.CheckUserData(1)
	if ent, ok := ud.Value.(*Entity); ok {
		return ent
	}
	L.ArgError(1, "object expected")
	return nil
}

// objectMethods is the method table behind obj:... calls in scripts.
func objectMethods(e *Engine) map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"id": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkEntity(L).ID()))
			return 1
		},
		"type": func(L *lua.LState) int {
			L.Push(lua.LString(checkEntity(L).Type()))
			return 1
		},
		"set_type": func(L *lua.LState) int {
			checkEntity(L).SetType(L.CheckString(2))
			return 0
		},
		"position": func(L *lua.LState) int {
			p := checkEntity(L).Position()
			L.Push(lua.LNumber(p.X))
			L.Push(lua.LNumber(p.Y))
			return 2
		},
		"set_position": func(L *lua.LState) int {
			ent := checkEntity(L)
			ent.SetPosition(vec.New(float64(L.CheckNumber(2)), float64(L.CheckNumber(3))))
			return 0
		},
		"velocity": func(L *lua.LState) int {
			v := checkEntity(L).Velocity()
			L.Push(lua.LNumber(v.X))
			L.Push(lua.LNumber(v.Y))
			return 2
		},
		"set_velocity": func(L *lua.LState) int {
			ent := checkEntity(L)
			ent.SetVelocity(vec.New(float64(L.CheckNumber(2)), float64(L.CheckNumber(3))))
			return 0
		},
		"altitude": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkEntity(L).Altitude()))
			return 1
		},
		"set_altitude": func(L *lua.LState) int {
			if err := checkEntity(L).SetAltitude(L.CheckInt(2)); err != nil {
				L.Push(lua.LFalse)
				L.Push(lua.LString(err.Error()))
				return 2
			}
			L.Push(lua.LTrue)
			return 1
		},
		"set_glyph": func(L *lua.LState) int {
			checkEntity(L).SetGlyph(L.CheckString(2))
			return 0
		},
		"set_color": func(L *lua.LState) int {
			ent := checkEntity(L)
			c, err := display.ParseColor(L.CheckString(2))
			if err != nil {
				L.Push(lua.LFalse)
				L.Push(lua.LString(err.Error()))
				return 2
			}
			ent.SetColor(c)
			L.Push(lua.LTrue)
			return 1
		},
		// state returns a table private to this entity that survives between events.
		"state": func(L *lua.LState) int {
			L.Push(checkEntity(L).state)
			return 1
		},
		"mark_for_delete": func(L *lua.LState) int {
			if err := e.world.MarkForDelete(checkEntity(L)); err != nil {
				L.Push(lua.LFalse)
				L.Push(lua.LString(err.Error()))
				return 2
			}
			L.Push(lua.LTrue)
			return 1
		},
	}
}
