package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/l1jgo/gridsim/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrNoBehaviour is returned when no loaded script defines the named behaviour.
var ErrNoBehaviour = errors.New("behaviour not defined")

const objectTypeName = "gridsim.object"

// Engine wraps a single gopher-lua VM running entity behaviours.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm       *lua.LState
	world    *world.World
	gameOver func()
	log      *zap.Logger
}

// NewEngine creates a Lua engine bound to w and loads every script in
// scriptsDir. gameOver is called when a script invokes game_over().
func NewEngine(scriptsDir string, w *world.World, gameOver func(), log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, world: w, gameOver: gameOver, log: log}
	e.registerAPI()

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory. A missing directory loads nothing.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Info("no scripts directory", zap.String("dir", dir))
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source, typically to define behaviours.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

func (e *Engine) registerAPI() {
	mt := e.vm.NewTypeMetatable(objectTypeName)
	e.vm.SetField(mt, "__index", e.vm.SetFuncs(e.vm.NewTable(), objectMethods(e)))

	e.vm.SetGlobal("game_over", e.vm.NewFunction(func(L *lua.LState) int {
		if e.gameOver != nil {
			e.gameOver()
		}
		return 0
	}))
}

// behaviour returns the global table named name if it defines on_event.
func (e *Engine) behaviour(name string) (*lua.LTable, error) {
	tbl, ok := e.vm.GetGlobal(name).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoBehaviour)
	}
	if _, ok := tbl.RawGetString("on_event").(*lua.LFunction); !ok {
		return nil, fmt.Errorf("%s: no on_event function: %w", name, ErrNoBehaviour)
	}
	return tbl, nil
}

// HasBehaviour reports whether a loaded script defines the behaviour.
func (e *Engine) HasBehaviour(name string) bool {
	_, err := e.behaviour(name)
	return err == nil
}

// call invokes behaviour.fn(args...) and returns its first result. A missing
// optional function returns LNil without error.
func (e *Engine) call(behaviour, fn string, args ...lua.LValue) (lua.LValue, error) {
	tbl, err := e.behaviour(behaviour)
	if err != nil {
		return lua.LNil, err
	}
	f, ok := tbl.RawGetString(fn).(*lua.LFunction)
	if !ok {
		return lua.LNil, nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		return lua.LNil, err
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return result, nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
