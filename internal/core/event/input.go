package event

import (
	"strconv"

	"github.com/l1jgo/gridsim/internal/core/vec"
)

// KeyboardAction is what happened to a key.
type KeyboardAction int

const (
	KeyboardActionUndefined KeyboardAction = iota - 1
	KeyPressed
	KeyReleased
)

// Key is an input-independent key code.
type Key int

const (
	KeyUndefined Key = iota - 1
	KeySpace
	KeyReturn
	KeyEscape
	KeyTab
	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow
	KeyPause
	KeyMinus
	KeyPlus
	KeyTilde
	KeyPeriod
	KeyComma
	KeySlash
	KeyLeftControl
	KeyRightControl
	KeyLeftShift
	KeyRightShift
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyNum0
)

// Keyboard is a translated key event from the input source.
type Keyboard struct {
	Key    Key
	Action KeyboardAction
}

func (Keyboard) Type() Type { return TypeKeyboard }
func (Keyboard) isEvent()   {}

// MouseAction is what the pointer did.
type MouseAction int

const (
	MouseActionUndefined MouseAction = iota - 1
	MouseClicked
	MouseMoved
)

// MouseButton identifies the button involved in a click.
type MouseButton int

const (
	MouseButtonUndefined MouseButton = iota - 1
	MouseLeft
	MouseRight
	MouseMiddle
)

// Mouse is a translated pointer event. Position is in grid spaces.
type Mouse struct {
	Action   MouseAction
	Button   MouseButton
	Position vec.Vector
}

func (Mouse) Type() Type { return TypeMouse }
func (Mouse) isEvent()   {}

var keyNames = map[Key]string{
	KeySpace:        "space",
	KeyReturn:       "return",
	KeyEscape:       "escape",
	KeyTab:          "tab",
	KeyLeftArrow:    "left",
	KeyRightArrow:   "right",
	KeyUpArrow:      "up",
	KeyDownArrow:    "down",
	KeyPause:        "pause",
	KeyMinus:        "minus",
	KeyPlus:         "plus",
	KeyTilde:        "tilde",
	KeyPeriod:       "period",
	KeyComma:        "comma",
	KeySlash:        "slash",
	KeyLeftControl:  "lcontrol",
	KeyRightControl: "rcontrol",
	KeyLeftShift:    "lshift",
	KeyRightShift:   "rshift",
	KeyNum0:         "0",
}

// String returns a short lowercase name: "a".."z", "0".."9", "f1".."f12",
// or a word such as "space" or "left".
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + int(k-KeyA)))
	case k >= KeyNum1 && k <= KeyNum9:
		return string(rune('1' + int(k-KeyNum1)))
	case k >= KeyF1 && k <= KeyF12:
		return "f" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "undefined"
}

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	}
	return "undefined"
}
