package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/gridsim/internal/core/event"
)

var specialKeys = map[tcell.Key]event.Key{
	tcell.KeyEnter:  event.KeyReturn,
	tcell.KeyEscape: event.KeyEscape,
	tcell.KeyTab:    event.KeyTab,
	tcell.KeyLeft:   event.KeyLeftArrow,
	tcell.KeyRight:  event.KeyRightArrow,
	tcell.KeyUp:     event.KeyUpArrow,
	tcell.KeyDown:   event.KeyDownArrow,
	tcell.KeyPause:  event.KeyPause,
	tcell.KeyF1:     event.KeyF1,
	tcell.KeyF2:     event.KeyF2,
	tcell.KeyF3:     event.KeyF3,
	tcell.KeyF4:     event.KeyF4,
	tcell.KeyF5:     event.KeyF5,
	tcell.KeyF6:     event.KeyF6,
	tcell.KeyF7:     event.KeyF7,
	tcell.KeyF8:     event.KeyF8,
	tcell.KeyF9:     event.KeyF9,
	tcell.KeyF10:    event.KeyF10,
	tcell.KeyF11:    event.KeyF11,
	tcell.KeyF12:    event.KeyF12,
}

var runeKeys = map[rune]event.Key{
	' ': event.KeySpace,
	'-': event.KeyMinus,
	'+': event.KeyPlus,
	'~': event.KeyTilde,
	'`': event.KeyTilde,
	'.': event.KeyPeriod,
	',': event.KeyComma,
	'/': event.KeySlash,
	'0': event.KeyNum0,
}

// translateKey maps a tcell key (and its rune for KeyRune) to an engine key.
// Letters ignore case.
func translateKey(k tcell.Key, r rune) event.Key {
	if k != tcell.KeyRune {
		if ek, ok := specialKeys[k]; ok {
			return ek
		}
		return event.KeyUndefined
	}
	switch {
	case r >= 'a' && r <= 'z':
		return event.KeyA + event.Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return event.KeyA + event.Key(r-'A')
	case r >= '1' && r <= '9':
		return event.KeyNum1 + event.Key(r-'1')
	}
	if ek, ok := runeKeys[r]; ok {
		return ek
	}
	return event.KeyUndefined
}
