package input

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/gridsim/internal/core/event"
	"github.com/l1jgo/gridsim/internal/core/vec"
	"github.com/l1jgo/gridsim/internal/display"
	"go.uber.org/zap"
)

const queueSize = 128

// ErrNoTerminal is returned when the display does not own a terminal to read from.
var ErrNoTerminal = errors.New("input: display has no terminal")

// Terminal reads key and mouse events from a tcell screen. A single reader
// goroutine feeds a buffered queue; Poll drains it on the frame goroutine.
type Terminal struct {
	screen tcell.Screen
	queue  chan tcell.Event
	done   chan struct{}
	log    *zap.Logger
}

// Open attaches to the terminal owned by d.
func Open(d display.Display, log *zap.Logger) (*Terminal, error) {
	ts, ok := d.(interface{ Terminal() tcell.Screen })
	if !ok {
		return nil, ErrNoTerminal
	}
	return NewTerminal(ts.Terminal(), log), nil
}

func NewTerminal(s tcell.Screen, log *zap.Logger) *Terminal {
	s.EnableMouse()
	t := &Terminal{
		screen: s,
		queue:  make(chan tcell.Event, queueSize),
		done:   make(chan struct{}),
		log:    log,
	}
	go t.readLoop()
	log.Info("input started")
	return t
}

func (t *Terminal) readLoop() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return // screen finalised
		}
		select {
		case t.queue <- ev:
		case <-t.done:
			return
		default:
			t.log.Warn("input queue full, dropping event")
		}
	}
}

// Poll drains queued terminal events and translates them.
func (t *Terminal) Poll() []event.Event {
	var out []event.Event
	for {
		select {
		case ev := <-t.queue:
			if e, ok := Translate(ev); ok {
				out = append(out, e)
			}
		default:
			return out
		}
	}
}

func (t *Terminal) Close() error {
	select {
	case <-t.done:
		return nil
	default:
	}
	close(t.done)
	t.screen.DisableMouse()
	t.log.Info("input shut down")
	return nil
}

// Translate converts a tcell event into an engine event. Events with no
// engine meaning (resize, paste, focus) report false.
func Translate(ev tcell.Event) (event.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return event.Keyboard{
			Key:    translateKey(ev.Key(), ev.Rune()),
			Action: event.KeyPressed,
		}, true
	case *tcell.EventMouse:
		x, y := ev.Position()
		return translateMouse(x, y, ev.Buttons())
	}
	return nil, false
}

func translateMouse(x, y int, buttons tcell.ButtonMask) (event.Event, bool) {
	m := event.Mouse{
		Action:   event.MouseClicked,
		Position: vec.New(float64(x), float64(y)),
	}
	switch {
	case buttons&tcell.Button1 != 0:
		m.Button = event.MouseLeft
	case buttons&tcell.Button2 != 0:
		m.Button = event.MouseRight
	case buttons&tcell.Button3 != 0:
		m.Button = event.MouseMiddle
	case buttons == tcell.ButtonNone:
		m.Action = event.MouseMoved
		m.Button = event.MouseButtonUndefined
	default:
		return nil, false // wheel
	}
	return m, true
}
