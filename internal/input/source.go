// Package input turns device input into engine events. The frame loop polls a
// Source once per frame and broadcasts whatever it yields.
package input

import "github.com/l1jgo/gridsim/internal/core/event"

// Source yields the input events gathered since the previous Poll.
// Poll never blocks.
type Source interface {
	Poll() []event.Event
	Close() error
}
