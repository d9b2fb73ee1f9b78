package display

import (
	"sync"

	"github.com/l1jgo/gridsim/internal/core/vec"
)

// Draw is one recorded draw call.
type Draw struct {
	Pos   vec.Vector
	Text  string
	Just  Justification
	Color Color
}

// Headless is a Display with no terminal. It keeps the draw calls of the
// frame being built and counts swapped frames. Used for batch runs and tests.
type Headless struct {
	Geometry

	mu      sync.Mutex
	pending []Draw
	last    []Draw
	frames  int
	closed  bool
}

func NewHeadless(g Geometry) *Headless {
	return &Headless{Geometry: g}
}

func (h *Headless) DrawCh(pos vec.Vector, ch rune, c Color) error {
	return h.DrawString(pos, string(ch), LeftJustified, c)
}

func (h *Headless) DrawString(pos vec.Vector, s string, j Justification, c Color) error {
	h.mu.Lock()
	h.pending = append(h.pending, Draw{Pos: pos, Text: s, Just: j, Color: c})
	h.mu.Unlock()
	return nil
}

func (h *Headless) SwapBuffers() error {
	h.mu.Lock()
	h.last, h.pending = h.pending, nil
	h.frames++
	h.mu.Unlock()
	return nil
}

func (h *Headless) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}

// Pending returns the draws issued since the last swap.
func (h *Headless) Pending() []Draw {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Draw(nil), h.pending...)
}

// LastFrame returns the draws of the most recently swapped frame.
func (h *Headless) LastFrame() []Draw {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Draw(nil), h.last...)
}

func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

func (h *Headless) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
