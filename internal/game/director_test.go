package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/l1jgo/gridsim/internal/config"
	"github.com/l1jgo/gridsim/internal/core/event"
	"github.com/l1jgo/gridsim/internal/display"
	"github.com/l1jgo/gridsim/internal/input"
	"github.com/l1jgo/gridsim/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSource struct {
	polls  int
	closed bool
	err    error
}

func (s *fakeSource) Poll() []event.Event {
	s.polls++
	return nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return s.err
}

// stepper ends the game after it has seen limit Step events.
type stepper struct {
	*world.Object
	d     *Director
	limit int
	steps []int
}

func (s *stepper) HandleEvent(ev event.Event) bool {
	step, ok := ev.(event.Step)
	if !ok {
		return false
	}
	s.steps = append(s.steps, step.Count)
	if len(s.steps) == s.limit {
		s.d.SetGameOver(true)
	}
	return true
}

type fakeClock struct {
	now    time.Time
	tick   time.Duration
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.tick)
	return t
}

func (c *fakeClock) Sleep(d time.Duration) { c.sleeps = append(c.sleeps, d) }

type harness struct {
	d      *Director
	disp   *display.Headless
	src    *fakeSource
	clock  *fakeClock
	logs   *observer.ObservedLogs
	opened []string
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	cfg := config.Defaults()
	core, logs := observer.New(zapcore.DebugLevel)
	h := &harness{
		disp:  display.NewHeadless(display.Geometry{Cols: 80, Rows: 24, PixelWidth: 800, PixelHeight: 480}),
		src:   &fakeSource{},
		clock: &fakeClock{now: time.Unix(0, 0), tick: 5 * time.Millisecond},
		logs:  logs,
	}
	base := []Option{
		WithLogger(func(config.LoggingConfig) (*zap.Logger, error) {
			h.opened = append(h.opened, "logger")
			return zap.New(core), nil
		}),
		WithDisplay(func(config.DisplayConfig, *zap.Logger) (display.Display, error) {
			if h.d.World() == nil {
				t.Error("display opened before world")
			}
			h.opened = append(h.opened, "display")
			return h.disp, nil
		}),
		WithInput(func(d display.Display, _ *zap.Logger) (input.Source, error) {
			if d != h.disp {
				t.Error("input not given the started display")
			}
			h.opened = append(h.opened, "input")
			return h.src, nil
		}),
		WithClock(h.clock.Now, h.clock.Sleep),
	}
	h.d = New(cfg, append(base, opts...)...)
	return h
}

func TestStartUpOrder(t *testing.T) {
	h := newHarness(t)
	if err := h.d.StartUp(); err != nil {
		t.Fatalf("StartUp: %v", err)
	}
	if got := strings.Join(h.opened, ","); got != "logger,display,input" {
		t.Errorf("open order = %s", got)
	}
	if h.d.State() != StateStarted {
		t.Errorf("State() = %s", h.d.State())
	}
	if h.d.World().Horizontal() != 80 || h.d.World().Vertical() != 24 {
		t.Errorf("world bounds = %dx%d, want display size", h.d.World().Horizontal(), h.d.World().Vertical())
	}
	if h.logs.FilterMessage("director started").Len() != 1 {
		t.Error("startup not logged")
	}
	if err := h.d.StartUp(); err == nil {
		t.Error("second StartUp should fail")
	}
}

func TestStartUpAbortsOnFailure(t *testing.T) {
	boom := errors.New("no tty")
	inputOpened := false
	h := newHarness(t,
		WithDisplay(func(config.DisplayConfig, *zap.Logger) (display.Display, error) {
			return nil, boom
		}),
		WithInput(func(display.Display, *zap.Logger) (input.Source, error) {
			inputOpened = true
			return &fakeSource{}, nil
		}),
	)

	err := h.d.StartUp()
	if !errors.Is(err, ErrStartup) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want ErrStartup wrapping cause", err)
	}
	if inputOpened {
		t.Error("input started after display failure")
	}
	if h.d.State() != StateNotStarted {
		t.Errorf("State() = %s", h.d.State())
	}
	if err := h.d.Run(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Run err = %v, want ErrNotStarted", err)
	}

	// only the started subset is torn down
	if err := h.d.ShutDown(); err != nil {
		t.Errorf("ShutDown: %v", err)
	}
	if h.d.State() != StateShutDown {
		t.Errorf("State() = %s", h.d.State())
	}
}

func TestLoggerFailure(t *testing.T) {
	h := newHarness(t, WithLogger(func(config.LoggingConfig) (*zap.Logger, error) {
		return nil, errors.New("disk full")
	}))
	if err := h.d.StartUp(); !errors.Is(err, ErrStartup) {
		t.Fatalf("err = %v", err)
	}
	if h.d.World() != nil || h.d.Display() != nil {
		t.Error("later dependencies started")
	}
	if err := h.d.ShutDown(); err != nil {
		t.Errorf("ShutDown: %v", err)
	}
}

func TestRunStopsAfterGameOver(t *testing.T) {
	h := newHarness(t)
	if err := h.d.StartUp(); err != nil {
		t.Fatal(err)
	}
	s, err := world.Spawn(h.d.World(), func(o *world.Object) *stepper {
		return &stepper{Object: o, d: h.d, limit: 3}
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := h.d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(s.steps) != 3 {
		t.Fatalf("steps delivered = %v, want 3", s.steps)
	}
	for i, c := range s.steps {
		if c != i {
			t.Errorf("step %d count = %d", i, c)
		}
	}
	if h.d.Frames() != 3 || h.disp.Frames() != 3 || h.src.polls != 3 {
		t.Errorf("frames = %d swaps = %d polls = %d", h.d.Frames(), h.disp.Frames(), h.src.polls)
	}
	if h.d.State() != StateStarted {
		t.Errorf("State() after Run = %s", h.d.State())
	}

	// each frame reads the clock twice, 5ms apart
	want := h.d.FrameTime() - 5*time.Millisecond
	if len(h.clock.sleeps) != 3 {
		t.Fatalf("sleeps = %v", h.clock.sleeps)
	}
	for _, d := range h.clock.sleeps {
		if d != want {
			t.Errorf("slept %v, want %v", d, want)
		}
	}
}

func TestRunRestartsStepCount(t *testing.T) {
	h := newHarness(t)
	if err := h.d.StartUp(); err != nil {
		t.Fatal(err)
	}
	s, err := world.Spawn(h.d.World(), func(o *world.Object) *stepper {
		return &stepper{Object: o, d: h.d, limit: 2}
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := h.d.Run(); err != nil {
		t.Fatal(err)
	}

	s.steps = nil
	h.d.SetGameOver(false)
	if err := h.d.Run(); err != nil {
		t.Fatal(err)
	}
	if len(s.steps) != 2 || s.steps[0] != 0 {
		t.Errorf("second run steps = %v, want [0 1]", s.steps)
	}
}

func TestOverrunDoesNotSleep(t *testing.T) {
	h := newHarness(t)
	h.clock.tick = 50 * time.Millisecond
	if err := h.d.StartUp(); err != nil {
		t.Fatal(err)
	}
	if _, err := world.Spawn(h.d.World(), func(o *world.Object) *stepper {
		return &stepper{Object: o, d: h.d, limit: 2}
	}); err != nil {
		t.Fatal(err)
	}
	if err := h.d.Run(); err != nil {
		t.Fatal(err)
	}
	if len(h.clock.sleeps) != 0 {
		t.Errorf("slept %v on overrun frames", h.clock.sleeps)
	}
}

func TestRunExitsImmediatelyWhenAlreadyOver(t *testing.T) {
	h := newHarness(t)
	if err := h.d.StartUp(); err != nil {
		t.Fatal(err)
	}
	h.d.SetGameOver(true)
	if err := h.d.Run(); err != nil {
		t.Fatal(err)
	}
	if h.d.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", h.d.Frames())
	}
}

func TestShutDownReverseAndAggregated(t *testing.T) {
	h := newHarness(t)
	h.src.err = errors.New("input stuck")
	if err := h.d.StartUp(); err != nil {
		t.Fatal(err)
	}
	w := h.d.World()
	if _, err := w.SpawnObject(); err != nil {
		t.Fatal(err)
	}

	err := h.d.ShutDown()
	if err == nil || !strings.Contains(err.Error(), "input stuck") {
		t.Fatalf("err = %v", err)
	}
	if !h.src.closed || !h.disp.Closed() {
		t.Error("input or display not closed")
	}
	if w.Count() != 0 {
		t.Errorf("world still holds %d entities", w.Count())
	}
	if h.d.State() != StateShutDown {
		t.Errorf("State() = %s", h.d.State())
	}
	if err := h.d.ShutDown(); err != nil {
		t.Errorf("second ShutDown: %v", err)
	}
}

func TestFrameTime(t *testing.T) {
	h := newHarness(t)
	if h.d.FrameTime() != 33333*time.Microsecond {
		t.Errorf("FrameTime() = %v", h.d.FrameTime())
	}
	h.d.SetFrameTime(0)
	if h.d.FrameTime() != 33333*time.Microsecond {
		t.Error("zero frame time accepted")
	}
	h.d.SetFrameTime(10 * time.Millisecond)
	if h.d.FrameTime() != 10*time.Millisecond {
		t.Errorf("FrameTime() = %v", h.d.FrameTime())
	}
}
