// Package game drives the simulation: it brings the subsystems up in order,
// runs the fixed-rate frame loop and tears everything down in reverse.
package game

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/l1jgo/gridsim/internal/config"
	coresys "github.com/l1jgo/gridsim/internal/core/system"
	"github.com/l1jgo/gridsim/internal/display"
	"github.com/l1jgo/gridsim/internal/input"
	"github.com/l1jgo/gridsim/internal/logging"
	"github.com/l1jgo/gridsim/internal/system"
	"github.com/l1jgo/gridsim/internal/world"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrStartup    = errors.New("startup failed")
	ErrNotStarted = errors.New("director not started")
)

// State is the director lifecycle state.
type State int32

const (
	StateNotStarted State = iota
	StateStarted
	StateRunning
	StateShutDown
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateStarted:
		return "started"
	case StateRunning:
		return "running"
	case StateShutDown:
		return "shut_down"
	}
	return "unknown"
}

type (
	LoggerOpener  func(cfg config.LoggingConfig) (*zap.Logger, error)
	DisplayOpener func(cfg config.DisplayConfig, log *zap.Logger) (display.Display, error)
	InputOpener   func(d display.Display, log *zap.Logger) (input.Source, error)
)

// Director owns one instance of every subsystem and runs the frame loop.
type Director struct {
	cfg   *config.Config
	state State

	gameOver  atomic.Bool
	frameTime time.Duration

	openLogger  LoggerOpener
	openDisplay DisplayOpener
	openInput   InputOpener
	now         func() time.Time
	sleep       func(time.Duration)

	// nil until started; ShutDown tears down whatever is non-nil
	log     *zap.Logger
	world   *world.World
	display display.Display
	input   input.Source

	systems []coresys.System
	frames  int
}

type Option func(*Director)

func WithLogger(open LoggerOpener) Option   { return func(d *Director) { d.openLogger = open } }
func WithDisplay(open DisplayOpener) Option { return func(d *Director) { d.openDisplay = open } }
func WithInput(open InputOpener) Option     { return func(d *Director) { d.openInput = open } }

// WithClock replaces the wall clock and the frame sleeper.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(d *Director) {
		d.now = now
		d.sleep = sleep
	}
}

func New(cfg *config.Config, opts ...Option) *Director {
	d := &Director{
		cfg:        cfg,
		frameTime:  cfg.Game.FrameTime(),
		openLogger: logging.New,
		openDisplay: func(cfg config.DisplayConfig, log *zap.Logger) (display.Display, error) {
			return display.Open(cfg, log)
		},
		openInput: func(d display.Display, log *zap.Logger) (input.Source, error) {
			return input.Open(d, log)
		},
		now:   time.Now,
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// StartUp brings up, strictly in order, the logger, the world, the display
// and the input source. The first failure aborts the sequence; what did start
// is torn down by ShutDown.
func (d *Director) StartUp() error {
	if d.state != StateNotStarted {
		return fmt.Errorf("start up: director is %s", d.state)
	}

	log, err := d.openLogger(d.cfg.Logging)
	if err != nil {
		return fmt.Errorf("%w: logger: %w", ErrStartup, err)
	}
	d.log = log
	d.log.Info("director starting", zap.Duration("frame_time", d.frameTime))

	w := world.New(d.cfg.World, d.log.Named("world"))
	if err := w.StartUp(); err != nil {
		d.log.Error("world startup failed", zap.Error(err))
		return fmt.Errorf("%w: world: %w", ErrStartup, err)
	}
	d.world = w

	disp, err := d.openDisplay(d.cfg.Display, d.log.Named("display"))
	if err != nil {
		d.log.Error("display startup failed", zap.Error(err))
		return fmt.Errorf("%w: display: %w", ErrStartup, err)
	}
	d.display = disp

	// Unconfigured world bounds follow the display.
	h, v := d.cfg.World.Horizontal, d.cfg.World.Vertical
	if h == 0 {
		h = disp.Horizontal()
	}
	if v == 0 {
		v = disp.Vertical()
	}
	d.world.SetBoundary(h, v)

	src, err := d.openInput(disp, d.log.Named("input"))
	if err != nil {
		d.log.Error("input startup failed", zap.Error(err))
		return fmt.Errorf("%w: input: %w", ErrStartup, err)
	}
	d.input = src

	d.state = StateStarted
	d.log.Info("director started",
		zap.Int("horizontal", h),
		zap.Int("vertical", v),
	)
	return nil
}

// ShutDown stops the started subsystems in reverse start order and reports
// every failure. Calling it again is a no-op.
func (d *Director) ShutDown() error {
	if d.state == StateShutDown {
		return nil
	}
	var errs error
	if d.input != nil {
		errs = multierr.Append(errs, wrap("input", d.input.Close()))
		d.input = nil
	}
	if d.display != nil {
		errs = multierr.Append(errs, wrap("display", d.display.Close()))
		d.display = nil
	}
	if d.world != nil {
		errs = multierr.Append(errs, wrap("world", d.world.ShutDown()))
	}
	if d.log != nil {
		if errs != nil {
			d.log.Error("director shut down with errors", zap.Error(errs))
		} else {
			d.log.Info("director shut down", zap.Int("frames", d.frames))
		}
		_ = d.log.Sync() // stderr sync fails on some terminals
	}
	d.state = StateShutDown
	return errs
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("shut down %s: %w", what, err)
}

// Register adds a system that runs every frame alongside the built-in ones.
func (d *Director) Register(s coresys.System) {
	d.systems = append(d.systems, s)
}

// Run executes frames until the game-over flag is set. Each frame polls
// input, broadcasts one Step, updates and draws the world, swaps buffers and
// sleeps out the rest of the frame time. An overrun frame is not made up.
func (d *Director) Run() error {
	if d.state != StateStarted {
		return fmt.Errorf("run: %w (state %s)", ErrNotStarted, d.state)
	}
	d.state = StateRunning
	defer func() { d.state = StateStarted }()

	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(d.input, d.world, d.log))
	steps := system.NewStepSystem(d.world)
	runner.Register(steps)
	runner.Register(system.NewUpdateSystem(d.world))
	runner.Register(system.NewDrawSystem(d.world, d.display))
	runner.Register(system.NewSwapSystem(d.display, d.log))
	for _, s := range d.systems {
		runner.Register(s)
	}

	d.log.Info("frame loop started", zap.Int("systems", runner.Len()))
	overruns := 0
	for !d.gameOver.Load() {
		start := d.now()
		runner.Tick(d.frameTime)
		d.frames++

		elapsed := d.now().Sub(start)
		if rest := d.frameTime - elapsed; rest > 0 {
			d.sleep(rest)
		} else {
			overruns++
			if ce := d.log.Check(zap.DebugLevel, "frame overrun"); ce != nil {
				ce.Write(zap.Int("step", steps.Count()-1), zap.Duration("elapsed", elapsed))
			}
		}
	}
	d.log.Info("frame loop stopped",
		zap.Int("steps", steps.Count()),
		zap.Int("overruns", overruns),
	)
	return nil
}

// SetGameOver sets or clears the flag that ends Run at the next frame
// boundary. Safe to call from any goroutine.
func (d *Director) SetGameOver(over bool) { d.gameOver.Store(over) }
func (d *Director) GameOver() bool        { return d.gameOver.Load() }

// SetFrameTime changes the target frame duration. Non-positive values are ignored.
func (d *Director) SetFrameTime(t time.Duration) {
	if t > 0 {
		d.frameTime = t
	}
}

func (d *Director) FrameTime() time.Duration { return d.frameTime }

func (d *Director) World() *world.World      { return d.world }
func (d *Director) Display() display.Display { return d.display }
func (d *Director) Input() input.Source      { return d.input }
func (d *Director) Logger() *zap.Logger      { return d.log }
func (d *Director) State() State             { return d.state }

// Frames returns the number of frames run since start up.
func (d *Director) Frames() int { return d.frames }
