package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/l1jgo/gridsim/internal/config"
	"github.com/l1jgo/gridsim/internal/data"
	"github.com/l1jgo/gridsim/internal/game"
	"github.com/l1jgo/gridsim/internal/scripting"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              gridsim  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       2-D grid object simulation core     \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	valStr := fmt.Sprint(value)
	dotsLen := 42 - len(label) - len(valStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), valStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/gridsim.toml"
	if p := os.Getenv("GRIDSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	printBanner()
	printSection("Config")
	printStat("frame time", cfg.Game.FrameTime())
	printStat("max objects", cfg.World.MaxObjects)
	printStat("display", fmt.Sprintf("%dx%d", cfg.Display.HorizontalChars, cfg.Display.VerticalChars))
	printStat("log file", cfg.Logging.File)
	fmt.Println()

	// 2. Bring up logger, world, display and input. The terminal belongs to
	// the display from here until shutdown.
	director := game.New(cfg)
	if err := director.StartUp(); err != nil {
		_ = director.ShutDown()
		return err
	}
	log := director.Logger()

	stats, runErr := play(director, cfg, log)

	// World shutdown runs scripted destroy hooks, so the engine closes last.
	shutErr := director.ShutDown()
	if stats.engine != nil {
		stats.engine.Close()
	}
	if runErr != nil {
		return runErr
	}
	if shutErr != nil {
		return fmt.Errorf("shut down: %w", shutErr)
	}

	printSection("Summary")
	printStat("scene entities", stats.spawned)
	printStat("frames", director.Frames())
	printOK("shut down cleanly")
	return nil
}

type session struct {
	engine  *scripting.Engine
	spawned int
}

func play(director *game.Director, cfg *config.Config, log *zap.Logger) (session, error) {
	var s session

	// 3. Lua behaviours
	engine, err := scripting.NewEngine(cfg.Scripts.Dir, director.World(), func() {
		director.SetGameOver(true)
	}, log.Named("lua"))
	if err != nil {
		return s, fmt.Errorf("lua engine: %w", err)
	}
	s.engine = engine

	// 4. Scene
	scene, err := data.LoadScene(cfg.Scene.File)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("no scene file, starting empty", zap.String("file", cfg.Scene.File))
	case err != nil:
		return s, fmt.Errorf("load scene: %w", err)
	default:
		spawned, err := scene.Populate(director.World(), engine)
		s.spawned = len(spawned)
		if err != nil {
			return s, fmt.Errorf("populate scene: %w", err)
		}
		log.Info("scene loaded", zap.String("file", cfg.Scene.File), zap.Int("entities", s.spawned))
	}

	// 5. Stop on SIGINT/SIGTERM
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(shutdownCh)
		close(shutdownCh)
	}()
	go func() {
		sig, ok := <-shutdownCh
		if !ok {
			return
		}
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		director.SetGameOver(true)
	}()

	// 6. Frame loop
	if err := director.Run(); err != nil {
		return s, fmt.Errorf("run: %w", err)
	}
	return s, nil
}
