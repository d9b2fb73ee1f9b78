package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	World   WorldConfig   `toml:"world"`
	Display DisplayConfig `toml:"display"`
	Logging LoggingConfig `toml:"logging"`
	Scripts ScriptsConfig `toml:"scripts"`
	Scene   SceneConfig   `toml:"scene"`
}

type GameConfig struct {
	FrameTimeUS int `toml:"frame_time_us"` // target microseconds per frame
}

// FrameTime returns the target frame duration.
func (c GameConfig) FrameTime() time.Duration {
	return time.Duration(c.FrameTimeUS) * time.Microsecond
}

type WorldConfig struct {
	MaxObjects int `toml:"max_objects"` // registry capacity
	Horizontal int `toml:"horizontal"`  // 0 = take from display
	Vertical   int `toml:"vertical"`    // 0 = take from display
}

type DisplayConfig struct {
	HorizontalChars  int    `toml:"horizontal_chars"`
	VerticalChars    int    `toml:"vertical_chars"`
	HorizontalPixels int    `toml:"horizontal_pixels"`
	VerticalPixels   int    `toml:"vertical_pixels"`
	Background       string `toml:"background"` // tcell color name
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // "stderr", "stdout" or a path
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

type SceneConfig struct {
	File string `toml:"file"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Game.FrameTimeUS <= 0 {
		return fmt.Errorf("game.frame_time_us must be positive, got %d", c.Game.FrameTimeUS)
	}
	if c.World.MaxObjects <= 0 {
		return fmt.Errorf("world.max_objects must be positive, got %d", c.World.MaxObjects)
	}
	if c.World.Horizontal < 0 || c.World.Vertical < 0 {
		return fmt.Errorf("world bounds must not be negative")
	}
	if c.Display.HorizontalChars <= 0 || c.Display.VerticalChars <= 0 {
		return fmt.Errorf("display size must be positive")
	}
	return nil
}

// Defaults returns the configuration used when a key is absent from the file.
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			FrameTimeUS: 33333, // ~30 Hz
		},
		World: WorldConfig{
			MaxObjects: 1000,
		},
		Display: DisplayConfig{
			HorizontalChars:  80,
			VerticalChars:    24,
			HorizontalPixels: 1024,
			VerticalPixels:   768,
			Background:       "black",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "gridsim.log",
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
		Scene: SceneConfig{
			File: "data/yaml/scene.yaml",
		},
	}
}
