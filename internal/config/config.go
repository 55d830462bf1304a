// Package config provides YAML-based game configuration loading with embedded defaults.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all tunable constants of the game.
type FlappyConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Bird    BirdConfig    `yaml:"bird"`
	Pipes   PipesConfig   `yaml:"pipes"`
	Physics PhysicsConfig `yaml:"physics"`
	Timing  TimingConfig  `yaml:"timing"`
}

// BoardConfig defines the visible world extent.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BirdConfig defines the bird's fixed x, starting y and hitbox.
type BirdConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PipesConfig defines pipe dimensions and pair placement.
type PipesConfig struct {
	Width          int  `yaml:"width"`
	Height         int  `yaml:"height"`
	AnchorY        int  `yaml:"anchor_y"`        // Off-screen anchor the top pipe is placed around
	Opening        int  `yaml:"opening"`         // Vertical gap between top and bottom pipe; 0 = board.height/4
	PruneOffscreen bool `yaml:"prune_offscreen"` // Drop pipes once passed and fully left of the board
}

// PhysicsConfig defines per-tick physics constants.
type PhysicsConfig struct {
	Gravity      int `yaml:"gravity"`       // Added to velocity every tick (positive = down)
	FlapVelocity int `yaml:"flap_velocity"` // Velocity set by a flap (negative = up)
	ScrollSpeed  int `yaml:"scroll_speed"`  // Leftward pipe movement per tick
}

// TimingConfig defines the cadence of the two periodic drivers.
type TimingConfig struct {
	TickRate      int           `yaml:"tick_rate"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	MaxFrame      time.Duration `yaml:"max_frame"` // Longest wall-clock step fed to the scheduler at once
}

// Opening returns the vertical opening between a top and bottom pipe.
func (c FlappyConfig) Opening() int {
	if c.Pipes.Opening > 0 {
		return c.Pipes.Opening
	}
	return c.Board.Height / 4
}

// TickInterval returns the duration of one simulation tick.
func (c FlappyConfig) TickInterval() time.Duration {
	if c.Timing.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Timing.TickRate)
}

// Validate checks that the configuration describes a playable game.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board size must be positive, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Bird.Width <= 0 || c.Bird.Height <= 0 {
		errs = append(errs, fmt.Errorf("bird size must be positive, got %dx%d", c.Bird.Width, c.Bird.Height))
	}
	if c.Bird.X < 0 {
		errs = append(errs, fmt.Errorf("bird x must not be negative, got %d", c.Bird.X))
	}
	if c.Pipes.Width <= 0 || c.Pipes.Height <= 0 {
		errs = append(errs, fmt.Errorf("pipe size must be positive, got %dx%d", c.Pipes.Width, c.Pipes.Height))
	}
	if c.Pipes.Opening < 0 {
		errs = append(errs, fmt.Errorf("pipe opening must not be negative, got %d", c.Pipes.Opening))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("gravity must be positive, got %d", c.Physics.Gravity))
	}
	if c.Physics.FlapVelocity >= 0 {
		errs = append(errs, fmt.Errorf("flap velocity must be negative (upward), got %d", c.Physics.FlapVelocity))
	}
	if c.Physics.ScrollSpeed <= 0 {
		errs = append(errs, fmt.Errorf("scroll speed must be positive, got %d", c.Physics.ScrollSpeed))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Timing.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("spawn interval must be positive, got %s", c.Timing.SpawnInterval))
	}
	if c.Timing.MaxFrame < 0 {
		errs = append(errs, fmt.Errorf("max frame must not be negative, got %s", c.Timing.MaxFrame))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}
