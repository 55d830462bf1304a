package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used if the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Board: BoardConfig{
			Width:  360,
			Height: 640,
		},
		Bird: BirdConfig{
			X:      360 / 8,
			Y:      360 / 2,
			Width:  34,
			Height: 24,
		},
		Pipes: PipesConfig{
			Width:          64,
			Height:         512,
			AnchorY:        0,
			Opening:        0,
			PruneOffscreen: true,
		},
		Physics: PhysicsConfig{
			Gravity:      1,
			FlapVelocity: -9,
			ScrollSpeed:  4,
		},
		Timing: TimingConfig{
			TickRate:      60,
			SpawnInterval: 1500 * time.Millisecond,
			MaxFrame:      250 * time.Millisecond,
		},
	}
}
