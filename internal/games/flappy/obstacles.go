package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Spawner creates pipe pairs with a randomized vertical offset.
type Spawner struct {
	cfg config.FlappyConfig
	rng *rand.Rand
}

// NewSpawner creates a spawner with a deterministic RNG seeded from seed.
func NewSpawner(cfg config.FlappyConfig, seed int64) *Spawner {
	return &Spawner{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NextPair returns a new top and bottom pipe just past the right edge of the board.
//
// The top pipe's y is anchorY - height/4 - U(0, height/2), truncated toward zero,
// so its bottom edge lands in a band above the middle of the board. The bottom
// pipe starts one pipe height plus the opening below the top pipe.
func (s *Spawner) NextPair() (top, bottom Pipe) {
	h := s.cfg.Pipes.Height
	offset := float64(s.cfg.Pipes.AnchorY-h/4) - s.rng.Float64()*float64(h/2)
	topY := int(offset)

	top = Pipe{
		X: s.cfg.Board.Width,
		Y: topY,
		W: s.cfg.Pipes.Width,
		H: h,
	}
	bottom = Pipe{
		X: s.cfg.Board.Width,
		Y: topY + h + s.cfg.Opening(),
		W: s.cfg.Pipes.Width,
		H: h,
	}
	return top, bottom
}
