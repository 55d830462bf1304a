package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Snapshot is the read-only view of a session handed to renderers.
type Snapshot struct {
	State       State
	GameOver    bool
	Bird        core.Rect
	Velocity    int
	Pipes       []core.Rect // Insertion order: top, bottom, top, bottom, ...
	Score       float64
	Highest     float64
	Tick        uint64
	PipesPassed int
	Cause       Cause
	BoardW      int
	BoardH      int
}

// Snapshot captures the current state of the session.
func (s *Session) Snapshot() Snapshot {
	w := s.world
	pipes := make([]core.Rect, len(w.pipes))
	for i, p := range w.pipes {
		pipes[i] = p.Rect()
	}

	return Snapshot{
		State:       w.state,
		GameOver:    w.state == StateGameOver,
		Bird:        w.bird.Rect(),
		Velocity:    w.bird.Velocity,
		Pipes:       pipes,
		Score:       w.score,
		Highest:     w.highest,
		Tick:        w.ticks,
		PipesPassed: w.pipesPassed,
		Cause:       w.cause,
		BoardW:      w.cfg.Board.Width,
		BoardH:      w.cfg.Board.Height,
	}
}
