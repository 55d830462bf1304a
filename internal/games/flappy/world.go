// Package flappy implements the Flappy Bird game loop: a bird falls under gravity,
// the player flaps to rise, and pipe pairs scroll in from the right.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ScorePerPipe is added once per pipe the bird passes. A gap is a top and a
// bottom pipe sharing the same x, so clearing one gap is worth 1.0.
const ScorePerPipe = 0.5

// State is the phase of a run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cause records what ended a run.
type Cause string

const (
	CauseNone  Cause = ""
	CausePipe  Cause = "pipe"
	CauseFloor Cause = "floor"
)

// Bird is the player. X never changes; the world scrolls instead.
type Bird struct {
	X, Y     int
	W, H     int
	Velocity int // Vertical velocity in units per tick (positive = down)
}

// Rect returns the bird's hitbox.
func (b Bird) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// Pipe is one half of a pipe pair.
type Pipe struct {
	X, Y   int
	W, H   int
	Passed bool // Set once the bird's leading edge crosses the trailing edge; never reverts
}

// Rect returns the pipe's hitbox.
func (p Pipe) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Collides reports whether the bird overlaps the pipe.
// Touching edges are not a collision.
func Collides(bird, pipe core.Rect) bool {
	return bird.Intersects(pipe)
}

// World owns all mutable game state and advances it one fixed tick at a time.
type World struct {
	cfg config.FlappyConfig

	bird    Bird
	pipes   []Pipe
	score   float64
	highest float64
	state   State

	ticks       uint64 // Ticks in the current run
	pipesPassed int    // Pipes passed in the current run
	cause       Cause  // Why the last run ended
}

// NewWorld creates an idle world.
func NewWorld(cfg config.FlappyConfig) *World {
	w := &World{
		cfg:   cfg,
		pipes: make([]Pipe, 0, 16),
	}
	w.resetRun()
	w.state = StateIdle
	return w
}

// resetRun puts the bird back at its start and clears per-run state.
func (w *World) resetRun() {
	w.bird = Bird{
		X: w.cfg.Bird.X,
		Y: w.cfg.Bird.Y,
		W: w.cfg.Bird.Width,
		H: w.cfg.Bird.Height,
	}
	w.pipes = w.pipes[:0]
	w.score = 0
	w.ticks = 0
	w.pipesPassed = 0
	w.cause = CauseNone
}

// Start begins a new run from Idle or GameOver. The highest score is kept.
// Returns false if a run is already in progress.
func (w *World) Start() bool {
	if w.state == StateRunning {
		return false
	}
	w.resetRun()
	w.state = StateRunning
	return true
}

// Flap applies the upward impulse, replacing whatever fall speed had built up.
// It is ignored unless a run is in progress.
func (w *World) Flap() bool {
	if w.state != StateRunning {
		return false
	}
	w.bird.Velocity = w.cfg.Physics.FlapVelocity
	return true
}

// AddPair appends a pipe pair in insertion order. Ignored unless running.
func (w *World) AddPair(top, bottom Pipe) {
	if w.state != StateRunning {
		return
	}
	w.pipes = append(w.pipes, top, bottom)
}

// Tick advances the world by exactly one fixed timestep.
// It returns true if this tick ended the run.
func (w *World) Tick() bool {
	if w.state != StateRunning {
		return false
	}
	w.ticks++

	w.bird.Velocity += w.cfg.Physics.Gravity
	w.bird.Y += w.bird.Velocity
	w.bird.Y = max(w.bird.Y, 0)

	birdRect := w.bird.Rect()
	hit := false
	for i := range w.pipes {
		p := &w.pipes[i]
		p.X -= w.cfg.Physics.ScrollSpeed

		if !p.Passed && w.bird.X > p.X+p.W {
			w.score += ScorePerPipe
			w.pipesPassed++
			p.Passed = true
		}

		if Collides(birdRect, p.Rect()) {
			hit = true
		}
	}

	if w.cfg.Pipes.PruneOffscreen {
		w.prune()
	}

	switch {
	case hit:
		w.end(CausePipe)
		return true
	case w.bird.Y > w.cfg.Board.Height:
		w.end(CauseFloor)
		return true
	}
	return false
}

// end performs the single Running -> GameOver transition.
func (w *World) end(cause Cause) {
	w.state = StateGameOver
	w.cause = cause
	if w.score > w.highest {
		w.highest = w.score
	}
}

// prune drops passed pipes whose trailing edge has left the board. A pipe is
// kept until it has scored, so pruning never changes the score.
func (w *World) prune() {
	kept := w.pipes[:0]
	for _, p := range w.pipes {
		if !p.Passed || p.X+p.W >= 0 {
			kept = append(kept, p)
		}
	}
	clear(w.pipes[len(kept):])
	w.pipes = kept
}

// State returns the current phase.
func (w *World) State() State { return w.state }

// Bird returns a copy of the bird.
func (w *World) Bird() Bird { return w.bird }

// Pipes returns a copy of the pipes in insertion order.
func (w *World) Pipes() []Pipe {
	out := make([]Pipe, len(w.pipes))
	copy(out, w.pipes)
	return out
}

// Score returns the current run's score.
func (w *World) Score() float64 { return w.score }

// Highest returns the best finalized score of this session.
func (w *World) Highest() float64 { return w.highest }

// Ticks returns the number of ticks in the current run.
func (w *World) Ticks() uint64 { return w.ticks }

// PipesPassed returns the number of pipes passed in the current run.
func (w *World) PipesPassed() int { return w.pipesPassed }

// Cause returns why the last run ended, or CauseNone.
func (w *World) Cause() Cause { return w.cause }

// Config returns the configuration the world was built with.
func (w *World) Config() config.FlappyConfig { return w.cfg }
