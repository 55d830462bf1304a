package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RunResult describes a finished run.
type RunResult struct {
	Score       float64
	Highest     float64 // Session best after this run was finalized
	Ticks       uint64
	PipesPassed int
	Cause       Cause
}

// Session wires the world, the spawner and the scheduler together and accepts
// commands from an input adapter. All methods must be called from a single
// goroutine: adapters queue commands with Submit and feed time with Advance.
type Session struct {
	world   *World
	spawner *Spawner
	sched   *Scheduler
	queue   core.CommandQueue

	exited     bool
	onGameOver []func(RunResult)
}

// NewSession creates an idle session. The seed drives pipe placement.
func NewSession(cfg config.FlappyConfig, seed int64) *Session {
	s := &Session{
		world:   NewWorld(cfg),
		spawner: NewSpawner(cfg, seed),
	}
	s.sched = NewScheduler(cfg.TickInterval(), cfg.Timing.SpawnInterval, cfg.Timing.MaxFrame, s.tick, s.spawn)
	return s
}

// OnGameOver registers a callback invoked once per Running -> GameOver transition.
func (s *Session) OnGameOver(fn func(RunResult)) {
	s.onGameOver = append(s.onGameOver, fn)
}

// Submit queues a command for the next Advance.
func (s *Session) Submit(c core.Command) {
	s.queue.Push(c)
}

// Advance applies queued commands in arrival order and then advances both
// periodic drivers by elapsed wall-clock time. It returns the number of physics
// ticks that ran.
func (s *Session) Advance(elapsed time.Duration) int {
	for _, c := range s.queue.Drain() {
		s.apply(c)
	}
	return s.sched.Advance(elapsed)
}

// apply executes one command if it is valid in the current state.
func (s *Session) apply(c core.Command) {
	switch c {
	case core.CommandStart:
		if s.world.State() == StateIdle {
			s.begin()
		}
	case core.CommandRestart:
		if s.world.State() == StateGameOver {
			s.begin()
		}
	case core.CommandFlap:
		s.world.Flap()
	case core.CommandExit:
		s.sched.Stop()
		s.exited = true
	}
}

// begin starts a run and restarts both drivers together.
func (s *Session) begin() {
	if s.world.Start() {
		s.sched.Start()
	}
}

func (s *Session) tick() {
	if !s.world.Tick() {
		return
	}
	s.sched.Stop()

	result := RunResult{
		Score:       s.world.Score(),
		Highest:     s.world.Highest(),
		Ticks:       s.world.Ticks(),
		PipesPassed: s.world.PipesPassed(),
		Cause:       s.world.Cause(),
	}
	for _, fn := range s.onGameOver {
		fn(result)
	}
}

func (s *Session) spawn() {
	top, bottom := s.spawner.NextPair()
	s.world.AddPair(top, bottom)
}

// Pending returns the number of commands waiting for the next Advance.
func (s *Session) Pending() int {
	return s.queue.Len()
}

// State returns the current phase.
func (s *Session) State() State {
	return s.world.State()
}

// Exited reports whether an Exit command has been applied.
func (s *Session) Exited() bool {
	return s.exited
}

// DriversRunning reports whether the tick and spawn drivers are active.
func (s *Session) DriversRunning() bool {
	return s.sched.Running()
}

// Config returns the game configuration.
func (s *Session) Config() config.FlappyConfig {
	return s.world.Config()
}
