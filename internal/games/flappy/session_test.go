package flappy

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const frame = 10 * time.Millisecond

// advanceFor feeds d of wall-clock time to the session in fixed frames.
func advanceFor(s *Session, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		s.Advance(frame)
	}
}

// tallBoardConfig gives the bird room to fall for a long time without
// leaving the board or meeting a pipe.
func tallBoardConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Board.Height = 1_000_000
	cfg.Pipes.Opening = 160
	return cfg
}

func startedSession(t *testing.T, cfg config.FlappyConfig) *Session {
	t.Helper()
	s := NewSession(cfg, 1)
	s.Submit(core.CommandStart)
	s.Advance(0)
	if s.State() != StateRunning {
		t.Fatalf("state after start = %v", s.State())
	}
	return s
}

func TestSessionStartsOnlyOnCommand(t *testing.T) {
	s := NewSession(config.DefaultFlappyConfig(), 1)

	advanceFor(s, time.Second)
	if s.State() != StateIdle {
		t.Fatalf("session should stay idle without a start command, got %v", s.State())
	}
	if s.DriversRunning() {
		t.Error("drivers must be suspended while idle")
	}

	s.Submit(core.CommandRestart) // not valid while idle
	s.Advance(0)
	if s.State() != StateIdle {
		t.Errorf("restart must not start an idle session")
	}

	s.Submit(core.CommandStart)
	s.Advance(0)
	if s.State() != StateRunning || !s.DriversRunning() {
		t.Errorf("start should begin a run with both drivers active")
	}
}

func TestSessionCommandOrder(t *testing.T) {
	s := NewSession(config.DefaultFlappyConfig(), 1)
	s.Submit(core.CommandFlap) // ignored: not running yet
	s.Submit(core.CommandStart)
	s.Advance(0)
	if v := s.Snapshot().Velocity; v != 0 {
		t.Errorf("flap before start should be a no-op, velocity = %d", v)
	}

	s.Submit(core.CommandFlap)
	s.Advance(0)
	if v := s.Snapshot().Velocity; v != -9 {
		t.Errorf("flap while running should set velocity to -9, got %d", v)
	}
}

func TestSessionSpawnsPairsOnInterval(t *testing.T) {
	cfg := tallBoardConfig()
	s := startedSession(t, cfg)

	advanceFor(s, 1400*time.Millisecond)
	if n := len(s.Snapshot().Pipes); n != 0 {
		t.Fatalf("no pair is due before 1.5s, got %d pipes", n)
	}

	advanceFor(s, 100*time.Millisecond)
	snap := s.Snapshot()
	if len(snap.Pipes) != 2 {
		t.Fatalf("expected one pair after 1.5s, got %d pipes", len(snap.Pipes))
	}
	for _, p := range snap.Pipes {
		if p.X != cfg.Board.Width {
			t.Errorf("fresh pipe x = %d, expected %d", p.X, cfg.Board.Width)
		}
	}

	advanceFor(s, 1500*time.Millisecond)
	snap = s.Snapshot()
	if len(snap.Pipes) != 4 {
		t.Fatalf("expected two pairs after 3s, got %d pipes", len(snap.Pipes))
	}
	if snap.Pipes[0].X >= snap.Pipes[2].X {
		t.Error("pipes should stay in insertion order, oldest first")
	}
}

func TestSessionGameOverStopsDriversAndReportsOnce(t *testing.T) {
	s := NewSession(config.DefaultFlappyConfig(), 1)
	var results []RunResult
	s.OnGameOver(func(r RunResult) { results = append(results, r) })

	s.Submit(core.CommandStart)
	advanceFor(s, 2*time.Second)

	if s.State() != StateGameOver {
		t.Fatalf("bird without flaps should fall off the board, state = %v", s.State())
	}
	if s.DriversRunning() {
		t.Error("both drivers must halt on game over")
	}
	if len(results) != 1 {
		t.Fatalf("game over reported %d times, expected once", len(results))
	}
	r := results[0]
	if r.Cause != CauseFloor || r.Ticks != 30 {
		t.Errorf("result = %+v, expected floor after 30 ticks", r)
	}

	if s.Advance(time.Second) != 0 {
		t.Error("no ticks should run after game over")
	}
}

func TestSessionRestart(t *testing.T) {
	s := NewSession(config.DefaultFlappyConfig(), 1)
	var results []RunResult
	s.OnGameOver(func(r RunResult) { results = append(results, r) })

	s.Submit(core.CommandStart)
	s.Advance(0)
	s.world.score = 3
	advanceFor(s, 2*time.Second)
	if len(results) != 1 || results[0].Highest != 3 {
		t.Fatalf("first run results = %+v", results)
	}

	s.Submit(core.CommandStart) // only Restart is valid after game over
	s.Advance(0)
	if s.State() != StateGameOver {
		t.Fatal("start must not restart a finished run")
	}

	s.Submit(core.CommandRestart)
	s.Advance(0)
	snap := s.Snapshot()
	cfg := s.Config()
	if snap.State != StateRunning || !s.DriversRunning() {
		t.Fatal("restart should resume both drivers")
	}
	if snap.Score != 0 || len(snap.Pipes) != 0 {
		t.Errorf("restart should clear score and pipes: score=%v pipes=%d", snap.Score, len(snap.Pipes))
	}
	if snap.Bird.Y != cfg.Bird.Y || snap.Velocity != 0 {
		t.Errorf("restart should reset the bird: y=%d v=%d", snap.Bird.Y, snap.Velocity)
	}
	if snap.Highest != 3 {
		t.Errorf("highest must survive restart, got %v", snap.Highest)
	}

	// Flap is accepted again in the new run
	s.Submit(core.CommandFlap)
	s.Advance(0)
	if s.Snapshot().Velocity != cfg.Physics.FlapVelocity {
		t.Error("flap should work after restart")
	}

	advanceFor(s, 3*time.Second)
	if len(results) != 2 {
		t.Fatalf("expected two game overs, got %d", len(results))
	}
	if results[1].Score != 0 || results[1].Highest != 3 {
		t.Errorf("second run result = %+v, highest should stay 3", results[1])
	}
}

func TestSessionNoStaleSpawnAfterRestart(t *testing.T) {
	cfg := tallBoardConfig()
	s := startedSession(t, cfg)

	advanceFor(s, 1400*time.Millisecond)
	s.world.bird.Y = cfg.Board.Height + 1
	s.Advance(20 * time.Millisecond)
	if s.State() != StateGameOver {
		t.Fatalf("expected game over, got %v", s.State())
	}

	s.Submit(core.CommandRestart)
	advanceFor(s, 200*time.Millisecond)
	if n := len(s.Snapshot().Pipes); n != 0 {
		t.Errorf("spawn time from the previous run fired into the new one: %d pipes", n)
	}
}

func TestSessionExit(t *testing.T) {
	s := startedSession(t, config.DefaultFlappyConfig())
	s.Submit(core.CommandExit)
	s.Advance(frame)

	if !s.Exited() {
		t.Error("exit command should mark the session exited")
	}
	if s.DriversRunning() {
		t.Error("exit should stop both drivers")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(config.DefaultFlappyConfig(), 42)
		s.Submit(core.CommandStart)
		pilot := NewAutopilot()
		for i := 0; i < 600 && s.State() != StateGameOver; i++ {
			if pilot.Decide(s.Snapshot()) {
				s.Submit(core.CommandFlap)
			}
			s.Advance(frame)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs produced different states:\n%+v\n%+v", a, b)
	}
}

func TestSessionInvariantsUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s := NewSession(config.DefaultFlappyConfig(), 5)
	s.Submit(core.CommandStart)

	prevScore := 0.0
	for i := 0; i < 5000; i++ {
		if rng.Intn(4) == 0 {
			s.Submit(core.CommandFlap)
		}
		if s.State() == StateGameOver {
			s.Submit(core.CommandRestart)
			prevScore = 0
		}
		s.Advance(time.Duration(rng.Intn(40)) * time.Millisecond)

		snap := s.Snapshot()
		if snap.Bird.Y < 0 {
			t.Fatalf("step %d: bird y = %d", i, snap.Bird.Y)
		}
		if snap.Score < prevScore {
			t.Fatalf("step %d: score decreased from %v to %v", i, prevScore, snap.Score)
		}
		if steps := (snap.Score - prevScore) / ScorePerPipe; steps != float64(int(steps)) {
			t.Fatalf("step %d: score moved by %v", i, snap.Score-prevScore)
		}
		if snap.Highest < snap.Score && snap.GameOver {
			t.Fatalf("step %d: highest %v below finalized score %v", i, snap.Highest, snap.Score)
		}
		prevScore = snap.Score
	}
}
