package flappy

import "time"

// periodic is one fixed-interval driver inside the scheduler.
type periodic struct {
	interval time.Duration
	acc      time.Duration
	fire     func()
}

// overshoot is how long ago the driver became due. Negative means not yet due.
func (p *periodic) overshoot() time.Duration {
	if p.interval <= 0 {
		return -1
	}
	return p.acc - p.interval
}

// Scheduler is an accumulator-based fixed-timestep driver for the physics tick
// and the pipe spawner. Wall-clock time is fed in through Advance; both drivers
// fire in chronological order and are suspended and resumed together.
type Scheduler struct {
	tick     periodic
	spawn    periodic
	maxFrame time.Duration
	running  bool
}

// NewScheduler creates a stopped scheduler. maxFrame caps how much time a single
// Advance may simulate; 0 disables the cap.
func NewScheduler(tickEvery, spawnEvery, maxFrame time.Duration, onTick, onSpawn func()) *Scheduler {
	return &Scheduler{
		tick:     periodic{interval: tickEvery, fire: onTick},
		spawn:    periodic{interval: spawnEvery, fire: onSpawn},
		maxFrame: maxFrame,
	}
}

// Start resumes both drivers with empty accumulators.
func (s *Scheduler) Start() {
	s.tick.acc = 0
	s.spawn.acc = 0
	s.running = true
}

// Stop suspends both drivers and discards pending time, so nothing queued
// before the stop can fire after a later Start.
func (s *Scheduler) Stop() {
	s.running = false
	s.tick.acc = 0
	s.spawn.acc = 0
}

// Running reports whether the drivers are active.
func (s *Scheduler) Running() bool {
	return s.running
}

// Advance feeds elapsed wall-clock time and fires every event that became due,
// earliest first. On a tie the physics tick fires before the spawn. A callback
// may call Stop, which ends the advance immediately.
// It returns the number of physics ticks fired.
func (s *Scheduler) Advance(elapsed time.Duration) int {
	if !s.running || elapsed <= 0 {
		return 0
	}
	if s.maxFrame > 0 && elapsed > s.maxFrame {
		elapsed = s.maxFrame
	}

	s.tick.acc += elapsed
	s.spawn.acc += elapsed

	ticks := 0
	for s.running {
		tickDue := s.tick.overshoot() >= 0
		spawnDue := s.spawn.overshoot() >= 0
		switch {
		case tickDue && (!spawnDue || s.tick.overshoot() >= s.spawn.overshoot()):
			s.tick.acc -= s.tick.interval
			ticks++
			s.tick.fire()
		case spawnDue:
			s.spawn.acc -= s.spawn.interval
			s.spawn.fire()
		default:
			return ticks
		}
	}
	return ticks
}
