package flappy

// Autopilot is a simple flap policy used for headless simulation.
// It aims to keep the bird just above the bottom of the next opening.
type Autopilot struct {
	// Margin is how far above the bottom pipe the bird's lower edge is kept.
	Margin int
}

// NewAutopilot returns an autopilot with a margin suited to the default physics.
func NewAutopilot() Autopilot {
	return Autopilot{Margin: 20}
}

// Decide reports whether to flap on this frame.
func (a Autopilot) Decide(snap Snapshot) bool {
	if snap.State != StateRunning || snap.Velocity < 0 {
		return false
	}
	return snap.Bird.Bottom() > a.target(snap)
}

// target returns the y the bird's bottom edge should stay above. Pipes arrive in
// top/bottom pairs; the first pair whose trailing edge is still ahead of the
// bird's x is the one to aim for.
func (a Autopilot) target(snap Snapshot) int {
	for i := 0; i+1 < len(snap.Pipes); i += 2 {
		bottom := snap.Pipes[i+1]
		if bottom.Right() < snap.Bird.X {
			continue
		}
		return bottom.Y - a.Margin
	}
	return snap.BoardH*2/3 - a.Margin
}
