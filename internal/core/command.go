package core

// Command is a discrete request delivered by an input adapter to the game session.
// Adapters translate keys, clicks and buttons into commands; the session decides
// whether a command is valid in the current state.
type Command int

const (
	CommandNone    Command = iota
	CommandStart           // Play button / enter on the title screen
	CommandRestart         // Restart button after game over
	CommandFlap            // Upward impulse, one per key-press edge
	CommandExit            // Exit button / quit key
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandStart:
		return "Start"
	case CommandRestart:
		return "Restart"
	case CommandFlap:
		return "Flap"
	case CommandExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// CommandQueue is a FIFO of commands waiting to be applied on the next advance.
// It is owned by a single execution context and is not safe for concurrent use.
type CommandQueue struct {
	items []Command
}

// Push appends a command. CommandNone is dropped.
func (q *CommandQueue) Push(c Command) {
	if c == CommandNone {
		return
	}
	q.items = append(q.items, c)
}

// Drain returns all queued commands in arrival order and empties the queue.
func (q *CommandQueue) Drain() []Command {
	if len(q.items) == 0 {
		return nil
	}
	out := make([]Command, len(q.items))
	copy(out, q.items)
	q.items = q.items[:0]
	return out
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	return len(q.items)
}
