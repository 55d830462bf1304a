package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Button is one of the affordances shown after a game over.
type Button int

const (
	ButtonRestart Button = iota
	ButtonExit
)

// String returns the button label.
func (b Button) String() string {
	if b == ButtonExit {
		return "Exit"
	}
	return "Restart"
}

// KeyMap defines the key bindings for the game.
type KeyMap struct {
	Flap    key.Binding
	Start   key.Binding
	Restart key.Binding
	Exit    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Help    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Restart, k.Exit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Flap},
		{k.Left, k.Right, k.Confirm},
		{k.Restart, k.Exit, k.Help},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space/up", "flap"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Exit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "exit"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left/h", "prev button"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right/l", "next button"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press button"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Translate maps a key press to a command for the given phase. focus is the
// highlighted game-over button; the returned button reflects any focus move.
// Terminals report presses only, so every flap key message is one impulse;
// the model collapses repeats that arrive within one frame.
func (k KeyMap) Translate(msg tea.KeyMsg, state flappy.State, focus Button) (core.Command, Button) {
	if key.Matches(msg, k.Exit) {
		return core.CommandExit, focus
	}

	switch state {
	case flappy.StateIdle:
		if key.Matches(msg, k.Start) {
			return core.CommandStart, focus
		}

	case flappy.StateRunning:
		if key.Matches(msg, k.Flap) {
			return core.CommandFlap, focus
		}

	case flappy.StateGameOver:
		switch {
		case key.Matches(msg, k.Restart):
			return core.CommandRestart, focus
		case key.Matches(msg, k.Left), key.Matches(msg, k.Right):
			return core.CommandNone, toggle(focus)
		case key.Matches(msg, k.Confirm):
			if focus == ButtonExit {
				return core.CommandExit, focus
			}
			return core.CommandRestart, focus
		}
	}

	return core.CommandNone, focus
}

func toggle(b Button) Button {
	if b == ButtonRestart {
		return ButtonExit
	}
	return ButtonRestart
}
