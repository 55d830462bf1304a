package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	leftKey  = tea.KeyMsg{Type: tea.KeyLeft}
	rightKey = tea.KeyMsg{Type: tea.KeyRight}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	upKey    = tea.KeyMsg{Type: tea.KeyUp}
	ctrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func TestTranslate(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name      string
		msg       tea.KeyMsg
		state     flappy.State
		focus     Button
		wantCmd   core.Command
		wantFocus Button
	}{
		{"enter starts when idle", enterKey, flappy.StateIdle, ButtonRestart, core.CommandStart, ButtonRestart},
		{"space starts when idle", spaceKey, flappy.StateIdle, ButtonRestart, core.CommandStart, ButtonRestart},
		{"up does nothing when idle", upKey, flappy.StateIdle, ButtonRestart, core.CommandNone, ButtonRestart},
		{"space flaps while running", spaceKey, flappy.StateRunning, ButtonRestart, core.CommandFlap, ButtonRestart},
		{"up flaps while running", upKey, flappy.StateRunning, ButtonRestart, core.CommandFlap, ButtonRestart},
		{"w flaps while running", runeKey('w'), flappy.StateRunning, ButtonRestart, core.CommandFlap, ButtonRestart},
		{"r ignored while running", runeKey('r'), flappy.StateRunning, ButtonRestart, core.CommandNone, ButtonRestart},
		{"r restarts after game over", runeKey('r'), flappy.StateGameOver, ButtonExit, core.CommandRestart, ButtonExit},
		{"space does not flap after game over", spaceKey, flappy.StateGameOver, ButtonRestart, core.CommandRestart, ButtonRestart},
		{"right moves focus", rightKey, flappy.StateGameOver, ButtonRestart, core.CommandNone, ButtonExit},
		{"left moves focus back", leftKey, flappy.StateGameOver, ButtonExit, core.CommandNone, ButtonRestart},
		{"tab moves focus", tabKey, flappy.StateGameOver, ButtonRestart, core.CommandNone, ButtonExit},
		{"enter presses restart", enterKey, flappy.StateGameOver, ButtonRestart, core.CommandRestart, ButtonRestart},
		{"enter presses exit", enterKey, flappy.StateGameOver, ButtonExit, core.CommandExit, ButtonExit},
		{"q exits while running", runeKey('q'), flappy.StateRunning, ButtonRestart, core.CommandExit, ButtonRestart},
		{"ctrl+c exits when idle", ctrlC, flappy.StateIdle, ButtonRestart, core.CommandExit, ButtonRestart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, focus := keys.Translate(tt.msg, tt.state, tt.focus)
			if cmd != tt.wantCmd {
				t.Errorf("command = %v, expected %v", cmd, tt.wantCmd)
			}
			if focus != tt.wantFocus {
				t.Errorf("focus = %v, expected %v", focus, tt.wantFocus)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}
	for i, group := range keys.FullHelp() {
		if len(group) == 0 {
			t.Errorf("FullHelp() group %d is empty", i)
		}
	}
}
