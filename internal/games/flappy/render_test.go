package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestPlayfieldSize(t *testing.T) {
	tests := []struct {
		name         string
		termW, termH int
		wantW, wantH int
	}{
		{"height bound", 80, 24, 27, 24},
		{"width bound", 20, 24, 20, 17},
		{"empty terminal", 0, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := PlayfieldSize(360, 640, tc.termW, tc.termH)
			if w != tc.wantW || h != tc.wantH {
				t.Errorf("PlayfieldSize() = %dx%d, expected %dx%d", w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestRenderBirdAndPipes(t *testing.T) {
	s := NewSession(config.DefaultFlappyConfig(), 1)
	s.Submit(core.CommandStart)
	s.Advance(0)
	s.world.AddPair(
		Pipe{X: 200, Y: -300, W: 64, H: 512},
		Pipe{X: 200, Y: 372, W: 64, H: 512},
	)

	// One cell per 10 world units
	screen := core.NewScreen(36, 64)
	Render(s.Snapshot(), screen)

	// Bird at (45, 180) 34x24 covers cells x 4..7, y 18..20
	if cell := screen.GetCell(5, 19); cell.Rune != BirdChar || cell.Color != core.ColorBrightYellow {
		t.Errorf("bird body cell = %+v", cell)
	}
	if screen.Get(7, 18) != BirdBeakChar {
		t.Errorf("beak expected at (7, 18), got %q", screen.Get(7, 18))
	}

	// Top pipe covers rows up to 21 with its lip on row 21
	if cell := screen.GetCell(22, 10); cell.Rune != PipeChar || cell.Color != core.ColorGreen {
		t.Errorf("top pipe body cell = %+v", cell)
	}
	if screen.Get(22, 21) != PipeLipChar {
		t.Errorf("top pipe lip expected at row 21, got %q", screen.Get(22, 21))
	}
	// Opening between the pipes is empty
	if screen.Get(22, 30) != ' ' {
		t.Errorf("opening should be empty, got %q", screen.Get(22, 30))
	}
	// Bottom pipe starts at row 37 with its lip
	if screen.Get(22, 37) != PipeLipChar || screen.Get(22, 50) != PipeChar {
		t.Errorf("bottom pipe not drawn: lip %q body %q", screen.Get(22, 37), screen.Get(22, 50))
	}

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing from row 0: %q", screen.Row(0))
	}
}

func TestRenderGameOverBird(t *testing.T) {
	s := startedSession(t, config.DefaultFlappyConfig())
	s.world.bird.Y = 700
	s.Advance(frame * 2)

	screen := core.NewScreen(36, 64)
	snap := s.Snapshot()
	snap.Bird = core.NewRect(45, 180, 34, 24)
	Render(snap, screen)
	if screen.GetCell(5, 19).Color != core.ColorRed {
		t.Error("bird should be drawn red after game over")
	}
}

func TestDrawPanel(t *testing.T) {
	screen := core.NewScreen(40, 12)
	DrawPanel(screen, "GAME OVER", "Score: 3")

	text := screen.String()
	for _, want := range []string{"GAME OVER", "Score: 3", "┌", "┘"} {
		if !strings.Contains(text, want) {
			t.Errorf("panel missing %q:\n%s", want, text)
		}
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{0: "0", 0.5: "0", 2.5: "2", 7: "7"}
	for in, want := range tests {
		if got := FormatScore(in); got != want {
			t.Errorf("FormatScore(%v) = %q, expected %q", in, got, want)
		}
	}
}
