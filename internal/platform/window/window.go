// Package window runs the game in a desktop window through ebiten.
package window

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Button geometry in board units.
const (
	buttonW   = 120
	buttonH   = 40
	buttonGap = 20
	glyphW    = 6 // Width of a debug-font glyph in pixels
)

var (
	skyColor    = color.RGBA{R: 112, G: 197, B: 206, A: 255}
	buttonColor = color.RGBA{R: 40, G: 40, B: 48, A: 220}
	borderColor = color.RGBA{R: 250, G: 250, B: 250, A: 255}
)

// palette maps core colors onto window colors.
var palette = map[core.Color]color.RGBA{
	core.ColorGreen:        {R: 83, G: 160, B: 60, A: 255},
	core.ColorBrightGreen:  {R: 130, G: 210, B: 90, A: 255},
	core.ColorYellow:       {R: 230, G: 190, B: 40, A: 255},
	core.ColorBrightYellow: {R: 250, G: 220, B: 60, A: 255},
	core.ColorRed:          {R: 220, G: 60, B: 50, A: 255},
	core.ColorOrange:       {R: 245, G: 140, B: 40, A: 255},
	core.ColorWhite:        {R: 250, G: 250, B: 250, A: 255},
}

// Options configures a window game.
type Options struct {
	Game   config.FlappyConfig
	Seed   int64           // 0 seeds from the clock
	Ledger *storage.Ledger // Optional
	Logger *log.Logger     // Optional; discards when nil
}

// Input is what the player did during one frame.
type Input struct {
	Flap    bool
	Confirm bool
	Restart bool
	Exit    bool
	Click   bool
	X, Y    int // Cursor position in board units
}

// Game implements ebiten.Game on top of a flappy session.
type Game struct {
	session *flappy.Session
	cfg     config.FlappyConfig
	frame   time.Duration
	ledger  *storage.Ledger
	logger  *log.Logger
}

// New creates a window game with an idle session.
func New(opts Options) *Game {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		session: flappy.NewSession(opts.Game, seed),
		cfg:     opts.Game,
		frame:   opts.Game.TickInterval(),
		ledger:  opts.Ledger,
		logger:  logger,
	}
	g.session.OnGameOver(g.recordRun)
	return g
}

func (g *Game) recordRun(r flappy.RunResult) {
	g.logger.Info("game over", "score", r.Score, "highest", r.Highest, "pipes", r.PipesPassed, "cause", string(r.Cause))
	if g.ledger == nil {
		return
	}
	if _, err := g.ledger.RecordRun(storage.RunRecord{
		Score:       r.Score,
		Ticks:       r.Ticks,
		PipesPassed: r.PipesPassed,
		Cause:       string(r.Cause),
	}); err != nil {
		g.logger.Warn("could not record run", "error", err)
	}
}

// Update reads input and advances the session by one frame.
func (g *Game) Update() error {
	return g.step(readInput())
}

// readInput polls ebiten for this frame's presses. Only press edges count,
// so holding a key flaps once.
func readInput() Input {
	x, y := ebiten.CursorPosition()
	return Input{
		Flap: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
			inpututil.IsKeyJustPressed(ebiten.KeyW),
		Confirm: inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Exit: inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
			inpututil.IsKeyJustPressed(ebiten.KeyQ),
		Click: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		X:     x,
		Y:     y,
	}
}

// step turns one frame of input into commands and advances the session.
func (g *Game) step(in Input) error {
	for _, c := range g.commands(in) {
		g.session.Submit(c)
	}
	g.session.Advance(g.frame)
	if g.session.Exited() {
		return ebiten.Termination
	}
	return nil
}

// commands maps input to commands for the current phase.
func (g *Game) commands(in Input) []core.Command {
	if in.Exit {
		return []core.Command{core.CommandExit}
	}

	buttons := g.Buttons()
	switch g.session.State() {
	case flappy.StateIdle:
		if in.Confirm || (in.Click && buttons[0].Rect.Contains(in.X, in.Y)) {
			return []core.Command{core.CommandStart}
		}

	case flappy.StateRunning:
		if in.Flap || in.Click {
			return []core.Command{core.CommandFlap}
		}

	case flappy.StateGameOver:
		if in.Restart || in.Confirm {
			return []core.Command{core.CommandRestart}
		}
		if in.Click {
			for _, b := range buttons {
				if b.Rect.Contains(in.X, in.Y) {
					return []core.Command{b.Command}
				}
			}
		}
	}
	return nil
}

// Button is a clickable affordance in board units.
type Button struct {
	Label   string
	Rect    core.Rect
	Command core.Command
}

// Buttons returns the buttons shown in the current phase.
func (g *Game) Buttons() []Button {
	bw, bh := g.cfg.Board.Width, g.cfg.Board.Height
	y := bh/2 - buttonH/2

	switch g.session.State() {
	case flappy.StateIdle:
		return []Button{
			{Label: "Play", Rect: core.NewRect((bw-buttonW)/2, y, buttonW, buttonH), Command: core.CommandStart},
		}
	case flappy.StateGameOver:
		restart := core.NewRect((bw-2*buttonW-buttonGap)/2, y, buttonW, buttonH)
		return []Button{
			{Label: "Restart", Rect: restart, Command: core.CommandRestart},
			{Label: "Exit", Rect: restart.Translate(buttonW+buttonGap, 0), Command: core.CommandExit},
		}
	}
	return nil
}

// Draw paints the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	screen.Fill(skyColor)

	for _, p := range snap.Pipes {
		fillRect(screen, p, palette[core.ColorGreen])
	}

	birdColor := palette[core.ColorBrightYellow]
	if snap.GameOver {
		birdColor = palette[core.ColorRed]
	}
	fillRect(screen, snap.Bird, birdColor)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %s  Highest: %s",
		flappy.FormatScore(snap.Score), flappy.FormatScore(snap.Highest)), 8, 8)

	if snap.GameOver {
		msg := "GAME OVER"
		ebitenutil.DebugPrintAt(screen, msg, (snap.BoardW-len(msg)*glyphW)/2, snap.BoardH/2-buttonH-24)
	}
	for _, b := range g.Buttons() {
		fillRect(screen, b.Rect, buttonColor)
		vector.StrokeRect(screen, float32(b.Rect.X), float32(b.Rect.Y), float32(b.Rect.W), float32(b.Rect.H), 2, borderColor, false)
		ebitenutil.DebugPrintAt(screen, b.Label, b.Rect.X+(b.Rect.W-len(b.Label)*glyphW)/2, b.Rect.Y+b.Rect.H/2-8)
	}
}

func fillRect(screen *ebiten.Image, r core.Rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// Layout keeps the logical screen at board size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Board.Width, g.cfg.Board.Height
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() flappy.Snapshot {
	return g.session.Snapshot()
}

// Run opens the window and blocks until the player exits or closes it.
func Run(opts Options) error {
	g := New(opts)

	ebiten.SetWindowSize(opts.Game.Board.Width, opts.Game.Board.Height)
	ebiten.SetWindowTitle("Flappy Bird")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.Game.Timing.TickRate)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
