package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdChar     = '●'
	BirdBeakChar = '▶'
	PipeChar     = '█'
	PipeLipChar  = '▓'
)

// cellAspect is how many terminal columns make up the height of one row.
const cellAspect = 2.0

// PlayfieldSize returns the largest cell area that shows the whole board with
// its proportions intact on a terminal of termW x termH cells.
func PlayfieldSize(boardW, boardH, termW, termH int) (w, h int) {
	if boardW <= 0 || boardH <= 0 || termW <= 0 || termH <= 0 {
		return 0, 0
	}
	h = termH
	w = int(float64(h) * float64(boardW) / float64(boardH) * cellAspect)
	if w > termW {
		w = termW
		h = int(float64(w) * float64(boardH) / float64(boardW) / cellAspect)
	}
	return max(w, 1), max(h, 1)
}

// projector maps world units onto screen cells.
type projector struct {
	sx, sy float64
}

func newProjector(snap Snapshot, dst *core.Screen) projector {
	if snap.BoardW <= 0 || snap.BoardH <= 0 {
		return projector{}
	}
	return projector{
		sx: float64(dst.Width()) / float64(snap.BoardW),
		sy: float64(dst.Height()) / float64(snap.BoardH),
	}
}

// cells converts a world rectangle to the covering cell rectangle. Anything
// wider than zero in world units covers at least one cell.
func (p projector) cells(r core.Rect) core.Rect {
	x0 := int(math.Floor(float64(r.X) * p.sx))
	y0 := int(math.Floor(float64(r.Y) * p.sy))
	x1 := int(math.Ceil(float64(r.Right()) * p.sx))
	y1 := int(math.Ceil(float64(r.Bottom()) * p.sy))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the board, pipes, bird and score onto dst, stretching the board
// over the whole screen. Use PlayfieldSize to pick a screen that keeps proportions.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	proj := newProjector(snap, dst)

	for _, p := range snap.Pipes {
		drawPipe(dst, proj, p, snap.BoardH)
	}

	bird := proj.cells(snap.Bird)
	birdColor := core.ColorBrightYellow
	if snap.GameOver {
		birdColor = core.ColorRed
	}
	dst.DrawRect(bird, BirdChar, birdColor)
	dst.SetColor(bird.Right()-1, bird.Y, BirdBeakChar, core.ColorOrange)

	hud := fmt.Sprintf(" Score: %s  Highest: %s ", FormatScore(snap.Score), FormatScore(snap.Highest))
	dst.DrawTextColor(1, 0, hud, core.ColorWhite)
}

// drawPipe draws a pipe body with a lip on the edge that faces the opening.
func drawPipe(dst *core.Screen, proj projector, p core.Rect, boardH int) {
	r := proj.cells(p)
	dst.DrawRect(r, PipeChar, core.ColorGreen)

	switch {
	case p.Y <= 0 && p.Bottom() < boardH:
		dst.DrawHLine(r.X, r.Bottom()-1, r.W, PipeLipChar, core.ColorBrightGreen)
	case p.Y > 0:
		dst.DrawHLine(r.X, r.Y, r.W, PipeLipChar, core.ColorBrightGreen)
	}
}

// DrawPanel draws a boxed, centered block of lines over whatever is on dst.
func DrawPanel(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorCyan)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawTextColor(x, box.Y+1+i, l, core.ColorBrightYellow)
	}
}

// FormatScore renders a score the way the HUD shows it: whole gaps only.
func FormatScore(score float64) string {
	return fmt.Sprintf("%d", int(score))
}
