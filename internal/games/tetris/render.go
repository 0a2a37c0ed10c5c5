package tetris

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellW    = 2  // terminal columns per board cell
	panelW   = 22 // side panel width including the gap
	titleH   = 1
	previewN = 4 // largest piece box
)

const (
	blockGlyph = '█'
	emptyGlyph = '·'
)

// layoutSize returns the smallest screen that fits a w x h board.
func layoutSize(w, h int) (int, int) {
	return w*cellW + 2 + panelW, h + 2 + titleH
}

// Render draws the well, the side panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW, totalH := layoutSize(g.snap.Width, g.snap.Height)
	area := dst.Bounds().Centered(totalW, totalH)

	dst.DrawTextColored(area.X, area.Y, strings.ToUpper(g.variant.Title), core.ColorCyan)
	if label := g.difficulty.DisplayName(); label != "" {
		text := "Speed: " + label
		dst.DrawTextColored(area.Right()-len(text), area.Y, text, core.ColorGray)
	}

	well := core.NewRect(area.X, area.Y+titleH, g.snap.Width*cellW+2, g.snap.Height+2)
	g.renderWell(dst, well)
	g.renderPanel(dst, well.Right()+2, well.Y)

	switch {
	case g.snap.GameOver:
		lines := []string{"GAME OVER", "Score " + humanize.Comma(int64(g.snap.Score))}
		if g.snap.Score > g.highScore && g.snap.Score > 0 {
			lines = append(lines, "New high score!")
		}
		lines = append(lines, "", "R restart  B menu")
		g.renderOverlay(dst, well, lines...)
	case g.paused:
		g.renderOverlay(dst, well, "PAUSED", "", "P to resume")
	}
}

// renderWell draws the border, locked cells and the falling piece.
func (g *Game) renderWell(dst *core.Screen, well core.Rect) {
	dst.DrawBoxColored(well, core.ColorGray)
	inner := well.Inner()

	for y, row := range g.snap.Frame() {
		for x, v := range row {
			sx, sy := inner.X+x*cellW, inner.Y+y
			if v == 0 {
				dst.SetColored(sx+1, sy, emptyGlyph, core.ColorGray)
				continue
			}
			drawBlock(dst, sx, sy, v)
		}
	}
}

// drawBlock paints one board cell as a double-width colored block.
func drawBlock(dst *core.Screen, sx, sy, cell int) {
	c := core.PieceColor(cell)
	for i := 0; i < cellW; i++ {
		dst.SetColored(sx+i, sy, blockGlyph, c)
	}
}

// renderPanel draws the next piece preview, the stats and key hints.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	box := core.NewRect(x, y, previewN*cellW+2, previewN+2)
	dst.DrawBoxColored(box, core.ColorGray)
	dst.DrawText(box.X+2, box.Y, " NEXT ")

	next := g.snap.Next.Shape
	offX := (previewN - len(next)) * cellW / 2
	offY := (previewN - len(next)) / 2
	for py, row := range next {
		for px, v := range row {
			if v != 0 {
				drawBlock(dst, box.X+1+offX+px*cellW, box.Y+1+offY+py, v)
			}
		}
	}

	stats := []struct{ label, value string }{
		{"Score", humanize.Comma(int64(g.snap.Score))},
		{"Best", humanize.Comma(int64(g.best()))},
		{"Lines", humanize.Comma(int64(g.snap.Lines))},
		{"Level", fmt.Sprintf("%d", g.snap.Level)},
		{"Drop", fmt.Sprintf("%.0fms", g.snap.DropIntervalMs)},
	}
	row := box.Bottom() + 1
	for _, s := range stats {
		dst.DrawTextColored(x, row, s.label, core.ColorGray)
		dst.DrawTextColored(x+7, row, s.value, core.ColorWhite)
		row++
	}

	dst.DrawHLine(x, row, box.W, '─')
	row++
	for _, hint := range []string{"←→ move  ↑ rotate", "↓ drop  ␣ slam", "P pause  Q quit"} {
		if !dst.Bounds().Contains(x, row) {
			break
		}
		dst.DrawTextColored(x, row, hint, core.ColorGray)
		row++
	}
}

// renderOverlay draws a bordered message box centered on the well.
func (g *Game) renderOverlay(dst *core.Screen, well core.Rect, lines ...string) {
	textW := 0
	for _, l := range lines {
		textW = max(textW, len([]rune(l)))
	}
	box := well.Centered(textW+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorWhite)
	for i, l := range lines {
		lx := core.Clamp(box.X+(box.W-len([]rune(l)))/2, box.X+1, box.Right()-2)
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorYellow
		}
		dst.DrawTextColored(lx, box.Y+1+i, l, c)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := layoutSize(g.snap.Width, g.snap.Height)
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", w, h, dst.Width(), dst.Height()))
}
