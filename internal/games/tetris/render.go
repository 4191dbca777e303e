package tetris

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Layout constants. Each matrix cell is two characters wide so blocks look
// square in a typical terminal font.
const (
	cellWidth   = 2
	boardW      = engine.Width*cellWidth + 2
	boardH      = engine.VisibleHeight + 2
	panelW      = 14
	panelGap    = 1
	layoutW     = panelW + panelGap + boardW + panelGap + panelW
	layoutH     = boardH + 1 // title row
	maxPreview  = 5
	previewRows = 3 // two block rows plus a spacer
)

var kindColors = map[engine.Kind]core.Color{
	engine.KindI: core.ColorCyan,
	engine.KindJ: core.ColorBlue,
	engine.KindL: core.ColorOrange,
	engine.KindO: core.ColorYellow,
	engine.KindS: core.ColorGreen,
	engine.KindT: core.ColorMagenta,
	engine.KindZ: core.ColorRed,
}

// Render draws the matrix, the side panels and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	layout := core.CenteredRect(g.screenW, g.screenH, layoutW, layoutH)
	if !layout.FitsIn(g.screenW, g.screenH) {
		g.renderTooSmall(dst)
		return
	}

	s := g.engine.Snapshot()

	originX, originY := layout.X, layout.Y
	boardX := originX + panelW + panelGap
	boardY := originY + 1
	rightX := boardX + boardW + panelGap

	title := "TETRIS"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, originY, title, core.ColorBrightWhite)

	g.renderBoard(dst, &s, boardX, boardY)
	g.renderHold(dst, &s, originX, boardY)
	g.renderStats(dst, &s, originX, boardY+5)
	g.renderNext(dst, &s, rightX, boardY)
	g.renderOverlays(dst, &s, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", layoutW, layoutH))
}

// renderBoard draws the visible rows of the matrix with the ghost and the
// active piece on top. Row 0 of the matrix is the bottom line of the box.
func (g *Game) renderBoard(dst *core.Screen, s *engine.Snapshot, bx, by int) {
	box := core.NewRect(bx, by, boardW, boardH)
	dst.DrawBoxColored(box, core.ColorGray)
	inner := box.Inset(1)

	cellAt := func(x, y int) (int, int) {
		return inner.X + x*cellWidth, inner.Y + (engine.VisibleHeight - 1 - y)
	}

	for y := range engine.VisibleHeight {
		for x := range engine.Width {
			sx, sy := cellAt(x, y)
			if k := s.Matrix[y][x]; k != engine.KindNone {
				drawBlock(dst, sx, sy, "██", kindColors[k])
				continue
			}
			dst.SetColored(sx, sy, '·', core.ColorGray)
		}
	}

	if !s.HasActive {
		return
	}
	// Cells above the visible rows map outside the box and are skipped.
	draw := func(cells []engine.Point, block string, color core.Color) {
		for _, c := range cells {
			if sx, sy := cellAt(c.X, c.Y); inner.Contains(sx, sy) {
				drawBlock(dst, sx, sy, block, color)
			}
		}
	}
	draw(s.Ghost[:], "░░", core.ColorGray)
	draw(s.ActiveCells[:], "██", kindColors[s.Active.Kind])
}

// renderHold draws the hold box. A used hold is grayed out.
func (g *Game) renderHold(dst *core.Screen, s *engine.Snapshot, x, y int) {
	drawPanel(dst, core.NewRect(x, y, panelW, 4), "HOLD")
	if s.Hold == engine.KindNone {
		return
	}
	color := kindColors[s.Hold]
	if s.HoldUsed {
		color = core.ColorGray
	}
	drawMini(dst, s.Hold, x+3, y+1, color)
}

// renderStats draws score, level and the last scoring action.
func (g *Game) renderStats(dst *core.Screen, s *engine.Snapshot, x, y int) {
	rows := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprintf("%d", s.Score)},
		{"LEVEL", fmt.Sprintf("%d", s.Level)},
		{"LINES", fmt.Sprintf("%d/%d", s.Lines, s.Goal)},
	}
	for i, r := range rows {
		dst.DrawTextColored(x+1, y+i*3, r.label, core.ColorGray)
		dst.DrawText(x+1, y+i*3+1, r.value)
	}

	line := y + len(rows)*3
	if s.BackToBack {
		dst.DrawTextColored(x+1, line, "B2B", core.ColorBrightYellow)
	}
	line += 2
	for _, w := range wrap(s.LastAction, panelW-2) {
		dst.DrawTextColored(x+1, line, w, core.ColorBrightCyan)
		line++
	}
}

// renderNext draws the preview queue, nearest piece first.
func (g *Game) renderNext(dst *core.Screen, s *engine.Snapshot, x, y int) {
	n := min(len(s.Next), maxPreview)
	h := n*previewRows + 1
	if n == 0 {
		h = 4
	}
	drawPanel(dst, core.NewRect(x, y, panelW, h), "NEXT")
	for i := range n {
		drawMini(dst, s.Next[i], x+3, y+1+i*previewRows, kindColors[s.Next[i]])
	}

	dst.DrawTextColored(x+1, y+h+1, "PIECES", core.ColorGray)
	dst.DrawText(x+1, y+h+2, fmt.Sprintf("%d", s.Pieces))
}

// renderOverlays draws pause and game over messages over the board.
func (g *Game) renderOverlays(dst *core.Screen, s *engine.Snapshot, bx, by int) {
	cx, cy := core.NewRect(bx, by, boardW, boardH).Center()

	switch {
	case s.GameOver:
		drawOverlay(dst, cx, cy,
			"GAME OVER",
			strings.ToUpper(s.Reason.String()),
			fmt.Sprintf("Score %d", s.Score),
			"R restart  Q quit",
		)
	case g.paused:
		drawOverlay(dst, cx, cy, "PAUSED", "P to resume")
	}
}

// drawPanel draws a box with its title set into the top border.
func drawPanel(dst *core.Screen, r core.Rect, title string) {
	dst.DrawBoxColored(r, core.ColorGray)
	dst.DrawText(r.X+2, r.Y, " "+title+" ")
}

// drawMini draws a piece in its spawn facing inside a two-row area whose
// top-left corner is (x, y).
func drawMini(dst *core.Screen, k engine.Kind, x, y int, color core.Color) {
	for _, c := range engine.Shape(k, engine.North) {
		drawBlock(dst, x+(c.X+1)*cellWidth, y+1-c.Y, "██", color)
	}
}

func drawBlock(dst *core.Screen, x, y int, block string, color core.Color) {
	dst.DrawTextColored(x, y, block, color)
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// wrap splits text into lines no wider than width, breaking on spaces.
func wrap(text string, width int) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(text) {
		switch {
		case cur == "":
			cur = w
		case len(cur)+1+len(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
