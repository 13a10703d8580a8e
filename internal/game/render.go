package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/ai2048/internal/core"
	"github.com/vovakirdan/ai2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including the left border)
	cellHeight = 2 // Height of each cell (including the top border)
	hudHeight  = 4
	hudWidth   = 36
)

// MinScreen returns the smallest screen that fits a board of the given size.
func MinScreen(size int) (w, h int) {
	boardW, boardH := boardDims(size)
	return max(boardW, hudWidth), hudHeight + 1 + boardH + 2
}

func boardDims(size int) (int, int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// Render draws the session to dst.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	size := s.engine.Size()
	minW, minH := MinScreen(size)
	if dst.Width() < minW || dst.Height() < minH {
		renderTooSmall(dst, minW, minH)
		return
	}

	boardW, boardH := boardDims(size)
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight + 1
	hudX := (dst.Width() - max(boardW, hudWidth)) / 2

	s.renderHUD(dst, hudX, max(boardW, hudWidth))
	s.renderBoard(dst, boardX, boardY)
	s.renderAnalysis(dst, hudX, boardY+boardH+1)

	if s.engine.IsGameOver() {
		board := core.NewRect(boardX, boardY, boardW, boardH)
		drawOverlay(dst, board,
			"GAME OVER",
			fmt.Sprintf("Score: %d  Max tile: %d", s.engine.Score(), s.engine.Board().MaxTile()),
			"Press R to restart",
		)
	}
}

func renderTooSmall(dst *core.Screen, minW, minH int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d", minW, minH))
}

func (s *Session) renderHUD(dst *core.Screen, x, w int) {
	title := "2048 AI"
	dst.DrawTextColor(x+(w-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(x, 1, fmt.Sprintf("Score: %d", s.engine.Score()))
	maxStr := fmt.Sprintf("Max: %d", s.engine.Board().MaxTile())
	dst.DrawText(x+w-len(maxStr), 1, maxStr)

	ai, aiColor := "AI: off", core.ColorGray
	if s.autoplay {
		ai, aiColor = "AI: on", core.ColorBrightGreen
	}
	dst.DrawTextColor(x, 2, ai, aiColor)
	intel := fmt.Sprintf("Intelligence: %d", s.intelligence)
	dst.DrawText(x+w-len(intel), 2, intel)

	dst.DrawText(x, 3, fmt.Sprintf("Place: %d", s.PlaceValue()))
	delay := fmt.Sprintf("Delay: %dms", s.delayMS)
	if s.backup != nil {
		delay = "Backup  " + delay
	}
	dst.DrawText(x+w-len(delay), 3, delay)
}

func (s *Session) renderBoard(dst *core.Screen, boardX, boardY int) {
	size := s.engine.Size()

	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.SetColor(px, py, gridCorner(x, y, size), core.ColorGray)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for _, t := range s.engine.Board().Tiles() {
		cellX := boardX + t.Pos.Col*cellWidth + 1
		cellY := boardY + t.Pos.Row*cellHeight + 1

		if t.Pos == s.cursor && !s.autoplay {
			dst.SetColor(cellX, cellY, '[', core.ColorCyan)
			dst.SetColor(cellX+cellWidth-2, cellY, ']', core.ColorCyan)
		}
		if t.IsEmpty() {
			continue
		}

		label := strconv.Itoa(t.Value)
		pad := max((cellWidth-1-len(label))/2, 0)
		dst.DrawTextColor(cellX+pad, cellY, label, core.TileColor(t.Value))

		switch {
		case s.added[t.Pos]:
			dst.SetColor(cellX+cellWidth-2, cellY, '+', core.ColorBrightGreen)
		case s.merged[t.Pos]:
			dst.SetColor(cellX+cellWidth-2, cellY, '*', core.ColorBrightYellow)
		}
	}
}

func gridCorner(x, y, size int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == size:
		return '┐'
	case y == size && x == 0:
		return '└'
	case y == size && x == size:
		return '┘'
	case y == 0:
		return '┬'
	case y == size:
		return '┴'
	case x == 0:
		return '├'
	case x == size:
		return '┤'
	default:
		return '┼'
	}
}

// renderAnalysis shows the averages behind the last AI move.
func (s *Session) renderAnalysis(dst *core.Screen, x, y int) {
	a := s.lastAnalysis
	if a == nil {
		return
	}
	if len(a.Evaluations) == 0 {
		dst.DrawTextColor(x, y, fmt.Sprintf("AI: %s (random)", a.Best), core.ColorGray)
		return
	}

	parts := make([]string, 0, len(a.Evaluations))
	for _, ev := range a.Evaluations {
		parts = append(parts, fmt.Sprintf("%s %d", shortDir(ev.Direction), ev.Average))
	}
	line := fmt.Sprintf("AI: %s x%d  %s", a.Best, a.NumRuns, strings.Join(parts, " "))
	dst.DrawTextColor(x, y, line, core.ColorGray)
}

func shortDir(d engine.Direction) string {
	return strings.ToUpper(d.String()[:1])
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := area.CenteredIn(maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	cx, _ := box.Center()
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightRed
		}
		dst.DrawTextColor(cx-utf8.RuneCountInString(line)/2, box.Y+1+i, line, color)
	}
}
