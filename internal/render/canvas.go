package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/simplr/internal/host"
)

// Pixel size of one terminal cell.
const (
	CellWidth  = 4
	CellHeight = 8
)

// Cell is one terminal character.
type Cell struct {
	Rune rune
	FG   host.Color
	BG   host.Color
	Bold bool
}

// Canvas is a grid of cells.
type Canvas struct {
	cols, rows int
	cells      [][]Cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(cols, rows int) *Canvas {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
		for c := range cells[r] {
			cells[r][c] = Cell{Rune: ' '}
		}
	}
	return &Canvas{cols: cols, rows: rows, cells: cells}
}

// Draw rasterises w.
func Draw(w *host.Window) *Canvas {
	b := w.Bounds()
	cv := NewCanvas(ceilDiv(b.Size.W, CellWidth), ceilDiv(b.Size.H, CellHeight))
	cv.fill(0, 0, cv.cols, cv.rows, w.BackgroundColor())
	for _, l := range w.Children() {
		cv.drawLayer(b, l)
	}
	return cv
}

// Size returns the grid dimensions.
func (cv *Canvas) Size() (cols, rows int) { return cv.cols, cv.rows }

// At returns the cell at col, row.
func (cv *Canvas) At(col, row int) Cell { return cv.cells[row][col] }

func (cv *Canvas) fill(c0, r0, c1, r1 int, bg host.Color) {
	if bg.IsClear() {
		return
	}
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			cv.cells[r][c] = Cell{Rune: ' ', BG: bg}
		}
	}
}

func (cv *Canvas) drawLayer(bounds host.Rect, l *host.TextLayer) {
	frame := bounds.Intersect(l.Frame())
	if frame.Empty() {
		return
	}
	c0, c1 := frame.Origin.X/CellWidth, min(ceilDiv(frame.MaxX(), CellWidth), cv.cols)
	r0, r1 := frame.Origin.Y/CellHeight, min(ceilDiv(frame.MaxY(), CellHeight), cv.rows)
	cv.fill(c0, r0, c1, r1, l.BackgroundColor())

	text := l.Text()
	if text == "" {
		return
	}
	font := l.Font()

	var lines [][]rune
	if font.Numeric {
		rows := blockText(text)
		lines = rows[:]
	} else {
		lines = [][]rune{[]rune(text)}
	}

	top := r0 + (r1-r0-len(lines))/2
	for i, line := range lines {
		row := top + i
		if row < r0 || row >= r1 {
			continue
		}
		start := alignStart(c0, c1, len(line), l.TextAlignment())
		for j, ch := range line {
			col := start + j
			if col < c0 || col >= c1 {
				continue
			}
			cell := &cv.cells[row][col]
			cell.Rune = ch
			cell.FG = l.TextColor()
			cell.Bold = font.Bold
		}
	}
}

func alignStart(c0, c1, width int, a host.TextAlignment) int {
	switch a {
	case host.AlignCenter:
		return c0 + (c1-c0-width)/2
	case host.AlignRight:
		return c1 - width
	default:
		return c0
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Lines returns the canvas as plain text rows.
func (cv *Canvas) Lines() []string {
	out := make([]string, cv.rows)
	for r, row := range cv.cells {
		var b strings.Builder
		for _, cell := range row {
			b.WriteRune(cell.Rune)
		}
		out[r] = b.String()
	}
	return out
}

// View returns the canvas with colors applied, one line per row.
func (cv *Canvas) View() string {
	rows := make([]string, cv.rows)
	for r, row := range cv.cells {
		var b strings.Builder
		start := 0
		for c := 1; c <= len(row); c++ {
			if c < len(row) && sameStyle(row[c], row[start]) {
				continue
			}
			b.WriteString(cellStyle(row[start]).Render(runText(row[start:c])))
			start = c
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}

func sameStyle(a, b Cell) bool {
	return a.FG == b.FG && a.BG == b.BG && a.Bold == b.Bold
}

func runText(cells []Cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.Rune
	}
	return string(rs)
}

func cellStyle(c Cell) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(c.Bold)
	if !c.FG.IsClear() {
		s = s.Foreground(lipgloss.Color(c.FG.Hex()))
	}
	if !c.BG.IsClear() {
		s = s.Background(lipgloss.Color(c.BG.Hex()))
	}
	return s
}
