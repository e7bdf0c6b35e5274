package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleEmpty = 0x2800

// Canvas is a braille grid of Cols x Rows cells, i.e. (Cols*2) x (Rows*4)
// dots. Each cell keeps the color of the last dot written into it.
type Canvas struct {
	Cols, Rows int
	grid       [][]rune
	colors     [][]Color
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		Cols:   cols,
		Rows:   rows,
		grid:   make([][]rune, rows),
		colors: make([][]Color, rows),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, cols)
		c.colors[i] = make([]Color, cols)
	}
	c.Clear()
	return c
}

func (c *Canvas) DotsWide() int { return c.Cols * 2 }
func (c *Canvas) DotsHigh() int { return c.Rows * 4 }

// Set lights the dot at (x, y) in dot coordinates. Out-of-range dots are
// ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	cy := y / 4
	if cx >= c.Cols || cy >= c.Rows {
		return
	}

	c.grid[cy][cx] |= pixelMap[y%4][x%2]
	c.colors[cy][cx] = col
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Cols || y/4 >= c.Rows {
		return false
	}
	return c.grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleEmpty
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid without styling.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render styles runs of equally colored cells with lipgloss.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.colorAt(i, j) == c.colorAt(i, start) {
				continue
			}
			run := string(row[start:j])
			if col, lit := c.colorAt(i, start), row[start] != brailleEmpty; lit {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex())).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// colorAt treats empty cells as colorless so blank runs merge.
func (c *Canvas) colorAt(row, col int) Color {
	if c.grid[row][col] == brailleEmpty {
		return Color{}
	}
	return c.colors[row][col]
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
