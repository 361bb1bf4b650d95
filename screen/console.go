package screen

import (
	"io"
	"strings"
)

// Console is an in-memory character display. The host simulator prints it,
// tests inspect it.
type Console struct {
	cols, rows uint8
	cells      [][]byte
	x, y       uint8
	clears     int
	prints     int
}

func NewConsole(cols, rows uint8) *Console {
	c := &Console{cols: cols, rows: rows}
	c.cells = make([][]byte, rows)
	for i := range c.cells {
		c.cells[i] = make([]byte, cols)
	}
	c.blank()
	return c
}

func (c *Console) blank() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = ' '
		}
	}
}

func (c *Console) ClearDisplay() {
	c.blank()
	c.x, c.y = 0, 0
	c.clears++
}

func (c *Console) SetCursor(x, y uint8) {
	c.x, c.y = x, y
}

// Print writes data at the cursor. Characters past the end of the row are
// dropped, like a 16x2 module in its default addressing mode shows them.
func (c *Console) Print(data []byte) {
	c.prints++
	if c.y >= c.rows {
		return
	}
	for _, b := range data {
		if c.x >= c.cols {
			return
		}
		c.cells[c.y][c.x] = b
		c.x++
	}
}

// Row returns the contents of row y.
func (c *Console) Row(y int) string {
	return string(c.cells[y])
}

// Frame returns all rows joined by newlines.
func (c *Console) Frame() string {
	rows := make([]string, len(c.cells))
	for i, row := range c.cells {
		rows[i] = string(row)
	}
	return strings.Join(rows, "\n")
}

// Clears returns how often ClearDisplay was called.
func (c *Console) Clears() int { return c.clears }

// Prints returns how often Print was called.
func (c *Console) Prints() int { return c.prints }

// Flush draws the frame inside a border.
func (c *Console) Flush(w io.Writer) error {
	border := "+" + strings.Repeat("-", int(c.cols)) + "+\n"
	var b strings.Builder
	b.WriteString(border)
	for _, row := range c.cells {
		b.WriteString("|")
		b.Write(row)
		b.WriteString("|\n")
	}
	b.WriteString(border)
	_, err := io.WriteString(w, b.String())
	return err
}
