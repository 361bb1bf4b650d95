package screens

import (
	"strconv"

	"lcd-panel-ctrl/lcdstate"
	"lcd-panel-ctrl/screen"
)

const (
	CharCols = 16
	CharRows = 2

	barWidth = 11
)

// CharTable returns the renderers for a 16x2 character LCD.
func CharTable(b *Board) []lcdstate.Renderer[screen.CharDisplay] {
	table := make([]lcdstate.Renderer[screen.CharDisplay], Count)
	for i := 0; i < Slots; i++ {
		table[i] = charLevel(b, i)
	}
	table[ScreenLink] = func(d screen.CharDisplay, first bool) { charLink(b, d, first) }
	table[ScreenAbout] = func(d screen.CharDisplay, first bool) { charAbout(b, d, first) }
	return table
}

func charLevel(b *Board, slot int) lcdstate.Renderer[screen.CharDisplay] {
	return func(d screen.CharDisplay, first bool) {
		s := &b.Slots[slot]
		if first {
			d.ClearDisplay()
			screen.PrintAt(d, 0, 0, screen.PadRight(s.Name, CharCols))
		}
		screen.PrintAt(d, 0, 1, levelRow(s.Value))
	}
}

// levelRow renders "#####...... 42%".
func levelRow(v uint8) string {
	filled := int(v) * barWidth / MaxValue
	row := make([]byte, 0, CharCols)
	for i := 0; i < barWidth; i++ {
		if i < filled {
			row = append(row, '#')
		} else {
			row = append(row, '.')
		}
	}
	row = append(row, ' ')
	row = append(row, padLeft(strconv.Itoa(int(v)), 3)...)
	row = append(row, '%')
	return string(row)
}

func charLink(b *Board, d screen.CharDisplay, first bool) {
	if first {
		d.ClearDisplay()
		screen.PrintAt(d, 0, 0, "RX")
		screen.PrintAt(d, 0, 1, "TX")
	}
	screen.PrintAt(d, 3, 0, padLeft(strconv.FormatUint(uint64(b.Rx), 10), CharCols-3))
	screen.PrintAt(d, 3, 1, padLeft(strconv.FormatUint(uint64(b.Tx), 10), CharCols-3))
}

func charAbout(b *Board, d screen.CharDisplay, first bool) {
	if !first {
		return
	}
	d.ClearDisplay()
	screen.PrintAt(d, 0, 0, "lcd-panel-ctrl")
	screen.PrintAt(d, 0, 1, screen.PadRight(b.Version, CharCols))
}

func padLeft(text string, width int) string {
	if len(text) >= width {
		return text[len(text)-width:]
	}
	buf := make([]byte, width)
	pad := width - len(text)
	for i := 0; i < pad; i++ {
		buf[i] = ' '
	}
	copy(buf[pad:], text)
	return string(buf)
}
