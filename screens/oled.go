package screens

import (
	"image/color"
	"math"
	"strconv"

	"lcd-panel-ctrl/lcdstate"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

var (
	drawColor = color.RGBA{255, 255, 255, 255}
	offColor  = color.RGBA{0, 0, 0, 255}

	font = &freemono.Regular9pt7b
)

// OLEDTable returns the renderers for a 128x64 monochrome panel.
func OLEDTable(b *Board) []lcdstate.Renderer[drivers.Displayer] {
	table := make([]lcdstate.Renderer[drivers.Displayer], Count)
	for i := 0; i < Slots; i++ {
		table[i] = oledLevel(b, i)
	}
	table[ScreenLink] = func(d drivers.Displayer, first bool) { oledLink(b, d, first) }
	table[ScreenAbout] = func(d drivers.Displayer, first bool) { oledAbout(b, d, first) }
	return table
}

const TEXT_HEIGHT = 9

func oledLevel(b *Board, slot int) lcdstate.Renderer[drivers.Displayer] {
	return func(d drivers.Displayer, first bool) {
		s := &b.Slots[slot]
		if first {
			blank(d)
			centerText(d, s.Name, TEXT_HEIGHT)
			outline(d)
		}
		fill(d, int(s.Value))
		b.displayError(d.Display())
	}
}

func oledLink(b *Board, d drivers.Displayer, first bool) {
	if first {
		blank(d)
		tinyfont.WriteLine(d, font, 0, 20, "RX", drawColor)
		tinyfont.WriteLine(d, font, 0, 50, "TX", drawColor)
	}
	w, h := d.Size()
	fillRect(d, 30, 0, w, h, offColor)
	tinyfont.WriteLine(d, font, 30, 20, strconv.FormatUint(uint64(b.Rx), 10), drawColor)
	tinyfont.WriteLine(d, font, 30, 50, strconv.FormatUint(uint64(b.Tx), 10), drawColor)
	b.displayError(d.Display())
}

func oledAbout(b *Board, d drivers.Displayer, first bool) {
	if !first {
		return
	}
	blank(d)
	tinyfont.WriteLine(d, font, 0, 20, "lcd-panel", drawColor)
	tinyfont.WriteLine(d, font, 0, 50, b.Version, drawColor)
	b.displayError(d.Display())
}

func blank(d drivers.Displayer) {
	w, h := d.Size()
	fillRect(d, 0, 0, w, h, offColor)
}

func fillRect(d drivers.Displayer, x0, y0, x1, y1 int16, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d.SetPixel(x, y, c)
		}
	}
}

// centerText writes text rotated along the left edge, centred vertically.
func centerText(d drivers.Displayer, text string, x int16) {
	_, h := d.Size()
	_, outBox := tinyfont.LineWidth(font, text)
	y := int32(h) - ((int32(h) - int32(outBox)) / 2)
	tinyfont.WriteLineRotated(d, font, x, int16(y), text, drawColor, tinyfont.ROTATION_270)
}

// Bar geometry. The interior is exactly MaxValue pixels wide so one percent
// is one pixel.
const (
	leftX   int16 = 17
	rightX  int16 = 118
	topY    int16 = 17
	bottomY int16 = 47
	radius  int16 = 10
)

const (
	quadrantTopLeft = iota + 1
	quadrantTopRight
	quadrantBottomLeft
	quadrantBottomRight
)

func outline(d drivers.Displayer) {
	for y := topY + radius; y <= bottomY-radius; y++ {
		d.SetPixel(leftX, y, drawColor)
		d.SetPixel(rightX, y, drawColor)
	}

	for x := leftX + radius; x <= rightX-radius; x++ {
		d.SetPixel(x, topY, drawColor)
		d.SetPixel(x, bottomY, drawColor)
	}

	drawCorner(d, leftX+radius, topY+radius, quadrantTopLeft)
	drawCorner(d, rightX-radius, topY+radius, quadrantTopRight)
	drawCorner(d, leftX+radius, bottomY-radius, quadrantBottomLeft)
	drawCorner(d, rightX-radius, bottomY-radius, quadrantBottomRight)
}

// fill repaints the whole interior so a smaller value erases the old fill.
// The bar grows from the right edge.
func fill(d drivers.Displayer, value int) {
	startX := rightX - int16(value)
	for x := leftX + 1; x <= rightX-1; x++ {
		yStart, yEnd := interior(x)
		c := offColor
		if x >= startX {
			c = drawColor
		}
		for y := yStart; y <= yEnd; y++ {
			d.SetPixel(x, y, c)
		}
	}
}

// interior returns the inclusive y range inside the outline at column x.
func interior(x int16) (int16, int16) {
	if x >= leftX+radius && x <= rightX-radius {
		return topY + 1, bottomY - 1
	}
	var dx int16
	if x < leftX+radius {
		dx = (leftX + radius) - x
	} else {
		dx = x - (rightX - radius)
	}
	dy := int16(math.Ceil(math.Sqrt(float64(radius*radius - dx*dx))))
	return (topY + radius) - dy + 1, (bottomY - radius) + dy - 1
}

func drawCorner(d drivers.Displayer, centerX, centerY int16, quadrant int) {
	for dx := int16(0); dx <= radius; dx++ {
		dy := int16(math.Round(math.Sqrt(float64(radius*radius - dx*dx))))
		switch quadrant {
		case quadrantTopRight:
			d.SetPixel(centerX+dx, centerY-dy, drawColor)
			d.SetPixel(centerX+dy, centerY-dx, drawColor)
		case quadrantTopLeft:
			d.SetPixel(centerX-dx, centerY-dy, drawColor)
			d.SetPixel(centerX-dy, centerY-dx, drawColor)
		case quadrantBottomLeft:
			d.SetPixel(centerX-dx, centerY+dy, drawColor)
			d.SetPixel(centerX-dy, centerY+dx, drawColor)
		case quadrantBottomRight:
			d.SetPixel(centerX+dx, centerY+dy, drawColor)
			d.SetPixel(centerX+dy, centerY+dx, drawColor)
		}
	}
}
