package screen

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"
)

// Default address of PCF8574 based HD44780 backpacks.
const CharLCDAddr = 0x27

// CharDisplay is the character LCD surface renderers draw on.
// *hd44780i2c.Device and *Console satisfy it.
type CharDisplay interface {
	ClearDisplay()
	SetCursor(x, y uint8)
	Print(data []byte)
}

// NewCharLCD configures an HD44780 behind an I2C backpack.
func NewCharLCD(bus drivers.I2C, addr uint8, cols, rows uint8) (*hd44780i2c.Device, error) {
	dev := hd44780i2c.New(bus, addr)
	err := dev.Configure(hd44780i2c.Config{
		Width:  cols,
		Height: rows,
	})
	if err != nil {
		return nil, err
	}
	dev.ClearDisplay()
	return &dev, nil
}

// PrintAt writes text starting at column x of row y.
func PrintAt(d CharDisplay, x, y uint8, text string) {
	d.SetCursor(x, y)
	d.Print([]byte(text))
}

// PadRight cuts or pads text to exactly width characters so a shorter value
// overwrites the tail of a longer one.
func PadRight(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}
	buf := make([]byte, width)
	copy(buf, text)
	for i := len(text); i < width; i++ {
		buf[i] = ' '
	}
	return string(buf)
}
