package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"lcd-panel-ctrl/lcdstate"
	"lcd-panel-ctrl/screen"
	"lcd-panel-ctrl/screens"

	xdraw "golang.org/x/image/draw"
	"tinygo.org/x/drivers"
)

const (
	oledWidth  = 128
	oledHeight = 64
)

// imageDisplay is an OLED stand-in that draws into an image.
type imageDisplay struct {
	img      *image.RGBA
	displays int
}

func newImageDisplay() *imageDisplay {
	return &imageDisplay{img: image.NewRGBA(image.Rect(0, 0, oledWidth, oledHeight))}
}

func (d *imageDisplay) Size() (int16, int16) { return oledWidth, oledHeight }

func (d *imageDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.img.SetRGBA(int(x), int(y), c)
}

func (d *imageDisplay) Display() error {
	d.displays++
	return nil
}

// scaled returns the frame enlarged by factor without smoothing.
func (d *imageDisplay) scaled(factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := d.img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), d.img, b, xdraw.Src, nil)
	return dst
}

// sampleBoard fills the slots with evenly spread values so the bars differ.
func sampleBoard(cfg Config) *screens.Board {
	b := screens.NewBoard(cfg.names(), version)
	for i := 0; i < screens.Slots; i++ {
		b.SetValue(uint8(i), uint8(i*screens.MaxValue/(screens.Slots-1)))
	}
	b.Rx, b.Tx = 1234, 56
	return b
}

// writePreviews renders every screen of both panels. OLED screens go to
// dir as PNG files, character LCD frames are printed to w.
func writePreviews(w io.Writer, dir string, cfg Config, factor int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preview dir: %w", err)
	}

	board := sampleBoard(cfg)
	oled := newImageDisplay()
	lcd := screen.NewConsole(screens.CharCols, screens.CharRows)
	oledCtrl := lcdstate.New[drivers.Displayer](oled, screens.OLEDTable(board))
	lcdCtrl := lcdstate.New[screen.CharDisplay](lcd, screens.CharTable(board))

	for s := 0; s < screens.Count; s++ {
		oledCtrl.SetState(uint8(s))
		oledCtrl.Update()
		lcdCtrl.SetState(uint8(s))
		lcdCtrl.Update()

		path := filepath.Join(dir, fmt.Sprintf("screen-%d.png", s))
		if err := writePNG(path, oled.scaled(factor)); err != nil {
			return err
		}
		fmt.Fprintf(w, "screen %d -> %s\n", s, path)
		if err := lcd.Flush(w); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
