package screens

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"lcd-panel-ctrl/lcdstate"
	"lcd-panel-ctrl/screen"

	"tinygo.org/x/drivers"
)

func TestTablesMatchCount(t *testing.T) {
	b := NewBoard(nil, "v1")
	if n := len(CharTable(b)); n != Count {
		t.Fatalf("char table has %d screens, want %d", n, Count)
	}
	if n := len(OLEDTable(b)); n != Count {
		t.Fatalf("oled table has %d screens, want %d", n, Count)
	}
}

func TestNewBoardNames(t *testing.T) {
	b := NewBoard([]string{"Game", "Chat"}, "v1")
	if b.Slots[0].Name != "Game" || b.Slots[1].Name != "Chat" {
		t.Fatalf("names %+v", b.Slots)
	}
	if b.Slots[3].Name != "Slot 4" {
		t.Fatalf("default name %q", b.Slots[3].Name)
	}
}

func TestSetValue(t *testing.T) {
	b := NewBoard(nil, "")
	if !b.SetValue(1, 150) || b.Slots[1].Value != MaxValue {
		t.Fatalf("expected clamp to %d, got %d", MaxValue, b.Slots[1].Value)
	}
	if b.SetValue(1, 100) {
		t.Fatal("unchanged value reported as change")
	}
	if b.SetValue(Slots, 1) {
		t.Fatal("unknown slot accepted")
	}
}

func TestLevelRow(t *testing.T) {
	cases := map[uint8]string{
		0:   "........... " + "  0%",
		50:  "#####...... " + " 50%",
		100: "########### " + "100%",
	}
	for v, want := range cases {
		got := levelRow(v)
		if got != want {
			t.Fatalf("levelRow(%d) = %q, want %q", v, got, want)
		}
		if len(got) != CharCols {
			t.Fatalf("levelRow(%d) is %d wide", v, len(got))
		}
	}
}

func TestCharLevelFirstAndIncremental(t *testing.T) {
	b := NewBoard([]string{"Media"}, "v1")
	b.SetValue(0, 42)
	lcd := screen.NewConsole(CharCols, CharRows)
	ctrl := lcdstate.New[screen.CharDisplay](lcd, CharTable(b))

	ctrl.Update()
	if lcd.Clears() != 1 {
		t.Fatalf("first render cleared %d times", lcd.Clears())
	}
	if strings.TrimSpace(lcd.Row(0)) != "Media" {
		t.Fatalf("label row %q", lcd.Row(0))
	}
	if !strings.HasSuffix(lcd.Row(1), " 42%") {
		t.Fatalf("value row %q", lcd.Row(1))
	}

	b.SetValue(0, 7)
	ctrl.RequestRender()
	ctrl.Update()
	if lcd.Clears() != 1 {
		t.Fatal("incremental render cleared the display")
	}
	if !strings.HasSuffix(lcd.Row(1), "  7%") {
		t.Fatalf("value row after update %q", lcd.Row(1))
	}
	if strings.TrimSpace(lcd.Row(0)) != "Media" {
		t.Fatalf("label lost: %q", lcd.Row(0))
	}
}

func TestCharLinkAndAbout(t *testing.T) {
	b := NewBoard(nil, "v0.3.1")
	b.Rx, b.Tx = 12, 3400
	lcd := screen.NewConsole(CharCols, CharRows)
	ctrl := lcdstate.New[screen.CharDisplay](lcd, CharTable(b))

	ctrl.SetState(ScreenLink)
	ctrl.Update()
	if lcd.Row(0) != "RX "+padLeft("12", 13) || lcd.Row(1) != "TX "+padLeft("3400", 13) {
		t.Fatalf("link frame\n%s", lcd.Frame())
	}

	ctrl.SetState(ScreenAbout)
	ctrl.Update()
	if !strings.HasPrefix(lcd.Row(1), "v0.3.1") {
		t.Fatalf("about frame\n%s", lcd.Frame())
	}

	prints := lcd.Prints()
	ctrl.RequestRender()
	ctrl.Update()
	if lcd.Prints() != prints {
		t.Fatal("about screen redrew on a non-first render")
	}
}

func TestPadLeft(t *testing.T) {
	if padLeft("7", 3) != "  7" || padLeft("12345", 3) != "345" {
		t.Fatal("unexpected padding")
	}
}

type canvas struct {
	w, h     int16
	pixels   map[[2]int16]bool
	displays int
	err      error
}

func newCanvas() *canvas {
	return &canvas{w: 128, h: 64, pixels: map[[2]int16]bool{}}
}

func (c *canvas) Size() (int16, int16) { return c.w, c.h }

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	c.pixels[[2]int16{x, y}] = col.R != 0
}

func (c *canvas) Display() error {
	c.displays++
	return c.err
}

func (c *canvas) on(x, y int16) bool { return c.pixels[[2]int16{x, y}] }

func TestOLEDLevel(t *testing.T) {
	b := NewBoard([]string{"Game"}, "v1")
	b.SetValue(0, 50)
	oled := newCanvas()
	ctrl := lcdstate.New[drivers.Displayer](oled, OLEDTable(b))

	oled.SetPixel(127, 0, drawColor)
	ctrl.Update()
	if oled.on(127, 0) {
		t.Fatal("first render did not clear the panel")
	}
	if !oled.on(leftX, 32) || !oled.on(rightX, 32) {
		t.Fatal("outline missing")
	}
	if !oled.on(rightX-1, 32) || !oled.on(rightX-50, 32) || oled.on(rightX-51, 32) {
		t.Fatal("fill does not cover 50 columns")
	}
	if oled.displays != 1 {
		t.Fatalf("Display called %d times", oled.displays)
	}

	oled.SetPixel(127, 0, drawColor)
	b.SetValue(0, 10)
	ctrl.RequestRender()
	ctrl.Update()
	if !oled.on(127, 0) {
		t.Fatal("incremental render cleared the panel")
	}
	if oled.on(rightX-11, 32) || !oled.on(rightX-10, 32) {
		t.Fatal("fill not shrunk to 10 columns")
	}
	if !oled.on(leftX, 32) {
		t.Fatal("outline lost on incremental render")
	}
}

func TestOLEDDisplayErrorCounted(t *testing.T) {
	b := NewBoard(nil, "v1")
	oled := newCanvas()
	oled.err = errors.New("nack")
	ctrl := lcdstate.New[drivers.Displayer](oled, OLEDTable(b))

	ctrl.Update()
	ctrl.SetState(ScreenLink)
	ctrl.Update()
	if b.DisplayErrors != 2 {
		t.Fatalf("DisplayErrors = %d, want 2", b.DisplayErrors)
	}
}
