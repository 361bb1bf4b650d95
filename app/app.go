// Package app is the device logic shared by the firmware and the host
// simulator: it routes serial events and encoder input to the panels.
package app

import (
	"log/slog"

	"lcd-panel-ctrl/lcdstate"
	"lcd-panel-ctrl/protocol"
	"lcd-panel-ctrl/rotary"
	"lcd-panel-ctrl/screen"
	"lcd-panel-ctrl/screens"

	"tinygo.org/x/drivers"
)

type Device struct {
	Board *screens.Board

	lcd     *lcdstate.Controller[screen.CharDisplay]
	oled    *lcdstate.Controller[drivers.Displayer]
	decoder protocol.Decoder
	logger  *slog.Logger

	reportedErrors int
}

// New wires the panels. oled may be nil when no graphic panel is fitted.
func New(board *screens.Board, lcd screen.CharDisplay, oled drivers.Displayer, logger *slog.Logger) *Device {
	d := &Device{
		Board:  board,
		lcd:    lcdstate.New(lcd, screens.CharTable(board)),
		logger: logger,
	}
	if oled != nil {
		d.oled = lcdstate.New(oled, screens.OLEDTable(board))
	}
	return d
}

// Screen returns the screen shown on the panels.
func (d *Device) Screen() uint8 {
	return d.lcd.State()
}

// Select shows screen on every panel. Screens without a renderer are
// ignored so a bad frame from the host cannot crash the loop.
func (d *Device) Select(screen uint8) bool {
	if int(screen) >= screens.Count {
		d.logger.Warn("ignoring unknown screen", "screen", screen)
		return false
	}
	d.lcd.SetState(screen)
	if d.oled != nil {
		d.oled.SetState(screen)
	}
	return true
}

func (d *Device) requestRender() {
	d.lcd.RequestRender()
	if d.oled != nil {
		d.oled.RequestRender()
	}
}

// HandleEvent applies a host event. A SET is answered with a SCREEN report
// carrying the screen actually shown.
func (d *Device) HandleEvent(e protocol.Event) (*protocol.Event, bool) {
	d.logger.Debug("received event", "event", e.String())

	switch e.Type {
	case protocol.EVENT_TYPE_SET:
		d.Select(e.Screen)
		current := d.Screen()
		return protocol.NewEvent(protocol.EVENT_TYPE_SCREEN, current, d.value(current)), true
	case protocol.EVENT_TYPE_VALUE:
		if d.Board.SetValue(e.Screen, e.Value) && e.Screen == d.Screen() {
			d.requestRender()
		}
	case protocol.EVENT_TYPE_REFRESH:
		d.requestRender()
	default:
		d.logger.Warn("unexpected event", "event", e.String())
	}
	return nil, false
}

// Feed passes one received byte to the frame decoder and handles a completed
// frame. The returned event, if any, is the reply for the host.
func (d *Device) Feed(b byte) (*protocol.Event, bool) {
	e, ok := d.decoder.Feed(b)
	d.Board.Dropped = d.decoder.Dropped
	if !ok {
		return nil, false
	}
	d.Board.Rx++
	d.linkChanged()
	return d.HandleEvent(e)
}

// DropPartialFrame discards a frame the host stopped sending halfway. It
// reports whether anything was buffered.
func (d *Device) DropPartialFrame() bool {
	if !d.decoder.Partial() {
		return false
	}
	d.decoder.Reset()
	d.Board.Dropped = d.decoder.Dropped
	d.logger.Debug("dropped partial frame", "dropped", d.Board.Dropped)
	return true
}

// Sent records a frame written to the host.
func (d *Device) Sent() {
	d.Board.Tx++
	d.linkChanged()
}

func (d *Device) linkChanged() {
	if d.Screen() == screens.ScreenLink {
		d.requestRender()
	}
}

// HandleInput applies one encoder poll. Turning cycles through the screens,
// a click redraws the current screen from scratch and a double click goes
// back to the first screen. The returned event reports the action to the host.
func (d *Device) HandleInput(state rotary.RotaryState, delta int32) (*protocol.Event, bool) {
	current := d.Screen()

	switch state {
	case rotary.BtnClick:
		d.Select(current)
		return protocol.NewEvent(protocol.EVENT_TYPE_CLICK, current, d.value(current)), true
	case rotary.BtnDoubleClick:
		d.Select(0)
		return protocol.NewEvent(protocol.EVENT_TYPE_DOUBLE_CLICK, 0, d.value(0)), true
	}

	if delta == 0 {
		return nil, false
	}

	next := (int32(current) + delta) % screens.Count
	if next < 0 {
		next += screens.Count
	}
	d.Select(uint8(next))

	eventType := protocol.EVENT_TYPE_CW
	if delta < 0 {
		eventType = protocol.EVENT_TYPE_CCW
	}
	return protocol.NewEvent(eventType, uint8(next), d.value(uint8(next))), true
}

func (d *Device) value(screen uint8) uint8 {
	if int(screen) < screens.Slots {
		return d.Board.Slots[screen].Value
	}
	return 0
}

// Pending reports whether the next Update will draw anything.
func (d *Device) Pending() bool {
	return d.lcd.Pending() || (d.oled != nil && d.oled.Pending())
}

// Update ticks every panel and reports whether one of them rendered.
func (d *Device) Update() bool {
	rendered := d.Pending()
	d.lcd.Update()
	if d.oled != nil {
		d.oled.Update()
	}
	if n := d.Board.DisplayErrors; n > d.reportedErrors {
		d.logger.Warn("display write failed", "failures", n-d.reportedErrors, "total", n)
		d.reportedErrors = n
	}
	return rendered
}
