//go:build tinygo

package main

import (
	"io"
	"log/slog"
	"machine"
	"time"

	"lcd-panel-ctrl/app"
	"lcd-panel-ctrl/multiplexer"
	"lcd-panel-ctrl/protocol"
	"lcd-panel-ctrl/rotary"
	"lcd-panel-ctrl/screen"
	"lcd-panel-ctrl/screens"

	"tinygo.org/x/drivers"
)

// The character LCD and the encoder sit on the main bus, the OLED behind
// the multiplexer.
const (
	muxAddr     = 0x70
	encoderAddr = 0x30
	oledChannel = 0

	// A frame takes well under a millisecond at 115200 baud.
	frameGap = 50 * time.Millisecond
)

var names = []string{"Game", "Chat", "Media", "Aux"}

func main() {
	time.Sleep(time.Second * 2)

	// Configure I2C
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		SDA:       machine.GPIO0,
		SCL:       machine.GPIO1,
		Frequency: 400000,
	})
	if err != nil {
		println("Failed to configure I2C bus")
		return
	}

	mux := multiplexer.NewMultiplexer(i2c, muxAddr)
	found, err := multiplexer.Scan(i2c, mux, oledChannel+1)
	if err != nil {
		panic("Multiplexer not responding: " + err.Error())
	}
	if !multiplexer.Has(found, oledChannel, screen.CharLCDAddr) {
		panic("No character LCD found at 0x27")
	}

	lcd, err := screen.NewCharLCD(i2c, screen.CharLCDAddr, screens.CharCols, screens.CharRows)
	if err != nil {
		panic("Failed to configure LCD: " + err.Error())
	}

	var oled drivers.Displayer
	if multiplexer.Has(found, oledChannel, screen.ADDR) {
		o, err := screen.NewOLED(i2c, mux, oledChannel)
		if err != nil {
			println("OLED init failed, continuing without it:", err.Error())
		} else {
			oled = o
		}
	}

	// The serial line carries protocol frames, so device logs are dropped.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	device := app.New(screens.NewBoard(names, "fw"), lcd, oled, logger)
	encoder := rotary.NewEncoder(i2c, encoderAddr)
	if err := encoder.ResetCounter(); err != nil {
		println("Failed to reset encoder:", err.Error())
	}

	serial := machine.Serial
	send := func(e protocol.Event) {
		if _, err := serial.Write(protocol.Marshal(e)); err == nil {
			device.Sent()
		}
	}

	lastRx := time.Now()
	for {
		updated := false

		// Handle incoming serial data
		for serial.Buffered() > 0 {
			b, err := serial.ReadByte()
			if err != nil {
				break
			}
			lastRx = time.Now()
			if reply, ok := device.Feed(b); ok {
				send(*reply)
			}
			updated = true
		}
		if time.Since(lastRx) > frameGap {
			device.DropPartialFrame()
		}

		state, delta, err := encoder.Poll()
		if err == nil {
			if event, ok := device.HandleInput(state, delta); ok {
				send(*event)
				updated = true
			}
		}

		if device.Update() {
			updated = true
		}

		// Sleep briefly if no updates occurred
		if !updated {
			time.Sleep(time.Millisecond * 3)
		}
	}
}
