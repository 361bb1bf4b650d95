//go:build !tinygo

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lcd-panel-ctrl/app"
	"lcd-panel-ctrl/protocol"
	"lcd-panel-ctrl/rotary"
	"lcd-panel-ctrl/screen"
	"lcd-panel-ctrl/screens"

	"github.com/dikkadev/prettyslog"
)

var names = []string{"Game", "Chat", "Media", "Aux"}

// Host simulator: runs the firmware logic against a console LCD with a
// scripted mix of host frames and encoder input.
func main() {
	ticks := flag.Int("ticks", 60, "Number of loop iterations to simulate")
	period := flag.Duration("period", 100*time.Millisecond, "Delay between iterations")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(prettyslog.NewPrettyslogHandler("sim",
		prettyslog.WithLevel(level),
	))

	lcd := screen.NewConsole(screens.CharCols, screens.CharRows)
	device := app.New(screens.NewBoard(names, "sim"), lcd, nil, logger)

	for tick := 0; tick < *ticks; tick++ {
		for _, b := range scriptedFrames(tick, device.Screen()) {
			if reply, ok := device.Feed(b); ok {
				logger.Info("reply", "event", reply.String())
				device.Sent()
			}
		}

		state, delta := scriptedInput(tick)
		if event, ok := device.HandleInput(state, delta); ok {
			logger.Info("input", "event", event.String())
			device.Sent()
		}

		if device.Update() {
			fmt.Printf("tick %d screen %d\n", tick, device.Screen())
			lcd.Flush(os.Stdout)
		}
		time.Sleep(*period)
	}
}

// scriptedFrames plays the host: it raises the value of the visible slot
// and now and then jumps to a screen.
func scriptedFrames(tick int, current uint8) []byte {
	switch {
	case tick%17 == 16:
		return protocol.Marshal(protocol.Event{Type: protocol.EVENT_TYPE_SET, Screen: screens.ScreenLink})
	case tick%3 == 0:
		return protocol.Marshal(protocol.Event{
			Type:   protocol.EVENT_TYPE_VALUE,
			Screen: current,
			Value:  uint8(tick * 7 % (screens.MaxValue + 1)),
		})
	}
	return nil
}

func scriptedInput(tick int) (rotary.RotaryState, int32) {
	switch {
	case tick%23 == 22:
		return rotary.BtnDoubleClick, 0
	case tick%11 == 10:
		return rotary.BtnClick, 0
	case tick%8 == 7:
		return rotary.RotaryCW, 1
	}
	return rotary.RotaryIdle, 0
}
