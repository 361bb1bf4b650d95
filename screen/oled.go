//go:build tinygo

package screen

import (
	"image/color"
	"machine"
	"time"

	"lcd-panel-ctrl/multiplexer"

	"tinygo.org/x/drivers/sh1106"
)

const ADDR = 0x3C

// OLED is an SH1106 panel on one multiplexer channel. Each OLED keeps its
// own frame buffer, the multiplexer is switched only to push it out.
type OLED struct {
	dev        sh1106.Device
	mux        *multiplexer.Multiplexer
	MuxChannel uint8
}

func NewOLED(bus *machine.I2C, mux *multiplexer.Multiplexer, muxChannel uint8) (*OLED, error) {
	o := &OLED{
		dev:        sh1106.NewI2C(bus),
		mux:        mux,
		MuxChannel: muxChannel,
	}
	if err := o.Activate(); err != nil {
		return nil, err
	}
	o.dev.Configure(sh1106.Config{
		Width:    128,
		Height:   64,
		VccState: sh1106.SWITCHCAPVCC,
		Address:  ADDR,
	})
	o.dev.ClearBuffer()
	if err := o.dev.Display(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *OLED) Activate() error {
	if o.mux == nil {
		return nil
	}
	channel := o.mux.Channel
	if err := o.mux.Select(o.MuxChannel); err != nil {
		return err
	}
	if channel != o.MuxChannel {
		time.Sleep(5 * time.Millisecond)
	}
	return nil
}

func (o *OLED) Size() (int16, int16) {
	return o.dev.Size()
}

func (o *OLED) SetPixel(x, y int16, c color.RGBA) {
	o.dev.SetPixel(x, y, c)
}

// Display selects the panel's channel and sends the buffer.
func (o *OLED) Display() error {
	if err := o.Activate(); err != nil {
		return err
	}
	return o.dev.Display()
}
