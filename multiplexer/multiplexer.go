package multiplexer

import "errors"

const Channels = 8

var ErrChannel = errors.New("multiplexer: channel out of range")

// Bus is the part of an I2C bus the multiplexer uses. *machine.I2C satisfies it.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// TCA9548A multiplexer
type Multiplexer struct {
	bus      Bus
	addr     uint16
	Channel  uint8
	selected bool
}

func NewMultiplexer(bus Bus, addr uint16) *Multiplexer {
	return &Multiplexer{
		bus:  bus,
		addr: addr,
	}
}

// Select routes the bus to channel. Selecting the active channel again does
// not touch the bus.
func (m *Multiplexer) Select(channel uint8) error {
	if channel >= Channels {
		return ErrChannel
	}
	if m.selected && m.Channel == channel {
		return nil
	}
	data := []byte{1 << channel}
	if err := m.bus.Tx(m.addr, data, nil); err != nil {
		m.selected = false
		return err
	}
	m.Channel = channel
	m.selected = true
	return nil
}

// Found lists the device addresses that answered on one channel.
type Found struct {
	Channel   uint8
	Addresses []uint16
}

// Scan probes every 7-bit address on the first channels of mux.
func Scan(bus Bus, mux *Multiplexer, channels uint8) ([]Found, error) {
	var found []Found
	for channel := uint8(0); channel < channels; channel++ {
		if err := mux.Select(channel); err != nil {
			return found, err
		}
		f := Found{Channel: channel}
		for addr := uint16(0x08); addr < 0x78; addr++ {
			if addr == mux.addr {
				continue
			}
			if bus.Tx(addr, []byte{0x00}, nil) == nil {
				f.Addresses = append(f.Addresses, addr)
			}
		}
		found = append(found, f)
	}
	return found, nil
}

// Has reports whether addr answered on channel.
func Has(found []Found, channel uint8, addr uint16) bool {
	for _, f := range found {
		if f.Channel != channel {
			continue
		}
		for _, a := range f.Addresses {
			if a == addr {
				return true
			}
		}
	}
	return false
}
