package rotary

type RotaryState byte

const (
	RotaryIdle     RotaryState = 0x00
	BtnClick       RotaryState = 0x01
	BtnDoubleClick RotaryState = 0x02
	BtnLongPress   RotaryState = 0x03
	BtnLongRelease RotaryState = 0x04
	RotaryCCW      RotaryState = 0x05
	RotaryCW       RotaryState = 0x06
)

func (r RotaryState) String() string {
	switch r {
	case RotaryIdle:
		return "Idle"
	case BtnClick:
		return "Click"
	case BtnDoubleClick:
		return "Double Click"
	case BtnLongPress:
		return "Long Press"
	case BtnLongRelease:
		return "Long Release"
	case RotaryCCW:
		return "Counter Clockwise"
	case RotaryCW:
		return "Clockwise"
	default:
		return "Unknown"
	}
}

// Bus is the part of an I2C bus the encoder uses. *machine.I2C satisfies it.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

const (
	reportLength = 5
	resetFlag    = 0xAA
)

type Encoder struct {
	bus       Bus
	address   uint16
	buf       [reportLength]byte
	lastCount int32
	lastState RotaryState
}

func NewEncoder(bus Bus, address uint16) *Encoder {
	return &Encoder{
		bus:     bus,
		address: address,
	}
}

// Read fetches the counter and the button state in one transaction.
func (e *Encoder) Read() (int32, RotaryState, error) {
	err := e.bus.Tx(e.address, nil, e.buf[:])
	if err != nil {
		return 0, RotaryIdle, err
	}

	count := int32(e.buf[0]) |
		int32(e.buf[1])<<8 |
		int32(e.buf[2])<<16 |
		int32(e.buf[3])<<24

	e.lastState = RotaryState(e.buf[4])
	return count, e.lastState, nil
}

// Poll reads the encoder and returns the button state together with the
// number of detents turned since the previous Poll.
func (e *Encoder) Poll() (RotaryState, int32, error) {
	count, state, err := e.Read()
	if err != nil {
		return RotaryIdle, 0, err
	}
	delta := count - e.lastCount
	e.lastCount = count
	return state, delta, nil
}

// ResetCounter resets the internal encoder's counter to zero.
func (e *Encoder) ResetCounter() error {
	err := e.bus.Tx(e.address, []byte{resetFlag}, nil)
	if err != nil {
		return err
	}
	e.lastCount = 0
	return nil
}
