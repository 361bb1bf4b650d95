package protocol

type EventType uint8

const (
	// device -> host
	EVENT_TYPE_CW EventType = iota + 1
	EVENT_TYPE_CCW
	EVENT_TYPE_CLICK
	EVENT_TYPE_DOUBLE_CLICK
	EVENT_TYPE_SCREEN

	// host -> device
	EVENT_TYPE_SET
	EVENT_TYPE_VALUE
	EVENT_TYPE_REFRESH
)

const (
	SIGNATURE uint8 = 0x69

	// FrameLength is the size of a marshalled event on the wire.
	FrameLength = 5
)

// Event is one frame on the serial line. Screen is the screen index for
// SET and the device reports, and the value slot for VALUE.
type Event struct {
	Type   EventType
	Screen uint8
	Value  uint8
}

func Marshal(e Event) []byte {
	return []byte{SIGNATURE, SIGNATURE, uint8(e.Type), e.Screen, e.Value}
}

func Unmarshal(data []byte) (Event, bool) {
	if len(data) != FrameLength {
		return Event{}, false
	}
	if !IsEventAtStart(data) {
		return Event{}, false
	}
	return Event{Type: EventType(data[2]), Screen: data[3], Value: data[4]}, true
}

func NewEvent(t EventType, screen, value uint8) *Event {
	return &Event{Type: t, Screen: screen, Value: value}
}

func (e *Event) String() string {
	var value string
	if e.Value < 10 {
		value = "  " + string(rune(e.Value+48))
	} else if e.Value < 100 {
		value = " " + string(rune(e.Value/10+48)) + string(rune(e.Value%10+48))
	} else if e.Value <= 199 {
		value = "1" + string(rune((e.Value-100)/10+48)) + string(rune(e.Value%10+48))
	} else {
		value = "ERR"
	}

	screen := itoa(e.Screen)

	switch e.Type {
	case EVENT_TYPE_CW:
		return "CW     " + screen + " " + value
	case EVENT_TYPE_CCW:
		return "CCW    " + screen + " " + value
	case EVENT_TYPE_CLICK:
		return "Clck   " + screen + " " + value
	case EVENT_TYPE_DOUBLE_CLICK:
		return "DblClck" + screen + " " + value
	case EVENT_TYPE_SCREEN:
		return "Screen " + screen + " " + value
	case EVENT_TYPE_SET:
		return "Set    " + screen + " " + value
	case EVENT_TYPE_VALUE:
		return "Value  " + screen + " " + value
	case EVENT_TYPE_REFRESH:
		return "Rfrsh  " + screen + " " + value
	default:
		return "Unknown" + screen + " " + value
	}
}

// itoa avoids strconv so the firmware image stays small.
func itoa(v uint8) string {
	if v == 0 {
		return "0"
	}
	var buf [3]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = '0' + v%10
		v /= 10
	}
	return string(buf[i:])
}

func IsEventAtStart(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	if data[0] != SIGNATURE || data[1] != SIGNATURE {
		return false
	}
	return true
}
