// Package screens holds the render tables for the panels. Every table has
// Count entries in the same order so one screen number means the same page on
// the character LCD and on the OLED.
package screens

const (
	// Slots is the number of value slots the host can set.
	Slots = 4

	ScreenLink  = Slots
	ScreenAbout = Slots + 1
	Count       = Slots + 2

	MaxValue = 100
)

type Slot struct {
	Name  string
	Value uint8
}

// Board is the data the renderers show.
type Board struct {
	Slots   [Slots]Slot
	Rx, Tx  uint32
	Dropped int
	Version string

	DisplayErrors int
}

func NewBoard(names []string, version string) *Board {
	b := &Board{Version: version}
	for i := range b.Slots {
		if i < len(names) {
			b.Slots[i].Name = names[i]
		} else {
			b.Slots[i].Name = "Slot " + string(rune('1'+i))
		}
	}
	return b
}

// SetValue stores v in slot, clamped to MaxValue. It reports whether the slot
// exists and its value changed.
func (b *Board) SetValue(slot uint8, v uint8) bool {
	if int(slot) >= Slots {
		return false
	}
	if v > MaxValue {
		v = MaxValue
	}
	if b.Slots[slot].Value == v {
		return false
	}
	b.Slots[slot].Value = v
	return true
}

func (b *Board) displayError(err error) {
	if err != nil {
		b.DisplayErrors++
	}
}
