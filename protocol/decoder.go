package protocol

// Decoder assembles frames from a byte stream. Bytes that cannot start a
// frame are dropped, and a signature pair arriving inside a buffered frame
// restarts the frame there, so the decoder resynchronises after line noise
// or a truncated frame.
type Decoder struct {
	buf     [FrameLength]byte
	n       int
	Dropped int
}

// Feed appends b and returns the event once a full frame is buffered.
func (d *Decoder) Feed(b byte) (Event, bool) {
	if d.n < 2 && b != SIGNATURE {
		d.Dropped += d.n + 1
		d.n = 0
		return Event{}, false
	}

	d.buf[d.n] = b
	d.n++

	// No valid event carries 0x69 0x69 after its signature.
	if d.n > 2 && b == SIGNATURE && d.buf[d.n-2] == SIGNATURE {
		d.Dropped += d.n - 2
		d.buf[0], d.buf[1] = SIGNATURE, SIGNATURE
		d.n = 2
		return Event{}, false
	}

	if d.n < FrameLength {
		return Event{}, false
	}

	d.n = 0
	return Unmarshal(d.buf[:])
}

// Partial reports whether part of a frame is buffered.
func (d *Decoder) Partial() bool {
	return d.n > 0
}

// Reset discards a partially received frame.
func (d *Decoder) Reset() {
	d.Dropped += d.n
	d.n = 0
}
