package lcdstate

import "testing"

type panel struct{ name string }

type call struct {
	screen  int
	display *panel
	first   bool
}

type recorder struct {
	calls []call
}

func (r *recorder) table(n int) []Renderer[*panel] {
	table := make([]Renderer[*panel], n)
	for i := range table {
		screen := i
		table[i] = func(d *panel, first bool) {
			r.calls = append(r.calls, call{screen: screen, display: d, first: first})
		}
	}
	return table
}

// take returns the calls recorded since the last take.
func (r *recorder) take() []call {
	calls := r.calls
	r.calls = nil
	return calls
}

func expectCall(t *testing.T, calls []call, screen int, first bool) {
	t.Helper()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one render, got %d: %+v", len(calls), calls)
	}
	if calls[0].screen != screen || calls[0].first != first {
		t.Fatalf("expected render of screen %d first=%v, got screen %d first=%v",
			screen, first, calls[0].screen, calls[0].first)
	}
}

func expectNone(t *testing.T, calls []call) {
	t.Helper()
	if len(calls) != 0 {
		t.Fatalf("expected no render, got %+v", calls)
	}
}

func TestNewDoesNotRender(t *testing.T) {
	rec := &recorder{}
	c := New(&panel{}, rec.table(2))

	expectNone(t, rec.take())
	if c.State() != 0 {
		t.Fatalf("State() = %d, want 0", c.State())
	}
	if !c.Pending() {
		t.Fatal("expected a pending render after construction")
	}
}

func TestFirstUpdateRendersScreenZero(t *testing.T) {
	rec := &recorder{}
	display := &panel{name: "lcd"}
	c := New(display, rec.table(2))

	c.Update()
	calls := rec.take()
	expectCall(t, calls, 0, true)
	if calls[0].display != display {
		t.Fatal("renderer did not receive the controller's display")
	}

	c.Update()
	expectNone(t, rec.take())
	if c.Pending() {
		t.Fatal("expected no pending render after update")
	}
}

func TestSetStateScenario(t *testing.T) {
	rec := &recorder{}
	c := New(&panel{}, rec.table(2))

	c.Update()
	expectCall(t, rec.take(), 0, true)
	c.Update()
	expectNone(t, rec.take())

	c.SetState(1)
	c.Update()
	expectCall(t, rec.take(), 1, true)
	c.Update()
	expectNone(t, rec.take())

	// re-selecting the active screen forces a full redraw
	c.SetState(1)
	c.Update()
	expectCall(t, rec.take(), 1, true)
	c.Update()
	expectNone(t, rec.take())
}

func TestSetStateWithoutUpdateKeepsLastValue(t *testing.T) {
	rec := &recorder{}
	c := New(&panel{}, rec.table(8))

	for _, s := range []uint8{3, 7, 2, 2, 5} {
		c.SetState(s)
		if c.State() != s {
			t.Fatalf("State() = %d after SetState(%d)", c.State(), s)
		}
	}

	c.Update()
	expectCall(t, rec.take(), 5, true)
}

func TestRequestRenderIsNotFirst(t *testing.T) {
	rec := &recorder{}
	c := New(&panel{}, rec.table(3))

	c.SetState(2)
	c.Update()
	expectCall(t, rec.take(), 2, true)

	c.RequestRender()
	if !c.Pending() {
		t.Fatal("expected pending render after RequestRender")
	}
	c.Update()
	expectCall(t, rec.take(), 2, false)

	c.Update()
	expectNone(t, rec.take())
	if c.State() != 2 {
		t.Fatalf("RequestRender changed state to %d", c.State())
	}
}

func TestRequestRenderBeforeFirstRender(t *testing.T) {
	rec := &recorder{}
	c := New(&panel{}, rec.table(1))

	c.RequestRender()
	c.Update()
	expectCall(t, rec.take(), 0, true)

	c.Update()
	expectNone(t, rec.take())
}

func TestRequestRenderAfterSetStateKeepsFirst(t *testing.T) {
	rec := &recorder{}
	c := New(&panel{}, rec.table(2))
	c.Update()
	rec.take()

	c.SetState(1)
	c.RequestRender()
	c.Update()
	expectCall(t, rec.take(), 1, true)
}

func TestValueDisplayHandle(t *testing.T) {
	var got []string
	table := []Renderer[string]{
		func(d string, first bool) { got = append(got, d) },
	}
	c := New("console", table)
	c.Update()

	if len(got) != 1 || got[0] != "console" {
		t.Fatalf("got %v", got)
	}
}
