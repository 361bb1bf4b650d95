// Package lcdstate tracks which screen a panel shows and dispatches the
// screen's render callback when something changed since the last tick.
package lcdstate

// Renderer draws one screen onto display. first is true for the first draw
// after the screen became active; renderers use it to repaint static parts
// (labels, frames) only once and update just the changing values afterwards.
//
// Renderers run inline in the polling loop and must not block.
type Renderer[D any] func(display D, first bool)

// Controller is a screen state machine for a single display.
//
// The display handle and the renderer table belong to the caller and must
// outlive the controller. The table is indexed by screen number and is neither
// copied nor validated: every value passed to SetState must be a valid index.
// A Controller is meant to be driven from one loop and is not safe for
// concurrent use.
type Controller[D any] struct {
	display   D
	renderers []Renderer[D]

	state   uint8
	pending bool
	first   bool
}

// New returns a controller showing screen 0. Nothing is drawn until the
// first call to Update.
func New[D any](display D, renderers []Renderer[D]) *Controller[D] {
	return &Controller[D]{
		display:   display,
		renderers: renderers,
		pending:   true,
		first:     true,
	}
}

// State returns the active screen.
func (c *Controller[D]) State() uint8 {
	return c.state
}

// SetState makes state the active screen and schedules a first render.
// Selecting the screen that is already active still forces a full redraw.
//
// state must be a valid index into the renderer table; an out of range value
// makes the next Update panic.
func (c *Controller[D]) SetState(state uint8) {
	c.state = state
	c.first = true
	c.pending = true
}

// RequestRender schedules a render of the active screen without making it a
// first render, unless a first render is still outstanding.
func (c *Controller[D]) RequestRender() {
	c.pending = true
}

// Pending reports whether the next Update will invoke a renderer.
func (c *Controller[D]) Pending() bool {
	return c.pending
}

// Update invokes the active screen's renderer if a render is pending.
// It calls at most one renderer per tick.
func (c *Controller[D]) Update() {
	if !c.pending {
		return
	}

	c.renderers[c.state](c.display, c.first)

	c.first = false
	c.pending = false
}
