package search

import (
	"errors"
	"fmt"

	"github.com/gravitas-015/hexpath/pkg/grid"
)

// ErrInvalidTransition reports a control call that is not legal in the
// engine's current state, such as switching algorithm variant while a
// search is mid-flight. The controller's state is left unchanged.
var ErrInvalidTransition = errors.New("search: invalid controller transition")

// Controller owns exactly one grid and one live engine and mediates all
// access to them. It is cadence-agnostic: it only tracks running versus
// paused, and the host loop decides how often to call Step.
type Controller struct {
	grid    *grid.Grid
	engine  Engine
	variant Variant
	running bool
}

// NewController creates a controller with a fresh engine of the given
// variant against g.
func NewController(g *grid.Grid, v Variant) *Controller {
	return &Controller{
		grid:    g,
		engine:  New(v, g),
		variant: v,
	}
}

// Step advances the active engine by one expansion. Stepping a terminal
// engine is a no-op; reaching a terminal state pauses the controller.
func (c *Controller) Step() State {
	s := c.engine.Step()
	if s.Terminal() {
		c.running = false
	}
	return s
}

// Solve runs the active engine to termination and pauses.
func (c *Controller) Solve() State {
	s := Solve(c.engine)
	c.running = false
	return s
}

// Run marks the controller as running; the host loop is expected to call
// Step at its own cadence while Running reports true.
func (c *Controller) Run() {
	if !c.engine.State().Terminal() {
		c.running = true
	}
}

// Pause stops continuous stepping.
func (c *Controller) Pause() { c.running = false }

// Running reports whether continuous stepping is active.
func (c *Controller) Running() bool { return c.running }

// Reset discards all engine state and starts a fresh engine of the
// requested variant against the current grid.
func (c *Controller) Reset(v Variant) {
	c.variant = v
	c.engine = New(v, c.grid)
	c.running = false
}

// SetGrid atomically replaces the grid and resets the engine against it,
// keeping the current variant.
func (c *Controller) SetGrid(g *grid.Grid) {
	c.grid = g
	c.Reset(c.variant)
}

// SetVariant switches the algorithm variant. Switching mid-search is
// disallowed: while the engine is Running the call fails with
// ErrInvalidTransition and nothing changes. From Created or a terminal
// state the switch implies a reset.
func (c *Controller) SetVariant(v Variant) error {
	if c.engine.State() == Running {
		return fmt.Errorf("switch to %s mid-search: %w", v, ErrInvalidTransition)
	}
	c.Reset(v)
	return nil
}

// Variant returns the active engine variant.
func (c *Controller) Variant() Variant { return c.variant }

// Grid returns the grid the active engine searches.
func (c *Controller) Grid() *grid.Grid { return c.grid }

// State returns the active engine's lifecycle state.
func (c *Controller) State() State { return c.engine.State() }

// Snapshot returns a side-effect-free copy of the active engine's
// observable state.
func (c *Controller) Snapshot() Snapshot { return c.engine.Snapshot() }
