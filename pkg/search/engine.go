// Package search implements stepping A* engines over hex grids: a classic
// unidirectional search and a bidirectional meet-in-the-middle variant, both
// driven one node expansion at a time by an external caller.
package search

import (
	"fmt"

	"github.com/gravitas-015/hexpath/pkg/grid"
	"github.com/gravitas-015/hexpath/pkg/hex"
)

// State is the engine lifecycle: Created until the first expansion, Running
// while stepping, then one of the two terminal states.
type State int

const (
	Created State = iota
	Running
	PathFound
	Exhausted
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case PathFound:
		return "path_found"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the engine has finished.
func (s State) Terminal() bool { return s == PathFound || s == Exhausted }

// Variant selects the engine kind at reset time.
type Variant int

const (
	Unidirectional Variant = iota
	Bidirectional
)

func (v Variant) String() string {
	switch v {
	case Unidirectional:
		return "unidirectional"
	case Bidirectional:
		return "bidirectional"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Snapshot is a side-effect-free copy of the engine's observable state, fit
// for handing to a renderer. Visited and Frontier are coordinate sets; for
// the bidirectional engine they are the union of both sides. Path stays
// empty until PathFound.
type Snapshot struct {
	State         State
	Visited       map[hex.Axial]bool
	Frontier      map[hex.Axial]bool
	Path          []hex.Axial
	NodesExplored int
}

// Engine is the step/query contract shared by both variants. Step performs
// at most one node expansion and returns the resulting state; stepping a
// terminal engine is a no-op.
type Engine interface {
	Step() State
	State() State
	Snapshot() Snapshot
	NodesExplored() int

	// Path returns the discovered path from start to goal, or nil before
	// PathFound. The returned slice is a copy.
	Path() []hex.Axial
}

// New creates a fresh engine of the requested variant against g.
func New(v Variant, g *grid.Grid) Engine {
	if v == Bidirectional {
		return newBidirectional(g)
	}
	return newUnidirectional(g)
}

// Solve steps e until it reaches a terminal state and returns that state.
func Solve(e Engine) State {
	for {
		if s := e.Step(); s.Terminal() {
			return s
		}
	}
}

func copySet(m map[hex.Axial]bool) map[hex.Axial]bool {
	out := make(map[hex.Axial]bool, len(m))
	for c := range m {
		out[c] = true
	}
	return out
}

func copyPath(p []hex.Axial) []hex.Axial {
	if p == nil {
		return nil
	}
	out := make([]hex.Axial, len(p))
	copy(out, p)
	return out
}
