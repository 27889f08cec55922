package search

import (
	"github.com/gravitas-015/hexpath/pkg/grid"
	"github.com/gravitas-015/hexpath/pkg/hex"
)

// halfSearch is one independent direction of the bidirectional engine. The
// forward half roots at the grid's start and targets the goal; the backward
// half is the mirror image. Each owns its frontier, visited set and
// g-scores outright.
type halfSearch struct {
	root     hex.Axial
	target   hex.Axial
	open     *frontier
	closed   map[hex.Axial]bool
	gScore   map[hex.Axial]int
	cameFrom map[hex.Axial]hex.Axial
}

func newHalfSearch(root, target hex.Axial) *halfSearch {
	return &halfSearch{
		root:     root,
		target:   target,
		open:     newFrontier(),
		closed:   make(map[hex.Axial]bool),
		gScore:   make(map[hex.Axial]int),
		cameFrom: make(map[hex.Axial]hex.Axial),
	}
}

// seed pushes the root node. Deferred until the first Step so a fresh
// engine exposes an empty frontier.
func (h *halfSearch) seed() {
	h.gScore[h.root] = 0
	h.open.Push(&node{coord: h.root, g: 0, f: hex.Distance(h.root, h.target)})
}

// expand pops and expands one node, returning it. Caller guarantees the
// frontier is non-empty.
func (h *halfSearch) expand(g *grid.Grid) *node {
	cur := h.open.Pop()
	h.closed[cur.coord] = true
	for _, n := range cur.coord.Neighbors() {
		if h.closed[n] || !g.Traversable(n) {
			continue
		}
		tentative := cur.g + 1
		if old, seen := h.gScore[n]; seen && tentative >= old {
			continue
		}
		h.gScore[n] = tentative
		h.cameFrom[n] = cur.coord
		f := tentative + hex.Distance(n, h.target)
		if live, ok := h.open.Get(n); ok {
			h.open.Update(live, tentative, f, cur.coord)
		} else {
			h.open.Push(&node{coord: n, g: tentative, f: f, parent: cur.coord, hasParent: true})
		}
	}
	return cur
}

// bidirectional runs a forward and a backward half-search, alternating one
// expansion per Step (forward on even expansion indices, backward on odd).
//
// A coordinate expanded by one side that already sits in the other side's
// visited set is a meeting point. Meeting alone does not prove optimality,
// so the engine keeps the best g_forward+g_backward total seen over all
// common visited coordinates and only finishes once the sum of the two
// smallest pending f-scores exceeds that total.
type bidirectional struct {
	grid  *grid.Grid
	state State

	forward  *halfSearch
	backward *halfSearch

	bestTotal int
	meeting   hex.Axial
	haveMeet  bool

	path     []hex.Axial
	explored int
}

func newBidirectional(g *grid.Grid) *bidirectional {
	return &bidirectional{
		grid:     g,
		state:    Created,
		forward:  newHalfSearch(g.Start(), g.Goal()),
		backward: newHalfSearch(g.Goal(), g.Start()),
	}
}

func (e *bidirectional) State() State       { return e.state }
func (e *bidirectional) NodesExplored() int { return e.explored }
func (e *bidirectional) Path() []hex.Axial  { return copyPath(e.path) }

// Step performs one expansion on the side whose turn it is, then re-checks
// the meeting and termination conditions.
func (e *bidirectional) Step() State {
	if e.state.Terminal() {
		return e.state
	}
	if e.state == Created {
		e.forward.seed()
		e.backward.seed()
	}

	side, other := e.forward, e.backward
	if e.explored%2 == 1 {
		side, other = e.backward, e.forward
	}
	if side.open.Len() == 0 {
		side, other = other, side
	}
	if side.open.Len() == 0 {
		// Both frontiers are empty. Any meeting already found is final.
		if e.haveMeet {
			e.finish()
		} else {
			e.state = Exhausted
		}
		return e.state
	}
	e.state = Running

	cur := side.expand(e.grid)
	e.explored++

	if other.closed[cur.coord] {
		total := e.forward.gScore[cur.coord] + e.backward.gScore[cur.coord]
		if !e.haveMeet || total < e.bestTotal {
			e.haveMeet = true
			e.bestTotal = total
			e.meeting = cur.coord
		}
	}

	if e.haveMeet && !e.canImprove() {
		e.finish()
	}
	return e.state
}

// canImprove reports whether some pending pair of expansions could still
// beat the best meeting total. With an admissible heuristic no completed
// path can cost less than either side's smallest pending f-score, so once
// their sum exceeds the best total the meeting is provably optimal.
func (e *bidirectional) canImprove() bool {
	ff, okF := e.forward.open.MinF()
	fb, okB := e.backward.open.MinF()
	if !okF || !okB {
		return false
	}
	return ff+fb <= e.bestTotal
}

// finish stitches the two half-paths together at the best meeting point.
func (e *bidirectional) finish() {
	forward := reconstruct(e.forward.cameFrom, e.grid.Start(), e.meeting)
	backward := reconstruct(e.backward.cameFrom, e.grid.Goal(), e.meeting)
	// backward runs goal -> meeting; reverse it to continue meeting -> goal.
	for i, j := 0, len(backward)-1; i < j; i, j = i+1, j-1 {
		backward[i], backward[j] = backward[j], backward[i]
	}
	path := make([]hex.Axial, 0, len(forward)+len(backward)-1)
	path = append(path, forward...)
	path = append(path, backward[1:]...)
	e.path = path
	e.state = PathFound
}

func (e *bidirectional) Snapshot() Snapshot {
	visited := copySet(e.forward.closed)
	for c := range e.backward.closed {
		visited[c] = true
	}
	front := e.forward.open.Coords()
	for c := range e.backward.open.Coords() {
		front[c] = true
	}
	return Snapshot{
		State:         e.state,
		Visited:       visited,
		Frontier:      front,
		Path:          copyPath(e.path),
		NodesExplored: e.explored,
	}
}
