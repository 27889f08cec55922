package search

import (
	"github.com/gravitas-015/hexpath/pkg/grid"
	"github.com/gravitas-015/hexpath/pkg/hex"
)

// unidirectional is standard A* from start to goal with uniform step cost 1
// and hex distance as the heuristic.
type unidirectional struct {
	grid  *grid.Grid
	state State

	open     *frontier
	closed   map[hex.Axial]bool
	gScore   map[hex.Axial]int
	cameFrom map[hex.Axial]hex.Axial

	path     []hex.Axial
	explored int
}

func newUnidirectional(g *grid.Grid) *unidirectional {
	return &unidirectional{
		grid:     g,
		state:    Created,
		open:     newFrontier(),
		closed:   make(map[hex.Axial]bool),
		gScore:   make(map[hex.Axial]int),
		cameFrom: make(map[hex.Axial]hex.Axial),
	}
}

func (e *unidirectional) State() State       { return e.state }
func (e *unidirectional) NodesExplored() int { return e.explored }
func (e *unidirectional) Path() []hex.Axial  { return copyPath(e.path) }

// Step performs exactly one node expansion.
func (e *unidirectional) Step() State {
	if e.state.Terminal() {
		return e.state
	}
	if e.state == Created {
		// A fresh engine exposes an empty frontier; the start node is
		// seeded on the first expansion.
		start := e.grid.Start()
		e.gScore[start] = 0
		e.open.Push(&node{coord: start, g: 0, f: hex.Distance(start, e.grid.Goal())})
	}
	if e.open.Len() == 0 {
		e.state = Exhausted
		return e.state
	}
	e.state = Running

	cur := e.open.Pop()
	e.closed[cur.coord] = true
	e.explored++

	goal := e.grid.Goal()
	if cur.coord == goal {
		e.path = reconstruct(e.cameFrom, e.grid.Start(), goal)
		e.state = PathFound
		return e.state
	}

	for _, n := range cur.coord.Neighbors() {
		if e.closed[n] || !e.grid.Traversable(n) {
			continue
		}
		tentative := cur.g + 1
		if old, seen := e.gScore[n]; seen && tentative >= old {
			continue
		}
		e.gScore[n] = tentative
		e.cameFrom[n] = cur.coord
		f := tentative + hex.Distance(n, goal)
		if live, ok := e.open.Get(n); ok {
			e.open.Update(live, tentative, f, cur.coord)
		} else {
			e.open.Push(&node{coord: n, g: tentative, f: f, parent: cur.coord, hasParent: true})
		}
	}
	return e.state
}

func (e *unidirectional) Snapshot() Snapshot {
	return Snapshot{
		State:         e.state,
		Visited:       copySet(e.closed),
		Frontier:      e.open.Coords(),
		Path:          copyPath(e.path),
		NodesExplored: e.explored,
	}
}

// reconstruct follows predecessor links from goal back to start and returns
// the path in start-to-goal order.
func reconstruct(cameFrom map[hex.Axial]hex.Axial, start, goal hex.Axial) []hex.Axial {
	path := []hex.Axial{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
