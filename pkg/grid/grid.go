// Package grid maps axial coordinates to cell classifications over a
// radius-bounded hex disk. A grid always carries exactly one Start and one
// Goal cell, distinct from each other and never obstructed.
package grid

import (
	"errors"
	"fmt"

	"github.com/gravitas-015/hexpath/pkg/hex"
)

// Cell classifies a single hex cell.
type Cell int

const (
	Open Cell = iota
	Obstacle
	Start
	Goal
)

func (c Cell) String() string {
	switch c {
	case Open:
		return "open"
	case Obstacle:
		return "obstacle"
	case Start:
		return "start"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("cell(%d)", int(c))
}

var (
	// ErrOutOfBounds reports a coordinate outside the grid's disk. Internal
	// callers treat hitting it as a contract violation.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")

	// ErrInvalidCell reports a mutation that would break the one-start,
	// one-goal, both-unobstructed invariant.
	ErrInvalidCell = errors.New("grid: mutation violates start/goal invariant")
)

// Grid owns the cell map for a hex disk centered on the origin.
//
// Mutation invalidates any in-progress search referencing the grid; callers
// are expected to reset affected engines. Generation ticks on every Set so
// engines can detect a stale grid.
type Grid struct {
	radius     int
	cells      map[hex.Axial]Cell
	start      hex.Axial
	goal       hex.Axial
	generation uint64
}

// New creates an all-open grid of the given radius with the start and goal
// markers placed. Both coordinates must be in bounds and distinct.
func New(radius int, start, goal hex.Axial) (*Grid, error) {
	if radius < 1 {
		return nil, fmt.Errorf("grid: radius must be >= 1, got %d", radius)
	}
	g := &Grid{
		radius: radius,
		cells:  make(map[hex.Axial]Cell, hex.DiskSize(radius)),
	}
	for _, c := range hex.Disk(hex.Axial{}, radius) {
		g.cells[c] = Open
	}
	if !g.Contains(start) || !g.Contains(goal) {
		return nil, fmt.Errorf("grid: start %v / goal %v: %w", start, goal, ErrOutOfBounds)
	}
	if start == goal {
		return nil, fmt.Errorf("grid: start and goal both at %v: %w", start, ErrInvalidCell)
	}
	g.start, g.goal = start, goal
	g.cells[start] = Start
	g.cells[goal] = Goal
	return g, nil
}

// Radius returns the disk radius.
func (g *Grid) Radius() int { return g.radius }

// Generation returns a counter that increments on every mutation.
func (g *Grid) Generation() uint64 { return g.generation }

// Start returns the unique start coordinate.
func (g *Grid) Start() hex.Axial { return g.start }

// Goal returns the unique goal coordinate.
func (g *Grid) Goal() hex.Axial { return g.goal }

// Contains reports whether c lies inside the disk.
func (g *Grid) Contains(c hex.Axial) bool {
	return hex.Distance(hex.Axial{}, c) <= g.radius
}

// Classify returns the classification of c, or ErrOutOfBounds.
func (g *Grid) Classify(c hex.Axial) (Cell, error) {
	cell, ok := g.cells[c]
	if !ok {
		return Open, fmt.Errorf("grid: %v: %w", c, ErrOutOfBounds)
	}
	return cell, nil
}

// Traversable reports whether c is in bounds and not an obstacle.
func (g *Grid) Traversable(c hex.Axial) bool {
	cell, ok := g.cells[c]
	return ok && cell != Obstacle
}

// Set mutates the classification of c.
//
// Setting Start or Goal relocates the unique marker: the previous marker
// cell reverts to Open. Overwriting the current start or goal with Open or
// Obstacle is rejected with ErrInvalidCell, as is placing both markers on
// one coordinate.
func (g *Grid) Set(c hex.Axial, cell Cell) error {
	if _, ok := g.cells[c]; !ok {
		return fmt.Errorf("grid: %v: %w", c, ErrOutOfBounds)
	}
	switch cell {
	case Start:
		if c == g.goal {
			return fmt.Errorf("grid: start onto goal %v: %w", c, ErrInvalidCell)
		}
		g.cells[g.start] = Open
		g.start = c
	case Goal:
		if c == g.start {
			return fmt.Errorf("grid: goal onto start %v: %w", c, ErrInvalidCell)
		}
		g.cells[g.goal] = Open
		g.goal = c
	default:
		if c == g.start || c == g.goal {
			return fmt.Errorf("grid: overwrite marker at %v: %w", c, ErrInvalidCell)
		}
	}
	g.cells[c] = cell
	g.generation++
	return nil
}

// All returns every in-bounds coordinate in disk order.
func (g *Grid) All() []hex.Axial {
	return hex.Disk(hex.Axial{}, g.radius)
}

// Clone returns a deep copy sharing no state with the original.
func (g *Grid) Clone() *Grid {
	cells := make(map[hex.Axial]Cell, len(g.cells))
	for c, cell := range g.cells {
		cells[c] = cell
	}
	return &Grid{
		radius:     g.radius,
		cells:      cells,
		start:      g.start,
		goal:       g.goal,
		generation: g.generation,
	}
}

// Reachable reports whether to can be reached from from through traversable
// cells, by flood fill.
func (g *Grid) Reachable(from, to hex.Axial) bool {
	if !g.Traversable(from) || !g.Traversable(to) {
		return false
	}
	if from == to {
		return true
	}
	visited := map[hex.Axial]bool{from: true}
	queue := []hex.Axial{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if visited[n] || !g.Traversable(n) {
				continue
			}
			if n == to {
				return true
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return false
}

// ShortestPathLen returns the edge count of a shortest traversable path from
// from to to, or -1 if none exists. Used as the reference answer when
// checking search optimality.
func (g *Grid) ShortestPathLen(from, to hex.Axial) int {
	if !g.Traversable(from) || !g.Traversable(to) {
		return -1
	}
	if from == to {
		return 0
	}
	dist := map[hex.Axial]int{from: 0}
	queue := []hex.Axial{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if _, seen := dist[n]; seen || !g.Traversable(n) {
				continue
			}
			dist[n] = dist[cur] + 1
			if n == to {
				return dist[n]
			}
			queue = append(queue, n)
		}
	}
	return -1
}
