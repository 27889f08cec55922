package search

import (
	"testing"

	"github.com/gravitas-015/hexpath/pkg/grid"
	"github.com/gravitas-015/hexpath/pkg/hex"
	"github.com/gravitas-015/hexpath/pkg/maze"
)

func TestBidirectionalOptimalityAndEquivalence(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		g, _ := maze.Generate(mazeCfg(5, 0.45, seed))
		if g == nil {
			t.Fatalf("seed %d: no grid", seed)
		}

		uni := New(Unidirectional, g)
		bi := New(Bidirectional, g)
		if s := Solve(uni); s != PathFound {
			t.Fatalf("seed %d: unidirectional %v", seed, s)
		}
		if s := Solve(bi); s != PathFound {
			t.Fatalf("seed %d: bidirectional %v", seed, s)
		}

		checkPath(t, g, bi.Path())
		uniLen := len(uni.Path()) - 1
		biLen := len(bi.Path()) - 1
		if uniLen != biLen {
			t.Fatalf("seed %d: path lengths differ: unidirectional %d, bidirectional %d",
				seed, uniLen, biLen)
		}
		if want := g.ShortestPathLen(g.Start(), g.Goal()); biLen != want {
			t.Fatalf("seed %d: bidirectional path %d, BFS optimum %d", seed, biLen, want)
		}
		t.Logf("seed %d: explored unidirectional=%d bidirectional=%d",
			seed, uni.NodesExplored(), bi.NodesExplored())
	}
}

func TestBidirectionalDemoGrid(t *testing.T) {
	g, err := maze.DemoGrid()
	if err != nil {
		t.Fatalf("demo grid: %v", err)
	}
	uni := New(Unidirectional, g)
	bi := New(Bidirectional, g)
	Solve(uni)
	Solve(bi)
	if uni.State() != PathFound || bi.State() != PathFound {
		t.Fatalf("demo grid should be solvable: uni=%v bi=%v", uni.State(), bi.State())
	}
	if lu, lb := len(uni.Path())-1, len(bi.Path())-1; lu != lb {
		t.Fatalf("demo grid path lengths differ: %d vs %d", lu, lb)
	}
	checkPath(t, g, bi.Path())
}

func TestBidirectionalAdjacentMarkers(t *testing.T) {
	g, err := grid.New(2, hex.Axial{Q: 0, R: 0}, hex.Axial{Q: 1, R: 0})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	e := New(Bidirectional, g)
	if s := Solve(e); s != PathFound {
		t.Fatalf("terminal state %v, want PathFound", s)
	}
	path := e.Path()
	checkPath(t, g, path)
	if len(path) != 2 {
		t.Fatalf("adjacent markers should give a 2-cell path, got %v", path)
	}
}

func TestBidirectionalNoPath(t *testing.T) {
	g, err := grid.New(4, hex.Axial{Q: -3, R: 0}, hex.Axial{Q: 3, R: 0})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	wallOffGoal(t, g)
	e := New(Bidirectional, g)
	if s := Solve(e); s != Exhausted {
		t.Fatalf("terminal state %v, want Exhausted", s)
	}
	if p := e.Path(); p != nil {
		t.Fatalf("expected no path, got %v", p)
	}
}

func TestBidirectionalAlternatesSides(t *testing.T) {
	g, _ := grid.New(4, hex.Axial{Q: -3, R: 0}, hex.Axial{Q: 3, R: 0})
	e := New(Bidirectional, g).(*bidirectional)

	// First expansion is the forward root, second the backward root.
	e.Step()
	if !e.forward.closed[g.Start()] {
		t.Fatalf("first step should expand the start")
	}
	if len(e.backward.closed) != 0 {
		t.Fatalf("backward side expanded on an even step")
	}
	e.Step()
	if !e.backward.closed[g.Goal()] {
		t.Fatalf("second step should expand the goal")
	}
}

func TestBidirectionalCountsBothSides(t *testing.T) {
	g, _ := grid.New(4, hex.Axial{Q: -3, R: 0}, hex.Axial{Q: 3, R: 0})
	e := New(Bidirectional, g)
	e.Step()
	e.Step()
	if n := e.NodesExplored(); n != 2 {
		t.Fatalf("explored %d after two steps, want 2", n)
	}
}
