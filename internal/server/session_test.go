package server

import (
	"testing"

	"github.com/gravitas-015/hexpath/internal/config"
	"github.com/gravitas-015/hexpath/pkg/search"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Grid.Radius = 5
	cfg.Maze.Seed = 21
	return cfg
}

func TestSessionTickOnlyAdvancesWhileRunning(t *testing.T) {
	s, err := NewSession(testConfig())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	// Initial state is dirty so the first tick reports a change.
	if !s.Tick() {
		t.Fatalf("first tick should broadcast the initial state")
	}
	if s.Tick() {
		t.Fatalf("paused session should not keep reporting changes")
	}
	before := s.SnapshotPayload().NodesExplored

	s.Run()
	if !s.Tick() {
		t.Fatalf("running session should report a change")
	}
	if after := s.SnapshotPayload().NodesExplored; after != before+1 {
		t.Fatalf("tick advanced counter %d -> %d, want exactly one expansion", before, after)
	}

	s.Pause()
	s.Tick() // drains the pause-induced dirty flag
	mid := s.SnapshotPayload().NodesExplored
	s.Tick()
	if s.SnapshotPayload().NodesExplored != mid {
		t.Fatalf("paused tick advanced the engine")
	}
}

func TestSessionSolveAndReset(t *testing.T) {
	s, err := NewSession(testConfig())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.Solve()
	snap := s.SnapshotPayload()
	if snap.State != search.PathFound.String() {
		t.Fatalf("solve ended in %s, want path_found", snap.State)
	}
	if len(snap.Path) == 0 {
		t.Fatalf("solved session has no path")
	}

	s.Reset(search.Bidirectional)
	snap = s.SnapshotPayload()
	if snap.State != search.Created.String() || snap.NodesExplored != 0 {
		t.Fatalf("reset left residue: state=%s explored=%d", snap.State, snap.NodesExplored)
	}
	if snap.Algorithm != "bidirectional" {
		t.Fatalf("reset variant = %s, want bidirectional", snap.Algorithm)
	}
}

func TestSessionRegenerateIsSeeded(t *testing.T) {
	s, err := NewSession(testConfig())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.Regenerate(77); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	a := s.GridPayload()
	if err := s.Regenerate(77); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	b := s.GridPayload()
	if len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("same seed produced different obstacle counts: %d vs %d",
			len(a.Obstacles), len(b.Obstacles))
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Fatalf("same seed produced different obstacle at %d", i)
		}
	}
	if s.SnapshotPayload().State != search.Created.String() {
		t.Fatalf("regenerate should reset the engine")
	}
}
