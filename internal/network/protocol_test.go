package network

import (
	"encoding/json"
	"testing"

	"github.com/gravitas-015/hexpath/pkg/grid"
	"github.com/gravitas-015/hexpath/pkg/hex"
	"github.com/gravitas-015/hexpath/pkg/search"
)

func TestEncodeGrid(t *testing.T) {
	g, err := grid.New(3, hex.Axial{Q: -2, R: 0}, hex.Axial{Q: 2, R: 0})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if err := g.Set(hex.Axial{Q: 0, R: 1}, grid.Obstacle); err != nil {
		t.Fatalf("set: %v", err)
	}

	p := EncodeGrid(g)
	if p.Radius != 3 {
		t.Fatalf("radius = %d, want 3", p.Radius)
	}
	if p.Start.Axial() != g.Start() || p.Goal.Axial() != g.Goal() {
		t.Fatalf("marker coords mismatch")
	}
	if len(p.Obstacles) != 1 || p.Obstacles[0].Axial() != (hex.Axial{Q: 0, R: 1}) {
		t.Fatalf("obstacles = %v", p.Obstacles)
	}
}

func TestEncodeSnapshotAfterSolve(t *testing.T) {
	g, _ := grid.New(3, hex.Axial{Q: -2, R: 0}, hex.Axial{Q: 2, R: 0})
	e := search.New(search.Unidirectional, g)
	search.Solve(e)

	p := EncodeSnapshot(e.Snapshot(), search.Unidirectional, false)
	if p.State != "path_found" || p.Algorithm != "unidirectional" {
		t.Fatalf("header mismatch: %+v", p)
	}
	if p.NodesExplored != e.NodesExplored() {
		t.Fatalf("explored mismatch")
	}
	if len(p.Path) == 0 || p.Path[0].Axial() != g.Start() {
		t.Fatalf("path not encoded from start: %v", p.Path)
	}

	// The wire form must survive JSON round-tripping for browser clients.
	data, err := json.Marshal(&ServerMessage{Type: MsgTypeSnapshot, Payload: p})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Type    string          `json:"type"`
		Payload SnapshotPayload `json:"payload"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != MsgTypeSnapshot || decoded.Payload.NodesExplored != p.NodesExplored {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestParseVariant(t *testing.T) {
	if v, ok := ParseVariant("bidirectional"); !ok || v != search.Bidirectional {
		t.Fatalf("bidirectional not parsed")
	}
	if v, ok := ParseVariant("unidirectional"); !ok || v != search.Unidirectional {
		t.Fatalf("unidirectional not parsed")
	}
	if _, ok := ParseVariant("dijkstra"); ok {
		t.Fatalf("unknown variant should not parse")
	}
}
