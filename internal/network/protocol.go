package network

import (
	"encoding/json"

	"github.com/gravitas-015/hexpath/pkg/grid"
	"github.com/gravitas-015/hexpath/pkg/hex"
	"github.com/gravitas-015/hexpath/pkg/search"
)

// Message types - Client → Server
const (
	MsgTypeStep       = "step"
	MsgTypeRun        = "run"
	MsgTypePause      = "pause"
	MsgTypeSolve      = "solve"
	MsgTypeReset      = "reset"
	MsgTypeRegenerate = "regenerate"
	MsgTypePing       = "ping"
)

// Message types - Server → Client
const (
	MsgTypeGrid     = "grid"
	MsgTypeSnapshot = "snapshot"
	MsgTypeError    = "error"
	MsgTypePong     = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// --- Client Message Payloads ---

// ResetPayload selects the algorithm variant for a fresh engine
type ResetPayload struct {
	Algorithm string `json:"algorithm"` // "unidirectional" or "bidirectional"
}

// RegeneratePayload requests a new maze; a zero seed means unseeded
type RegeneratePayload struct {
	Seed int64 `json:"seed,omitempty"`
}

// --- Server Message Payloads ---

// Coord is the wire form of an axial coordinate
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

func FromAxial(a hex.Axial) Coord { return Coord{Q: a.Q, R: a.R} }

func (c Coord) Axial() hex.Axial { return hex.Axial{Q: c.Q, R: c.R} }

// GridPayload describes the full grid layout; sent on connect and whenever
// the maze is regenerated
type GridPayload struct {
	Radius    int     `json:"radius"`
	Start     Coord   `json:"start"`
	Goal      Coord   `json:"goal"`
	Obstacles []Coord `json:"obstacles"`
}

// SnapshotPayload is the engine's observable state at one point in time
type SnapshotPayload struct {
	State         string  `json:"state"`
	Algorithm     string  `json:"algorithm"`
	Running       bool    `json:"running"`
	Visited       []Coord `json:"visited"`
	Frontier      []Coord `json:"frontier"`
	Path          []Coord `json:"path,omitempty"`
	NodesExplored int     `json:"nodes_explored"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EncodeGrid converts a grid to its wire form.
func EncodeGrid(g *grid.Grid) GridPayload {
	p := GridPayload{
		Radius: g.Radius(),
		Start:  FromAxial(g.Start()),
		Goal:   FromAxial(g.Goal()),
	}
	for _, c := range g.All() {
		if cell, _ := g.Classify(c); cell == grid.Obstacle {
			p.Obstacles = append(p.Obstacles, FromAxial(c))
		}
	}
	return p
}

// EncodeSnapshot converts an engine snapshot to its wire form.
func EncodeSnapshot(snap search.Snapshot, v search.Variant, running bool) SnapshotPayload {
	p := SnapshotPayload{
		State:         snap.State.String(),
		Algorithm:     v.String(),
		Running:       running,
		Visited:       make([]Coord, 0, len(snap.Visited)),
		Frontier:      make([]Coord, 0, len(snap.Frontier)),
		NodesExplored: snap.NodesExplored,
	}
	for c := range snap.Visited {
		p.Visited = append(p.Visited, FromAxial(c))
	}
	for c := range snap.Frontier {
		p.Frontier = append(p.Frontier, FromAxial(c))
	}
	for _, c := range snap.Path {
		p.Path = append(p.Path, FromAxial(c))
	}
	return p
}

// ParseVariant maps a wire algorithm name to a search variant.
func ParseVariant(name string) (search.Variant, bool) {
	switch name {
	case "unidirectional":
		return search.Unidirectional, true
	case "bidirectional":
		return search.Bidirectional, true
	}
	return 0, false
}
