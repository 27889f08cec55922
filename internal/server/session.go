package server

import (
	"errors"
	"log"
	"sync"

	"github.com/gravitas-015/hexpath/internal/config"
	"github.com/gravitas-015/hexpath/internal/network"
	"github.com/gravitas-015/hexpath/pkg/maze"
	"github.com/gravitas-015/hexpath/pkg/search"
)

// Session owns the one live grid and search controller behind the server.
// All engine access funnels through its mutex, keeping the stepping state
// machine effectively single-threaded as the engines require.
type Session struct {
	mu   sync.Mutex
	cfg  *config.Config
	ctrl *search.Controller

	// dirty marks that observable state changed since the last broadcast,
	// so paused sessions do not spam identical snapshots.
	dirty bool
}

// NewSession generates an initial maze and wires a controller to it.
func NewSession(cfg *config.Config) (*Session, error) {
	g, err := maze.Generate(mazeConfig(cfg, cfg.Maze.Seed))
	if err != nil {
		if !errors.Is(err, maze.ErrGenerationFailed) {
			return nil, err
		}
		// The generator hands back its last connectivity-verified grid.
		log.Printf("Maze generation fell back to a sparser grid: %v", err)
	}
	log.Printf("Session grid ready: radius %d", g.Radius())
	return &Session{
		cfg:   cfg,
		ctrl:  search.NewController(g, search.Unidirectional),
		dirty: true,
	}, nil
}

func mazeConfig(cfg *config.Config, seed int64) maze.Config {
	return maze.Config{
		Radius:     cfg.Grid.Radius,
		Density:    cfg.Maze.Density,
		Seed:       seed,
		MaxRetries: cfg.Maze.MaxRetries,
		BatchSize:  cfg.Maze.BatchSize,
	}
}

// Step advances the engine by one expansion.
func (s *Session) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Step()
	s.dirty = true
}

// Tick advances the engine once if the controller is running and reports
// whether a broadcast-worthy change happened since the last call.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl.Running() {
		s.ctrl.Step()
		s.dirty = true
	}
	changed := s.dirty
	s.dirty = false
	return changed
}

// Run resumes continuous stepping at the server's tick cadence.
func (s *Session) Run() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Run()
	s.dirty = true
}

// Pause halts continuous stepping.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Pause()
	s.dirty = true
}

// Solve runs the active engine to termination in one call.
func (s *Session) Solve() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Solve()
	s.dirty = true
}

// Reset discards engine state and starts a fresh engine of the requested
// variant against the current grid.
func (s *Session) Reset(v search.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Reset(v)
	s.dirty = true
	log.Printf("Engine reset: %s", v)
}

// Regenerate builds a new maze (seeded when seed != 0) and resets the
// engine against it.
func (s *Session) Regenerate(seed int64) error {
	g, err := maze.Generate(mazeConfig(s.cfg, seed))
	if g == nil {
		return err
	}
	if err != nil {
		log.Printf("Maze regeneration fell back to a sparser grid: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SetGrid(g)
	s.dirty = true
	log.Printf("Maze regenerated (seed %d)", seed)
	return nil
}

// Variant returns the active engine variant.
func (s *Session) Variant() search.Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Variant()
}

// GridPayload returns the wire form of the current grid.
func (s *Session) GridPayload() network.GridPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return network.EncodeGrid(s.ctrl.Grid())
}

// SnapshotPayload returns the wire form of the engine's observable state.
func (s *Session) SnapshotPayload() network.SnapshotPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return network.EncodeSnapshot(s.ctrl.Snapshot(), s.ctrl.Variant(), s.ctrl.Running())
}
