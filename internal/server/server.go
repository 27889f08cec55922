package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-015/hexpath/internal/config"
	"github.com/gravitas-015/hexpath/internal/network"
)

// Server streams engine snapshots to websocket clients and applies their
// control messages to the session. Clients are renderers only: they never
// see engine internals, just the snapshot payloads.
type Server struct {
	config   *config.Config
	session  *Session
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	log.Println("Initializing server...")

	ctx, cancel := context.WithCancel(context.Background())

	session, err := NewSession(cfg)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	srv := &Server{
		config:      cfg,
		session:     session,
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Local visualization tool; any origin may watch.
				return true
			},
		},
	}

	log.Println("Server initialized successfully")
	return srv, nil
}

// Start begins listening for connections and runs the tick loop
func (s *Server) Start(addr string) error {
	log.Printf("Starting WebSocket server on %s", addr)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.tickLoop()

	log.Printf("WebSocket endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// tickLoop steps the session at the configured cadence and broadcasts the
// snapshot whenever something observable changed. The loop is the only
// goroutine that advances the engine on its own; everything else reacts to
// client messages.
func (s *Server) tickLoop() {
	interval := time.Second / time.Duration(s.config.Server.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if s.session.Tick() {
				s.BroadcastSnapshot()
			}
		}
	}
}

// BroadcastSnapshot sends the current engine snapshot to every client.
func (s *Server) BroadcastSnapshot() {
	msg := &network.ServerMessage{
		Type:    network.MsgTypeSnapshot,
		Payload: s.session.SnapshotPayload(),
	}
	s.broadcast(msg)
}

// BroadcastGrid sends the full grid layout to every client.
func (s *Server) BroadcastGrid() {
	msg := &network.ServerMessage{
		Type:    network.MsgTypeGrid,
		Payload: s.session.GridPayload(),
	}
	s.broadcast(msg)
}

func (s *Server) broadcast(msg *network.ServerMessage) {
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	for conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	s.connMu.Lock()
	for conn := range s.connections {
		conn.Close()
	}
	s.connMu.Unlock()

	log.Println("Server shutdown complete")
	return nil
}

// handleWebSocket handles WebSocket connection requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log.Printf("New WebSocket connection request from %s", r.RemoteAddr)

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws, s)

	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()

	log.Printf("WebSocket connection established: %s", r.RemoteAddr)

	// New clients get the grid and current snapshot immediately.
	conn.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeGrid,
		Payload: s.session.GridPayload(),
	})
	conn.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeSnapshot,
		Payload: s.session.SnapshotPayload(),
	})

	// Handle connection (blocking)
	conn.Handle()

	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()

	log.Printf("WebSocket connection closed: %s", r.RemoteAddr)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
