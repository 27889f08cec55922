package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-015/hexpath/internal/network"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// Connection represents a WebSocket connection to a renderer client
type Connection struct {
	ws     *websocket.Conn
	server *Server

	// Buffered channel for outbound messages
	send chan []byte
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:     ws,
		server: server,
		send:   make(chan []byte, 256),
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			return
		}
	}
}

// handleMessage routes control messages to the session
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypeStep:
		c.server.session.Step()
		c.server.BroadcastSnapshot()

	case network.MsgTypeRun:
		c.server.session.Run()
		c.server.BroadcastSnapshot()

	case network.MsgTypePause:
		c.server.session.Pause()
		c.server.BroadcastSnapshot()

	case network.MsgTypeSolve:
		c.server.session.Solve()
		c.server.BroadcastSnapshot()

	case network.MsgTypeReset:
		c.handleReset(msg.Payload)

	case network.MsgTypeRegenerate:
		c.handleRegenerate(msg.Payload)

	case network.MsgTypePing:
		c.handlePing()

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// handleReset starts a fresh engine of the requested variant
func (c *Connection) handleReset(payload json.RawMessage) {
	var reset network.ResetPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &reset); err != nil {
			log.Printf("Failed to parse reset payload: %v", err)
			c.SendError("invalid_reset", "Invalid reset payload")
			return
		}
	}

	variant := c.server.session.Variant()
	if reset.Algorithm != "" {
		v, ok := network.ParseVariant(reset.Algorithm)
		if !ok {
			c.SendError("unknown_algorithm", "Unknown algorithm variant")
			return
		}
		variant = v
	}

	c.server.session.Reset(variant)
	c.server.BroadcastSnapshot()
}

// handleRegenerate builds a new maze and resets the engine against it
func (c *Connection) handleRegenerate(payload json.RawMessage) {
	var regen network.RegeneratePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &regen); err != nil {
			log.Printf("Failed to parse regenerate payload: %v", err)
			c.SendError("invalid_regenerate", "Invalid regenerate payload")
			return
		}
	}

	if err := c.server.session.Regenerate(regen.Seed); err != nil {
		log.Printf("Maze regeneration failed: %v", err)
		c.SendError("generation_failed", "Maze generation failed")
		return
	}

	c.server.BroadcastGrid()
	c.server.BroadcastSnapshot()
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection
func (c *Connection) Close() {
	close(c.send)
	c.ws.Close()
}
