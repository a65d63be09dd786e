package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"relgraph/application/explorer"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; UI events are tiny
	maxMessageSize = 4 * 1024

	// Send buffer size
	sendBufferSize = 64
)

// Client couples one WebSocket connection to one explorer session.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	session *explorer.Session
	send    chan []byte // Buffered channel of outbound messages
	logger  *zap.Logger

	// mu orders push against closeSend; a push must never hit a closed
	// channel.
	mu     sync.Mutex
	closed bool
}

// NewClient creates a new WebSocket client around an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, session *explorer.Session, logger *zap.Logger) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		session: session,
		send:    make(chan []byte, sendBufferSize),
		logger:  logger.With(zap.String("sessionID", session.ID())),
	}
}

// SessionID returns the explorer session identifier.
func (c *Client) SessionID() string {
	return c.session.ID()
}

// Start registers with the hub, begins the read and write pumps, and pushes
// the initial graph snapshot.
func (c *Client) Start() {
	c.hub.register <- c

	go c.writePump()
	go c.readPump()

	c.push(c.session.Snapshot())
}

// readPump pumps UI events from the WebSocket connection into the session.
// Each event is handled synchronously to completion before the next one.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket read error", zap.Error(err))
			}
			break
		}
		if messageType != websocket.TextMessage {
			c.logger.Warn("Binary messages not supported")
			continue
		}
		c.handleEvent(message)
	}
}

// handleEvent decodes a UI event and applies it to the session. Malformed
// or unknown events are logged and dropped; they never take the connection
// down.
func (c *Client) handleEvent(message []byte) {
	var event explorer.Event
	if err := json.Unmarshal(message, &event); err != nil {
		c.logger.Warn("Malformed UI event", zap.Error(err))
		return
	}

	update, err := c.session.Handle(event)
	if err != nil {
		c.logger.Warn("Rejected UI event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
		return
	}
	c.push(update)
}

// push enqueues an outbound message, dropping it if the client is too slow
// or already closed.
func (c *Client) push(message explorer.Message) {
	data, err := json.Marshal(message)
	if err != nil {
		c.logger.Error("Failed to marshal push update", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("Send buffer full, dropping update",
			zap.String("type", message.Type),
		)
	}
}

// closeSend closes the outbound channel exactly once. Safe to call
// concurrently with push and idempotent across the unregister and
// shutdown paths.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump pumps messages from the session to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error("Failed to write message", zap.Error(err))
				return
			}

			// Drain queued messages into the same write cycle
			n := len(c.send)
			for i := 0; i < n; i++ {
				if err := c.conn.WriteMessage(websocket.TextMessage, <-c.send); err != nil {
					c.logger.Error("Failed to write batched message", zap.Error(err))
					return
				}
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
