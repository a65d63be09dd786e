// Package websocket carries the live UI channel: one connection per browser
// session, each with its own explorer state. The hub only tracks membership
// for shutdown and metrics; sessions never receive each other's updates.
package websocket

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"relgraph/infrastructure/observability"
)

// Hub maintains the set of active session connections.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	// Channels for client management
	register   chan *Client
	unregister chan *Client

	// Lifecycle
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewHub creates a new WebSocket hub
func NewHub(metrics *observability.Collector, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 100),
		unregister: make(chan *Client, 100),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run starts the hub's main event loop
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info("Hub shutting down")
			h.closeAllConnections()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.logger.Info("Stopping WebSocket hub")
	h.cancel()
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ActiveSessions.Set(float64(count))
	}
	h.logger.Info("Session connected",
		zap.String("sessionID", client.SessionID()),
		zap.Int("activeSessions", count),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
	}
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ActiveSessions.Set(float64(count))
	}
	h.logger.Info("Session disconnected",
		zap.String("sessionID", client.SessionID()),
		zap.Int("activeSessions", count),
	)
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.closeSend()
		client.conn.Close()
		delete(h.clients, client)
	}
	if h.metrics != nil {
		h.metrics.ActiveSessions.Set(0)
	}
}
