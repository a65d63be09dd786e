package websocket

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"relgraph/application/explorer"
)

// Server upgrades HTTP requests and hands each connection an independent
// explorer session.
type Server struct {
	hub      *Hub
	svc      *explorer.Service
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewServer creates a new WebSocket server. allowedOrigin is the host the
// page is served from; "*" disables the check for local runs.
func NewServer(hub *Hub, svc *explorer.Service, allowedOrigin string, logger *zap.Logger) *Server {
	return &Server{
		hub: hub,
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigin),
		},
		logger: logger,
	}
}

// HandleWebSocket handles WebSocket upgrade requests on GET /ws.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		s.logger.Error("Failed to upgrade connection",
			zap.Error(err),
			zap.String("remoteAddr", r.RemoteAddr),
		)
		return
	}

	session := s.svc.NewSession()
	client := NewClient(s.hub, conn, session, s.logger)
	client.Start()
}

// originChecker accepts requests whose Origin host matches the configured
// websocket origin. Same-origin requests (no Origin header) always pass.
func originChecker(allowedOrigin string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if allowedOrigin == "*" {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == allowedOrigin || u.Hostname() == allowedOrigin || u.Host == r.Host
	}
}
