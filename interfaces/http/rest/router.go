package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"relgraph/application/explorer"
	"relgraph/infrastructure/observability"
	"relgraph/interfaces/http/rest/handlers"
	"relgraph/interfaces/http/rest/middleware"
	"relgraph/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	svc          *explorer.Service
	wsHandler    http.HandlerFunc
	metrics      *observability.Collector
	logger       *zap.Logger
	errorHandler *errors.ErrorHandler
	origin       string
}

// NewRouter creates a new router instance. origin is the allowed websocket
// origin; "*" opens the page up to any host.
func NewRouter(
	svc *explorer.Service,
	wsHandler http.HandlerFunc,
	metrics *observability.Collector,
	logger *zap.Logger,
	errorHandler *errors.ErrorHandler,
	origin string,
) *Router {
	return &Router{
		svc:          svc,
		wsHandler:    wsHandler,
		metrics:      metrics,
		logger:       logger,
		errorHandler: errorHandler,
		origin:       origin,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.allowedOrigins(),
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	// Explorer page and its live channel
	router.Get("/", handlers.NewPageHandler(rt.logger).GetPage)
	router.Get("/ws", rt.wsHandler)

	// Read-only document endpoint for debugging and scripted consumers
	router.Get("/api/graph", handlers.NewGraphHandler(rt.svc, rt.logger, rt.errorHandler).GetGraph)

	return router
}

func (rt *Router) allowedOrigins() []string {
	if rt.origin == "" || rt.origin == "*" {
		return []string{"*"}
	}
	return []string{"https://" + rt.origin, "http://" + rt.origin}
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests. The graph is loaded
// before the listener starts, so a serving process is a ready process.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.svc == nil || rt.svc.Graph() == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"loading"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
