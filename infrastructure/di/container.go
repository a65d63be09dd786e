// Package di wires the application together at startup. The graph is loaded
// and laid out once here; everything downstream treats it as immutable.
package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"relgraph/application/explorer"
	"relgraph/domain/graph"
	"relgraph/domain/layout"
	"relgraph/infrastructure/config"
	"relgraph/infrastructure/observability"
	"relgraph/infrastructure/persistence/memory"
	"relgraph/infrastructure/persistence/neo4j"
	"relgraph/infrastructure/tracing"
	"relgraph/interfaces/http/rest"
	"relgraph/interfaces/websocket"
	"relgraph/pkg/errors"
)

// Container holds every wired component for the lifetime of the process.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Collector
	Tracing *tracing.TracerProvider
	Styles  *config.StyleWatcher

	Graph     *graph.Graph
	Positions map[string]layout.Position
	Explorer  *explorer.Service

	Hub      *websocket.Hub
	WSServer *websocket.Server
	Handler  http.Handler
}

// InitializeContainer loads the graph, computes the layout and wires the
// HTTP and websocket stacks. Any error here is fatal to startup.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	metrics := observability.NewCollector("relgraph")

	tracer, err := tracing.InitTracing("relgraph", cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	styles, err := config.NewStyleWatcher(cfg.StylePath, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize style watcher: %w", err)
	}
	styles.Start()

	loadCtx, span := tracer.Start(ctx, "startup.load_graph")
	loadStart := time.Now()
	var rows []graph.Interaction
	if cfg.DemoMode {
		logger.Info("Demo mode: using built-in sample dataset")
		rows = memory.SampleInteractions()
	} else {
		loader, err := neo4j.NewLoader(loadCtx, cfg.Neo4j, logger)
		if err != nil {
			span.End()
			return nil, err
		}
		rows, err = loader.LoadInteractions(loadCtx)
		closeErr := loader.Close(loadCtx)
		if err != nil {
			span.End()
			return nil, err
		}
		if closeErr != nil {
			logger.Warn("Failed to close graph database driver", zap.Error(closeErr))
		}
	}
	span.End()
	loadDuration := time.Since(loadStart)

	style := styles.Current()
	g := graph.Build(rows, style.MinWeight)
	if err := g.Validate(); err != nil {
		return nil, errors.NewInternal("loaded graph failed validation", err)
	}

	layoutStart := time.Now()
	layoutCfg := layout.DefaultConfig()
	layoutCfg.Iterations = cfg.Layout.Iterations
	layoutCfg.Seed = cfg.Layout.Seed
	layoutCfg.Scale = cfg.Layout.Scale
	positions, err := layout.NewEngine(layoutCfg).Compute(g)
	if err != nil {
		return nil, errors.NewInternal("layout computation failed", err)
	}
	layoutDuration := time.Since(layoutStart)

	metrics.RecordSnapshot(len(g.Characters()), len(g.Interactions()), loadDuration, layoutDuration)
	logger.Info("Graph snapshot ready",
		zap.Int("nodes", len(g.Characters())),
		zap.Int("edges", len(g.Interactions())),
		zap.Duration("loadDuration", loadDuration),
		zap.Duration("layoutDuration", layoutDuration),
	)

	svc := explorer.NewService(g, positions, styles.Current, metrics, logger)

	hub := websocket.NewHub(metrics, logger)
	wsServer := websocket.NewServer(hub, svc, cfg.WebSocketOrigin, logger)

	errorHandler := errors.NewErrorHandler(logger)
	router := rest.NewRouter(svc, wsServer.HandleWebSocket, metrics, logger, errorHandler, cfg.WebSocketOrigin)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Tracing:   tracer,
		Styles:    styles,
		Graph:     g,
		Positions: positions,
		Explorer:  svc,
		Hub:       hub,
		WSServer:  wsServer,
		Handler:   router.Setup(),
	}, nil
}

// Shutdown releases background resources in reverse wiring order.
func (c *Container) Shutdown(ctx context.Context) {
	c.Hub.Stop()
	c.Styles.Stop()
	if err := c.Tracing.Shutdown(ctx); err != nil {
		c.Logger.Warn("Tracing shutdown failed", zap.Error(err))
	}
	c.Logger.Sync()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		zcfg := zap.NewDevelopmentConfig()
		if err := applyLevel(&zcfg, cfg.LogLevel); err != nil {
			return nil, err
		}
		return zcfg.Build()
	}
	zcfg := zap.NewProductionConfig()
	if err := applyLevel(&zcfg, cfg.LogLevel); err != nil {
		return nil, err
	}
	return zcfg.Build()
}

func applyLevel(zcfg *zap.Config, level string) error {
	if level == "" {
		return nil
	}
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg.Level = parsed
	return nil
}
