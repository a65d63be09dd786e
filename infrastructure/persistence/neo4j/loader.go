// Package neo4j loads the character interaction snapshot from the hosted
// graph database. The query runs once at startup; there is no retry and no
// write path.
package neo4j

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"go.uber.org/zap"

	"relgraph/domain/graph"
	"relgraph/infrastructure/config"
	pkgerrors "relgraph/pkg/errors"
)

// interactionQuery pulls every character-to-character relationship with its
// label, weight and originating book index.
const interactionQuery = `
MATCH (c:Character)-[r]->(d:Character)
RETURN c.name AS source, d.name AS target, type(r) AS relation,
       r.weight AS weight, r.book AS book
LIMIT $limit`

// Loader reads interaction rows from Neo4j.
type Loader struct {
	driver neo4j.DriverWithContext
	cfg    config.Neo4jConfig
	logger *zap.Logger
}

// NewLoader connects to the database and verifies connectivity. A failure
// here is fatal to startup by design: the process has nothing to serve
// without the snapshot.
func NewLoader(ctx context.Context, cfg config.Neo4jConfig, logger *zap.Logger) (*Loader, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, pkgerrors.NewUnavailable("failed to create database driver", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, pkgerrors.NewUnavailable("graph database unreachable", err)
	}
	logger.Info("Connected to graph database", zap.String("uri", cfg.URI))
	return &Loader{driver: driver, cfg: cfg, logger: logger}, nil
}

// Close releases the underlying driver.
func (l *Loader) Close(ctx context.Context) error {
	return l.driver.Close(ctx)
}

// LoadInteractions runs the snapshot query and materializes the rows.
// Rows missing a source or target name are skipped.
func (l *Loader) LoadInteractions(ctx context.Context) ([]graph.Interaction, error) {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: l.cfg.Database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, interactionQuery, map[string]any{"limit": l.cfg.QueryLimit})
	if err != nil {
		return nil, pkgerrors.NewUnavailable("interaction query failed", err)
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, pkgerrors.NewUnavailable("failed to collect interaction rows", err)
	}

	rows := make([]graph.Interaction, 0, len(records))
	skipped := 0
	for _, record := range records {
		row, ok := interactionFromRecord(record)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if skipped > 0 {
		l.logger.Warn("Skipped malformed interaction rows", zap.Int("count", skipped))
	}
	l.logger.Info("Loaded interaction snapshot", zap.Int("rows", len(rows)))
	return rows, nil
}

// interactionFromRecord maps a query record onto an Interaction. It is kept
// separate from the driver plumbing so the conversion rules are testable.
func interactionFromRecord(record *db.Record) (graph.Interaction, bool) {
	source, ok := stringValue(record, "source")
	if !ok || source == "" {
		return graph.Interaction{}, false
	}
	target, ok := stringValue(record, "target")
	if !ok || target == "" {
		return graph.Interaction{}, false
	}

	relation, _ := stringValue(record, "relation")
	weight, _ := floatValue(record, "weight")
	book, _ := intValue(record, "book")

	return graph.Interaction{
		Source:   source,
		Target:   target,
		Relation: relation,
		Weight:   weight,
		Book:     book,
	}, true
}

func stringValue(record *db.Record, key string) (string, bool) {
	raw, ok := record.Get(key)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// floatValue tolerates both Neo4j integers and floats.
func floatValue(record *db.Record, key string) (float64, bool) {
	raw, ok := record.Get(key)
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func intValue(record *db.Record, key string) (int, bool) {
	raw, ok := record.Get(key)
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
