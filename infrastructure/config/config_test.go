package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "*", cfg.WebSocketOrigin)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, 100, cfg.Neo4j.QueryLimit)
	assert.Equal(t, uint64(42), cfg.Layout.Seed)
	assert.Equal(t, 1.5, cfg.Layout.Scale)
}

func TestLoadConfig_DeploymentEnvironment(t *testing.T) {
	t.Setenv("PORT", "10000")
	t.Setenv("RENDER_EXTERNAL_HOSTNAME", "graphs.example.com")
	t.Setenv("NEO4J_URI", "neo4j+s://abc123.databases.neo4j.io")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Port)
	assert.Equal(t, "graphs.example.com", cfg.WebSocketOrigin)
	assert.Equal(t, "neo4j+s://abc123.databases.neo4j.io", cfg.Neo4j.URI)
}

func TestLoadConfig_ExplicitOriginWinsOverHostname(t *testing.T) {
	t.Setenv("WEBSOCKET_ORIGIN", "explorer.example.com")
	t.Setenv("RENDER_EXTERNAL_HOSTNAME", "other.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "explorer.example.com", cfg.WebSocketOrigin)
}

func TestLoadConfig_ProductionRequiresOrigin(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("NEO4J_URI", "neo4j+s://abc123.databases.neo4j.io")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBSOCKET_ORIGIN")
}

func TestLoadConfig_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestDefaultStyle(t *testing.T) {
	style := DefaultStyle()

	assert.Equal(t, "purple", style.EdgeColor("INTERACTS1"))
	assert.Equal(t, "blue", style.EdgeColor("INTERACTS45"))
	assert.Equal(t, style.EdgeColorFallback, style.EdgeColor("UNKNOWN_RELATION"))
	assert.Equal(t, 2.0, style.MinWeight)
	assert.Greater(t, style.NodeSize(5), style.NodeSize(1))
}

func TestLoadStyle_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	content := []byte("title: Westeros\nmin_weight: 3\nedge_colors:\n  ALLY: teal\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	style, err := LoadStyle(path)
	require.NoError(t, err)

	assert.Equal(t, "Westeros", style.Title)
	assert.Equal(t, 3.0, style.MinWeight)
	assert.Equal(t, "teal", style.EdgeColor("ALLY"))
	// Untouched fields keep their defaults.
	assert.Equal(t, "skyblue", style.NodeColor)
}

func TestLoadStyle_MissingFile(t *testing.T) {
	_, err := LoadStyle(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadStyle_EmptyPathReturnsDefaults(t *testing.T) {
	style, err := LoadStyle("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle(), style)
}
