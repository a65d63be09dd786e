package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style is the presentation policy for the rendered graph: relation colors,
// node sizing, and the weight floor applied when the snapshot is loaded.
// It lives in a YAML file so operators can tune colors without a rebuild;
// changes apply to new browser sessions only.
type Style struct {
	Title             string            `yaml:"title"`
	NodeColor         string            `yaml:"node_color"`
	HighlightColor    string            `yaml:"highlight_color"`
	DimAlpha          float64           `yaml:"dim_alpha"`
	EdgeColors        map[string]string `yaml:"edge_colors"`
	EdgeColorFallback string            `yaml:"edge_color_fallback"`
	MinWeight         float64           `yaml:"min_weight"`
	NodeBaseSize      float64           `yaml:"node_base_size"`
	NodeSizeScale     float64           `yaml:"node_size_scale"`
	EdgeWidth         float64           `yaml:"edge_width"`
	PlotWidth         int               `yaml:"plot_width"`
	PlotHeight        int               `yaml:"plot_height"`
}

// DefaultStyle returns the built-in style sheet, matching the production
// deployment's book-interaction color coding.
func DefaultStyle() Style {
	return Style{
		Title:          "Interactive Graph Explorer",
		NodeColor:      "skyblue",
		HighlightColor: "orange",
		DimAlpha:       0.15,
		EdgeColors: map[string]string{
			"INTERACTS1":  "purple",
			"INTERACTS2":  "red",
			"INTERACTS3":  "green",
			"INTERACTS45": "blue",
		},
		EdgeColorFallback: "gray",
		MinWeight:         2,
		NodeBaseSize:      8,
		NodeSizeScale:     1.5,
		EdgeWidth:         2,
		PlotWidth:         900,
		PlotHeight:        700,
	}
}

// EdgeColor resolves the display color for a relation label.
func (s Style) EdgeColor(relation string) string {
	if color, ok := s.EdgeColors[relation]; ok {
		return color
	}
	return s.EdgeColorFallback
}

// NodeSize computes the display radius for a node of the given degree.
func (s Style) NodeSize(degree int) float64 {
	return s.NodeBaseSize + s.NodeSizeScale*float64(degree)
}

// LoadStyle reads a style sheet from a YAML file, overlaying the defaults.
// An empty path returns the defaults unchanged.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("failed to read style sheet: %w", err)
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return Style{}, fmt.Errorf("failed to parse style sheet: %w", err)
	}
	return style, nil
}
