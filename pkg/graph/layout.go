package graph

import (
	"encoding/json"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clusterpanel/pkg/errors"
)

// =============================================================================
// Layout - Serialized Panel Layout
// =============================================================================

// Layout is the serialization format of a laid out panel. Renderers only
// need a Layout, never the Graph it was computed from.
type Layout struct {
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	SeriesCount int             `json:"series_count"`
	NoData      bool            `json:"no_data,omitempty"`
	Clusters    []ClusterLayout `json:"clusters,omitempty"`
	Edges       []EdgeLayout    `json:"edges,omitempty"`
}

// ClusterLayout is a cluster with the canvas origin of its node grid.
type ClusterLayout struct {
	Name  string       `json:"name"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Nodes []NodeLayout `json:"nodes"`
}

// NodeLayout is a positioned node.
type NodeLayout struct {
	Name    string  `json:"name"`
	Cluster string  `json:"cluster"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// EdgeLayout is a directed edge by endpoint names.
type EdgeLayout struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Cluster string `json:"cluster"`
}

// NodeCount returns the number of positioned nodes.
func (l *Layout) NodeCount() int {
	n := 0
	for _, c := range l.Clusters {
		n += len(c.Nodes)
	}
	return n
}

// Positions indexes node positions by name.
func (l *Layout) Positions() map[string]NodeLayout {
	out := make(map[string]NodeLayout, l.NodeCount())
	for _, c := range l.Clusters {
		for _, n := range c.Nodes {
			out[n.Name] = n
		}
	}
	return out
}

// NoDataLayout returns the layout of a panel without input series.
func NoDataLayout(width, height float64) Layout {
	return Layout{Width: width, Height: height, NoData: true}
}

// BuildLayout queries the position of every node, cluster by cluster in
// creation order and node by node in insertion order. Nodes the topology
// cannot place are left out and logged at debug level.
func BuildLayout(g *Graph, width, height float64, seriesCount int, logger *log.Logger) Layout {
	if logger == nil {
		logger = log.Default()
	}
	l := Layout{
		Width:       width,
		Height:      height,
		SeriesCount: seriesCount,
		Clusters:    make([]ClusterLayout, 0, g.ClusterCount()),
	}

	for _, c := range g.Clusters() {
		origin := c.Origin()
		cl := ClusterLayout{Name: c.Name, X: origin.X, Y: origin.Y, Nodes: []NodeLayout{}}
		for _, n := range c.Nodes() {
			p, ok := c.Position(n)
			if !ok {
				logger.Debug("node has no position", "node", n.Name, "cluster", c.Name)
				continue
			}
			cl.Nodes = append(cl.Nodes, NodeLayout{Name: n.Name, Cluster: c.Name, X: p.X, Y: p.Y})
		}
		l.Clusters = append(l.Clusters, cl)

		for _, e := range c.Edges() {
			l.Edges = append(l.Edges, EdgeLayout{Source: e.Source.Name, Target: e.Target.Name, Cluster: c.Name})
		}
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "layout must have positive dimensions, got %vx%v", l.Width, l.Height)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
	}
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
