package graph

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestBuildLayout(t *testing.T) {
	g := New(nil)
	c, _ := g.EnsureCluster("c1")
	g.FreezeOrigin(c)
	g.AddNode(NewNode("b", "c1"))
	g.AddNode(NewNode("a", "c1"))
	g.AddEdge("c1", NewEdge(NewNode("a", "c1"), NewNode("b", "")))

	l := BuildLayout(g, 800, 600, 2, discardLogger())

	if l.SeriesCount != 2 {
		t.Errorf("SeriesCount = %d, want 2", l.SeriesCount)
	}
	if len(l.Clusters) != 1 {
		t.Fatalf("clusters = %d, want 1", len(l.Clusters))
	}
	nodes := l.Clusters[0].Nodes
	if len(nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(nodes))
	}
	// Insertion order is kept; positions come from sorted order.
	if nodes[0].Name != "b" || nodes[0].X != 310 || nodes[0].Y != -100 {
		t.Errorf("nodes[0] = %+v, want b at (310, -100)", nodes[0])
	}
	if nodes[1].Name != "a" || nodes[1].X != 200 || nodes[1].Y != -100 {
		t.Errorf("nodes[1] = %+v, want a at (200, -100)", nodes[1])
	}
	if len(l.Edges) != 1 || l.Edges[0].Source != "a" || l.Edges[0].Target != "b" {
		t.Errorf("edges = %+v, want a→b", l.Edges)
	}
	if got := l.Positions()["b"].X; got != 310 {
		t.Errorf("Positions()[b].X = %v, want 310", got)
	}
}

func TestLayoutRoundTripFile(t *testing.T) {
	l := Layout{
		Width: 800, Height: 600, SeriesCount: 1,
		Clusters: []ClusterLayout{{Name: "c1", X: 200, Y: -100, Nodes: []NodeLayout{{Name: "a", Cluster: "c1", X: 200, Y: -100}}}},
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.NodeCount() != 1 || got.Clusters[0].Nodes[0].Name != "a" {
		t.Errorf("read layout = %+v", got)
	}
}

func TestUnmarshalLayoutRejectsMissingDimensions(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"clusters": []}`)); err == nil {
		t.Error("expected error for zero dimensions")
	}
	if _, err := UnmarshalLayout([]byte(`{invalid`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestReadLayoutFileNotFound(t *testing.T) {
	_, err := ReadLayoutFile(filepath.Join(os.TempDir(), "does-not-exist.layout.json"))
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}
