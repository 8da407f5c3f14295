package graph

import (
	"slices"

	"github.com/matzehuels/clusterpanel/pkg/topology"
)

// =============================================================================
// Node
// =============================================================================

// Node is a vertex of the panel graph.
type Node struct {
	Name    string // identity and sort key
	Cluster string // name of the owning cluster
}

// NewNode creates a node. Empty names are allowed.
func NewNode(name, cluster string) Node {
	return Node{Name: name, Cluster: cluster}
}

// Key returns the node name.
func (n Node) Key() string { return n.Name }

// Equals reports whether n and o have the same name.
func (n Node) Equals(o Node) bool { return n.Name == o.Name }

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connection between two nodes.
type Edge struct {
	Source Node
	Target Node
}

// NewEdge creates an edge from src to dst.
func NewEdge(src, dst Node) Edge {
	return Edge{Source: src, Target: dst}
}

// Equals reports whether both endpoints match in the same order.
func (e Edge) Equals(o Edge) bool {
	return e.Source.Equals(o.Source) && e.Target.Equals(o.Target)
}

// Key returns the identity of e as an ordered name pair.
func (e Edge) Key() EdgeKey { return EdgeKey{e.Source.Name, e.Target.Name} }

// EdgeKey identifies an edge by its endpoint names.
type EdgeKey struct {
	Source, Target string
}

// =============================================================================
// Cluster
// =============================================================================

// Cluster is a named group of nodes with its own node topology.
type Cluster struct {
	Name     string
	Topology *topology.Topology[Node]
	edges    []Edge
}

// NewCluster creates an empty cluster whose nodes are laid out from the
// origin with [topology.NestedSpacing].
func NewCluster(name string) *Cluster {
	return &Cluster{
		Name:     name,
		Topology: topology.New[Node](topology.Point{}, topology.NestedSpacing),
	}
}

// Key returns the cluster name.
func (c *Cluster) Key() string { return c.Name }

// Extent returns the spread of the cluster's nodes relative to its origin.
func (c *Cluster) Extent() topology.Point { return c.Topology.Extent() }

// Origin returns the canvas origin of the cluster's node grid.
func (c *Cluster) Origin() topology.Point { return c.Topology.Origin() }

// Nodes returns the cluster's nodes in insertion order.
func (c *Cluster) Nodes() []Node { return c.Topology.Members() }

// Edges returns the edges attached to the cluster in insertion order.
func (c *Cluster) Edges() []Edge { return slices.Clone(c.edges) }

// Position returns the canvas position of n inside the cluster.
func (c *Cluster) Position(n Node) (topology.Point, bool) {
	return c.Topology.Transform(n)
}

// =============================================================================
// Graph
// =============================================================================

// Graph is the set of clusters of one panel render.
type Graph struct {
	root     *topology.Topology[*Cluster]
	clusters map[string]*Cluster
	order    []*Cluster
	nodes    map[string]*Cluster
	edges    map[EdgeKey]struct{}
}

// New creates an empty graph whose clusters are placed by root. A nil root
// uses [topology.DefaultOrigin] and [topology.DefaultSpacing].
func New(root *topology.Topology[*Cluster]) *Graph {
	if root == nil {
		root = topology.New[*Cluster](topology.DefaultOrigin, topology.DefaultSpacing)
	}
	return &Graph{
		root:     root,
		clusters: make(map[string]*Cluster),
		nodes:    make(map[string]*Cluster),
		edges:    make(map[EdgeKey]struct{}),
	}
}

// Root returns the cluster-level topology.
func (g *Graph) Root() *topology.Topology[*Cluster] { return g.root }

// Cluster returns the cluster called name.
func (g *Graph) Cluster(name string) (*Cluster, bool) {
	c, ok := g.clusters[name]
	return c, ok
}

// EnsureCluster returns the cluster called name, creating and registering it
// with the root topology when it does not exist yet. The boolean reports
// whether the cluster was created.
func (g *Graph) EnsureCluster(name string) (*Cluster, bool) {
	if c, ok := g.clusters[name]; ok {
		return c, false
	}
	c := NewCluster(name)
	g.clusters[name] = c
	g.order = append(g.order, c)
	g.root.Add(c)
	return c, true
}

// Clusters returns the clusters in creation order.
func (g *Graph) Clusters() []*Cluster { return slices.Clone(g.order) }

// AddNode adds n to its cluster, creating the cluster if needed. A node whose
// name is already known anywhere in the graph is ignored and false is
// returned.
func (g *Graph) AddNode(n Node) bool {
	if _, ok := g.nodes[n.Name]; ok {
		return false
	}
	c, _ := g.EnsureCluster(n.Cluster)
	c.Topology.Add(n)
	g.nodes[n.Name] = c
	return true
}

// AddEdge attaches e to the cluster called cluster unless an equal edge
// already exists. The cluster is created if needed.
func (g *Graph) AddEdge(cluster string, e Edge) bool {
	if _, ok := g.edges[e.Key()]; ok {
		return false
	}
	c, _ := g.EnsureCluster(cluster)
	c.edges = append(c.edges, e)
	g.edges[e.Key()] = struct{}{}
	return true
}

// HasNode reports whether a node called name exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// HasEdge reports whether an edge equal to e exists.
func (g *Graph) HasEdge(e Edge) bool {
	_, ok := g.edges[e.Key()]
	return ok
}

// NodeCluster returns the cluster that owns the node called name.
func (g *Graph) NodeCluster(name string) (*Cluster, bool) {
	c, ok := g.nodes[name]
	return c, ok
}

// Nodes returns all nodes, cluster by cluster in creation order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, c := range g.order {
		out = append(out, c.Topology.Members()...)
	}
	return out
}

// Edges returns all edges, cluster by cluster in creation order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, c := range g.order {
		out = append(out, c.edges...)
	}
	return out
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ClusterCount returns the number of clusters.
func (g *Graph) ClusterCount() int { return len(g.order) }

// FreezeOrigin fixes the node grid origin of c from its current position in
// the root topology. Later changes to the root are not reflected until the
// origin is set again.
func (g *Graph) FreezeOrigin(c *Cluster) {
	if p, ok := topology.ClusterTransform(g.root, c); ok {
		c.Topology.SetOrigin(p)
	}
}

// Relayout recomputes every cluster origin in two phases: node topologies are
// complete before any cluster is placed, so each placement sees final
// extents.
func (g *Graph) Relayout() {
	placements := make([]topology.Point, len(g.order))
	for i, c := range g.order {
		p, _ := topology.ClusterTransform(g.root, c)
		placements[i] = p
	}
	for i, c := range g.order {
		c.Topology.SetOrigin(placements[i])
	}
}
