// Package graph holds the cluster panel's graph model and its serialized layout.
//
// # Model
//
//   - [Node]: a named vertex that belongs to exactly one cluster. Identity is the
//     name alone; cluster membership does not take part in equality.
//   - [Edge]: a directed (source, target) pair. Equality is ordered, so a→b and
//     b→a are different edges.
//   - [Cluster]: a named group of nodes that owns a nested topology laying out
//     its own members.
//   - [Graph]: the clusters of one panel render plus identity indexes used to
//     deduplicate nodes and edges.
//
// Clusters are the single source of truth for membership: a cluster's node
// list is its nested topology's member list. [Graph.Nodes] and [Graph.Edges]
// are flattened, read-only views built on demand.
//
// # Layout
//
// [Layout] is the serialization format of a computed panel layout. It is what
// the pipeline caches and what every renderer consumes:
//
//	{
//	  "width": 800, "height": 600, "series_count": 1,
//	  "clusters": [{"name": "c1", "x": 200, "y": -100,
//	                "nodes": [{"name": "a", "cluster": "c1", "x": 200, "y": -100}]}],
//	  "edges": [{"source": "a", "target": "b"}]
//	}
//
// # Concurrency
//
// Graph and Cluster are not safe for concurrent use.
package graph
