// Package topology places a named collection on the cluster panel's banded grid.
//
// # Overview
//
// A [Topology] owns a member collection, an origin and a spacing unit. Members
// are sorted by name and their position in that order is mapped to a canvas
// offset with a fixed four-member banding scheme:
//
//	index:  0  1  2  3 | 4  5  6  7 | ...
//	x:      o  o+s o  o+s | o  o+2s o  o+2s
//	y:      o  o  o+s o+s | o  o  o+2s o+2s
//
// Every group of four members forms a 2×2 tile, and each successive tile is
// pushed outward by one more spacing unit on both axes, which gives a diagonal
// cascading grid rather than a plain row/column grid.
//
// # Nesting
//
// The panel uses two levels. The root topology positions clusters and each
// cluster owns a nested topology positioning its own nodes. Cluster placement
// uses [ClusterTransform], which adds the cluster's node [Topology.Extent] to
// the banding offset so that neighbouring clusters do not overlap.
//
// # Ordering
//
// Names compare byte-wise and case-sensitively with one inherited quirk: an
// empty name compares as smaller than anything, including another empty name
// (see [CompareNames]). The resulting order is not total, so positions of
// members with empty names depend on insertion order. Sorting is stable and
// therefore deterministic for a given insertion order.
//
// # Missing Members
//
// Lookups of members that are not part of the collection report false along
// with the [Missing] sentinel (−1). Callers must check the boolean; −1 is a
// legitimate coordinate.
//
// # Concurrency
//
// A Topology is not safe for concurrent use. [Topology.Sorted] caches its
// result, so even read-only queries mutate internal state.
package topology
