// Package ingest turns panel input into a laid out cluster graph.
//
// [Build] reads the first series of a [frame.Data], recognizes the source,
// destination, cluster and value columns by exact name, and builds a
// [graph.Graph]: one node per distinct source, one cluster per distinct
// cluster name and one edge per distinct (source, destination) pair.
//
// Clusters are placed when they are created. With [OriginFrozen] (the
// default) a cluster keeps the origin it received at creation even when later
// clusters sort before it; [OriginRecomputed] places every cluster again once
// all rows are read.
package ingest

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clusterpanel/pkg/errors"
	"github.com/matzehuels/clusterpanel/pkg/frame"
	"github.com/matzehuels/clusterpanel/pkg/graph"
)

// Recognized column names.
const (
	ColumnSource      = "source"
	ColumnDestination = "destination"
	ColumnCluster     = "cluster"
	ColumnValue       = "value"
)

// OriginMode controls when cluster origins are computed.
type OriginMode string

const (
	// OriginFrozen fixes a cluster's origin when the cluster is created.
	OriginFrozen OriginMode = "frozen"
	// OriginRecomputed places all clusters after ingestion, using final
	// node extents.
	OriginRecomputed OriginMode = "recomputed"
)

// EdgePolicy controls which rows produce edges.
type EdgePolicy string

const (
	// EdgesRequireDestination omits the edge of a row without destination.
	EdgesRequireDestination EdgePolicy = "require-destination"
	// EdgesAlways builds an edge for every row with a source, targeting an
	// unnamed node when the destination is empty.
	EdgesAlways EdgePolicy = "always"
)

// Options configures [Build].
type Options struct {
	Origins OriginMode
	Edges   EdgePolicy
	Logger  *log.Logger
}

func (o *Options) setDefaults() {
	if o.Origins == "" {
		o.Origins = OriginFrozen
	}
	if o.Edges == "" {
		o.Edges = EdgesRequireDestination
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate rejects unknown modes. Empty values select the defaults.
func (o Options) Validate() error {
	switch o.Origins {
	case "", OriginFrozen, OriginRecomputed:
	default:
		return errors.New(errors.ErrCodeInvalidOptions, "unknown origin mode %q (want %s or %s)", o.Origins, OriginFrozen, OriginRecomputed)
	}
	switch o.Edges {
	case "", EdgesRequireDestination, EdgesAlways:
	default:
		return errors.New(errors.ErrCodeInvalidOptions, "unknown edge policy %q (want %s or %s)", o.Edges, EdgesRequireDestination, EdgesAlways)
	}
	return nil
}

// Row holds the recognized cells of one input row.
type Row struct {
	Source      string
	Destination string
	Cluster     string
	Value       string
}

// Result is the outcome of ingesting one panel input.
type Result struct {
	Graph       *graph.Graph
	SeriesCount int
	Rows        int // rows read from the first series
	Skipped     int // rows without a source
}

// Empty reports whether the input had no series at all.
func (r *Result) Empty() bool { return r.SeriesCount == 0 }

// Build ingests d. Malformed rows are skipped, never reported as errors.
func Build(d frame.Data, opts Options) *Result {
	opts.setDefaults()

	res := &Result{Graph: graph.New(nil), SeriesCount: len(d.Series)}
	series, ok := d.First()
	if !ok {
		return res
	}

	for _, row := range Rows(series) {
		res.Rows++
		if row.Source == "" {
			res.Skipped++
			opts.Logger.Debug("skipping row without source", "row", res.Rows-1)
			continue
		}
		add(res.Graph, row, opts)
	}

	if opts.Origins == OriginRecomputed {
		res.Graph.Relayout()
	}

	opts.Logger.Debug("ingested series",
		"rows", res.Rows,
		"skipped", res.Skipped,
		"clusters", res.Graph.ClusterCount(),
		"nodes", res.Graph.NodeCount(),
		"edges", res.Graph.EdgeCount())
	return res
}

// Rows extracts the recognized columns of f, row by row, up to the length of
// the shortest column.
func Rows(f frame.Frame) []Row {
	src, _ := f.Field(ColumnSource)
	dst, _ := f.Field(ColumnDestination)
	cl, _ := f.Field(ColumnCluster)
	val, _ := f.Field(ColumnValue)

	n := f.Rows()
	rows := make([]Row, n)
	for i := range n {
		rows[i].Source, _ = src.String(i)
		rows[i].Destination, _ = dst.String(i)
		rows[i].Cluster, _ = cl.String(i)
		rows[i].Value, _ = val.String(i)
	}
	return rows
}

func add(g *graph.Graph, row Row, opts Options) {
	c, created := g.EnsureCluster(row.Cluster)
	if created && opts.Origins == OriginFrozen {
		g.FreezeOrigin(c)
	}

	src := graph.NewNode(row.Source, row.Cluster)
	g.AddNode(src)

	if row.Destination == "" && opts.Edges == EdgesRequireDestination {
		return
	}
	g.AddEdge(c.Name, graph.NewEdge(src, graph.NewNode(row.Destination, "")))
}
