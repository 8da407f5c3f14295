// Package pipeline runs the panel pipeline: ingest → layout → render.
//
// The CLI and the HTTP service both go through a [Runner], so caching,
// logging and observability hooks behave the same on every entry point.
//
// # Stages
//
//  1. Ingest: build the cluster graph from the first data series
//  2. Layout: query every node position into a serializable [graph.Layout]
//  3. Render: produce the requested artifacts (SVG, HTML, JSON, DOT, Graphviz SVG)
//
// Layouts are cached by the hash of the input data, artifacts by the hash of
// the layout they were drawn from.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Panel:   panel.DefaultOptions(),
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// [graph.Layout]: github.com/matzehuels/clusterpanel/pkg/graph.Layout
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clusterpanel/pkg/cache"
	"github.com/matzehuels/clusterpanel/pkg/errors"
	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/ingest"
	"github.com/matzehuels/clusterpanel/pkg/panel"
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatHTML, FormatJSON, FormatDOT, FormatNodelink}

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatNodelink:
		return "image/svg+xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension of an artifact format.
func Extension(format string) string {
	switch format {
	case FormatDOT:
		return ".dot"
	case FormatNodelink:
		return ".nodelink.svg"
	default:
		return "." + format
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration of a pipeline run.
type Options struct {
	// Panel holds the user-facing drawing options.
	Panel panel.Options `json:"options"`

	// Ingest options
	Origins ingest.OriginMode `json:"origins,omitempty"`
	Edges   ingest.EdgePolicy `json:"edges,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // cluster names in DOT labels

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults applies defaults and validates every option.
// Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Panel.SetDefaults()
	if err := o.Panel.Validate(); err != nil {
		return err
	}
	if err := o.ingestOptions().Validate(); err != nil {
		return err
	}
	if o.Origins == "" {
		o.Origins = ingest.OriginFrozen
	}
	if o.Edges == "" {
		o.Edges = ingest.EdgesRequireDestination
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, Formats...); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) ingestOptions() ingest.Options {
	return ingest.Options{Origins: o.Origins, Edges: o.Edges, Logger: o.Logger}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:   o.Panel.Width,
		Height:  o.Panel.Height,
		Origins: string(o.Origins),
		Edges:   string(o.Edges),
	}
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:          format,
		Color:           o.Panel.Color,
		ShowSeriesCount: o.Panel.ShowSeriesCount,
		Text:            o.Panel.Text,
		ShowEdges:       o.Panel.ShowEdges,
		Labels:          o.Panel.Labels,
		Detailed:        o.Detailed,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the ingested graph. It is nil when the layout came from the
	// cache.
	Graph *graph.Graph

	// DataHash is the content hash of the input data.
	DataHash string

	// Layout holds every node position.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	ClusterCount int
	Rows         int
	SkippedRows  int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}
