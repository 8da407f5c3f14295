// Package pkg provides the core libraries of clusterpanel.
//
// # Overview
//
// Clusterpanel turns tabular panel data into a cluster layout and renders it
// the way a dashboard panel does. The pkg directory is organized into:
//
//  1. [topology] - generic sorted member sets with the banded placement rule
//  2. [graph] - nodes, edges, clusters and the serializable layout
//  3. [frame], [ingest] - panel data frames and their conversion to a graph
//  4. [panel], [render] - panel options and the SVG, HTML and DOT renderers
//  5. [pipeline] - orchestration (ingest → layout → render) with caching
//  6. [cache], [observability], [errors], [buildinfo] - infrastructure
//
// # Data flow
//
//	data frame (JSON, YAML, CSV)
//	         ↓
//	    [ingest] package (rows → nodes, edges, clusters)
//	         ↓
//	    [graph] package (sorted clusters, banded positions)
//	         ↓
//	    [render] packages (SVG, HTML, DOT, nodelink)
//
// # Quick Start
//
//	data, _ := frame.ReadFile("panel.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, data, pipeline.Options{
//	    Panel:   panel.Options{Text: "hello", ShowSeriesCount: true},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("panel.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
package pkg
