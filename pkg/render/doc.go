// Package render groups the output formats of a laid out panel.
//
// # Overview
//
// Renderers consume a [graph.Layout], never the graph it was computed from,
// so a layout can be cached or read back from JSON and drawn again:
//
//   - [svg]: the panel drawing as a standalone SVG document
//   - [html]: the embeddable panel markup (wrapper div, SVG, text box)
//   - [nodelink]: Graphviz DOT export with pinned positions
//
// Typical use:
//
//	l := graph.BuildLayout(g, 800, 600, seriesCount, logger)
//	doc := svg.Render(l, svg.WithOptions(opts))
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//
// [graph.Layout]: github.com/matzehuels/clusterpanel/pkg/graph.Layout
// [svg]: github.com/matzehuels/clusterpanel/pkg/render/svg
// [html]: github.com/matzehuels/clusterpanel/pkg/render/html
// [nodelink]: github.com/matzehuels/clusterpanel/pkg/render/nodelink
package render
