// Package svg renders a [graph.Layout] as a standalone SVG document.
//
// Every positioned node becomes a filled circle of radius [NodeRadius]. The
// viewBox is shifted up by half the panel height ("0 -h/2 w h") so that
// topology coordinates around y=0 land in the middle of the panel. A text
// box in the bottom-left corner carries the series count (when enabled) and
// the free text option.
//
//	svg := svg.Render(layout, svg.WithOptions(opts))
//
// Layouts flagged as NoData render a centered "No data" placeholder.
//
// [graph.Layout]: github.com/matzehuels/clusterpanel/pkg/graph.Layout
package svg
