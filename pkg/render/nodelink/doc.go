// Package nodelink exports a panel layout as a Graphviz node-link diagram.
//
// # Overview
//
// [ToDOT] writes every cluster as a "subgraph cluster_<i>" and every node
// with a pinned position taken from the layout, so Graphviz draws the same
// picture the SVG renderer does, plus edges and cluster frames:
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{Color: "#73BF69"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Positions are converted from the panel's y-down canvas to Graphviz points
// (y-up) and rendered with the neato engine, which honours pinned nodes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
