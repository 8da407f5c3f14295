package pipeline

import (
	"context"

	"github.com/matzehuels/clusterpanel/pkg/errors"
	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/panel"
	"github.com/matzehuels/clusterpanel/pkg/render/html"
	"github.com/matzehuels/clusterpanel/pkg/render/nodelink"
	"github.com/matzehuels/clusterpanel/pkg/render/svg"
)

// Render produces one artifact from l without touching any cache.
func Render(ctx context.Context, l graph.Layout, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg.Render(l, svg.WithOptions(opts.Panel)), nil
	case FormatHTML:
		out, err := html.Render(l, opts.Panel)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
		}
		return out, nil
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, dotOptions(opts))), nil
	case FormatNodelink:
		out, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(l, dotOptions(opts)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graphviz")
		}
		return out, nil
	default:
		return nil, errors.ValidateFormat(format, Formats...)
	}
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{
		Color:    panel.ResolveColor(opts.Panel.Color),
		Detailed: opts.Detailed,
	}
}
