package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterpanel/pkg/frame"
	"github.com/matzehuels/clusterpanel/pkg/ingest"
	"github.com/matzehuels/clusterpanel/pkg/panel"
	"github.com/matzehuels/clusterpanel/pkg/pipeline"
)

// panelFlags holds the flags shared by commands that build a layout.
type panelFlags struct {
	optionsFile string
	opts        panel.Options
	origins     string
	edgePolicy  string
}

func (f *panelFlags) register(cmd *cobra.Command) {
	def := panel.DefaultOptions()
	f.opts = def

	cmd.Flags().StringVar(&f.optionsFile, "options", "", "panel options file (TOML)")
	cmd.Flags().StringVar(&f.opts.Color, "color", def.Color, "node color (palette name or hex)")
	cmd.Flags().StringVar(&f.opts.Text, "text", def.Text, "text option shown in the text box")
	cmd.Flags().BoolVar(&f.opts.ShowSeriesCount, "series-count", def.ShowSeriesCount, "show the number of series")
	cmd.Flags().Float64Var(&f.opts.Width, "width", def.Width, "panel width")
	cmd.Flags().Float64Var(&f.opts.Height, "height", def.Height, "panel height")
	cmd.Flags().BoolVar(&f.opts.ShowEdges, "edges", def.ShowEdges, "draw edges between nodes")
	cmd.Flags().BoolVar(&f.opts.Labels, "labels", def.Labels, "draw node names")
	cmd.Flags().StringVar(&f.origins, "origins", string(ingest.OriginFrozen), "cluster origins: frozen, recomputed")
	cmd.Flags().StringVar(&f.edgePolicy, "edge-policy", string(ingest.EdgesRequireDestination), "edges: require-destination, always")
}

// resolve merges the options file with the flags the user set explicitly.
func (f *panelFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	opts := f.opts
	if f.optionsFile != "" {
		loaded, err := panel.LoadOptions(f.optionsFile, panel.DefaultOptions())
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = overrideChanged(cmd, loaded, f.opts)
	}
	return pipeline.Options{
		Panel:   opts,
		Origins: ingest.OriginMode(f.origins),
		Edges:   ingest.EdgePolicy(f.edgePolicy),
	}, nil
}

// overrideChanged copies flag values the user set onto base.
func overrideChanged(cmd *cobra.Command, base, flags panel.Options) panel.Options {
	changed := cmd.Flags().Changed
	if changed("color") {
		base.Color = flags.Color
	}
	if changed("text") {
		base.Text = flags.Text
	}
	if changed("series-count") {
		base.ShowSeriesCount = flags.ShowSeriesCount
	}
	if changed("width") {
		base.Width = flags.Width
	}
	if changed("height") {
		base.Height = flags.Height
	}
	if changed("edges") {
		base.ShowEdges = flags.ShowEdges
	}
	if changed("labels") {
		base.Labels = flags.Labels
	}
	return base
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		pf         panelFlags
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "render [data]",
		Short: "Render panel data to SVG, HTML, JSON, DOT or nodelink",
		Long: `Render panel data to one or more output formats.

The input is a data frame file (JSON, YAML or CSV) with source, destination
and cluster columns. Rows are grouped into clusters, nodes are sorted by name
and placed on the banded grid, and the result is written per format:

  svg       the panel SVG (default)
  html      the panel markup with an inline SVG
  json      the computed layout
  dot       Graphviz DOT with pinned positions
  nodelink  the DOT laid out by Graphviz

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := pf.resolve(cmd)
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formatsStr)
			opts.Detailed = detailed
			opts.Refresh = refresh
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json, dot, nodelink (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include cluster names in DOT labels")
	pf.register(cmd)

	return cmd
}

// runRender loads the data, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := frame.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load data %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Rendering panel...")
	spinner.Start()

	result, err := runner.Execute(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("Rendered panel", "artifacts", len(result.Artifacts), "hash", shortHash(result.DataHash))

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}

	if output != "-" {
		printStats(result.Stats.ClusterCount, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	}
	return nil
}
