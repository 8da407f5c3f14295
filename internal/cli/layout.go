package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterpanel/pkg/frame"
	"github.com/matzehuels/clusterpanel/pkg/graph"
	"github.com/matzehuels/clusterpanel/pkg/pipeline"
)

// layoutCommand creates the layout command for computing panel layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		pf      panelFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [data]",
		Short: "Compute the panel layout of a data file",
		Long: `Compute the panel layout of a data file.

The output is a layout.json file (same format as 'render -f json') holding
every cluster origin and node position. It can be browsed with 'inspect'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := pf.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	pf.register(cmd)

	return cmd
}

// runLayout loads the data, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, _, cacheHit, err := runner.LayoutWithCacheInfo(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Clusters), layout.NodeCount(), len(layout.Edges), cacheHit)
	printNewline()
	printNextStep("Inspect", appName+" inspect "+outputPath)

	return nil
}
