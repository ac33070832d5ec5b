package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maflot/diceplot/pkg/pipeline"
	"github.com/maflot/diceplot/pkg/render"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	catA       string // x-axis column
	catB       string // y-axis column
	catC       string // pip category column
	group      string // optional row grouping column
	themePath  string // TOML theme file
	title      string
	xLabel     string
	yLabel     string
	switchAxis bool
	ordering   string // y-axis ordering: lexical, first-seen, cluster
	backend    string // rendering backend
	formats    string // comma-separated output formats
	output     string // output file or base path
	noCache    bool
	refresh    bool
	show       bool // open the first rendered figure
}

// plotCommand creates the plot command for rendering dice plots.
func (c *CLI) plotCommand() *cobra.Command {
	var opts plotOpts

	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Render a dice plot from a CSV or JSON dataset",
		Long: `Render a dice plot from a tabular dataset.

Each (cat-a, cat-b) pair observed in the data becomes a cell; the cat-c
values present in that pair are drawn as pips arranged like the face of a
die. An optional group column tints each row's cells.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := buildDiceOptions(args[0], &opts)
			if err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), popts, opts.output, opts.noCache, opts.show)
		},
	}

	cmd.Flags().StringVar(&opts.catA, "cat-a", "", "column for the x axis (required)")
	cmd.Flags().StringVar(&opts.catB, "cat-b", "", "column for the y axis (required)")
	cmd.Flags().StringVar(&opts.catC, "cat-c", "", "column for the pip categories (required)")
	cmd.Flags().StringVar(&opts.group, "group", "", "column for row grouping")
	cmd.Flags().StringVar(&opts.themePath, "theme", "", "TOML theme file with category and group colors")
	addSharedPlotFlags(cmd, &opts)

	cmd.MarkFlagRequired("cat-a") //nolint:errcheck // flag exists
	cmd.MarkFlagRequired("cat-b") //nolint:errcheck // flag exists
	cmd.MarkFlagRequired("cat-c") //nolint:errcheck // flag exists

	return cmd
}

// addSharedPlotFlags registers the flags common to plot and domino.
func addSharedPlotFlags(cmd *cobra.Command, opts *plotOpts) {
	cmd.Flags().StringVar(&opts.title, "title", "", "figure title")
	cmd.Flags().StringVar(&opts.xLabel, "x-label", "", "x axis label")
	cmd.Flags().StringVar(&opts.yLabel, "y-label", "", "y axis label")
	cmd.Flags().BoolVar(&opts.switchAxis, "switch-axis", false, "swap the x and y axes")
	cmd.Flags().StringVar(&opts.ordering, "ordering", "", "y-axis ordering: lexical (default), first-seen, cluster")
	cmd.Flags().StringVar(&opts.backend, "backend", "", fmt.Sprintf("rendering backend: %s (default %s)", strings.Join(render.Backends(), ", "), render.DefaultBackend))
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the figure cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached figure exists")
	cmd.Flags().BoolVar(&opts.show, "show", false, "open the rendered figure")
}

// buildDiceOptions maps plot flags onto pipeline options.
func buildDiceOptions(input string, opts *plotOpts) (pipeline.Options, error) {
	th, err := loadTheme(opts.themePath)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Plot:       pipeline.PlotDice,
		Input:      input,
		CatA:       opts.catA,
		CatB:       opts.catB,
		CatC:       opts.catC,
		Group:      opts.group,
		Title:      opts.title,
		XLabel:     opts.xLabel,
		YLabel:     opts.yLabel,
		SwitchAxis: opts.switchAxis,
		Ordering:   opts.ordering,
		Backend:    opts.backend,
		Formats:    parseFormats(opts.formats),
		Refresh:    opts.refresh,
		Theme:      th,
	}, nil
}

// runPlot executes the pipeline and writes the rendered artifacts.
func (c *CLI) runPlot(ctx context.Context, opts pipeline.Options, output string, noCache, show bool) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s plot...", opts.Plot))
	spin.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Rendering failed: %s", err))
		return err
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	paths, err := writeArtifacts(result, output, opts.Input, opts.Formats)
	if err != nil {
		return err
	}

	printSuccess("Generated %s plot", opts.Plot)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.RowCount, result.CacheInfo.AllHit())

	if show && len(paths) > 0 {
		return render.ShowFile(paths[0])
	}
	return nil
}

// writeArtifacts writes each rendered format next to the input (or under the
// output path) and returns the written file paths in format order.
func writeArtifacts(result *pipeline.Result, output, input string, formats []string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, input, format, len(formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the output file path for a format.
// A single format honors output verbatim; multiple formats treat output as a
// base path and append the format extension.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		ext := filepath.Ext(base)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			base = strings.TrimSuffix(base, ext)
		}
	}
	return base + "." + format
}
