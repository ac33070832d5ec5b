package cli

import (
	"github.com/spf13/cobra"

	"github.com/maflot/diceplot/pkg/pipeline"
)

// dominoOpts holds the domino-specific command-line flags.
type dominoOpts struct {
	plotOpts

	varCol      string
	geneCol     string
	celltypeCol string
	contrastCol string
	logfcCol    string
	pvalCol     string
	contrastA   string
	contrastB   string
}

// dominoCommand creates the domino command for rendering domino plots.
func (c *CLI) dominoCommand() *cobra.Command {
	var opts dominoOpts

	cmd := &cobra.Command{
		Use:   "domino [file]",
		Short: "Render a domino plot from differential expression results",
		Long: `Render a domino plot comparing two contrasts.

Each gene contributes a pair of adjacent boxes, one per contrast, stacked
by cell type. Dots inside the boxes encode log fold change as color and
adjusted p-value as size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := buildDominoOptions(args[0], &opts)
			if err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), popts, opts.output, opts.noCache, opts.show)
		},
	}

	cmd.Flags().StringVar(&opts.varCol, "var", "", "variable column (default \"var\")")
	cmd.Flags().StringVar(&opts.geneCol, "gene", "", "gene column (default \"gene\")")
	cmd.Flags().StringVar(&opts.celltypeCol, "celltype", "", "cell type column (default \"CellType\")")
	cmd.Flags().StringVar(&opts.contrastCol, "contrast", "", "contrast column (default \"Contrast\")")
	cmd.Flags().StringVar(&opts.logfcCol, "logfc", "", "log fold change column (default \"logFC\")")
	cmd.Flags().StringVar(&opts.pvalCol, "pval", "", "adjusted p-value column (default \"adjPValue\")")
	cmd.Flags().StringVar(&opts.contrastA, "contrast-a", "", "left contrast level")
	cmd.Flags().StringVar(&opts.contrastB, "contrast-b", "", "right contrast level")
	addSharedPlotFlags(cmd, &opts.plotOpts)

	return cmd
}

// buildDominoOptions maps domino flags onto pipeline options.
func buildDominoOptions(input string, opts *dominoOpts) (pipeline.Options, error) {
	return pipeline.Options{
		Plot:        pipeline.PlotDomino,
		Input:       input,
		VarCol:      opts.varCol,
		FeatureCol:  opts.geneCol,
		CelltypeCol: opts.celltypeCol,
		ContrastCol: opts.contrastCol,
		LogFCCol:    opts.logfcCol,
		PValCol:     opts.pvalCol,
		Contrasts:   [2]string{opts.contrastA, opts.contrastB},
		Title:       opts.title,
		XLabel:      opts.xLabel,
		YLabel:      opts.yLabel,
		SwitchAxis:  opts.switchAxis,
		Backend:     opts.backend,
		Formats:     parseFormats(opts.formats),
		Refresh:     opts.refresh,
	}, nil
}
