// Package pipeline provides the core plotting pipeline.
//
// This package implements the complete import → layout → render pipeline
// shared by the CLI and the HTTP server. Centralizing it keeps option
// validation, caching, and logging behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Import: Read a tabular dataset from CSV or JSON
//  2. Layout: Compute the dice or domino plot geometry
//  3. Render: Draw the layout with a rendering backend, per output format
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Plot:    pipeline.PlotDice,
//	    Input:   "data.csv",
//	    CatA:    "CellType",
//	    CatB:    "Pathway",
//	    CatC:    "PathologyVariable",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/dice/ordering"
	"github.com/maflot/diceplot/pkg/errors"
	"github.com/maflot/diceplot/pkg/render"
	"github.com/maflot/diceplot/pkg/theme"
)

// Plot type constants.
const (
	PlotDice   = "dice"
	PlotDomino = "domino"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidPlots is the set of supported plot types.
var ValidPlots = map[string]bool{
	PlotDice:   true,
	PlotDomino: true,
}

// DefaultCacheTTL is how long rendered figures stay cached.
const DefaultCacheTTL = 24 * time.Hour

// Options contains all configuration for the plotting pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Plot selects the plot type: "dice" or "domino".
	Plot string `json:"plot"`

	// Input is the dataset path (.csv or .json). Ignored when Dataset is
	// set directly.
	Input string `json:"input,omitempty"`

	// Dice columns.
	CatA  string `json:"cat_a,omitempty"`
	CatB  string `json:"cat_b,omitempty"`
	CatC  string `json:"cat_c,omitempty"`
	Group string `json:"group,omitempty"`

	// Domino columns. Empty fields take the conventional defaults.
	VarCol      string    `json:"var_col,omitempty"`
	FeatureCol  string    `json:"feature_col,omitempty"`
	CelltypeCol string    `json:"celltype_col,omitempty"`
	ContrastCol string    `json:"contrast_col,omitempty"`
	LogFCCol    string    `json:"logfc_col,omitempty"`
	PValCol     string    `json:"pval_col,omitempty"`
	Contrasts   [2]string `json:"contrasts,omitempty"`

	// Shared layout options.
	Title      string `json:"title,omitempty"`
	XLabel     string `json:"x_label,omitempty"`
	YLabel     string `json:"y_label,omitempty"`
	SwitchAxis bool   `json:"switch_axis,omitempty"`
	Ordering   string `json:"ordering,omitempty"`

	// Render options.
	Backend string   `json:"backend,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Refresh skips cache reads (but still writes).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Dataset *dataset.Table `json:"-"`
	Theme   *theme.Theme   `json:"-"`
	Logger  *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash is the content hash of the imported dataset.
	DatasetHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings carries non-fatal layout findings.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which formats came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount   int
	ImportTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for rendered artifacts.
type CacheInfo struct {
	// Hits maps formats to whether the artifact came from cache.
	Hits map[string]bool
}

// AllHit reports whether every artifact came from cache.
func (c CacheInfo) AllHit() bool {
	if len(c.Hits) == 0 {
		return false
	}
	for _, hit := range c.Hits {
		if !hit {
			return false
		}
	}
	return true
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePlot checks that a plot type is valid.
func ValidatePlot(plot string) error {
	if !ValidPlots[plot] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid plot type: %q (must be one of: dice, domino)", plot)
	}
	return nil
}

// ValidateBackend checks that a rendering backend is registered.
func ValidateBackend(name string) error {
	_, err := render.Get(name)
	return err
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Plot == "" {
		o.Plot = PlotDice
	}
	if err := ValidatePlot(o.Plot); err != nil {
		return err
	}

	if o.Dataset == nil && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidDataset, "input path or dataset is required")
	}

	if o.Plot == PlotDice {
		if o.CatA == "" || o.CatB == "" || o.CatC == "" {
			return errors.New(errors.ErrCodeInvalidColumn,
				"dice plots require cat_a, cat_b, and cat_c column names")
		}
	}

	if _, err := ordering.Parse(o.Ordering); err != nil {
		return err
	}

	if o.Backend == "" {
		o.Backend = render.DefaultBackend
	}
	if err := ValidateBackend(o.Backend); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.Default()
	}

	o.validated = true
	return nil
}
