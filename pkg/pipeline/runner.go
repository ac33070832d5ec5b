package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/maflot/diceplot/pkg/cache"
	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/dice"
	"github.com/maflot/diceplot/pkg/dice/ordering"
	"github.com/maflot/diceplot/pkg/domino"
	"github.com/maflot/diceplot/pkg/errors"
	"github.com/maflot/diceplot/pkg/observability"
	"github.com/maflot/diceplot/pkg/render"
	"github.com/maflot/diceplot/pkg/theme"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete import → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		CacheInfo: CacheInfo{Hits: make(map[string]bool)},
	}

	// Stage 1: Import
	importStart := time.Now()
	tbl, err := r.Import(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ImportTime = time.Since(importStart)
	result.Stats.RowCount = tbl.Len()
	result.DatasetHash = datasetHash(tbl)

	logger.Info("imported dataset",
		"rows", tbl.Len(),
		"columns", len(tbl.Columns()),
		"duration", result.Stats.ImportTime)

	params := opts.cacheParams()

	// Cached artifacts skip layout and render entirely.
	missing := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.FigureKey(result.DatasetHash, cache.FigureKeyOpts{
			Plot: opts.Plot, Backend: opts.Backend, Format: format, Params: params,
		})
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "figure")
				result.Artifacts[format] = data
				result.CacheInfo.Hits[format] = true
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "figure")
		result.CacheInfo.Hits[format] = false
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		logger.Info("all artifacts cached", "formats", opts.Formats)
		return result, nil
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Plot, tbl.Len())
	scene, warnings, err := r.Layout(tbl, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Plot, time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Warnings = warnings
	for _, w := range warnings {
		logger.Warn(w)
	}

	logger.Info("computed layout",
		"plot", opts.Plot,
		"primitives", len(scene.Rects)+len(scene.Markers),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Backend, missing)
	err = r.renderFormats(ctx, scene, opts, missing, result)
	observability.Pipeline().OnRenderComplete(ctx, opts.Backend, missing, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"backend", opts.Backend,
		"formats", missing,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Import reads the dataset from the configured source.
func (r *Runner) Import(ctx context.Context, opts Options) (*dataset.Table, error) {
	if opts.Dataset != nil {
		return opts.Dataset, nil
	}

	start := time.Now()
	observability.Pipeline().OnImportStart(ctx, opts.Input)

	var (
		tbl *dataset.Table
		err error
	)
	switch strings.ToLower(filepath.Ext(opts.Input)) {
	case ".json":
		tbl, err = dataset.ImportJSON(opts.Input)
	default:
		tbl, err = dataset.ImportCSV(opts.Input)
	}

	rows := 0
	if tbl != nil {
		rows = tbl.Len()
	}
	observability.Pipeline().OnImportComplete(ctx, opts.Input, rows, time.Since(start), err)
	return tbl, err
}

// Layout computes the scene for the configured plot type.
func (r *Runner) Layout(tbl *dataset.Table, opts Options) (render.Scene, []string, error) {
	switch opts.Plot {
	case PlotDomino:
		return r.dominoScene(tbl, opts)
	default:
		return r.diceScene(tbl, opts)
	}
}

func (r *Runner) diceScene(tbl *dataset.Table, opts Options) (render.Scene, []string, error) {
	strategy, err := ordering.Parse(opts.Ordering)
	if err != nil {
		return render.Scene{}, nil, err
	}

	diceOpts := []dice.Option{
		dice.WithTitle(opts.Title),
		dice.WithOrdering(strategy),
	}
	if opts.Group != "" {
		diceOpts = append(diceOpts, dice.WithGroup(opts.Group))
	}
	if opts.XLabel != "" {
		diceOpts = append(diceOpts, dice.WithXLabel(opts.XLabel))
	}
	if opts.YLabel != "" {
		diceOpts = append(diceOpts, dice.WithYLabel(opts.YLabel))
	}
	if opts.SwitchAxis {
		diceOpts = append(diceOpts, dice.WithSwitchAxis())
	}
	if opts.Theme != nil {
		diceOpts = append(diceOpts, dice.WithTheme(opts.Theme))
	}

	layout, err := dice.Build(tbl, opts.CatA, opts.CatB, opts.CatC, diceOpts...)
	if err != nil {
		return render.Scene{}, nil, err
	}
	return layout.Scene(), layout.Warnings, nil
}

func (r *Runner) dominoScene(tbl *dataset.Table, opts Options) (render.Scene, []string, error) {
	dominoOpts := []domino.Option{
		domino.WithTitle(opts.Title),
	}
	if opts.VarCol != "" {
		dominoOpts = append(dominoOpts, domino.WithVarColumn(opts.VarCol))
	}
	if opts.FeatureCol != "" {
		dominoOpts = append(dominoOpts, domino.WithFeatureColumn(opts.FeatureCol))
	}
	if opts.CelltypeCol != "" {
		dominoOpts = append(dominoOpts, domino.WithCelltypeColumn(opts.CelltypeCol))
	}
	if opts.ContrastCol != "" {
		dominoOpts = append(dominoOpts, domino.WithContrastColumn(opts.ContrastCol))
	}
	if opts.LogFCCol != "" {
		dominoOpts = append(dominoOpts, domino.WithLogFCColumn(opts.LogFCCol))
	}
	if opts.PValCol != "" {
		dominoOpts = append(dominoOpts, domino.WithPValColumn(opts.PValCol))
	}
	if opts.Contrasts[0] != "" && opts.Contrasts[1] != "" {
		dominoOpts = append(dominoOpts, domino.WithContrasts(opts.Contrasts[0], opts.Contrasts[1]))
	}
	if opts.XLabel != "" {
		dominoOpts = append(dominoOpts, domino.WithXLabel(opts.XLabel))
	}
	if opts.YLabel != "" {
		dominoOpts = append(dominoOpts, domino.WithYLabel(opts.YLabel))
	}
	if opts.SwitchAxis {
		dominoOpts = append(dominoOpts, domino.WithSwitchAxis())
	}

	layout, err := domino.Build(tbl, dominoOpts...)
	if err != nil {
		return render.Scene{}, nil, err
	}
	return layout.Scene(), nil, nil
}

// renderFormats draws the scene once and converts it into each missing
// format, filling result.Artifacts and the cache.
func (r *Runner) renderFormats(ctx context.Context, scene render.Scene, opts Options, formats []string, result *Result) error {
	backend, err := render.Get(opts.Backend)
	if err != nil {
		return err
	}
	fig, err := backend.Render(scene)
	if err != nil {
		return err
	}

	var native bytes.Buffer
	if _, err := fig.WriteTo(&native); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read rendered figure")
	}

	params := opts.cacheParams()
	for _, format := range formats {
		data, err := convert(native.Bytes(), fig.Format(), format)
		if err != nil {
			return err
		}
		result.Artifacts[format] = data

		key := r.Keyer.FigureKey(result.DatasetHash, cache.FigureKeyOpts{
			Plot: opts.Plot, Backend: opts.Backend, Format: format, Params: params,
		})
		if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "figure", len(data))
	}
	return nil
}

// convert transcodes a figure's native bytes into the requested format.
// Only the SVG backend supports more than its native format.
func convert(native []byte, nativeFormat, format string) ([]byte, error) {
	if format == nativeFormat {
		return native, nil
	}
	if nativeFormat != FormatSVG {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"backend produces %s figures, cannot convert to %s", nativeFormat, format)
	}
	switch format {
	case FormatPNG:
		data, err := render.ToPNG(native, 2.0)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to PNG")
		}
		return data, nil
	case FormatPDF:
		data, err := render.ToPDF(native)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to PDF")
		}
		return data, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// datasetHash computes the content hash of a table.
func datasetHash(t *dataset.Table) string {
	var buf bytes.Buffer
	if err := dataset.WriteCSV(t, &buf); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

// cacheParams flattens every option that shapes the rendered figure into
// the cache key parameters.
func (o Options) cacheParams() map[string]string {
	params := map[string]string{
		"cat_a": o.CatA, "cat_b": o.CatB, "cat_c": o.CatC, "group": o.Group,
		"var": o.VarCol, "feature": o.FeatureCol, "celltype": o.CelltypeCol,
		"contrast_col": o.ContrastCol, "logfc": o.LogFCCol, "pval": o.PValCol,
		"contrasts":   o.Contrasts[0] + "," + o.Contrasts[1],
		"title":       o.Title,
		"x_label":     o.XLabel,
		"y_label":     o.YLabel,
		"switch_axis": strconv.FormatBool(o.SwitchAxis),
		"ordering":    o.Ordering,
		"theme":       themeFingerprint(o.Theme),
	}
	return params
}

// themeFingerprint folds the palettes into a stable string so theme changes
// invalidate cached figures.
func themeFingerprint(t *theme.Theme) string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range []*theme.Palette{t.CatC, t.Group} {
		if p == nil {
			sb.WriteString(";")
			continue
		}
		for _, name := range p.Names() {
			c, _ := p.Color(name)
			sb.WriteString(name + "=" + c + ",")
		}
		sb.WriteString(";")
	}
	sb.WriteString(strconv.FormatFloat(t.GroupAlpha, 'f', -1, 64))
	sb.WriteString(t.Background)
	return cache.Hash([]byte(sb.String()))
}
