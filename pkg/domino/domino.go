// Package domino computes domino plot layouts: genes against cell types,
// with a pair of contrast cells per gene and dots encoding log fold change
// (color) and adjusted p-value (size).
package domino

import (
	"math"
	"strconv"

	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/errors"
	"github.com/maflot/diceplot/pkg/render"
)

// Options configures a domino plot layout.
type Options struct {
	// Column names. VarCol identifies the measured variable, FeatureCol
	// the gene, CelltypeCol the cell type, ContrastCol the contrast.
	VarCol      string
	FeatureCol  string
	CelltypeCol string
	ContrastCol string
	LogFCCol    string
	PValCol     string

	// ContrastLevels are the two contrasts drawn side by side per gene.
	// Rows with other contrast values are ignored.
	ContrastLevels [2]string

	// Genes fixes the gene order. Empty means first-seen order from data.
	Genes []string

	// Dot radius range in pixels; p-values map onto it.
	MinDotSize, MaxDotSize float64

	// SpacingFactor is the x-axis stride between gene blocks.
	SpacingFactor int

	Title      string
	XLabel     string
	YLabel     string
	ScaleTitle string
	SwitchAxis bool

	Low, Mid, High string
	LogFCLimits    [2]float64
}

// Option mutates Options.
type Option func(*Options)

func WithVarColumn(c string) Option      { return func(o *Options) { o.VarCol = c } }
func WithFeatureColumn(c string) Option  { return func(o *Options) { o.FeatureCol = c } }
func WithCelltypeColumn(c string) Option { return func(o *Options) { o.CelltypeCol = c } }
func WithContrastColumn(c string) Option { return func(o *Options) { o.ContrastCol = c } }
func WithLogFCColumn(c string) Option    { return func(o *Options) { o.LogFCCol = c } }
func WithPValColumn(c string) Option     { return func(o *Options) { o.PValCol = c } }
func WithContrasts(first, second string) Option {
	return func(o *Options) { o.ContrastLevels = [2]string{first, second} }
}
func WithGenes(genes ...string) Option { return func(o *Options) { o.Genes = genes } }
func WithLogFCLimits(low, high float64) Option {
	return func(o *Options) { o.LogFCLimits = [2]float64{low, high} }
}
func WithLogFCColors(low, mid, high string) Option {
	return func(o *Options) { o.Low, o.Mid, o.High = low, mid, high }
}
func WithDotSizes(minR, maxR float64) Option {
	return func(o *Options) { o.MinDotSize, o.MaxDotSize = minR, maxR }
}
func WithSpacing(factor int) Option  { return func(o *Options) { o.SpacingFactor = factor } }
func WithTitle(title string) Option  { return func(o *Options) { o.Title = title } }
func WithXLabel(label string) Option { return func(o *Options) { o.XLabel = label } }
func WithYLabel(label string) Option { return func(o *Options) { o.YLabel = label } }
func WithScaleTitle(s string) Option { return func(o *Options) { o.ScaleTitle = s } }
func WithSwitchAxis() Option         { return func(o *Options) { o.SwitchAxis = true } }

func buildOptions(opts []Option) Options {
	o := Options{
		VarCol:         "var",
		FeatureCol:     "gene",
		CelltypeCol:    "CellType",
		ContrastCol:    "Contrast",
		LogFCCol:       "logFC",
		PValCol:        "adjPValue",
		ContrastLevels: [2]string{"Clinical", "Pathological"},
		LogFCLimits:    [2]float64{-1.5, 1.5},
		MinDotSize:     2,
		MaxDotSize:     6,
		SpacingFactor:  3,
		Low:            "#0000FF",
		Mid:            "#FFFFFF",
		High:           "#FF0000",
		ScaleTitle:     "Log2 Fold Change",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.SpacingFactor < 2 {
		o.SpacingFactor = 2
	}
	if o.MaxDotSize < o.MinDotSize {
		o.MaxDotSize = o.MinDotSize
	}
	return o
}

// Dot is one rendered measurement.
type Dot struct {
	Var      string
	Gene     string
	Celltype string
	Contrast string
	X, Y     float64
	R        float64 // pixels
	LogFC    float64
	Color    string
}

// Box is one contrast cell outline.
type Box struct {
	Gene     string
	Celltype string
	Contrast string
	X, Y     float64 // data units, center
}

// Layout is the complete drawable description of a domino plot.
type Layout struct {
	Genes     []string
	Celltypes []string

	Boxes []Box
	Dots  []Dot

	Scale render.ColorScale

	Title      string
	XLabel     string
	YLabel     string
	SwitchAxis bool

	spacing int
}

// Build computes the domino layout for table.
func Build(t *dataset.Table, opts ...Option) (*Layout, error) {
	o := buildOptions(opts)

	colVar, err := t.Column(o.VarCol)
	if err != nil {
		return nil, err
	}
	colGene, err := t.Column(o.FeatureCol)
	if err != nil {
		return nil, err
	}
	colCell, err := t.Column(o.CelltypeCol)
	if err != nil {
		return nil, err
	}
	colContrast, err := t.Column(o.ContrastCol)
	if err != nil {
		return nil, err
	}
	colLogFC, err := t.Column(o.LogFCCol)
	if err != nil {
		return nil, err
	}
	colPVal, err := t.Column(o.PValCol)
	if err != nil {
		return nil, err
	}

	genes := o.Genes
	if len(genes) == 0 {
		if genes, err = t.Levels(o.FeatureCol); err != nil {
			return nil, err
		}
	}
	celltypes, err := t.SortedLevels(o.CelltypeCol)
	if err != nil {
		return nil, err
	}
	geneIndex := indexOf(genes)
	cellIndex := indexOf(celltypes)
	contrastIndex := map[string]int{o.ContrastLevels[0]: 0, o.ContrastLevels[1]: 1}

	scale := render.ColorScale{
		Title: o.ScaleTitle,
		Low:   o.Low, Mid: o.Mid, High: o.High,
		Min: o.LogFCLimits[0], Max: o.LogFCLimits[1],
	}

	layout := &Layout{
		Genes:     genes,
		Celltypes: celltypes,
		Scale:     scale,
		Title:     o.Title,
		XLabel:    firstNonEmpty(o.XLabel, "Genes"),
		YLabel:    firstNonEmpty(o.YLabel, "Cell Types"),
		spacing:   o.SpacingFactor,
	}

	// One box per observed (gene, celltype, contrast).
	type boxKey struct {
		gene, cell string
		contrast   int
	}
	seenBox := make(map[boxKey]bool)
	dotsPerBox := make(map[boxKey][]int) // indices into layout.Dots

	// p-value significance range for dot sizing. Only rows that produce a
	// dot count toward the range, so gene and contrast filters apply here
	// the same way they do below.
	minLogP, maxLogP := math.Inf(1), math.Inf(-1)
	logPs := make([]float64, t.Len())
	for i := 0; i < t.Len(); i++ {
		if _, ok := contrastIndex[colContrast.At(i)]; !ok {
			continue
		}
		if _, ok := geneIndex[colGene.At(i)]; !ok {
			continue
		}
		p, err := parseFloat(colPVal.At(i), o.PValCol)
		if err != nil {
			return nil, err
		}
		lp := -math.Log10(math.Max(p, 1e-300))
		logPs[i] = lp
		minLogP = math.Min(minLogP, lp)
		maxLogP = math.Max(maxLogP, lp)
	}

	for i := 0; i < t.Len(); i++ {
		gene, cell, contrast := colGene.At(i), colCell.At(i), colContrast.At(i)
		ci, ok := contrastIndex[contrast]
		if !ok {
			continue
		}
		gi, ok := geneIndex[gene]
		if !ok {
			continue
		}

		logFC, err := parseFloat(colLogFC.At(i), o.LogFCCol)
		if err != nil {
			return nil, err
		}

		x := float64(gi*o.SpacingFactor + 1 + ci)
		y := float64(cellIndex[cell] + 1)

		key := boxKey{gene, cell, ci}
		if !seenBox[key] {
			seenBox[key] = true
			layout.Boxes = append(layout.Boxes, Box{
				Gene: gene, Celltype: cell, Contrast: o.ContrastLevels[ci],
				X: x, Y: y,
			})
		}

		clamped := math.Max(scale.Min, math.Min(scale.Max, logFC))
		r := o.MinDotSize
		if maxLogP > minLogP {
			r += (o.MaxDotSize - o.MinDotSize) * (logPs[i] - minLogP) / (maxLogP - minLogP)
		}

		layout.Dots = append(layout.Dots, Dot{
			Var: colVar.At(i), Gene: gene, Celltype: cell,
			Contrast: o.ContrastLevels[ci],
			X:        x, Y: y,
			R:     r,
			LogFC: clamped,
			Color: scale.At(clamped),
		})
		dotsPerBox[key] = append(dotsPerBox[key], len(layout.Dots)-1)
	}

	// Spread dots sharing a box vertically so they stay distinguishable.
	for _, idxs := range dotsPerBox {
		n := len(idxs)
		if n < 2 {
			continue
		}
		step := 0.6 / float64(n-1)
		for k, idx := range idxs {
			layout.Dots[idx].Y += -0.3 + step*float64(k)
		}
	}

	if o.SwitchAxis {
		layout.transpose()
	}
	return layout, nil
}

// transpose swaps axis roles in place.
func (l *Layout) transpose() {
	l.SwitchAxis = !l.SwitchAxis
	l.XLabel, l.YLabel = l.YLabel, l.XLabel
	for i := range l.Boxes {
		b := &l.Boxes[i]
		b.X, b.Y = b.Y, b.X
	}
	for i := range l.Dots {
		d := &l.Dots[i]
		d.X, d.Y = d.Y, d.X
	}
}

func parseFloat(s, column string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDataset, err,
			"column %s holds non-numeric value %q", column, s)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func indexOf(levels []string) map[string]int {
	m := make(map[string]int, len(levels))
	for i, v := range levels {
		m[v] = i
	}
	return m
}
