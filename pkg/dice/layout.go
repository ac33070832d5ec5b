// Package dice computes dice plot layouts: a categorical grid where each
// cell shows a die-like icon whose pips encode which levels of a third
// category are present, optionally colored by a fourth group column.
//
// The layout engine is pure data transformation. It consumes a
// dataset.Table and emits a Layout of drawable geometry which converts to a
// backend-neutral render.Scene; actual drawing is delegated to whichever
// backend is registered with pkg/render.
package dice

import (
	"fmt"

	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/dice/ordering"
	"github.com/maflot/diceplot/pkg/errors"
	"github.com/maflot/diceplot/pkg/theme"
)

// Cell is one observed (A, B) grid position.
type Cell struct {
	A, B       string
	XNum, YNum int // 1-based grid coordinates after axis switching
	Group      string
	Fill       string // resolved fill color; empty means white
}

// Pip is one die-face mark for a category level present in a cell.
type Pip struct {
	A, B     string
	Category string
	X, Y     float64 // data units, cell center plus canonical offset
	Color    string
}

// Layout is the complete drawable description of a dice plot.
type Layout struct {
	XLevels []string
	YLevels []string

	// CatLevels is the category level order; the index of a level is its
	// pip position index, identical in every cell.
	CatLevels []string
	CatColors map[string]string

	GroupLevels []string
	GroupColors map[string]string
	GroupAlpha  float64

	Cells []Cell
	Pips  []Pip

	Title      string
	XLabel     string
	YLabel     string
	CatLabel   string
	GroupLabel string
	Background string

	// Warnings carries non-fatal data quality findings, such as a B level
	// mapped to more than one group.
	Warnings []string
}

// Build computes the dice plot layout for table. catA and catB name the two
// axis columns, catC the column mapped to die pips.
func Build(t *dataset.Table, catA, catB, catC string, opts ...Option) (*Layout, error) {
	o := buildOptions(opts)

	colA, err := t.Column(catA)
	if err != nil {
		return nil, err
	}
	colB, err := t.Column(catB)
	if err != nil {
		return nil, err
	}
	colC, err := t.Column(catC)
	if err != nil {
		return nil, err
	}
	var colG dataset.Column
	hasGroup := o.Group != ""
	if hasGroup {
		if colG, err = t.Column(o.Group); err != nil {
			return nil, err
		}
	}

	catLevels, catColors, err := resolveCatColors(t, catC, o)
	if err != nil {
		return nil, err
	}
	catIndex := indexOf(catLevels)
	offsets := pipOffsets[len(catLevels)]

	layout := &Layout{
		CatLevels:  catLevels,
		CatColors:  catColors,
		GroupAlpha: 0.6,
		Background: "#FFFFFF",
		Title:      o.Title,
	}
	if o.Theme != nil {
		if o.Theme.GroupAlpha > 0 {
			layout.GroupAlpha = o.Theme.GroupAlpha
		}
		if o.Theme.Background != "" {
			layout.Background = o.Theme.Background
		}
	}

	aLevels, err := orderALevels(t, colA, colB, colC, o)
	if err != nil {
		return nil, err
	}
	bLevels, err := t.SortedLevels(catB)
	if err != nil {
		return nil, err
	}
	aIndex, bIndex := indexOf(aLevels), indexOf(bLevels)

	groupLevels, groupColors, err := resolveGroupColors(t, hasGroup, o)
	if err != nil {
		return nil, err
	}
	layout.GroupLevels = groupLevels
	layout.GroupColors = groupColors

	// Cells come from observed (A, B) pairs in first-seen order; absent
	// combinations draw nothing.
	type pairKey struct{ a, b string }
	seenCell := make(map[pairKey]bool)
	seenPip := make(map[[3]string]bool)
	groupPerB := make(map[string]map[string]bool)

	for i := 0; i < t.Len(); i++ {
		a, b, c := colA.At(i), colB.At(i), colC.At(i)

		if _, ok := catIndex[c]; !ok {
			// Category palettes are closed: a data value without a color
			// has no stable pip position either.
			return nil, errors.New(errors.ErrCodeMissingColor,
				"no color configured for %s value %q", catC, c)
		}

		group := ""
		if hasGroup {
			group = colG.At(i)
			if groupPerB[b] == nil {
				groupPerB[b] = make(map[string]bool)
			}
			groupPerB[b][group] = true
		}

		key := pairKey{a, b}
		if !seenCell[key] {
			seenCell[key] = true
			cell := Cell{
				A: a, B: b,
				XNum: aIndex[a] + 1, YNum: bIndex[b] + 1,
				Group: group,
			}
			if hasGroup {
				cell.Fill = groupColors[group]
			}
			layout.Cells = append(layout.Cells, cell)
		}

		pk := [3]string{a, b, c}
		if !seenPip[pk] {
			seenPip[pk] = true
			off := offsets[catIndex[c]]
			layout.Pips = append(layout.Pips, Pip{
				A: a, B: b, Category: c,
				X:     float64(aIndex[a]+1) + off[0],
				Y:     float64(bIndex[b]+1) + off[1],
				Color: catColors[c],
			})
		}
	}

	for _, b := range bLevels {
		if len(groupPerB[b]) > 1 {
			layout.Warnings = append(layout.Warnings,
				fmt.Sprintf("%s %q is assigned to multiple groups", catB, b))
		}
	}

	layout.XLevels, layout.YLevels = aLevels, bLevels
	layout.XLabel, layout.YLabel = catA, catB
	layout.CatLabel, layout.GroupLabel = catC, o.Group
	if o.XLabel != "" {
		layout.XLabel = o.XLabel
	}
	if o.YLabel != "" {
		layout.YLabel = o.YLabel
	}

	if o.SwitchAxis {
		layout.transpose()
	}
	return layout, nil
}

// transpose swaps the axis roles in place. Cell contents are unchanged.
func (l *Layout) transpose() {
	l.XLevels, l.YLevels = l.YLevels, l.XLevels
	l.XLabel, l.YLabel = l.YLabel, l.XLabel
	for i := range l.Cells {
		c := &l.Cells[i]
		c.XNum, c.YNum = c.YNum, c.XNum
	}
	for i := range l.Pips {
		p := &l.Pips[i]
		p.X, p.Y = p.Y, p.X
	}
}

// resolveCatColors fixes the category level order and color map. A
// non-empty theme palette is authoritative: its key order drives pip
// positions and every data value must appear in it. Without a palette,
// levels are the sorted distinct data values with automatic colors.
func resolveCatColors(t *dataset.Table, catC string, o Options) ([]string, map[string]string, error) {
	var levels []string
	colors := make(map[string]string)

	if o.Theme != nil && o.Theme.CatC != nil && o.Theme.CatC.Len() > 0 {
		levels = o.Theme.CatC.Names()
		for _, name := range levels {
			c, _ := o.Theme.CatC.Color(name)
			colors[name] = c
		}
	} else {
		var err error
		if levels, err = t.SortedLevels(catC); err != nil {
			return nil, nil, err
		}
		for i, c := range theme.AutoColors(len(levels)) {
			colors[levels[i]] = c
		}
	}

	if len(levels) > o.MaxSides {
		return nil, nil, errors.New(errors.ErrCodeLayoutOverflow,
			"%d category levels exceed the maximum of %d dice sides", len(levels), o.MaxSides)
	}
	return levels, colors, nil
}

// resolveGroupColors maps group levels to fill colors. Levels missing from
// a configured group palette fall back to white, matching the documented
// plain-cell default. Without a group palette, groups get automatic colors.
func resolveGroupColors(t *dataset.Table, hasGroup bool, o Options) ([]string, map[string]string, error) {
	if !hasGroup {
		return nil, nil, nil
	}

	levels, err := t.SortedLevels(o.Group)
	if err != nil {
		return nil, nil, err
	}
	colors := make(map[string]string, len(levels))

	if o.Theme != nil && o.Theme.Group != nil && o.Theme.Group.Len() > 0 {
		for _, g := range levels {
			if c, ok := o.Theme.Group.Color(g); ok {
				colors[g] = c
			} else {
				colors[g] = "#FFFFFF"
			}
		}
		return levels, colors, nil
	}

	for i, c := range theme.AutoColors(len(levels)) {
		colors[levels[i]] = c
	}
	return levels, colors, nil
}

// orderALevels applies the configured ordering strategy to the axis-A
// levels. The cluster strategy profiles each A level by its observed
// (B, C) combinations.
func orderALevels(t *dataset.Table, colA, colB, colC dataset.Column, o Options) ([]string, error) {
	levels, err := t.Levels(colA.Name())
	if err != nil {
		return nil, err
	}

	var profiles map[string][]string
	if o.Ordering == ordering.Cluster {
		profiles = make(map[string][]string, len(levels))
		seen := make(map[[2]string]bool)
		for i := 0; i < t.Len(); i++ {
			a := colA.At(i)
			key := [2]string{a, colB.At(i) + "_" + colC.At(i)}
			if !seen[key] {
				seen[key] = true
				profiles[a] = append(profiles[a], key[1])
			}
		}
	}
	return o.Ordering.Apply(levels, profiles)
}

func indexOf(levels []string) map[string]int {
	m := make(map[string]int, len(levels))
	for i, v := range levels {
		m[v] = i
	}
	return m
}
