package dice

import (
	"github.com/maflot/diceplot/pkg/dice/ordering"
	"github.com/maflot/diceplot/pkg/theme"
)

// Options configures a dice plot layout.
type Options struct {
	// Group is the optional fourth column coloring cell backgrounds.
	Group string

	// Title is the figure title. Empty means no title.
	Title string

	// XLabel and YLabel override the axis labels, which default to the
	// column names.
	XLabel string
	YLabel string

	// SwitchAxis swaps the roles of the two categorical axes.
	SwitchAxis bool

	// MaxSides caps the number of distinct category levels. Defaults to
	// MaxDiceSides.
	MaxSides int

	// Theme supplies the color maps. Nil (or a theme with an empty
	// category palette) assigns automatic colors to the category levels.
	Theme *theme.Theme

	// Ordering selects the axis-A level ordering strategy.
	Ordering ordering.Strategy
}

// Option mutates Options.
type Option func(*Options)

func WithGroup(column string) Option               { return func(o *Options) { o.Group = column } }
func WithTitle(title string) Option                { return func(o *Options) { o.Title = title } }
func WithXLabel(label string) Option               { return func(o *Options) { o.XLabel = label } }
func WithYLabel(label string) Option               { return func(o *Options) { o.YLabel = label } }
func WithSwitchAxis() Option                       { return func(o *Options) { o.SwitchAxis = true } }
func WithMaxSides(n int) Option                    { return func(o *Options) { o.MaxSides = n } }
func WithTheme(t *theme.Theme) Option              { return func(o *Options) { o.Theme = t } }
func WithOrdering(s ordering.Strategy) Option      { return func(o *Options) { o.Ordering = s } }

func buildOptions(opts []Option) Options {
	o := Options{
		MaxSides: MaxDiceSides,
		Ordering: ordering.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxSides <= 0 || o.MaxSides > MaxDiceSides {
		o.MaxSides = MaxDiceSides
	}
	return o
}
