// Package theme provides color palettes for dice and domino plots.
//
// A [Palette] is an ordered mapping from category value to color. Order
// matters: for dice plots, the palette order fixes which die-pip position
// each category occupies, so the same palette always yields the same visual
// arrangement.
//
// [Default] returns the palette shipped with the original dice plot package
// (pathology variables in muted reds, pathway groups in greys). Custom themes
// can be loaded from TOML files with [Load].
package theme

import (
	"fmt"
	"math"
	"slices"

	"github.com/maflot/diceplot/pkg/errors"
)

// Palette is an ordered category-to-color mapping.
type Palette struct {
	names  []string
	colors map[string]string
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{colors: make(map[string]string)}
}

// Set assigns a color to a category. New categories are appended to the
// palette order; existing ones keep their position.
func (p *Palette) Set(name, color string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidTheme, "palette entry needs a name")
	}
	if err := errors.ValidateColor(color); err != nil {
		return err
	}
	if _, ok := p.colors[name]; !ok {
		p.names = append(p.names, name)
	}
	p.colors[name] = color
	return nil
}

// Color returns the color for a category.
func (p *Palette) Color(name string) (string, bool) {
	c, ok := p.colors[name]
	return c, ok
}

// Names returns the categories in palette order.
func (p *Palette) Names() []string { return slices.Clone(p.names) }

// Len returns the number of entries.
func (p *Palette) Len() int { return len(p.names) }

// Theme bundles the palettes and figure-wide style settings for a plot.
type Theme struct {
	// CatC colors the die-side categories. Palette order fixes pip positions.
	CatC *Palette

	// Group colors the optional cell frames. Nil group column -> white cells.
	Group *Palette

	// GroupAlpha is the opacity of group-colored cell fills.
	GroupAlpha float64

	// Background is the figure background color.
	Background string
}

// Default returns the original dice plot palette: pathology variables in a
// muted red ramp, pathway groups in grey shades.
func Default() *Theme {
	catC := NewPalette()
	for _, e := range [][2]string{
		{"Amyloid", "#d5cccd"},
		{"NFT", "#cb9992"},
		{"Tangles", "#ad310f"},
		{"Plaq N", "#7e2a20"},
		{"CERAD", "#591c19"},
		{"Braak", "#331008"},
	} {
		_ = catC.Set(e[0], e[1])
	}

	group := NewPalette()
	for _, e := range [][2]string{
		{"BBB-linked", "#333333"},
		{"Cell-proliferation", "#888888"},
		{"Other", "#DDDDDD"},
	} {
		_ = group.Set(e[0], e[1])
	}

	return &Theme{
		CatC:       catC,
		Group:      group,
		GroupAlpha: 0.6,
		Background: "#FFFFFF",
	}
}

// AutoColors generates n visually distinct colors by spacing hues evenly
// around the color wheel. Used when no category palette is supplied.
func AutoColors(n int) []string {
	out := make([]string, n)
	for i := range out {
		h := float64(i) / float64(max(1, n))
		r, g, b := hslToRGB(h, 0.55, 0.5)
		out[i] = fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return out
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	conv := func(t float64) uint8 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 1.0/2:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return uint8(math.Round(v * 255))
	}

	return conv(h + 1.0/3), conv(h), conv(h - 1.0/3)
}
