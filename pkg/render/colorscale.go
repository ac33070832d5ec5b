package render

import (
	"fmt"
	"strings"
)

// At returns the scale color for value v, clamped to [Min, Max]. Values below
// the midpoint interpolate Low..Mid, values above interpolate Mid..High.
func (cs ColorScale) At(v float64) string {
	if cs.Max <= cs.Min {
		return cs.Mid
	}
	if v < cs.Min {
		v = cs.Min
	}
	if v > cs.Max {
		v = cs.Max
	}

	mid := (cs.Min + cs.Max) / 2
	if v < mid {
		return LerpColor(cs.Low, cs.Mid, (v-cs.Min)/(mid-cs.Min))
	}
	return LerpColor(cs.Mid, cs.High, (v-mid)/(cs.Max-mid))
}

// LerpColor linearly interpolates two colors in RGB space. t is clamped to
// [0, 1].
func LerpColor(a, b string, t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	ar, ag, ab := parseColor(a)
	br, bg, bb := parseColor(b)

	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(ar, br), lerp(ag, bg), lerp(ab, bb))
}

// ParseColor resolves a hex or basic named color to RGB components.
// Unparseable input maps to white; validation happens earlier in the theme
// layer.
func ParseColor(c string) (r, g, b uint8) {
	return parseColor(c)
}

// cssColors maps the few color names the original palettes use to hex.
var cssColors = map[string]string{
	"white": "#ffffff", "black": "#000000",
	"grey": "#808080", "gray": "#808080",
	"red": "#ff0000", "blue": "#0000ff", "green": "#008000",
	"yellow": "#ffff00", "orange": "#ffa500", "purple": "#800080",
}

// parseColor parses a hex or basic named color. Unparseable input maps to
// white; validation happens earlier in the theme layer.
func parseColor(c string) (r, g, b uint8) {
	if hex, ok := cssColors[strings.ToLower(c)]; ok {
		c = hex
	}
	if !strings.HasPrefix(c, "#") {
		return 255, 255, 255
	}
	h := c[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) < 6 {
		return 255, 255, 255
	}
	var rv, gv, bv uint8
	if _, err := fmt.Sscanf(h[:6], "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 255, 255, 255
	}
	return rv, gv, bv
}
