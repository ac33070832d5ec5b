// Package svg renders scenes as SVG documents using ajstarks/svgo.
//
// The backend registers itself under the name "svg". SVG figures can be
// saved as .svg directly, or as .png/.pdf via rsvg-convert.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo/float"

	"github.com/maflot/diceplot/pkg/errors"
	"github.com/maflot/diceplot/pkg/render"
)

func init() {
	render.Register(Backend{})
}

// Backend is the SVG rendering backend.
type Backend struct{}

// Name implements render.Backend.
func (Backend) Name() string { return "svg" }

// Render implements render.Backend.
func (Backend) Render(scene render.Scene) (render.Figure, error) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	f := scene.Frame
	canvas.Start(f.Width, f.Height)

	background := scene.Background
	if background == "" {
		background = "#FFFFFF"
	}
	canvas.Rect(0, 0, f.Width, f.Height, "fill:"+background)

	drawRects(canvas, scene)
	drawMarkers(canvas, scene)
	drawAxes(canvas, scene)
	drawTitle(canvas, scene)
	drawLegends(canvas, scene)

	canvas.End()
	return &Figure{data: buf.Bytes()}, nil
}

const (
	fontFamily    = "font-family:sans-serif"
	tickFontSize  = 12.0
	titleFontSize = 16.0
	legendSwatch  = 12.0
	legendSpacing = 18.0
)

func drawRects(canvas *svg.SVG, scene render.Scene) {
	f := scene.Frame
	for _, r := range scene.Rects {
		x1, y1 := f.ToPixel(r.X, r.Y)
		x2, y2 := f.ToPixel(r.X+r.W, r.Y+r.H)
		x, y := min(x1, x2), min(y1, y2)
		w, h := max(x1, x2)-x, max(y1, y2)-y

		style := "fill:none"
		if r.Fill != "" {
			style = fmt.Sprintf("fill:%s;fill-opacity:%.2f", r.Fill, rectAlpha(r))
		}
		if r.Stroke != "" {
			style += fmt.Sprintf(";stroke:%s;stroke-width:%.2f", r.Stroke, r.StrokeWidth)
		}
		canvas.Rect(x, y, w, h, style)
	}
}

func rectAlpha(r render.Rect) float64 {
	if r.Alpha == 0 {
		return 1
	}
	return r.Alpha
}

func drawMarkers(canvas *svg.SVG, scene render.Scene) {
	f := scene.Frame
	for _, m := range scene.Markers {
		px, py := f.ToPixel(m.X, m.Y)
		stroke := m.Stroke
		if stroke == "" {
			stroke = "none"
		}
		style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", m.Fill, stroke)
		canvas.Circle(px, py, m.R, style)
	}
}

func drawAxes(canvas *svg.SVG, scene render.Scene) {
	f := scene.Frame

	// X ticks, rotated 45 degrees like the original.
	tickTop := f.MarginTop + f.PlotHeight() + 8
	for _, tk := range f.XTicks {
		px, _ := f.ToPixel(tk.Pos, f.YMin)
		canvas.TranslateRotate(px, tickTop, 45)
		canvas.Text(0, tickFontSize, tk.Label,
			fmt.Sprintf("%s;font-size:%.0fpx;text-anchor:start", fontFamily, tickFontSize))
		canvas.Gend()
	}

	for _, tk := range f.YTicks {
		_, py := f.ToPixel(f.XMin, tk.Pos)
		canvas.Text(f.MarginLeft-8, py+tickFontSize/3, tk.Label,
			fmt.Sprintf("%s;font-size:%.0fpx;text-anchor:end", fontFamily, tickFontSize))
	}

	centerX := f.MarginLeft + f.PlotWidth()/2
	if f.XLabel != "" {
		canvas.Text(centerX, f.Height-f.MarginBottom/3, f.XLabel,
			fmt.Sprintf("%s;font-size:%.0fpx;text-anchor:middle", fontFamily, tickFontSize+2))
	}
	if f.YLabel != "" {
		centerY := f.MarginTop + f.PlotHeight()/2
		canvas.TranslateRotate(f.MarginLeft/3, centerY, -90)
		canvas.Text(0, 0, f.YLabel,
			fmt.Sprintf("%s;font-size:%.0fpx;text-anchor:middle", fontFamily, tickFontSize+2))
		canvas.Gend()
	}
}

func drawTitle(canvas *svg.SVG, scene render.Scene) {
	f := scene.Frame
	if f.Title == "" {
		return
	}
	canvas.Text(f.MarginLeft+f.PlotWidth()/2, f.MarginTop/2, f.Title,
		fmt.Sprintf("%s;font-size:%.0fpx;font-weight:bold;text-anchor:middle", fontFamily, titleFontSize))
}

func drawLegends(canvas *svg.SVG, scene render.Scene) {
	f := scene.Frame
	x := f.MarginLeft + f.PlotWidth() + 40
	y := f.MarginTop

	for _, legend := range scene.Legends {
		if legend.Title != "" {
			canvas.Text(x, y, legend.Title,
				fmt.Sprintf("%s;font-size:%.0fpx;font-weight:bold", fontFamily, tickFontSize))
			y += legendSpacing
		}
		for _, e := range legend.Entries {
			canvas.Rect(x, y-legendSwatch+2, legendSwatch, legendSwatch,
				fmt.Sprintf("fill:%s;stroke:black;stroke-width:0.5", e.Color))
			canvas.Text(x+legendSwatch+6, y, e.Label,
				fmt.Sprintf("%s;font-size:%.0fpx", fontFamily, tickFontSize))
			y += legendSpacing
		}
		y += legendSpacing
	}

	if scene.Scale != nil {
		drawColorScale(canvas, scene.Scale, x, y)
	}
}

// drawColorScale draws the continuous legend as a stack of interpolated
// slices, avoiding SVG gradient defs for easier downstream conversion.
func drawColorScale(canvas *svg.SVG, cs *render.ColorScale, x, y float64) {
	const (
		barWidth  = 14.0
		barHeight = 120.0
		steps     = 40
	)

	if cs.Title != "" {
		canvas.Text(x, y, cs.Title,
			fmt.Sprintf("%s;font-size:%.0fpx;font-weight:bold", fontFamily, tickFontSize))
		y += legendSpacing
	}

	slice := barHeight / steps
	for i := 0; i < steps; i++ {
		// Top of the bar is the maximum value.
		v := cs.Max - (cs.Max-cs.Min)*float64(i)/float64(steps-1)
		canvas.Rect(x, y+float64(i)*slice, barWidth, slice+0.5, "fill:"+cs.At(v))
	}

	labelStyle := fmt.Sprintf("%s;font-size:%.0fpx", fontFamily, tickFontSize-2)
	canvas.Text(x+barWidth+6, y+8, fmt.Sprintf("%.1f", cs.Max), labelStyle)
	canvas.Text(x+barWidth+6, y+barHeight, fmt.Sprintf("%.1f", cs.Min), labelStyle)
}

// Figure is a rendered SVG document.
type Figure struct {
	data []byte
}

// Format implements render.Figure.
func (*Figure) Format() string { return "svg" }

// WriteTo implements render.Figure.
func (fig *Figure) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(fig.data)
	return int64(n), err
}

// Bytes returns the raw SVG document.
func (fig *Figure) Bytes() []byte { return fig.data }

// Save writes the figure to path. Supported extensions: .svg, .png, .pdf
// (PNG and PDF go through rsvg-convert).
func (fig *Figure) Save(path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	switch render.Ext(path) {
	case "svg":
		return render.WriteFile(fig, path)
	case "png":
		data, err := render.ToPNG(fig.data, 2.0)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "convert to PNG")
		}
		return os.WriteFile(path, data, 0o644)
	case "pdf":
		data, err := render.ToPDF(fig.data)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "convert to PDF")
		}
		return os.WriteFile(path, data, 0o644)
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format: %q (svg backend writes svg, png, pdf)", render.Ext(path))
	}
}

// Show implements render.Figure.
func (fig *Figure) Show() error { return render.ShowTemp(fig) }
