// Package raster renders scenes directly to PNG using fogleman/gg, with no
// external converter dependency.
//
// The backend registers itself under the name "raster". Raster figures can
// only be saved as .png.
package raster

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/maflot/diceplot/pkg/errors"
	"github.com/maflot/diceplot/pkg/render"
)

func init() {
	render.Register(Backend{})
}

// Backend is the PNG rendering backend.
type Backend struct{}

// Name implements render.Backend.
func (Backend) Name() string { return "raster" }

var faceCache sync.Map // size float64 -> font.Face

// faceAt returns a Go Regular face at the given point size. The embedded
// font always parses, so errors here indicate a broken toolchain.
func faceAt(size float64) (font.Face, error) {
	if f, ok := faceCache.Load(size); ok {
		return f.(font.Face), nil
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded font")
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size: size, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build font face")
	}
	faceCache.Store(size, face)
	return face, nil
}

const (
	tickFontSize  = 12.0
	titleFontSize = 16.0
	legendSwatch  = 12.0
	legendSpacing = 18.0
)

// Render implements render.Backend.
func (Backend) Render(scene render.Scene) (render.Figure, error) {
	f := scene.Frame
	dc := gg.NewContext(int(f.Width), int(f.Height))

	background := scene.Background
	if background == "" {
		background = "#FFFFFF"
	}
	setColor(dc, background, 1)
	dc.Clear()

	drawRects(dc, scene)
	drawMarkers(dc, scene)
	if err := drawText(dc, scene); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode PNG")
	}
	return &Figure{data: buf.Bytes()}, nil
}

func setColor(dc *gg.Context, c string, alpha float64) {
	r, g, b := render.ParseColor(c)
	dc.SetRGBA(float64(r)/255, float64(g)/255, float64(b)/255, alpha)
}

func drawRects(dc *gg.Context, scene render.Scene) {
	f := scene.Frame
	for _, r := range scene.Rects {
		x1, y1 := f.ToPixel(r.X, r.Y)
		x2, y2 := f.ToPixel(r.X+r.W, r.Y+r.H)
		x, y := min(x1, x2), min(y1, y2)
		w, h := max(x1, x2)-x, max(y1, y2)-y

		dc.DrawRectangle(x, y, w, h)
		if r.Fill != "" {
			alpha := r.Alpha
			if alpha == 0 {
				alpha = 1
			}
			setColor(dc, r.Fill, alpha)
			dc.FillPreserve()
		}
		if r.Stroke != "" {
			setColor(dc, r.Stroke, 1)
			dc.SetLineWidth(max(r.StrokeWidth, 0.5))
			dc.Stroke()
		} else {
			dc.ClearPath()
		}
	}
}

func drawMarkers(dc *gg.Context, scene render.Scene) {
	f := scene.Frame
	for _, m := range scene.Markers {
		px, py := f.ToPixel(m.X, m.Y)
		dc.DrawCircle(px, py, m.R)
		setColor(dc, m.Fill, 1)
		if m.Stroke != "" {
			dc.FillPreserve()
			setColor(dc, m.Stroke, 1)
			dc.SetLineWidth(1)
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}
}

func drawText(dc *gg.Context, scene render.Scene) error {
	f := scene.Frame

	tickFace, err := faceAt(tickFontSize)
	if err != nil {
		return err
	}
	titleFace, err := faceAt(titleFontSize)
	if err != nil {
		return err
	}

	setColor(dc, "#000000", 1)
	dc.SetFontFace(tickFace)

	// X ticks, rotated 45 degrees.
	tickTop := f.MarginTop + f.PlotHeight() + 8
	for _, tk := range f.XTicks {
		px, _ := f.ToPixel(tk.Pos, f.YMin)
		dc.Push()
		dc.RotateAbout(gg.Radians(45), px, tickTop)
		dc.DrawStringAnchored(tk.Label, px, tickTop, 0, 1)
		dc.Pop()
	}

	for _, tk := range f.YTicks {
		_, py := f.ToPixel(f.XMin, tk.Pos)
		dc.DrawStringAnchored(tk.Label, f.MarginLeft-8, py, 1, 0.35)
	}

	centerX := f.MarginLeft + f.PlotWidth()/2
	if f.XLabel != "" {
		dc.DrawStringAnchored(f.XLabel, centerX, f.Height-f.MarginBottom/3, 0.5, 0.5)
	}
	if f.YLabel != "" {
		centerY := f.MarginTop + f.PlotHeight()/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), f.MarginLeft/3, centerY)
		dc.DrawStringAnchored(f.YLabel, f.MarginLeft/3, centerY, 0.5, 0.5)
		dc.Pop()
	}

	if f.Title != "" {
		dc.SetFontFace(titleFace)
		dc.DrawStringAnchored(f.Title, centerX, f.MarginTop/2, 0.5, 0.5)
		dc.SetFontFace(tickFace)
	}

	drawLegends(dc, scene)
	return nil
}

func drawLegends(dc *gg.Context, scene render.Scene) {
	f := scene.Frame
	x := f.MarginLeft + f.PlotWidth() + 40
	y := f.MarginTop

	for _, legend := range scene.Legends {
		if legend.Title != "" {
			setColor(dc, "#000000", 1)
			dc.DrawStringAnchored(legend.Title, x, y, 0, 0.5)
			y += legendSpacing
		}
		for _, e := range legend.Entries {
			dc.DrawRectangle(x, y-legendSwatch/2, legendSwatch, legendSwatch)
			setColor(dc, e.Color, 1)
			dc.FillPreserve()
			setColor(dc, "#000000", 1)
			dc.SetLineWidth(0.5)
			dc.Stroke()
			dc.DrawStringAnchored(e.Label, x+legendSwatch+6, y, 0, 0.5)
			y += legendSpacing
		}
		y += legendSpacing
	}

	if scene.Scale != nil {
		drawColorScale(dc, scene.Scale, x, y)
	}
}

func drawColorScale(dc *gg.Context, cs *render.ColorScale, x, y float64) {
	const (
		barWidth  = 14.0
		barHeight = 120.0
		steps     = 40
	)

	if cs.Title != "" {
		setColor(dc, "#000000", 1)
		dc.DrawStringAnchored(cs.Title, x, y, 0, 0.5)
		y += legendSpacing
	}

	slice := barHeight / steps
	for i := 0; i < steps; i++ {
		v := cs.Max - (cs.Max-cs.Min)*float64(i)/float64(steps-1)
		setColor(dc, cs.At(v), 1)
		dc.DrawRectangle(x, y+float64(i)*slice, barWidth, slice+0.5)
		dc.Fill()
	}

	setColor(dc, "#000000", 1)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", cs.Max), x+barWidth+6, y+4, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", cs.Min), x+barWidth+6, y+barHeight-4, 0, 0.5)
}

// Figure is a rendered PNG image.
type Figure struct {
	data []byte
}

// Format implements render.Figure.
func (*Figure) Format() string { return "png" }

// WriteTo implements render.Figure.
func (fig *Figure) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(fig.data)
	return int64(n), err
}

// Bytes returns the encoded PNG.
func (fig *Figure) Bytes() []byte { return fig.data }

// Save writes the figure to path. Only the .png extension is supported;
// use the svg backend for vector or PDF output.
func (fig *Figure) Save(path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if ext := render.Ext(path); ext != "png" {
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format: %q (raster backend writes png only)", ext)
	}
	return render.WriteFile(fig, path)
}

// Show implements render.Figure.
func (fig *Figure) Show() error { return render.ShowTemp(fig) }
