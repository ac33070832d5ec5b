package domino

import (
	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/render"
)

// Figure geometry in pixels.
const (
	figWidth  = 500
	figHeight = 400

	marginLeft   = 100
	marginRight  = 160
	marginTop    = 60
	marginBottom = 90

	boxPadding = 0.4
)

// Scene converts the layout to backend-neutral primitives.
func (l *Layout) Scene() render.Scene {
	geneTicks := make([]render.Tick, len(l.Genes))
	for i, g := range l.Genes {
		// Tick between the two contrast cells of the gene block.
		geneTicks[i] = render.Tick{Pos: float64(i*l.spacing) + 1.5, Label: g}
	}
	cellTicks := make([]render.Tick, len(l.Celltypes))
	for i, c := range l.Celltypes {
		cellTicks[i] = render.Tick{Pos: float64(i + 1), Label: c}
	}

	geneMax := float64(len(l.Genes)*l.spacing) + 2
	cellMax := float64(len(l.Celltypes)) + 1

	frame := render.Frame{
		Width:        figWidth,
		Height:       figHeight,
		MarginLeft:   marginLeft,
		MarginRight:  marginRight,
		MarginTop:    marginTop,
		MarginBottom: marginBottom,
		InvertY:      true,
		Title:        l.Title,
		XLabel:       l.XLabel,
		YLabel:       l.YLabel,
	}
	if l.SwitchAxis {
		frame.XMin, frame.XMax = 0, cellMax
		frame.YMin, frame.YMax = 0, geneMax
		frame.XTicks, frame.YTicks = cellTicks, geneTicks
	} else {
		frame.XMin, frame.XMax = 0, geneMax
		frame.YMin, frame.YMax = 0, cellMax
		frame.XTicks, frame.YTicks = geneTicks, cellTicks
	}

	scene := render.Scene{
		Frame:      frame,
		Background: "#FFFFFF",
		Scale:      &l.Scale,
	}

	for _, box := range l.Boxes {
		scene.Rects = append(scene.Rects, render.Rect{
			X: box.X - boxPadding, Y: box.Y - boxPadding,
			W: 2 * boxPadding, H: 2 * boxPadding,
			Fill:        "#FFFFFF",
			Stroke:      "grey",
			StrokeWidth: 0.5,
			Alpha:       0.5,
		})
	}

	for _, dot := range l.Dots {
		scene.Markers = append(scene.Markers, render.Marker{
			X: dot.X, Y: dot.Y,
			R:        dot.R,
			Fill:     dot.Color,
			Stroke:   "black",
			Category: dot.Var,
		})
	}

	return scene
}

// Plot builds the layout and renders it with the current backend.
func Plot(t *dataset.Table, opts ...Option) (render.Figure, error) {
	layout, err := Build(t, opts...)
	if err != nil {
		return nil, err
	}
	return render.Current().Render(layout.Scene())
}
