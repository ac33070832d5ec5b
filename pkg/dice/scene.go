package dice

import (
	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/render"
)

// Figure geometry constants, in pixels. Cells are square.
const (
	cellSize     = 50
	marginLeft   = 150
	marginRight  = 300
	marginTop    = 100
	marginBottom = 200

	pipRadius   = 5
	cellPadding = 0.4 // data units from cell center to cell edge
)

// Scene converts the layout to backend-neutral primitives. The y axis is
// inverted so the first B level sits at the top.
func (l *Layout) Scene() render.Scene {
	nx, ny := len(l.XLevels), len(l.YLevels)

	frame := render.Frame{
		Width:        float64(cellSize*nx + marginLeft + marginRight),
		Height:       float64(cellSize*ny + marginTop + marginBottom),
		MarginLeft:   marginLeft,
		MarginRight:  marginRight,
		MarginTop:    marginTop,
		MarginBottom: marginBottom,
		XMin:         0, XMax: float64(nx) + 1,
		YMin: 0, YMax: float64(ny) + 1,
		InvertY: true,
		Title:   l.Title,
		XLabel:  l.XLabel,
		YLabel:  l.YLabel,
	}
	for i, v := range l.XLevels {
		frame.XTicks = append(frame.XTicks, render.Tick{Pos: float64(i + 1), Label: v})
	}
	for i, v := range l.YLevels {
		frame.YTicks = append(frame.YTicks, render.Tick{Pos: float64(i + 1), Label: v})
	}

	scene := render.Scene{Frame: frame, Background: l.Background}

	for _, cell := range l.Cells {
		fill := cell.Fill
		if fill == "" {
			fill = "#FFFFFF"
		}
		scene.Rects = append(scene.Rects, render.Rect{
			X: float64(cell.XNum) - cellPadding,
			Y: float64(cell.YNum) - cellPadding,
			W: 2 * cellPadding, H: 2 * cellPadding,
			Fill:        fill,
			Stroke:      "grey",
			StrokeWidth: 0.5,
			Alpha:       l.GroupAlpha,
		})
	}

	for _, pip := range l.Pips {
		scene.Markers = append(scene.Markers, render.Marker{
			X: pip.X, Y: pip.Y,
			R:        pipRadius,
			Fill:     pip.Color,
			Stroke:   "black",
			Category: pip.Category,
		})
	}

	if len(l.CatLevels) > 0 {
		legend := render.Legend{Title: l.CatLabel}
		for _, level := range l.CatLevels {
			legend.Entries = append(legend.Entries, render.LegendEntry{
				Label: level, Color: l.CatColors[level],
			})
		}
		scene.Legends = append(scene.Legends, legend)
	}

	if len(l.GroupLevels) > 0 {
		legend := render.Legend{Title: l.GroupLabel}
		for _, level := range l.GroupLevels {
			legend.Entries = append(legend.Entries, render.LegendEntry{
				Label: level, Color: l.GroupColors[level],
			})
		}
		scene.Legends = append(scene.Legends, legend)
	}

	return scene
}

// Plot builds the layout and renders it with the current backend.
func Plot(t *dataset.Table, catA, catB, catC string, opts ...Option) (render.Figure, error) {
	layout, err := Build(t, catA, catB, catC, opts...)
	if err != nil {
		return nil, err
	}
	return render.Current().Render(layout.Scene())
}
