package render

// Scene is the backend-neutral primitive list produced by the layout
// engines. Backends consume a Scene and nothing else, so adding an output
// library means writing one adapter against these types.
//
// Geometry is expressed in data units (grid cell 1.0 wide); the Frame maps
// data units to pixels via [Scene.ToPixel].
type Scene struct {
	Frame      Frame
	Rects      []Rect
	Markers    []Marker
	Legends    []Legend
	Scale      *ColorScale
	Background string
}

// Frame describes the figure extents and axis decoration.
type Frame struct {
	// Pixel dimensions of the full figure, margins included.
	Width, Height float64

	// Margins in pixels around the plot area.
	MarginLeft, MarginRight, MarginTop, MarginBottom float64

	// Data-unit ranges of the plot area.
	XMin, XMax float64
	YMin, YMax float64

	// InvertY puts small y values at the top, matching the original's
	// reversed y axis.
	InvertY bool

	Title  string
	XLabel string
	YLabel string
	XTicks []Tick
	YTicks []Tick
}

// Tick is one axis tick: a data-unit position and its label.
type Tick struct {
	Pos   float64
	Label string
}

// Rect is an axis-aligned rectangle (cell outline or group-colored frame).
type Rect struct {
	X, Y, W, H  float64 // data units; (X, Y) is the min corner
	Fill        string  // empty means no fill
	Stroke      string
	StrokeWidth float64 // pixels
	Alpha       float64 // fill opacity, 0..1
}

// Marker is one filled circle (a die pip or a domino dot).
type Marker struct {
	X, Y     float64 // data units, center
	R        float64 // pixels
	Fill     string
	Stroke   string
	Category string // source category value, for tooltips and tests
}

// Legend maps colors to category labels.
type Legend struct {
	Title   string
	Entries []LegendEntry
}

// LegendEntry is one legend swatch.
type LegendEntry struct {
	Label string
	Color string
}

// ColorScale describes a continuous three-stop diverging color legend
// (used by domino plots for log fold change).
type ColorScale struct {
	Title          string
	Low, Mid, High string
	Min, Max       float64
}

// PlotWidth returns the pixel width of the plot area inside the margins.
func (f Frame) PlotWidth() float64 {
	return f.Width - f.MarginLeft - f.MarginRight
}

// PlotHeight returns the pixel height of the plot area inside the margins.
func (f Frame) PlotHeight() float64 {
	return f.Height - f.MarginTop - f.MarginBottom
}

// ToPixel maps a data-unit point to pixel coordinates with (0,0) at the
// top-left of the figure.
func (f Frame) ToPixel(x, y float64) (px, py float64) {
	xSpan := f.XMax - f.XMin
	ySpan := f.YMax - f.YMin
	if xSpan == 0 {
		xSpan = 1
	}
	if ySpan == 0 {
		ySpan = 1
	}

	px = f.MarginLeft + (x-f.XMin)/xSpan*f.PlotWidth()
	if f.InvertY {
		py = f.MarginTop + (y-f.YMin)/ySpan*f.PlotHeight()
	} else {
		py = f.MarginTop + (f.YMax-y)/ySpan*f.PlotHeight()
	}
	return px, py
}

// ScaleX converts a data-unit length along x to pixels.
func (f Frame) ScaleX(w float64) float64 {
	xSpan := f.XMax - f.XMin
	if xSpan == 0 {
		xSpan = 1
	}
	return w / xSpan * f.PlotWidth()
}

// ScaleY converts a data-unit length along y to pixels.
func (f Frame) ScaleY(h float64) float64 {
	ySpan := f.YMax - f.YMin
	if ySpan == 0 {
		ySpan = 1
	}
	return h / ySpan * f.PlotHeight()
}
