package svg

import (
	"strings"
	"testing"

	"github.com/maflot/diceplot/pkg/render"
)

func testScene() render.Scene {
	return render.Scene{
		Frame: render.Frame{
			Width: 400, Height: 300,
			MarginLeft: 50, MarginRight: 100, MarginTop: 40, MarginBottom: 60,
			XMin: 0.5, XMax: 2.5, YMin: 0.5, YMax: 2.5,
			InvertY: true,
			Title:   "Test Plot",
			XLabel:  "CellType",
			YLabel:  "Pathway",
			XTicks:  []render.Tick{{Pos: 1, Label: "Astro"}, {Pos: 2, Label: "Micro"}},
			YTicks:  []render.Tick{{Pos: 1, Label: "Apoptosis"}},
		},
		Rects: []render.Rect{
			{X: 0.6, Y: 0.6, W: 0.8, H: 0.8, Fill: "#ad310f", Stroke: "grey", StrokeWidth: 0.5, Alpha: 0.6},
		},
		Markers: []render.Marker{
			{X: 1, Y: 1, R: 5, Fill: "#331008", Category: "Braak"},
		},
		Legends: []render.Legend{
			{Title: "Variables", Entries: []render.LegendEntry{{Label: "Braak", Color: "#331008"}}},
		},
		Background: "#FFFFFF",
	}
}

func TestRenderContainsElements(t *testing.T) {
	fig, err := Backend{}.Render(testScene())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	svgFig, ok := fig.(*Figure)
	if !ok {
		t.Fatalf("Render() returned %T, want *Figure", fig)
	}
	out := string(svgFig.Bytes())

	for _, want := range []string{
		"<svg",
		"</svg>",
		"Test Plot",
		"CellType",
		"Pathway",
		"Astro",
		"Micro",
		"Apoptosis",
		"Braak",
		"#ad310f",
		"fill-opacity:0.60",
		"<circle",
		"rotate(45)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered SVG missing %q", want)
		}
	}
}

func TestRenderColorScale(t *testing.T) {
	scene := testScene()
	scene.Scale = &render.ColorScale{
		Title: "logFC",
		Low:   "#0000FF", Mid: "#FFFFFF", High: "#FF0000",
		Min: -2, Max: 2,
	}

	fig, err := Backend{}.Render(scene)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(fig.(*Figure).Bytes())

	for _, want := range []string{"logFC", "2.0", "-2.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered SVG missing %q", want)
		}
	}
}

func TestFigureFormat(t *testing.T) {
	var fig Figure
	if got := fig.Format(); got != "svg" {
		t.Errorf("Format() = %q, want svg", got)
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	fig := &Figure{data: []byte("<svg/>")}
	if err := fig.Save(t.TempDir() + "/out.bmp"); err == nil {
		t.Fatal("Save() with .bmp extension should fail")
	}
}

func TestSaveSVG(t *testing.T) {
	fig, err := Backend{}.Render(testScene())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	path := t.TempDir() + "/out.svg"
	if err := fig.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestBackendRegistered(t *testing.T) {
	if _, err := render.Get("svg"); err != nil {
		t.Fatalf("svg backend not registered: %v", err)
	}
}
