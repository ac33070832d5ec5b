package domino

import (
	"math"
	"testing"

	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/errors"
)

var dominoColumns = []string{"var", "gene", "CellType", "Contrast", "logFC", "adjPValue"}

func buildTable(t *testing.T, rows ...[]string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(dominoColumns)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	for _, row := range rows {
		if err := tbl.Append(row...); err != nil {
			t.Fatalf("Append(%v) error = %v", row, err)
		}
	}
	return tbl
}

func TestBuildGeometry(t *testing.T) {
	tbl := buildTable(t,
		[]string{"v1", "GeneA", "Astro", "Clinical", "1.0", "0.01"},
		[]string{"v2", "GeneA", "Astro", "Pathological", "-1.0", "0.02"},
		[]string{"v3", "GeneB", "Astro", "Clinical", "0.5", "0.03"},
	)

	layout, err := Build(tbl)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(layout.Boxes) != 3 {
		t.Fatalf("got %d boxes, want 3", len(layout.Boxes))
	}

	// Default spacing factor 3: GeneA contrasts at x=1 and x=2, GeneB
	// first contrast at x=4.
	wantX := map[string]float64{"v1": 1, "v2": 2, "v3": 4}
	for _, dot := range layout.Dots {
		if dot.X != wantX[dot.Var] {
			t.Errorf("dot %s at x=%v, want %v", dot.Var, dot.X, wantX[dot.Var])
		}
		if dot.Y != 1 {
			t.Errorf("dot %s at y=%v, want 1", dot.Var, dot.Y)
		}
	}
}

func TestBuildIgnoresOtherContrasts(t *testing.T) {
	tbl := buildTable(t,
		[]string{"v1", "GeneA", "Astro", "Clinical", "1.0", "0.01"},
		[]string{"v2", "GeneA", "Astro", "SomethingElse", "9.9", "0.5"},
	)

	layout, err := Build(tbl)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(layout.Dots) != 1 {
		t.Errorf("got %d dots, want 1 (other contrast rows ignored)", len(layout.Dots))
	}
}

func TestBuildClampsLogFC(t *testing.T) {
	tbl := buildTable(t,
		[]string{"v1", "GeneA", "Astro", "Clinical", "5.0", "0.01"},
		[]string{"v2", "GeneA", "Astro", "Pathological", "-5.0", "0.01"},
	)

	layout, err := Build(tbl, WithLogFCLimits(-1.5, 1.5))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, dot := range layout.Dots {
		if dot.LogFC < -1.5 || dot.LogFC > 1.5 {
			t.Errorf("dot %s logFC = %v, want clamped to [-1.5, 1.5]", dot.Var, dot.LogFC)
		}
	}
}

func TestBuildDotSizesFollowSignificance(t *testing.T) {
	tbl := buildTable(t,
		[]string{"strong", "GeneA", "Astro", "Clinical", "1.0", "0.0001"},
		[]string{"weak", "GeneA", "Micro", "Clinical", "1.0", "0.05"},
	)

	layout, err := Build(tbl, WithDotSizes(2, 6))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	radii := map[string]float64{}
	for _, dot := range layout.Dots {
		radii[dot.Var] = dot.R
	}
	if radii["strong"] <= radii["weak"] {
		t.Errorf("more significant dot not larger: strong=%v weak=%v",
			radii["strong"], radii["weak"])
	}
	if radii["strong"] != 6 || radii["weak"] != 2 {
		t.Errorf("extreme p-values should hit the size bounds, got %v", radii)
	}
}

func TestBuildDotSizeRangeIgnoresFilteredGenes(t *testing.T) {
	// GeneX is far more significant than anything in the gene list. If it
	// leaked into the size range the kept dots would be squeezed off the
	// size bounds.
	tbl := buildTable(t,
		[]string{"strong", "GeneA", "Astro", "Clinical", "1.0", "0.0001"},
		[]string{"weak", "GeneA", "Micro", "Clinical", "1.0", "0.05"},
		[]string{"excluded", "GeneX", "Astro", "Clinical", "1.0", "1e-50"},
	)

	layout, err := Build(tbl, WithGenes("GeneA"), WithDotSizes(2, 6))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(layout.Dots) != 2 {
		t.Fatalf("got %d dots, want 2 (GeneX excluded)", len(layout.Dots))
	}

	radii := map[string]float64{}
	for _, dot := range layout.Dots {
		radii[dot.Var] = dot.R
	}
	if radii["strong"] != 6 || radii["weak"] != 2 {
		t.Errorf("size range should span only rendered dots, got %v", radii)
	}
}

func TestBuildNonNumericLogFC(t *testing.T) {
	tbl := buildTable(t,
		[]string{"v1", "GeneA", "Astro", "Clinical", "not-a-number", "0.01"},
	)
	_, err := Build(tbl)
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Fatalf("Build() error = %v, want %s", err, errors.ErrCodeInvalidDataset)
	}
}

func TestBuildUnknownColumn(t *testing.T) {
	tbl := buildTable(t)
	_, err := Build(tbl, WithLogFCColumn("nope"))
	if !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Fatalf("Build() error = %v, want %s", err, errors.ErrCodeInvalidColumn)
	}
}

func TestBuildSwitchAxis(t *testing.T) {
	tbl := buildTable(t,
		[]string{"v1", "GeneA", "Astro", "Clinical", "1.0", "0.01"},
	)

	plain, err := Build(tbl)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	switched, err := Build(tbl, WithSwitchAxis())
	if err != nil {
		t.Fatalf("Build(switch) error = %v", err)
	}

	if plain.Dots[0].X != switched.Dots[0].Y || plain.Dots[0].Y != switched.Dots[0].X {
		t.Error("dot coordinates not transposed")
	}
	if plain.XLabel != switched.YLabel || plain.YLabel != switched.XLabel {
		t.Error("axis labels not swapped")
	}
}

func TestBuildGeneListFiltersAndOrders(t *testing.T) {
	tbl := buildTable(t,
		[]string{"v1", "GeneA", "Astro", "Clinical", "1.0", "0.01"},
		[]string{"v2", "GeneB", "Astro", "Clinical", "1.0", "0.01"},
		[]string{"v3", "GeneC", "Astro", "Clinical", "1.0", "0.01"},
	)

	layout, err := Build(tbl, WithGenes("GeneC", "GeneA"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(layout.Dots) != 2 {
		t.Fatalf("got %d dots, want 2 (GeneB excluded)", len(layout.Dots))
	}
	// GeneC is first in the supplied order.
	for _, dot := range layout.Dots {
		if dot.Gene == "GeneC" && dot.X != 1 {
			t.Errorf("GeneC dot at x=%v, want 1", dot.X)
		}
	}
}

func TestBuildSharedBoxSpreadsDots(t *testing.T) {
	tbl := buildTable(t,
		[]string{"v1", "GeneA", "Astro", "Clinical", "1.0", "0.01"},
		[]string{"v2", "GeneA", "Astro", "Clinical", "0.5", "0.02"},
	)

	layout, err := Build(tbl)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(layout.Dots) != 2 {
		t.Fatalf("got %d dots, want 2", len(layout.Dots))
	}
	if layout.Dots[0].Y == layout.Dots[1].Y {
		t.Error("dots sharing a box were not spread apart")
	}
	for _, dot := range layout.Dots {
		if math.Abs(dot.Y-1) > 0.4 {
			t.Errorf("dot %s spread outside its box: y=%v", dot.Var, dot.Y)
		}
	}
}

func TestSceneTicksAndScale(t *testing.T) {
	tbl := buildTable(t,
		[]string{"v1", "GeneA", "Astro", "Clinical", "1.0", "0.01"},
		[]string{"v2", "GeneB", "Micro", "Pathological", "-0.5", "0.02"},
	)

	layout, err := Build(tbl, WithScaleTitle("logFC"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	scene := layout.Scene()

	if len(scene.Frame.XTicks) != 2 {
		t.Fatalf("got %d x ticks, want 2", len(scene.Frame.XTicks))
	}
	// Gene ticks sit between the contrast pair: (i*spacing)+1.5.
	if scene.Frame.XTicks[0].Pos != 1.5 || scene.Frame.XTicks[1].Pos != 4.5 {
		t.Errorf("gene tick positions = %v, %v; want 1.5, 4.5",
			scene.Frame.XTicks[0].Pos, scene.Frame.XTicks[1].Pos)
	}
	if scene.Scale == nil || scene.Scale.Title != "logFC" {
		t.Error("color scale legend missing")
	}
	if !scene.Frame.InvertY {
		t.Error("domino plots must invert the y axis")
	}
}
