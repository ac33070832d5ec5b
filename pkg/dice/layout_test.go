package dice

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/dice/ordering"
	"github.com/maflot/diceplot/pkg/errors"
	"github.com/maflot/diceplot/pkg/theme"
)

func buildTable(t *testing.T, columns []string, rows ...[]string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(columns)
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

func TestBuildThreePipDiagonal(t *testing.T) {
	// All three category values in cell (T1, P1); (T2, P1) has rows but
	// no matching category values is not possible here, so T2 simply has
	// a single pip.
	tbl := buildTable(t, []string{"A", "B", "C"},
		[]string{"T1", "P1", "x"},
		[]string{"T1", "P1", "y"},
		[]string{"T1", "P1", "z"},
	)

	layout, err := Build(tbl, "A", "B", "C")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(layout.Pips) != 3 {
		t.Fatalf("got %d pips, want 3", len(layout.Pips))
	}

	// Three levels use the diagonal die face layout.
	want := [][2]float64{{-0.2, -0.2}, {0, 0.2}, {0.2, -0.2}}
	for i, pip := range layout.Pips {
		wantX := 1 + want[i][0]
		wantY := 1 + want[i][1]
		if pip.X != wantX || pip.Y != wantY {
			t.Errorf("pip %d (%s) at (%v, %v), want (%v, %v)",
				i, pip.Category, pip.X, pip.Y, wantX, wantY)
		}
	}
}

func TestBuildOnePipPerPresentValue(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C"},
		[]string{"T1", "P1", "x"},
		[]string{"T1", "P1", "x"}, // duplicate row, still one pip
		[]string{"T1", "P1", "y"},
		[]string{"T2", "P1", "y"},
	)

	layout, err := Build(tbl, "A", "B", "C")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(layout.Pips) != 3 {
		t.Errorf("got %d pips, want 3 (one per present value per cell)", len(layout.Pips))
	}
}

func TestBuildPipPositionConsistentAcrossCells(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C"},
		[]string{"T1", "P1", "x"},
		[]string{"T1", "P1", "y"},
		[]string{"T2", "P2", "y"},
	)

	layout, err := Build(tbl, "A", "B", "C")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	offsets := make(map[string][2]float64)
	for _, pip := range layout.Pips {
		off := [2]float64{pip.X - float64(colNum(t, layout, pip.A)), pip.Y - float64(rowNum(t, layout, pip.B))}
		if prev, ok := offsets[pip.Category]; ok && prev != off {
			t.Errorf("category %q drawn at offset %v and %v", pip.Category, prev, off)
		}
		offsets[pip.Category] = off
	}
}

func colNum(t *testing.T, l *Layout, a string) int {
	t.Helper()
	for i, v := range l.XLevels {
		if v == a {
			return i + 1
		}
	}
	t.Fatalf("level %q not on x axis", a)
	return 0
}

func rowNum(t *testing.T, l *Layout, b string) int {
	t.Helper()
	for i, v := range l.YLevels {
		if v == b {
			return i + 1
		}
	}
	t.Fatalf("level %q not on y axis", b)
	return 0
}

func TestBuildGridDimensions(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C"},
		[]string{"T1", "P1", "x"},
		[]string{"T2", "P2", "x"},
		[]string{"T3", "P1", "x"},
	)

	layout, err := Build(tbl, "A", "B", "C")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(layout.XLevels) != 3 || len(layout.YLevels) != 2 {
		t.Errorf("grid = %dx%d, want 3x2", len(layout.XLevels), len(layout.YLevels))
	}
	// Only observed pairs become cells.
	if len(layout.Cells) != 3 {
		t.Errorf("got %d cells, want 3", len(layout.Cells))
	}
}

func TestBuildSwitchAxisTransposes(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C"},
		[]string{"T1", "P1", "x"},
		[]string{"T2", "P2", "y"},
	)

	plain, err := Build(tbl, "A", "B", "C")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	switched, err := Build(tbl, "A", "B", "C", WithSwitchAxis())
	if err != nil {
		t.Fatalf("Build(switch) error = %v", err)
	}

	if diff := cmp.Diff(plain.XLevels, switched.YLevels); diff != "" {
		t.Errorf("x levels did not move to y axis (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(plain.YLevels, switched.XLevels); diff != "" {
		t.Errorf("y levels did not move to x axis (-want +got):\n%s", diff)
	}
	if plain.XLabel != switched.YLabel || plain.YLabel != switched.XLabel {
		t.Error("axis labels did not swap")
	}

	if len(plain.Cells) != len(switched.Cells) {
		t.Fatalf("cell count changed: %d != %d", len(plain.Cells), len(switched.Cells))
	}
	for i := range plain.Cells {
		p, s := plain.Cells[i], switched.Cells[i]
		if p.A != s.A || p.B != s.B {
			t.Errorf("cell %d contents changed: %+v -> %+v", i, p, s)
		}
		if p.XNum != s.YNum || p.YNum != s.XNum {
			t.Errorf("cell %d position not transposed: %+v -> %+v", i, p, s)
		}
	}
}

func TestBuildSevenCategoryValuesOverflow(t *testing.T) {
	rows := [][]string{}
	for _, c := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"} {
		rows = append(rows, []string{"T1", "P1", c})
	}
	tbl := buildTable(t, []string{"A", "B", "C"}, rows...)

	_, err := Build(tbl, "A", "B", "C")
	if !errors.Is(err, errors.ErrCodeLayoutOverflow) {
		t.Fatalf("Build() error = %v, want %s", err, errors.ErrCodeLayoutOverflow)
	}
}

func TestBuildEmptyDataset(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C"})

	layout, err := Build(tbl, "A", "B", "C")
	if err != nil {
		t.Fatalf("Build() on empty dataset error = %v", err)
	}
	if len(layout.Cells) != 0 || len(layout.Pips) != 0 {
		t.Errorf("empty dataset produced %d cells, %d pips", len(layout.Cells), len(layout.Pips))
	}
}

func TestBuildUnknownColumn(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C"}, []string{"T1", "P1", "x"})

	tests := []struct {
		name    string
		a, b, c string
	}{
		{name: "bad axis a", a: "nope", b: "B", c: "C"},
		{name: "bad axis b", a: "A", b: "nope", c: "C"},
		{name: "bad category", a: "A", b: "B", c: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tbl, tt.a, tt.b, tt.c)
			if !errors.Is(err, errors.ErrCodeInvalidColumn) {
				t.Fatalf("Build() error = %v, want %s", err, errors.ErrCodeInvalidColumn)
			}
		})
	}
}

func TestBuildUnknownGroupColumn(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C"}, []string{"T1", "P1", "x"})
	_, err := Build(tbl, "A", "B", "C", WithGroup("nope"))
	if !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Fatalf("Build() error = %v, want %s", err, errors.ErrCodeInvalidColumn)
	}
}

func TestBuildMissingCategoryColor(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C"}, []string{"T1", "P1", "mystery"})

	th := &theme.Theme{CatC: theme.NewPalette()}
	if err := th.CatC.Set("known", "#ad310f"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, err := Build(tbl, "A", "B", "C", WithTheme(th))
	if !errors.Is(err, errors.ErrCodeMissingColor) {
		t.Fatalf("Build() error = %v, want %s", err, errors.ErrCodeMissingColor)
	}
}

func TestBuildPaletteOrderFixesPipPositions(t *testing.T) {
	// The palette lists z before x, so z takes the first offset even
	// though x sorts first.
	tbl := buildTable(t, []string{"A", "B", "C"},
		[]string{"T1", "P1", "x"},
		[]string{"T1", "P1", "z"},
	)

	th := &theme.Theme{CatC: theme.NewPalette()}
	for _, e := range [][2]string{{"z", "#111111"}, {"x", "#222222"}} {
		if err := th.CatC.Set(e[0], e[1]); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	layout, err := Build(tbl, "A", "B", "C", WithTheme(th))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if diff := cmp.Diff([]string{"z", "x"}, layout.CatLevels); diff != "" {
		t.Fatalf("category order mismatch (-want +got):\n%s", diff)
	}

	for _, pip := range layout.Pips {
		wantX := 1.0 - 0.2
		if pip.Category == "x" {
			wantX = 1.0 + 0.2
		}
		if pip.X != wantX {
			t.Errorf("pip %q at x=%v, want %v", pip.Category, pip.X, wantX)
		}
	}
}

func TestBuildGroupFillAndWarning(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C", "G"},
		[]string{"T1", "P1", "x", "g1"},
		[]string{"T2", "P1", "x", "g2"}, // P1 now has two groups
	)

	th := &theme.Theme{Group: theme.NewPalette(), GroupAlpha: 0.6}
	for _, e := range [][2]string{{"g1", "#333333"}, {"g2", "#888888"}} {
		if err := th.Group.Set(e[0], e[1]); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	layout, err := Build(tbl, "A", "B", "C", WithGroup("G"), WithTheme(th))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	fills := map[string]string{}
	for _, cell := range layout.Cells {
		fills[cell.Group] = cell.Fill
	}
	if fills["g1"] != "#333333" || fills["g2"] != "#888888" {
		t.Errorf("group fills = %v", fills)
	}

	if len(layout.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 (multi-group B level)", len(layout.Warnings))
	}
}

func TestBuildGroupMissingColorFallsBackToWhite(t *testing.T) {
	tbl := buildTable(t, []string{"A", "B", "C", "G"},
		[]string{"T1", "P1", "x", "unlisted"},
	)

	th := &theme.Theme{Group: theme.NewPalette()}
	if err := th.Group.Set("listed", "#333333"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	layout, err := Build(tbl, "A", "B", "C", WithGroup("G"), WithTheme(th))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if layout.Cells[0].Fill != "#FFFFFF" {
		t.Errorf("unlisted group fill = %q, want white", layout.Cells[0].Fill)
	}
}

func TestBuildClusterOrdering(t *testing.T) {
	// T1 and T3 share a profile, T2 is disjoint; clustering must place
	// T1 and T3 adjacent.
	tbl := buildTable(t, []string{"A", "B", "C"},
		[]string{"T1", "P1", "x"},
		[]string{"T2", "P2", "y"},
		[]string{"T3", "P1", "x"},
	)

	layout, err := Build(tbl, "A", "B", "C", WithOrdering(ordering.Cluster))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	pos := map[string]int{}
	for i, v := range layout.XLevels {
		pos[v] = i
	}
	d := pos["T1"] - pos["T3"]
	if d != 1 && d != -1 {
		t.Errorf("T1 and T3 not adjacent in %v", layout.XLevels)
	}
}

func TestPipOffsets(t *testing.T) {
	for count := 1; count <= MaxDiceSides; count++ {
		offs, err := PipOffsets(count)
		if err != nil {
			t.Fatalf("PipOffsets(%d) error = %v", count, err)
		}
		if len(offs) != count {
			t.Errorf("PipOffsets(%d) has %d entries", count, len(offs))
		}
	}

	for _, bad := range []int{0, 7, -1} {
		if _, err := PipOffsets(bad); !errors.Is(err, errors.ErrCodeLayoutOverflow) {
			t.Errorf("PipOffsets(%d) error = %v, want %s", bad, err, errors.ErrCodeLayoutOverflow)
		}
	}
}
