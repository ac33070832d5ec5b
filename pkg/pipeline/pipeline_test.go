package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/maflot/diceplot/pkg/cache"
	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/errors"
	_ "github.com/maflot/diceplot/pkg/render/raster"
	_ "github.com/maflot/diceplot/pkg/render/svg"
	"github.com/maflot/diceplot/pkg/theme"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func diceTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New([]string{"CellType", "Pathway", "Var"})
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	rows := [][]string{
		{"Astro", "Apoptosis", "Amyloid"},
		{"Astro", "Apoptosis", "NFT"},
		{"Micro", "Inflammation", "Amyloid"},
	}
	for _, row := range rows {
		if err := tbl.Append(row...); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	return tbl
}

func diceOptions(tbl *dataset.Table) Options {
	return Options{
		Plot:    PlotDice,
		Dataset: tbl,
		CatA:    "CellType",
		CatB:    "Pathway",
		CatC:    "Var",
		Formats: []string{FormatSVG},
		Logger:  quietLogger(),
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Options)
		wantCode errors.Code
	}{
		{name: "valid", mutate: func(o *Options) {}},
		{name: "missing input", mutate: func(o *Options) { o.Dataset = nil }, wantCode: errors.ErrCodeInvalidDataset},
		{name: "missing columns", mutate: func(o *Options) { o.CatC = "" }, wantCode: errors.ErrCodeInvalidColumn},
		{name: "bad plot", mutate: func(o *Options) { o.Plot = "scatter" }, wantCode: errors.ErrCodeInvalidFormat},
		{name: "bad format", mutate: func(o *Options) { o.Formats = []string{"bmp"} }, wantCode: errors.ErrCodeInvalidFormat},
		{name: "bad backend", mutate: func(o *Options) { o.Backend = "imaginary" }, wantCode: errors.ErrCodeInvalidBackend},
		{name: "bad ordering", mutate: func(o *Options) { o.Ordering = "random" }, wantCode: errors.ErrCodeInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := diceOptions(diceTable(t))
			tt.mutate(&opts)
			err := opts.ValidateAndSetDefaults()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults() error = %v", err)
				}
				if opts.Backend == "" || len(opts.Formats) == 0 {
					t.Error("defaults not applied")
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("ValidateAndSetDefaults() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestExecuteDice(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	result, err := runner.Execute(context.Background(), diceOptions(diceTable(t)))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok {
		t.Fatal("no SVG artifact produced")
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("artifact is not an SVG document")
	}
	if result.DatasetHash == "" {
		t.Error("dataset hash not computed")
	}
	if result.Stats.RowCount != 3 {
		t.Errorf("row count = %d, want 3", result.Stats.RowCount)
	}
}

func TestExecuteUsesCache(t *testing.T) {
	ctx := context.Background()
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	runner := NewRunner(fileCache, nil, quietLogger())

	first, err := runner.Execute(ctx, diceOptions(diceTable(t)))
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.AllHit() {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(ctx, diceOptions(diceTable(t)))
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.AllHit() {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses cache reads.
	opts := diceOptions(diceTable(t))
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if third.CacheInfo.AllHit() {
		t.Error("refresh run should not report cache hits")
	}
}

func TestExecuteOptionChangesCacheKey(t *testing.T) {
	ctx := context.Background()
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	runner := NewRunner(fileCache, nil, quietLogger())

	if _, err := runner.Execute(ctx, diceOptions(diceTable(t))); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	switched := diceOptions(diceTable(t))
	switched.SwitchAxis = true
	result, err := runner.Execute(ctx, switched)
	if err != nil {
		t.Fatalf("Execute(switch) error = %v", err)
	}
	if result.CacheInfo.AllHit() {
		t.Error("changed options must not reuse the cached figure")
	}
}

func TestExecuteDomino(t *testing.T) {
	tbl, err := dataset.ExampleDomino()
	if err != nil {
		t.Fatalf("ExampleDomino() error = %v", err)
	}

	runner := NewRunner(nil, nil, quietLogger())
	result, err := runner.Execute(context.Background(), Options{
		Plot:      PlotDomino,
		Dataset:   tbl,
		Contrasts: [2]string{"Type1", "Type2"},
		Formats:   []string{FormatSVG},
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("artifact is not an SVG document")
	}
}

func TestExecuteRasterBackend(t *testing.T) {
	opts := diceOptions(diceTable(t))
	opts.Backend = "raster"
	opts.Formats = []string{FormatPNG}

	runner := NewRunner(nil, nil, quietLogger())
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	png := result.Artifacts[FormatPNG]
	if len(png) < 8 || !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("artifact is not a PNG image")
	}
}

func TestExecuteRasterCannotProduceSVG(t *testing.T) {
	opts := diceOptions(diceTable(t))
	opts.Backend = "raster"
	opts.Formats = []string{FormatSVG}

	runner := NewRunner(nil, nil, quietLogger())
	_, err := runner.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("Execute() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestExecuteMissingInputFile(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	_, err := runner.Execute(context.Background(), Options{
		Plot:    PlotDice,
		Input:   "/does/not/exist.csv",
		CatA:    "a", CatB: "b", CatC: "c",
		Formats: []string{FormatSVG},
		Logger:  quietLogger(),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("Execute() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestThemeFingerprintDistinguishesThemes(t *testing.T) {
	if themeFingerprint(nil) != "" {
		t.Error("nil theme should have empty fingerprint")
	}

	a := testTheme(t, "x", "#111111")
	b := testTheme(t, "x", "#222222")
	if themeFingerprint(a) == themeFingerprint(b) {
		t.Error("different palettes should have different fingerprints")
	}
	if themeFingerprint(a) != themeFingerprint(testTheme(t, "x", "#111111")) {
		t.Error("fingerprint should be deterministic")
	}
}

func TestDatasetHashStable(t *testing.T) {
	h1 := datasetHash(diceTable(t))
	h2 := datasetHash(diceTable(t))
	if h1 == "" || h1 != h2 {
		t.Errorf("dataset hash unstable: %q vs %q", h1, h2)
	}
	if strings.Contains(h1, " ") {
		t.Errorf("hash contains whitespace: %q", h1)
	}
}

func testTheme(t *testing.T, name, color string) *theme.Theme {
	t.Helper()
	th := &theme.Theme{CatC: theme.NewPalette(), GroupAlpha: 0.6}
	if err := th.CatC.Set(name, color); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	return th
}
