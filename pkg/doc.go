// Package pkg provides the core libraries for diceplot.
//
// # Overview
//
// Diceplot visualizes datasets with three or more categorical dimensions as
// dice plots: a grid of cells indexed by two categories, where the levels of
// a third category present in each cell are drawn as pips arranged like the
// face of a die. A companion domino plot compares two contrasts side by side
// per gene and cell type.
//
// # Architecture
//
// The typical data flow:
//
//	CSV/JSON dataset
//	       ↓
//	  [dataset] package (tabular import, column levels)
//	       ↓
//	  [dice] or [domino] package (layout geometry)
//	       ↓
//	  [render] package (scene → svg or raster backend)
//	       ↓
//	  SVG/PNG/PDF output
//
// # Main Packages
//
// [dataset] - Tabular datasets with CSV and JSON import/export plus
// deterministic example data generators.
//
// [dice] - The dice plot layout engine: cells, pip positions, axis
// orderings, and group coloring. [dice/ordering] supplies the y-axis
// ordering strategies (lexical, first-seen, cluster).
//
// [domino] - The domino plot layout engine for two-contrast comparisons.
//
// [render] - Backend-neutral scene primitives (rectangles, markers, axes,
// legends) plus a backend registry. [render/svg] draws scenes with svgo;
// [render/raster] draws them with fogleman/gg.
//
// [theme] - Named color palettes with TOML file loading and automatic
// palette generation.
//
// [pipeline] - The import → layout → render runner shared by the CLI and
// the HTTP server, with per-format figure caching.
//
// [cache] - Pluggable figure caching: file-based for the CLI, Redis for
// the server, null to disable.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hook interfaces for pipeline, cache, and server events
// with no-op defaults.
//
// [buildinfo] - ldflags-injected version information.
//
// # Quick Start
//
// Render a dice plot from a dataset:
//
//	tbl, _ := dataset.ImportCSV("data.csv")
//	layout, _ := dice.Build(tbl, "CellType", "Pathway", "PathologyVariable")
//	fig, _ := render.Current().Render(layout.Scene())
//	_ = fig.Save("plot.svg")
//
// [dataset]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/dataset
// [dice]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/dice
// [dice/ordering]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/dice/ordering
// [domino]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/domino
// [render]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/render/svg
// [render/raster]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/render/raster
// [theme]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/theme
// [pipeline]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/cache
// [errors]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/buildinfo
package pkg
