// Package render provides backend-neutral scene primitives and the
// rendering backend registry.
//
// # Overview
//
// Layout engines (dice, domino) produce a [Scene]: rectangles, markers,
// legends, and a [Frame] describing the coordinate mapping. Backends turn a
// Scene into a [Figure]:
//
//   - [svg] subpackage: vector output built on svgo
//   - [raster] subpackage: PNG output built on fogleman/gg
//
// Backends register themselves in an init function; [Use] selects the
// active backend and [Current] returns it. The default backend is "svg".
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Coordinates
//
// Scenes use data units: one grid cell spans 1.0 and the axes run from 0 to
// n+1 for n levels. [Frame.ToPixel] maps data units to pixels, honoring the
// inverted y axis that puts the first row at the top.
//
// [svg]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/render/svg
// [raster]: https://pkg.go.dev/github.com/maflot/diceplot/pkg/render/raster
package render
