// Package render groups the page rendering stages of Wrapped.
//
// # Overview
//
// Rendering is split into three subpackages that run in order:
//
//   - [layout]: Text measurement, word wrapping and greedy page packing
//   - [canvas]: Painting one page onto a 1080×1920 raster surface
//   - [sink]: Encoding pages as PNG and reports as JSON
//
// [layout] never draws and [canvas] never measures against a live surface;
// both share the line advances in [layout.Config] so a packed page always
// fits when painted.
//
//	pages := layout.Paginate(sections, measurer, layout.DefaultConfig())
//	img, err := canvas.Draw("Josh", pages, 0)
//	data, err := sink.RenderPNG(img)
//
// [layout]: github.com/matzehuels/wrapped/pkg/render/layout
// [canvas]: github.com/matzehuels/wrapped/pkg/render/canvas
// [sink]: github.com/matzehuels/wrapped/pkg/render/sink
package render
