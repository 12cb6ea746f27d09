// Package sink provides output encoders for Wrapped pages and reports.
//
// # Overview
//
// A "sink" turns an in-memory result into bytes that can be written to disk
// or served over HTTP:
//
//   - PNG: lossless encoding of one drawn page ([RenderPNG])
//   - JSON: the aggregated report with its sections and pages ([RenderJSON])
//
// # PNG Output
//
// [RenderPNG] encodes an image produced by [canvas.Draw]:
//
//	img, err := canvas.Draw(user, pages, i, canvas.WithYear(year))
//	data, err := sink.RenderPNG(img)
//	os.WriteFile(sink.PageFilename(year, i+1), data, 0o644)
//
// [PageFilename] yields the conventional download name
// "anilist-wrapped-<year>-page<N>.png" with a 1-based page number.
//
// # JSON Output
//
// [RenderJSON] exports the report summary, the display sections in their
// fixed order and, optionally, the paginated blocks:
//
//	data, err := sink.RenderJSON(report,
//	    sink.WithJSONUser("josh"),
//	    sink.WithJSONPages(pages),
//	)
//
// [canvas.Draw]: github.com/matzehuels/wrapped/pkg/render/canvas.Draw
package sink
