package sink

import (
	"encoding/json"

	"github.com/matzehuels/wrapped/pkg/render/layout"
	"github.com/matzehuels/wrapped/pkg/wrapped"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	user     string
	pages    []layout.Page
	sections []wrapped.Section
}

// WithJSONUser records the username the report was generated for.
func WithJSONUser(u string) JSONOption { return func(r *jsonRenderer) { r.user = u } }

// WithJSONPages includes the paginated blocks in the output.
func WithJSONPages(p []layout.Page) JSONOption { return func(r *jsonRenderer) { r.pages = p } }

// WithJSONSections overrides the sections written to the output. By default
// the report's own sections are used.
func WithJSONSections(s []wrapped.Section) JSONOption {
	return func(r *jsonRenderer) { r.sections = s }
}

type jsonOutput struct {
	User     string            `json:"user,omitempty"`
	Year     int               `json:"year"`
	Summary  wrapped.Summary   `json:"summary"`
	Sections []wrapped.Section `json:"sections"`
	Pages    []jsonPage        `json:"pages,omitempty"`
}

type jsonPage struct {
	Number int                `json:"number"`
	Blocks []layout.TextBlock `json:"blocks"`
}

// RenderJSON exports the report as a pretty-printed JSON document.
//
// Sections appear in their fixed display order. RenderJSON does not modify
// the report and is safe to call concurrently.
func RenderJSON(rep *wrapped.Report, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	sections := r.sections
	if sections == nil {
		sections = rep.Sections()
	}

	out := jsonOutput{
		User:     r.user,
		Year:     rep.Year,
		Summary:  rep.Summary,
		Sections: sections,
	}
	for i, p := range r.pages {
		out.Pages = append(out.Pages, jsonPage{Number: i + 1, Blocks: p})
	}

	return json.MarshalIndent(out, "", "  ")
}
