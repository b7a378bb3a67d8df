// Web UI: a single server-rendered page mirroring the original explorer's
// layout - sort control, formatted data table, error and stale banners.

package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// =============================================================================
// View Model
// =============================================================================

// indexView is the template data for the explorer page.
type indexView struct {
	Title       string
	Options     []sortOption
	Selected    states.SortKey
	SortedLabel string
	Columns     []states.Column
	Rows        []tableRow
	Stale       bool
	ErrMessage  string
}

type sortOption struct {
	Key      states.SortKey
	Label    string
	Selected bool
}

type tableRow struct {
	Slug  string
	Cells []cell
}

type cell struct {
	Value string
	Help  string
}

// =============================================================================
// Index Handler
// =============================================================================

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	key, err := states.ParseSortKey(r.URL.Query().Get("sort_by"))
	if err != nil {
		// Fall back to the default rather than erroring the whole page.
		key = states.DefaultSortKey
	}

	view := indexView{
		Title:       "U.S. States Data Explorer",
		Selected:    key,
		SortedLabel: states.Label(key),
		Columns:     states.Columns(),
	}
	for _, k := range states.SortKeys() {
		view.Options = append(view.Options, sortOption{
			Key:      k,
			Label:    states.Label(k),
			Selected: k == key,
		})
	}

	listing, err := h.src.List(r.Context(), key)
	if err != nil {
		h.logger.Error("failed to render listing", "sort_by", key, "error", err)
		view.ErrMessage = "Could not retrieve data. The API might be starting up or temporarily unavailable."
	} else {
		view.Stale = listing.Stale
		for _, s := range listing.States {
			row := tableRow{Slug: s.Slug}
			for _, c := range view.Columns {
				row.Cells = append(row.Cells, cell{
					Value: states.FormatValue(s, c.Key),
					Help:  c.Help,
				})
			}
			view.Rows = append(view.Rows, row)
		}
		if len(view.Rows) == 0 {
			view.ErrMessage = "Could not retrieve data. The API might be starting up or temporarily unavailable."
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.ExecuteTemplate(w, "index.html", view); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}
