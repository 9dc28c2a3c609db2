package httpapi

import (
	"bytes"
	"net/http"

	"jobview-engine/internal/listing"
	"jobview-engine/internal/render"
)

type PageHandler struct {
	Deps Deps
}

// Index serves the listing page for the current filter form.
func (h PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, "not_found", "not found")
		return
	}
	v, ok := buildView(w, r, h.Deps.Snapshot, h.Deps.config())
	if !ok {
		return
	}

	companies, cities := listing.Options(v.all)
	var buf bytes.Buffer
	err := render.HTML(&buf, render.Page{
		Title:     v.cfg.Listing.PageTitle,
		Intro:     v.cfg.Listing.Intro,
		Criteria:  v.criteria,
		Companies: companies,
		Cities:    cities,
		Scope:     string(v.scope),
		Jobs:      v.filtered,
		Total:     v.all.Len(),
	}, r.URL.RawQuery)
	if err != nil {
		h.Deps.Logger.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("page render failed")
		WriteError(w, r, http.StatusInternalServerError, "render_failed", "could not render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
