package httpapi

import (
	"bytes"
	"net/http"
	"time"

	"jobview-engine/internal/aggregate"
	"jobview-engine/internal/listing"
	"jobview-engine/internal/render"
)

type StatsHandler struct {
	Deps Deps
}

type statsResponse struct {
	Scope    aggregate.Scope `json:"scope"`
	Total    int             `json:"total"`
	Matching int             `json:"matching"`
	aggregate.Aggregates
}

// Stats returns the chart inputs for the configured (or requested) scope.
func (h StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	v, ok := buildView(w, r, h.Deps.Snapshot, h.Deps.config())
	if !ok {
		return
	}
	writeJSON(w, statsResponse{
		Scope:      v.scope,
		Total:      v.all.Len(),
		Matching:   v.filtered.Len(),
		Aggregates: v.aggregates(),
	})
}

// Facets lists the choices of the company and city widgets.
func (h StatsHandler) Facets(w http.ResponseWriter, r *http.Request) {
	if h.Deps.Snapshot == nil || h.Deps.Snapshot.Current() == nil {
		noSnapshot(w, r)
		return
	}
	companies, cities := listing.Options(h.Deps.Snapshot.Current())
	if companies == nil {
		companies = []string{}
	}
	if cities == nil {
		cities = []string{}
	}
	writeJSON(w, map[string]any{
		"companies":    companies,
		"cities":       cities,
		"salary_modes": []string{"all", "confidential", "known"},
		"scopes":       []aggregate.Scope{aggregate.ScopeAll, aggregate.ScopeFiltered},
	})
}

// Report renders the charts as a PDF.
func (h StatsHandler) Report(w http.ResponseWriter, r *http.Request) {
	v, ok := buildView(w, r, h.Deps.Snapshot, h.Deps.config())
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := render.PDFReport(&buf, render.Report{
		Title:       v.cfg.Listing.PageTitle,
		Scope:       string(v.scope),
		Matching:    v.filtered.Len(),
		Aggregates:  v.aggregates(),
		GeneratedAt: time.Now(),
	})
	if err != nil {
		h.Deps.Logger.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("report failed")
		WriteError(w, r, http.StatusInternalServerError, "report_failed", "could not render report")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="report.pdf"`)
	_, _ = w.Write(buf.Bytes())
}
