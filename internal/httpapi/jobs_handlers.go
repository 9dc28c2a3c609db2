package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/render"
)

type JobsHandler struct {
	Deps Deps
}

type jobsResponse struct {
	Source   string                `json:"source"`
	Schema   string                `json:"schema"`
	Total    int                   `json:"total"`
	Matching int                   `json:"matching"`
	Criteria domain.FilterCriteria `json:"criteria"`
	Jobs     []domain.JobRecord    `json:"jobs"`
}

// List returns the filtered listings as JSON. ?limit and ?offset page
// through the result without changing the matching count.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	v, ok := buildView(w, r, h.Deps.Snapshot, h.Deps.config())
	if !ok {
		return
	}

	jobs := v.filtered.Records()
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		badQuery(w, r, err)
		return
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		badQuery(w, r, err)
		return
	}
	if offset > len(jobs) {
		offset = len(jobs)
	}
	jobs = jobs[offset:]
	if limit > 0 && limit < len(jobs) {
		jobs = jobs[:limit]
	}

	writeJSON(w, jobsResponse{
		Source:   v.all.Source(),
		Schema:   v.all.Schema().String(),
		Total:    v.all.Len(),
		Matching: v.filtered.Len(),
		Criteria: v.criteria,
		Jobs:     jobs,
	})
}

// CSV downloads the filtered listings.
func (h JobsHandler) CSV(w http.ResponseWriter, r *http.Request) {
	v, ok := buildView(w, r, h.Deps.Snapshot, h.Deps.config())
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="jobs.csv"`)
	if err := render.CSV(w, v.filtered); err != nil {
		h.Deps.Logger.Warn().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("csv write failed")
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: %q is not a non-negative integer", name, raw)
	}
	return n, nil
}
