package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"jobview-engine/internal/aggregate"
	"jobview-engine/internal/config"
	"jobview-engine/internal/domain"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// parseCriteria reads the filter widgets from the query string. Each
// company/city parameter is one value; names may contain commas.
func parseCriteria(q url.Values) (domain.FilterCriteria, error) {
	var c domain.FilterCriteria
	c.Keyword = q.Get("keyword")
	if c.Keyword == "" {
		c.Keyword = q.Get("q")
	}
	c.Companies = multi(q["company"])
	c.Cities = multi(q["city"])

	if raw := strings.TrimSpace(q.Get("min_salary")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, fmt.Errorf("min_salary: %q is not a number", raw)
		}
		c.MinSalary = v
	}

	mode, err := domain.ParseSalaryMode(q.Get("salary"))
	if err != nil {
		return c, err
	}
	c.SalaryMode = mode

	c = c.Normalized()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func multi(vals []string) []string {
	var out []string
	for _, v := range vals {
		if p := strings.TrimSpace(v); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseScope falls back to the configured scope when the query has none.
func parseScope(q url.Values, cfg config.Config) (aggregate.Scope, error) {
	raw := q.Get("scope")
	if raw == "" {
		raw = cfg.Aggregates.Scope
	}
	if strings.TrimSpace(raw) == "" {
		return aggregate.ScopeAll, nil
	}
	s, ok := aggregate.ParseScope(raw)
	if !ok {
		return "", fmt.Errorf("scope: %q is not all or filtered", raw)
	}
	return s, nil
}

func aggregateOptions(cfg config.Config) aggregate.Options {
	return aggregate.Options{
		TopN:          cfg.Aggregates.TopN,
		HistogramBins: cfg.Aggregates.HistogramBins,
		SkillTerms:    cfg.Aggregates.SkillTerms,
		Stopwords:     cfg.Aggregates.Stopwords,
	}
}
