package httpapi

import (
	"net/http"

	"jobview-engine/internal/aggregate"
	"jobview-engine/internal/config"
	"jobview-engine/internal/domain"
	"jobview-engine/internal/filter"
	"jobview-engine/internal/snapshot"
)

// view is one request's slice of the active snapshot.
type view struct {
	cfg      config.Config
	criteria domain.FilterCriteria
	scope    aggregate.Scope
	all      *domain.Collection
	filtered *domain.Collection
}

// aggregates summarizes whichever collection the scope picks.
func (v view) aggregates() aggregate.Aggregates {
	return aggregate.Aggregate(v.scope.Pick(v.all, v.filtered), aggregateOptions(v.cfg))
}

// buildView parses the query and filters the current snapshot. It writes the
// error response itself and reports false when the request cannot proceed.
func buildView(w http.ResponseWriter, r *http.Request, snap *snapshot.Store, cfg config.Config) (view, bool) {
	q := r.URL.Query()
	crit, err := parseCriteria(q)
	if err != nil {
		badQuery(w, r, err)
		return view{}, false
	}
	scope, err := parseScope(q, cfg)
	if err != nil {
		badQuery(w, r, err)
		return view{}, false
	}

	var all *domain.Collection
	if snap != nil {
		all = snap.Current()
	}
	if all == nil {
		noSnapshot(w, r)
		return view{}, false
	}

	return view{
		cfg:      cfg,
		criteria: crit,
		scope:    scope,
		all:      all,
		filtered: filter.Apply(all, crit),
	}, true
}
