package httpapi

import (
	"net/http"

	"jobview-engine/internal/logging"
)

// NewMux wires every route onto a fresh mux.
func NewMux(d Deps) *http.ServeMux {
	d.Logger = logging.OrNop(d.Logger)
	mux := http.NewServeMux()

	// Page
	ph := PageHandler{Deps: d}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Index,
	}))

	// Jobs
	jh := JobsHandler{Deps: d}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs.csv", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.CSV,
	}))

	// Aggregates
	sh := StatsHandler{Deps: d}
	mux.HandleFunc("/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Stats,
	}))
	mux.HandleFunc("/facets", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Facets,
	}))
	mux.HandleFunc("/report.pdf", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Report,
	}))

	// Admin
	ah := AdminHandler{Deps: d}

	// Config; writes need the admin token
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ah.Guard(ch.Put),
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	mux.HandleFunc("/admin/reload", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Reload,
	}))
	mux.HandleFunc("/admin/shutdown", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Shutdown,
	}))

	hh := HealthHandler{Deps: d}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}

// Handler is the mux behind the standard middleware stack.
func Handler(d Deps) http.Handler {
	cfg := d.config()
	return Chain(NewMux(d),
		RequestID,
		Recover(d.Logger),
		AccessLog(d.Logger),
		Cors,
		RateLimit(cfg.HTTP.RatePerSec, cfg.HTTP.Burst),
	)
}
