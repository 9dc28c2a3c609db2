package httpapi

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"time"
)

const AdminTokenHeader = "X-Admin-Token"

type AdminHandler struct {
	Deps Deps
}

// authorized checks the admin token header. It writes the error response
// itself and reports false when the request must stop.
func (h AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.Deps.AdminToken == nil {
		WriteError(w, r, http.StatusForbidden, "admin_disabled", "no admin token configured")
		return false
	}
	want, err := h.Deps.AdminToken()
	if err != nil || want == "" {
		WriteError(w, r, http.StatusForbidden, "admin_disabled", "no admin token configured")
		return false
	}
	got := r.Header.Get(AdminTokenHeader)
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		WriteError(w, r, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return false
	}
	return true
}

// Guard runs next only for requests carrying the admin token.
func (h AdminHandler) Guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.authorized(w, r) {
			next(w, r)
		}
	}
}

// Reload re-reads the listings file. On failure the previous snapshot keeps
// serving and the error is returned to the caller.
func (h AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	if h.Deps.Snapshot == nil {
		noSnapshot(w, r)
		return
	}
	st, err := h.Deps.Snapshot.Reload(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusUnprocessableEntity, "reload_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"ok":        true,
		"records":   st.Collection.Len(),
		"schema":    st.Collection.Schema().String(),
		"loaded_at": st.LoadedAt.Format(time.RFC3339),
	})
}

// Shutdown only answers loopback callers holding the admin token.
func (h AdminHandler) Shutdown(w http.ResponseWriter, r *http.Request) {
	if !isLoopback(r.RemoteAddr) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}
	if !h.authorized(w, r) {
		return
	}
	if h.Deps.Shutdown == nil {
		WriteError(w, r, http.StatusNotImplemented, "not_supported", "shutdown is not available")
		return
	}

	// Respond immediately, then shutdown asynchronously
	writeJSON(w, map[string]any{"ok": true, "message": "shutting down"})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Deps.Shutdown(ctx); err != nil {
			h.Deps.Logger.Warn().Err(err).Msg("shutdown")
		}
	}()
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		// RemoteAddr can sometimes be just a host
		host = remoteAddr
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
