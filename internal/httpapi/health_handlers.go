package httpapi

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	Deps Deps
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"ok":   true,
		"time": time.Now().Format(time.RFC3339),
	}
	if h.Deps.Snapshot != nil {
		if st := h.Deps.Snapshot.State(); st != nil {
			resp["source"] = st.Collection.Source()
			resp["schema"] = st.Collection.Schema().String()
			resp["records"] = st.Collection.Len()
			resp["loaded_at"] = st.LoadedAt.Format(time.RFC3339)
		}
	}
	writeJSON(w, resp)
}
