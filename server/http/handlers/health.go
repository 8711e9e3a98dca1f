package handlers

import (
	"context"
	"net/http"
	"time"

	"analytics-service/internal/store"
)

// Health answers 200 when the store responds; the probe is a cheap count.
func Health(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if _, err := st.Count(ctx, store.Quests); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"error","stage":"retrieve","message":"store unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
