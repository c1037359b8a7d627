package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alexandreovs/oqueassitir/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Register mounts API endpoints onto the provided router.
func Register(r *mux.Router, suggestHandler *handlers.SuggestHandler) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)

	api.HandleFunc("/suggestions", suggestHandler.Start).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/suggestions/{id}/next", suggestHandler.Next).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/suggestions/{id}", suggestHandler.Discard).Methods(http.MethodDelete, http.MethodOptions)

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
}
