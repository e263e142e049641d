package api

import (
	"net/http"

	"agro-mission-service/internal/api/handlers"
	"agro-mission-service/internal/planner"
	"agro-mission-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(repo ports.MissionRepository, coverage ports.CoveragePlanner, opts planner.Options) http.Handler {
	mux := http.NewServeMux()

	missionHandler := &handlers.MissionHandler{
		Repo:    repo,
		Planner: coverage,
		Opts:    opts,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/missions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			missionHandler.Build(w, r)
		case http.MethodGet:
			missionHandler.List(w, r)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/missions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		missionHandler.Get(w, r)
	})

	return loggingMiddleware(mux)
}
