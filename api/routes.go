package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"streamproxy/handlers"
)

// corsMiddleware mirrors the permissive CORS policy of the original
// deployment: media clients issue playback requests from arbitrary origins.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Register mounts the playback redirect endpoints onto the provided router.
// The six route shapes cover the path variants Emby clients use: Yamby,
// library-less Emby >= 4.8.0.39, legacy Emby stream URLs, Emby < 4.8.0.39,
// Infuse, and Conflux.
func Register(r *mux.Router, streamHandler *handlers.StreamHandler) {
	r.Use(corsMiddleware)

	r.HandleFunc("/api/health", handleHealth).Methods(http.MethodGet)

	// OPTIONS is listed so the CORS middleware sees preflight requests; it
	// answers them before the redirect handler runs.
	methods := []string{http.MethodGet, http.MethodOptions}
	r.HandleFunc("/videos/{itemID}/original.{mediaType}", streamHandler.Redirect).Methods(methods...)
	r.HandleFunc("/emby/videos/{itemID}/original.{mediaType}", streamHandler.Redirect).Methods(methods...)
	r.HandleFunc("/emby/videos/{itemID}/stream.{mediaType}", streamHandler.Redirect).Methods(methods...)
	r.HandleFunc("/Videos/{itemID}/original", streamHandler.Redirect).Methods(methods...)
	r.HandleFunc("/Videos/{itemID}/stream", streamHandler.Redirect).Methods(methods...)
	r.HandleFunc("/emby/Videos/{itemID}/stream.{mediaType}", streamHandler.Redirect).Methods(methods...)
}
