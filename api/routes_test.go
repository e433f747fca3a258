package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"streamproxy/handlers"
	streamsvc "streamproxy/services/stream"
)

type fakeRedirectService struct{}

func (fakeRedirectService) Redirect(_ context.Context, _ streamsvc.PlaybackRequest) string {
	return "https://cdn.example/a.mkv"
}

func testRouter() *mux.Router {
	r := mux.NewRouter()
	Register(r, handlers.NewStreamHandler(fakeRedirectService{}, "k"))
	return r
}

func TestHealthRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS origin = %q, want *", got)
	}
}

func TestPlaybackRoutes(t *testing.T) {
	paths := []string{
		"/videos/42/original.mp4",
		"/emby/videos/42/original.mkv",
		"/emby/videos/42/stream.mkv",
		"/Videos/42/original",
		"/Videos/42/stream",
		"/emby/Videos/42/stream.ts",
	}

	router := testRouter()
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
			}
			if got := rec.Header().Get("Location"); got != "https://cdn.example/a.mkv" {
				t.Errorf("Location = %q", got)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/videos/42/original.mp4", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("missing Access-Control-Allow-Methods header")
	}
}
