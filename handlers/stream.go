package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	streamsvc "streamproxy/services/stream"
)

type redirectService interface {
	Redirect(ctx context.Context, req streamsvc.PlaybackRequest) string
}

// StreamHandler serves the playback routes and answers each with a redirect
// to the resolved stream URL.
type StreamHandler struct {
	Service       redirectService
	DefaultAPIKey string
}

var _ redirectService = (*streamsvc.Service)(nil)

func NewStreamHandler(s redirectService, defaultAPIKey string) *StreamHandler {
	return &StreamHandler{Service: s, DefaultAPIKey: defaultAPIKey}
}

// Redirect handles every playback route; the route variants differ only in
// how the client embeds the item id in the path.
func (h *StreamHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID := vars["itemID"]

	mediaSourceID := r.URL.Query().Get("MediaSourceId")
	apiKey := r.URL.Query().Get("api_key")
	if apiKey == "" {
		apiKey = h.DefaultAPIKey
	}

	requestID := uuid.NewString()
	userAgent := r.Header.Get("User-Agent")
	log.Printf("[stream-handler] [%s] item=%s source=%s ua=%q path=%s", requestID, itemID, mediaSourceID, userAgent, r.URL.Path)

	target := h.Service.Redirect(r.Context(), streamsvc.PlaybackRequest{
		ItemID:        itemID,
		MediaSourceID: mediaSourceID,
		APIKey:        apiKey,
		UserAgent:     userAgent,
		RequestURL:    originalURL(r),
	})

	log.Printf("[stream-handler] [%s] redirecting item %s -> %q", requestID, itemID, target)

	// Location is written directly: http.Redirect would rewrite an empty or
	// relative target against the request path, and an unresolved request
	// must surface as an empty Location.
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusFound)
}

// originalURL reconstructs the full inbound URL; the gateway fixer uses it as
// a rewrite template.
func originalURL(r *http.Request) string {
	// Absolute-form request lines (proxy clients) already carry the full URL
	if strings.HasPrefix(r.RequestURI, "http://") || strings.HasPrefix(r.RequestURI, "https://") {
		return r.RequestURI
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host + r.RequestURI
}
