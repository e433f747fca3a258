package stream

import (
	"context"
	"log"

	"streamproxy/config"
)

// RedirectMode selects which path-fixing strategy the engine uses. It is
// derived from configuration once at construction, never per request.
type RedirectMode int

const (
	ModeGateway RedirectMode = iota
	ModeAlist
)

func (m RedirectMode) String() string {
	if m == ModeAlist {
		return "alist"
	}
	return "gateway"
}

// SelectMode picks the active strategy: alist when both its URL and API key
// are configured, gateway otherwise. The two modes are mutually exclusive for
// the lifetime of the process.
func SelectMode(cfg config.Settings) RedirectMode {
	if cfg.Alist.URL != "" && cfg.Alist.APIKey != "" {
		return ModeAlist
	}
	return ModeGateway
}

// Service is the redirect engine. It is stateless across requests; the only
// shared state is the read-only configuration and the mode chosen at
// construction, so concurrent use needs no locking.
type Service struct {
	cfg      config.Settings
	mode     RedirectMode
	resolver *Resolver
	files    FileResolver
	gateway  StreamURLBuilder
}

func NewService(cfg config.Settings, source PathSource, files FileResolver, gateway StreamURLBuilder) *Service {
	return &Service{
		cfg:      cfg,
		mode:     SelectMode(cfg),
		resolver: NewResolver(source, cfg),
		files:    files,
		gateway:  gateway,
	}
}

// Mode returns the strategy selected at construction.
func (s *Service) Mode() RedirectMode {
	return s.mode
}

// Redirect decides the target URL for one playback request. An unresolvable
// request yields the configured forbidden stream path; when that too is empty
// the caller redirects to an empty location, a documented degenerate case
// kept from the original deployment.
func (s *Service) Redirect(ctx context.Context, req PlaybackRequest) string {
	resolved := s.resolver.Resolve(ctx, req)
	if resolved.Overridden {
		log.Printf("[stream] [%s] path overridden (%s) -> %q", req.ItemID, resolved.Reason, resolved.RawPath)
	}

	if resolved.RawPath == "" {
		log.Printf("[stream] [%s] no playable path resolved, using fallback %q", req.ItemID, s.cfg.Access.ForbiddenStreamPath)
		return s.cfg.Access.ForbiddenStreamPath
	}

	var fixer PathFixer
	switch s.mode {
	case ModeAlist:
		fixer = NewAlistFixer(req.RequestURL, s.files, resolved.RawPath)
	default:
		fixer = NewGatewayFixer(req.RequestURL, s.gateway, resolved.RawPath, req.MediaSourceID)
	}

	streamURL := fixer.StreamURL(ctx)
	log.Printf("[stream] [%s] %s stream url -> %q", req.ItemID, s.mode, streamURL)
	return streamURL
}
