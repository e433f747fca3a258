package stream

import (
	"context"
	"log"
	"time"

	"streamproxy/config"
)

// PathSource resolves an item's storage path from the upstream media server.
// Implementations return the empty string on any failure.
type PathSource interface {
	FetchFilePath(ctx context.Context, itemID, mediaSourceID, apiKey string) string
}

// Resolver turns a playback request into the storage path to stream, applying
// the override rules in fixed precedence: incident day beats memorial day
// beats forbidden user agent beats the upstream lookup. An override whose
// configured path is empty never fires, so a misconfigured override cannot
// clear an already resolved path.
type Resolver struct {
	source PathSource
	cfg    config.Settings
	now    func() time.Time
}

func NewResolver(source PathSource, cfg config.Settings) *Resolver {
	return &Resolver{source: source, cfg: cfg, now: time.Now}
}

func (r *Resolver) Resolve(ctx context.Context, req PlaybackRequest) ResolvedPath {
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = r.cfg.Emby.APIKey
	}

	resolved := ResolvedPath{
		RawPath: r.source.FetchFilePath(ctx, req.ItemID, req.MediaSourceID, apiKey),
	}

	if !IsAllowedUserAgent(req.UserAgent, r.cfg.Access.UserAgentAllowList, r.cfg.Access.WebUserAgentAllowList) {
		log.Printf("[stream] [%s] user agent %q not allowed", req.ItemID, req.UserAgent)
		if r.cfg.Access.ForbiddenStreamPath != "" {
			resolved = ResolvedPath{
				RawPath:    r.cfg.Access.ForbiddenStreamPath,
				Overridden: true,
				Reason:     OverrideForbiddenUA,
			}
		}
	}

	switch ActiveOverride(r.now()) {
	case CalendarMemorialDay:
		if r.cfg.Overrides.MemorialDayStreamPath != "" {
			log.Printf("[stream] [%s] memorial day window active, substituting stream", req.ItemID)
			resolved = ResolvedPath{
				RawPath:    r.cfg.Overrides.MemorialDayStreamPath,
				Overridden: true,
				Reason:     OverrideMemorialDay,
			}
		}
	case CalendarIncidentDay:
		if r.cfg.Overrides.IncidentDayStreamPath != "" {
			log.Printf("[stream] [%s] incident day window active, substituting stream", req.ItemID)
			resolved = ResolvedPath{
				RawPath:    r.cfg.Overrides.IncidentDayStreamPath,
				Overridden: true,
				Reason:     OverrideIncidentDay,
			}
		}
	}

	return resolved
}
