// Package stream contains the redirect decision engine: given one playback
// request it resolves the item's storage path through the Emby server, applies
// user-agent and calendar substitutions, and rewrites the path into the final
// redirect target for the active backend.
package stream

// PlaybackRequest carries one inbound playback request through the redirect
// decision. Instances are built by the HTTP handler and discarded once the
// redirect target is known.
type PlaybackRequest struct {
	ItemID        string
	MediaSourceID string
	APIKey        string
	UserAgent     string
	RequestURL    string
}

// OverrideReason records which rule, if any, replaced the resolved path.
type OverrideReason int

const (
	OverrideNone OverrideReason = iota
	OverrideForbiddenUA
	OverrideMemorialDay
	OverrideIncidentDay
)

func (r OverrideReason) String() string {
	switch r {
	case OverrideForbiddenUA:
		return "forbidden-ua"
	case OverrideMemorialDay:
		return "memorial-day"
	case OverrideIncidentDay:
		return "incident-day"
	default:
		return "none"
	}
}

// ResolvedPath is the outcome of path resolution. RawPath may be empty when
// nothing resolved and no override was configured; the engine then falls back
// to the forbidden stream path.
type ResolvedPath struct {
	RawPath    string
	Overridden bool
	Reason     OverrideReason
}
