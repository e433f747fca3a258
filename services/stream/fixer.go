package stream

import (
	"context"
	"regexp"

	"streamproxy/utils/strutil"
)

// FileResolver resolves a storage path against the file-hosting service.
type FileResolver interface {
	ResolveRawURL(ctx context.Context, path string) string
}

// StreamURLBuilder produces a signed gateway URL for a storage path.
type StreamURLBuilder interface {
	BuildStreamURL(path, mediaSourceID string) string
}

// PathFixer rewrites a resolved storage path into the final redirect target.
// Fix returns the rewritten path and whether the original request URL was
// passed through unmodified; StreamURL performs the backend resolution and
// returns the empty string when no URL could be produced.
type PathFixer interface {
	Fix() (string, bool)
	StreamURL(ctx context.Context) string
}

// GatewayFixer hands the resolved path to the token-signing gateway builder.
type GatewayFixer struct {
	originalURL   string
	builder       StreamURLBuilder
	path          string
	mediaSourceID string
}

func NewGatewayFixer(originalURL string, builder StreamURLBuilder, path, mediaSourceID string) *GatewayFixer {
	return &GatewayFixer{
		originalURL:   originalURL,
		builder:       builder,
		path:          path,
		mediaSourceID: mediaSourceID,
	}
}

// Fix keeps the original request URL; the gateway rewrite happens entirely
// inside the builder.
func (f *GatewayFixer) Fix() (string, bool) {
	return f.originalURL, true
}

func (f *GatewayFixer) StreamURL(_ context.Context) string {
	return f.builder.BuildStreamURL(f.path, f.mediaSourceID)
}

var (
	leadingSlashes = regexp.MustCompile(`^/*`)
	// dirSegmentPattern matches the directory hint some clients embed in the
	// stream path between "dir=" and "&MediaSourceId=".
	dirSegmentPattern = regexp.MustCompile(`(?i)dir=(.*?)&MediaSourceId=`)
)

// AlistFixer normalizes the resolved path and resolves it to a direct URL
// through the file-hosting service.
type AlistFixer struct {
	originalURL string
	resolver    FileResolver
	path        string
}

func NewAlistFixer(originalURL string, resolver FileResolver, path string) *AlistFixer {
	return &AlistFixer{originalURL: originalURL, resolver: resolver, path: path}
}

// Fix collapses any run of leading slashes to one, then percent-encodes the
// special characters inside an embedded dir=...&MediaSourceId= segment when
// one is present. Without a resolved path the original request URL is passed
// through unmodified.
func (f *AlistFixer) Fix() (string, bool) {
	if f.path == "" {
		return f.originalURL, true
	}
	fixed := leadingSlashes.ReplaceAllString(f.path, "/")
	return strutil.CleanDirPath(dirSegmentPattern, fixed), false
}

func (f *AlistFixer) StreamURL(ctx context.Context) string {
	fixedPath, _ := f.Fix()
	return f.resolver.ResolveRawURL(ctx, fixedPath)
}
