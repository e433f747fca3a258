package emby

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"

	"streamproxy/utils/strutil"
)

const playbackInfoPath = "Items/%s/PlaybackInfo"

// Client looks up item storage paths through the Emby server API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// PlaybackInfoResponse is the subset of the Emby PlaybackInfo payload the
// proxy cares about.
type PlaybackInfoResponse struct {
	MediaSources []MediaSourceInfo `json:"MediaSources"`
}

// MediaSourceInfo describes one file/stream variant of an item.
type MediaSourceInfo struct {
	ID        string `json:"Id"`
	Path      string `json:"Path"`
	Protocol  string `json:"Protocol,omitempty"`
	Container string `json:"Container,omitempty"`
	Name      string `json:"Name,omitempty"`
}

// NewClient creates an Emby API client. apiKey is the default key used when a
// request does not carry its own.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// FetchFilePath resolves the storage path of the media source identified by
// itemID and mediaSourceID. Every failure mode (bad config, network error,
// non-200, non-JSON, unknown media source) returns the empty string; callers
// fall back on their own policy rather than handling errors here.
func (c *Client) FetchFilePath(ctx context.Context, itemID, mediaSourceID, apiKey string) string {
	if itemID == "" || mediaSourceID == "" {
		return ""
	}
	if apiKey == "" {
		apiKey = c.apiKey
	}

	reqURL := c.baseURL + fmt.Sprintf(playbackInfoPath, url.PathEscape(itemID))
	if !strutil.IsAbsoluteURL(reqURL) {
		log.Printf("[emby] configured server URL is not an absolute URL, skipping lookup")
		return ""
	}

	var info *PlaybackInfoResponse
	err := retry.Do(
		func() error {
			var err error
			info, err = c.playbackInfo(ctx, reqURL, mediaSourceID, apiKey)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		log.Printf("[emby] playback info lookup failed for item %s: %v", itemID, err)
		return ""
	}

	for _, source := range info.MediaSources {
		if source.ID == mediaSourceID {
			return source.Path
		}
	}
	return ""
}

// playbackInfo performs one PlaybackInfo request. Non-2xx statuses other than
// 5xx are unrecoverable: retrying a 401 or 404 cannot succeed.
func (c *Client) playbackInfo(ctx context.Context, reqURL, mediaSourceID, apiKey string) (*PlaybackInfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}

	q := req.URL.Query()
	q.Set("MediaSourceId", mediaSourceID)
	q.Set("api_key", apiKey)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emby api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("playback info failed: %s", resp.Status)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, err
		}
		return nil, retry.Unrecoverable(err)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil, retry.Unrecoverable(fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type")))
	}

	var info PlaybackInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
	}
	return &info, nil
}
