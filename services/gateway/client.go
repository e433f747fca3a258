// Package gateway builds token-signed stream URLs for the streaming-gateway
// backend. The gateway verifies the signature itself; no round trip happens
// here.
package gateway

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"

	"streamproxy/utils/strutil"
)

// Client signs storage paths for the gateway backend.
type Client struct {
	baseURL string
	token   string
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

// BuildStreamURL produces the redirect target for path on the gateway. It
// returns the empty string when the configured base URL is unusable or the
// path is empty, never an error.
func (c *Client) BuildStreamURL(path, mediaSourceID string) string {
	if path == "" {
		return ""
	}
	if !strutil.IsAbsoluteURL(c.baseURL) {
		return ""
	}

	sum := md5.Sum([]byte(c.token + path))

	q := url.Values{}
	q.Set("path", path)
	if mediaSourceID != "" {
		q.Set("mediaSourceId", mediaSourceID)
	}
	q.Set("sign", hex.EncodeToString(sum[:]))

	return c.baseURL + "/stream?" + q.Encode()
}
