package alist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"streamproxy/utils/strutil"
)

const fsGetPath = "api/fs/get"

// Client resolves storage paths into direct download URLs through the alist
// fs/get API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type fsGetRequest struct {
	Path     string `json:"path"`
	Password string `json:"password"`
}

type fsGetResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		RawURL string `json:"raw_url"`
	} `json:"data"`
}

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

// ResolveRawURL asks alist for the direct URL behind path. It returns the
// empty string on any failure; the redirect engine treats that as an
// unresolved stream.
func (c *Client) ResolveRawURL(ctx context.Context, path string) string {
	if path == "" {
		return ""
	}

	reqURL := c.baseURL + fsGetPath
	if !strutil.IsAbsoluteURL(reqURL) {
		log.Printf("[alist] configured URL is not an absolute URL, skipping lookup")
		return ""
	}

	body, err := json.Marshal(fsGetRequest{Path: path, Password: ""})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return ""
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[alist] fs/get request failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[alist] fs/get returned %s for path %q", resp.Status, path)
		return ""
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return ""
	}

	var fileInfo fsGetResponse
	if err := json.NewDecoder(resp.Body).Decode(&fileInfo); err != nil {
		log.Printf("[alist] decode fs/get response: %v", err)
		return ""
	}
	return fileInfo.Data.RawURL
}

// setHeaders mimics a browser session; some alist deployments sit behind
// filters that reject non-browser user agents.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,zh-Hans;q=0.8,en;q=0.7")
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Origin", strings.TrimSuffix(c.baseURL, "/"))
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Mobile Safari/537.36")
}

// String implements fmt.Stringer for config dump logging without leaking the
// API key.
func (c *Client) String() string {
	return fmt.Sprintf("alist{url: %s}", c.baseURL)
}
