package gateway

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStreamURL(t *testing.T) {
	c := NewClient("https://gw.example/", "secret-token")

	got := c.BuildStreamURL("/movies/a.mkv", "ms1")
	require.True(t, strings.HasPrefix(got, "https://gw.example/stream?"), "got %q", got)

	parsed, err := url.Parse(got)
	require.NoError(t, err)

	q := parsed.Query()
	require.Equal(t, "/movies/a.mkv", q.Get("path"))
	require.Equal(t, "ms1", q.Get("mediaSourceId"))

	sum := md5.Sum([]byte("secret-token/movies/a.mkv"))
	require.Equal(t, hex.EncodeToString(sum[:]), q.Get("sign"))
}

func TestBuildStreamURLOmitsEmptyMediaSource(t *testing.T) {
	c := NewClient("https://gw.example", "t")

	parsed, err := url.Parse(c.BuildStreamURL("/movies/a.mkv", ""))
	require.NoError(t, err)
	require.False(t, parsed.Query().Has("mediaSourceId"))
}

func TestBuildStreamURLUnusable(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		path    string
	}{
		{name: "relative base url", baseURL: "gw.example", path: "/movies/a.mkv"},
		{name: "empty base url", baseURL: "", path: "/movies/a.mkv"},
		{name: "empty path", baseURL: "https://gw.example", path: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClient(tc.baseURL, "t")
			require.Empty(t, c.BuildStreamURL(tc.path, "ms1"))
		})
	}
}
