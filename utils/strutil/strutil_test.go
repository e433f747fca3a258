package strutil

import (
	"regexp"
	"testing"
)

func TestIsAbsoluteURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "http url", url: "http://emby.local:8096/", expected: true},
		{name: "https url", url: "https://gw.example/stream", expected: true},
		{name: "empty", url: "", expected: false},
		{name: "no scheme", url: "emby.local:8096", expected: false},
		{name: "bare hostname", url: "emby.local", expected: false},
		{name: "scheme without host", url: "http://", expected: false},
		{name: "path only", url: "/movies/a.mkv", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAbsoluteURL(tc.url); got != tc.expected {
				t.Errorf("IsAbsoluteURL(%q) = %v, want %v", tc.url, got, tc.expected)
			}
		})
	}
}

func TestEncodeSpecialChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text untouched", input: "/movies/a.mkv", expected: "/movies/a.mkv"},
		{name: "spaces and parens", input: "/My Folder (2024)", expected: "/My%20Folder%20%282024%29"},
		{name: "full table", input: ` "#%&(),:;<=>?@\|`, expected: "%20%22%23%25%26%28%29%2C%3A%3B%3C%3D%3E%3F%40%5C%7C"},
		{name: "plus sign", input: "a+b", expected: "a%2Bb"},
		{name: "full-width exclamation", input: "第１话！.mkv", expected: "第１话%EF%BC%81.mkv"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EncodeSpecialChars(tc.input); got != tc.expected {
				t.Errorf("EncodeSpecialChars(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCleanDirPath(t *testing.T) {
	pattern := regexp.MustCompile(`(?i)dir=(.*?)&MediaSourceId=`)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "captured segment encoded, rest untouched",
			path:     "/play?dir=/My Folder (2024)&MediaSourceId=abc",
			expected: "/play?dir=/My%20Folder%20%282024%29&MediaSourceId=abc",
		},
		{
			name:     "no marker returns input",
			path:     "/movies/My Folder (2024)/a.mkv",
			expected: "/movies/My Folder (2024)/a.mkv",
		},
		{
			name:     "empty capture returns input",
			path:     "/play?dir=&MediaSourceId=abc",
			expected: "/play?dir=&MediaSourceId=abc",
		},
		{name: "empty path", path: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanDirPath(pattern, tc.path); got != tc.expected {
				t.Errorf("CleanDirPath(%q) = %q, want %q", tc.path, got, tc.expected)
			}
		})
	}
}

func TestCleanDirPathNilPattern(t *testing.T) {
	if got := CleanDirPath(nil, "/a b"); got != "/a b" {
		t.Errorf("nil pattern should return the input, got %q", got)
	}
}
