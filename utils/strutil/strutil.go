// Package strutil holds small string helpers shared by the stream services.
package strutil

import (
	"net/url"
	"regexp"
	"strings"
)

// specialCharEncoding maps characters that break alist path lookups to their
// percent-encoded form. The full-width exclamation mark shows up in media
// folder names sourced from Chinese release groups.
var specialCharEncoding = map[rune]string{
	' ':  "%20",
	'"':  "%22",
	'#':  "%23",
	'%':  "%25",
	'&':  "%26",
	'(':  "%28",
	')':  "%29",
	'+':  "%2B",
	',':  "%2C",
	':':  "%3A",
	';':  "%3B",
	'<':  "%3C",
	'=':  "%3D",
	'>':  "%3E",
	'?':  "%3F",
	'@':  "%40",
	'\\': "%5C",
	'|':  "%7C",
	'！': "%EF%BC%81",
}

// IsAbsoluteURL reports whether raw parses as a URL with both a scheme and a
// host. Configured base URLs that fail this check are treated as unusable
// rather than passed to the HTTP client.
func IsAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// EncodeSpecialChars percent-encodes the characters in specialCharEncoding,
// leaving everything else untouched.
func EncodeSpecialChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if enc, ok := specialCharEncoding[r]; ok {
			b.WriteString(enc)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanDirPath looks for the first capture group of pattern inside dirPath and
// percent-encodes the special characters within that captured segment only.
// When the pattern does not match, or the group is empty, dirPath is returned
// unchanged.
func CleanDirPath(pattern *regexp.Regexp, dirPath string) string {
	if dirPath == "" || pattern == nil {
		return dirPath
	}
	match := pattern.FindStringSubmatch(dirPath)
	if match == nil || len(match) < 2 || match[1] == "" {
		return dirPath
	}
	return strings.ReplaceAll(dirPath, match[1], EncodeSpecialChars(match[1]))
}
