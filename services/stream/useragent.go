package stream

import "strings"

// IsAllowedUserAgent decides whether a client may see the real stream.
//
// With both allow lists empty there is no restriction. Infuse in non-direct
// mode is rejected outright regardless of the lists: it probes byte ranges in
// a way the gateway backend cannot serve. Otherwise the user agent must
// contain an entry of either list, case-insensitively.
func IsAllowedUserAgent(userAgent string, allowList, webAllowList []string) bool {
	if len(allowList) == 0 && len(webAllowList) == 0 {
		return true
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "infuse") && !strings.Contains(ua, "direct") {
		return false
	}

	return containsAny(ua, allowList) || containsAny(ua, webAllowList)
}

func containsAny(loweredUA string, list []string) bool {
	for _, entry := range list {
		if strings.Contains(loweredUA, strings.ToLower(entry)) {
			return true
		}
	}
	return false
}
