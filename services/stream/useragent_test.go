package stream

import "testing"

func TestIsAllowedUserAgent(t *testing.T) {
	tests := []struct {
		name         string
		userAgent    string
		allowList    []string
		webAllowList []string
		expected     bool
	}{
		{name: "no restriction configured", userAgent: "anything at all", expected: true},
		{name: "empty ua with no restriction", userAgent: "", expected: true},
		{name: "allow list match", userAgent: "VidHub/1.2.3", allowList: []string{"vidhub"}, expected: true},
		{name: "web allow list match", userAgent: "Mozilla/5.0 Chrome/124.0", webAllowList: []string{"chrome"}, expected: true},
		{name: "no list matches", userAgent: "SomeClient/1.0", allowList: []string{"vidhub"}, webAllowList: []string{"chrome"}, expected: false},
		{name: "match is case insensitive", userAgent: "YAMBY/2.0", allowList: []string{"Yamby"}, expected: true},
		{name: "empty ua matches nothing", userAgent: "", allowList: []string{"vidhub"}, expected: false},

		// Infuse in non-direct mode is blocked even when a list would match
		{name: "infuse without direct", userAgent: "Infuse/7.0", allowList: []string{"infuse"}, expected: false},
		{name: "infuse mixed case without direct", userAgent: "iNfUsE-Library", allowList: []string{"infuse"}, expected: false},
		{name: "infuse direct mode allowed", userAgent: "Infuse/7.0 Direct-Mode", allowList: []string{"infuse"}, expected: true},
		{name: "infuse block needs a configured list", userAgent: "Infuse/7.0", expected: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IsAllowedUserAgent(tc.userAgent, tc.allowList, tc.webAllowList)
			if got != tc.expected {
				t.Errorf("IsAllowedUserAgent(%q, %v, %v) = %v, want %v",
					tc.userAgent, tc.allowList, tc.webAllowList, got, tc.expected)
			}
		})
	}
}
