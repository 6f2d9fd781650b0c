package domain

import (
	"strings"
	"unicode"
)

// attendingMarkers are matched as substrings, so "y" and "1" match loosely on purpose.
var attendingMarkers = []string{"참석", "참가", "yes", "y", "true", "1", "참석예정"}

// IsAttending is the fuzzy RSVP predicate: lower-case, drop all whitespace,
// then look for any attending marker as a substring.
func IsAttending(rsvp string) bool {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(rsvp))
	for _, m := range attendingMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
