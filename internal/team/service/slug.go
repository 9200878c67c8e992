package service

import (
	"strings"

	"github.com/google/uuid"
)

// slugSuffixLen is the number of random characters appended to a slug.
const slugSuffixLen = 8

// generateSlug builds a human-readable unique slug from the team name and
// event title. Uniqueness is probabilistic here; the create loop retries on a
// database collision.
func generateSlug(teamName, eventTitle string) string {
	base := sanitize(teamName + "-" + eventTitle)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:slugSuffixLen]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// generateTeamCode builds the out-of-band invitation code.
func generateTeamCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// sanitize lowercases and reduces a string to hyphen-separated alphanumerics.
func sanitize(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
