package security

import (
	"net/url"
	"regexp"
	"strings"
)

const sanitizedURLMaxChars = 200

var controlWhitespace = regexp.MustCompile(`[\r\n\t]+`)
var repeatedSpace = regexp.MustCompile(`\s+`)

// SanitizeURL prepares a caller-supplied URL for logging: the query is masked,
// the fragment dropped, control whitespace removed and the result truncated.
// Query strings routinely carry tokens and must never reach the logs.
func SanitizeURL(rawURL string) string {
	s := strings.TrimSpace(controlWhitespace.ReplaceAllString(rawURL, " "))

	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		if u.RawQuery != "" {
			u.RawQuery = "…"
		}
		u.Fragment = ""
		s = u.String()
	}

	s = strings.TrimSpace(repeatedSpace.ReplaceAllString(s, " "))
	if len(s) <= sanitizedURLMaxChars {
		return s
	}
	return strings.TrimRight(s[:sanitizedURLMaxChars], " ") + "…"
}
