package feed

import (
	"net/url"
	"strings"
)

// Link-scoping policy: decides whether a feed-supplied item link may be handed
// to the fetcher at all. This runs before, and independently of, the
// validator's own allowlist check.
const (
	PolicySameDomain = "A"
	PolicyPermissive = "B"
)

// LinkAllowed applies the configured policy to one item link.
//
// Policy A (conservative): links on the feed's own domain, or a subdomain of
// it, always pass. Anything else passes only when a domain allowlist is
// configured; the validator still gets the final word. Without an allowlist
// the item is denied and skipped, never failing the batch.
//
// Policy B (permissive): every link passes; safety is deferred entirely to the
// validator and fetcher.
func LinkAllowed(itemLink, feedURL, policy string, allowlist []string) bool {
	if policy == PolicyPermissive {
		return true
	}

	itemHost := hostOf(itemLink)
	feedHost := hostOf(feedURL)
	if itemHost == "" || feedHost == "" {
		return false
	}

	if itemHost == feedHost || strings.HasSuffix(itemHost, "."+feedHost) {
		return true
	}

	// With an allowlist configured the validator makes the final admission
	// decision; without one, off-domain links are denied outright.
	return len(allowlist) > 0
}

func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
}
