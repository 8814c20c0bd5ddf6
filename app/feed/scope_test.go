package feed

import "testing"

func TestLinkAllowedSameDomain(t *testing.T) {
	feedURL := "https://feed.example.com/rss"

	if !LinkAllowed("https://feed.example.com/article/1", feedURL, PolicySameDomain, nil) {
		t.Error("Expected same-host link to be allowed")
	}
	if !LinkAllowed("https://news.feed.example.com/article/1", feedURL, PolicySameDomain, nil) {
		t.Error("Expected subdomain link to be allowed")
	}
	if LinkAllowed("https://other.example.org/article/1", feedURL, PolicySameDomain, nil) {
		t.Error("Expected off-domain link to be denied without an allowlist")
	}
}

func TestLinkAllowedOffDomainWithAllowlist(t *testing.T) {
	feedURL := "https://feed.example.com/rss"
	allowlist := []string{"other.example.org"}

	// The validator still makes the final admission decision; the policy only
	// lets the candidate proceed that far.
	if !LinkAllowed("https://other.example.org/article/1", feedURL, PolicySameDomain, allowlist) {
		t.Error("Expected off-domain link to pass the policy when an allowlist is configured")
	}
}

func TestLinkAllowedPermissiveMode(t *testing.T) {
	feedURL := "https://feed.example.com/rss"

	if !LinkAllowed("https://anywhere.example.net/x", feedURL, PolicyPermissive, nil) {
		t.Error("Expected permissive mode to allow everything")
	}
}

func TestLinkAllowedUnparseableLinks(t *testing.T) {
	feedURL := "https://feed.example.com/rss"

	if LinkAllowed("", feedURL, PolicySameDomain, nil) {
		t.Error("Expected empty link to be denied")
	}
	if LinkAllowed("://bad", feedURL, PolicySameDomain, nil) {
		t.Error("Expected unparseable link to be denied")
	}
}
