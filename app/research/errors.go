package research

import (
	"errors"

	"github.com/topicwire/topicwire/app/fetcher"
	"github.com/topicwire/topicwire/app/security"
)

var (
	// ErrNoFeedsConfigured: the feed allowlist is empty. A configuration
	// problem, not a property of the query.
	ErrNoFeedsConfigured = errors.New("no feeds configured")

	// ErrNoKeywordMatch: aggregation worked but no item matched the query.
	// Callers may treat this as a clean early stop.
	ErrNoKeywordMatch = errors.New("no feed item matched the query")

	// ErrNoCandidates: items matched, but not a single article body could be
	// fetched.
	ErrNoCandidates = errors.New("no candidate article could be fetched")

	// ErrNoContent: the page was fetched but no readable body text survived
	// extraction.
	ErrNoContent = errors.New("no readable content in page")
)

// FailureKind is the closed classification of acquisition failures exposed to
// callers. Every error leaving this package maps onto exactly one kind.
type FailureKind string

const (
	FailureInvalidURL         FailureKind = "invalid_url"
	FailureUnreachable        FailureKind = "unreachable"
	FailureTooLarge           FailureKind = "too_large"
	FailureUnsupportedContent FailureKind = "unsupported_content"
	FailureNoCandidates       FailureKind = "no_candidates"
	FailureNoKeywordMatch     FailureKind = "no_keyword_match"
	FailureConfiguration      FailureKind = "configuration"
)

// ClassifyError folds lower-level sentinels into the closed failure taxonomy.
func ClassifyError(err error) FailureKind {
	switch {
	case errors.Is(err, ErrNoFeedsConfigured):
		return FailureConfiguration
	case errors.Is(err, ErrNoKeywordMatch):
		return FailureNoKeywordMatch
	case errors.Is(err, ErrNoCandidates):
		return FailureNoCandidates
	case errors.Is(err, fetcher.ErrTooLarge):
		return FailureTooLarge
	case errors.Is(err, fetcher.ErrUnsupportedContentType), errors.Is(err, ErrNoContent):
		return FailureUnsupportedContent
	case errors.Is(err, security.ErrInvalidURL),
		errors.Is(err, security.ErrSchemeNotAllowed),
		errors.Is(err, security.ErrCredentialsInURL),
		errors.Is(err, security.ErrLocalhostTarget),
		errors.Is(err, security.ErrDomainNotAllowed),
		errors.Is(err, security.ErrHostUnresolvable),
		errors.Is(err, security.ErrBlockedAddress):
		return FailureInvalidURL
	default:
		return FailureUnreachable
	}
}
