package research

import (
	"cmp"
	"context"
	"log/slog"

	"github.com/topicwire/topicwire/app/cfg"
	"github.com/topicwire/topicwire/app/feed"
	"github.com/topicwire/topicwire/app/fetcher"
	"github.com/topicwire/topicwire/app/security"
)

// ArticleDocument is the final product of an acquisition: validated source
// URL, a title, and continuous body text ready for downstream analysis.
type ArticleDocument struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type FetcherInterface interface {
	Fetch(ctx context.Context, rawURL string, purpose security.Purpose, extraHeaders map[string]string) (*fetcher.FetchResult, error)
}

type AggregatorInterface interface {
	Run(ctx context.Context, feedURLs []string) []feed.Item
}

type ExtractorInterface interface {
	Run(data []byte, charset, pageURL string) (*feed.Extracted, error)
}

// Service resolves a user-supplied topic into article documents. A raw URL
// goes straight through validation and fetching; a keyword query goes through
// feed aggregation, ranking and the link-scoping policy first. All state is
// read-only after construction; the service is safe for concurrent calls.
type Service struct {
	fetcher     FetcherInterface
	aggregator  AggregatorInterface
	extractor   ExtractorInterface
	feedURLs    []string
	maxArticles int
	rankLimit   int
	linkPolicy  string
	allowlist   []string
}

func NewService(c *cfg.Cfg, f FetcherInterface, a AggregatorInterface, e ExtractorInterface, feedURLs []string) *Service {
	return &Service{
		fetcher:     f,
		aggregator:  a,
		extractor:   e,
		feedURLs:    feedURLs,
		maxArticles: c.MaxArticles,
		rankLimit:   c.RankLimit,
		linkPolicy:  c.LinkPolicy,
		allowlist:   c.AllowedDomains,
	}
}

// FetchDirect acquires a single user-supplied URL.
func (s *Service) FetchDirect(ctx context.Context, rawURL string) (*ArticleDocument, error) {
	result, err := s.fetcher.Fetch(ctx, rawURL, security.PurposeArticle, nil)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Run(result.Body, result.Charset, result.URL)
	if err != nil {
		return nil, ErrNoContent
	}

	return &ArticleDocument{
		URL:   result.URL,
		Title: extracted.Title,
		Body:  extracted.Body,
	}, nil
}

// SearchFeeds resolves a keyword query against the configured feeds and
// returns between one and the configured cap of article documents. Individual
// candidate failures are logged and skipped; only total exhaustion fails.
func (s *Service) SearchFeeds(ctx context.Context, query string) ([]ArticleDocument, error) {
	if len(s.feedURLs) == 0 {
		return nil, ErrNoFeedsConfigured
	}

	items := s.aggregator.Run(ctx, s.feedURLs)

	ranked := feed.Rank(items, query, s.rankLimit)
	if len(ranked) == 0 {
		return nil, ErrNoKeywordMatch
	}

	documents := make([]ArticleDocument, 0, s.maxArticles)
	for _, candidate := range ranked {
		if len(documents) >= s.maxArticles {
			break
		}

		if !feed.LinkAllowed(candidate.Link, candidate.FeedURL, s.linkPolicy, s.allowlist) {
			slog.Debug("Candidate denied by link policy",
				"link", security.SanitizeURL(candidate.Link))
			continue
		}

		doc, err := s.fetchCandidate(ctx, candidate)
		if err != nil {
			slog.Warn("Candidate fetch failed, trying next",
				"link", security.SanitizeURL(candidate.Link), "error", err)
			continue
		}
		documents = append(documents, *doc)
	}

	if len(documents) == 0 {
		return nil, ErrNoCandidates
	}
	return documents, nil
}

func (s *Service) fetchCandidate(ctx context.Context, candidate feed.ScoredItem) (*ArticleDocument, error) {
	result, err := s.fetcher.Fetch(ctx, candidate.Link, security.PurposeArticle, nil)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Run(result.Body, result.Charset, result.URL)
	if err != nil {
		return nil, ErrNoContent
	}

	return &ArticleDocument{
		URL:   result.URL,
		Title: cmp.Or(candidate.Title, extracted.Title),
		Body:  extracted.Body,
	}, nil
}
