package feed

import (
	"context"

	"github.com/topicwire/topicwire/app/fetcher"
	"github.com/topicwire/topicwire/app/security"
)

type FetcherInterface interface {
	Fetch(ctx context.Context, rawURL string, purpose security.Purpose, extraHeaders map[string]string) (*fetcher.FetchResult, error)
}
