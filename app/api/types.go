package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/topicwire/topicwire/app/research"
)

type ServiceInterface interface {
	FetchDirect(ctx context.Context, rawURL string) (*research.ArticleDocument, error)
	SearchFeeds(ctx context.Context, query string) ([]research.ArticleDocument, error)
}

var _ ServiceInterface = (*research.Service)(nil)

type Handler struct {
	service   ServiceInterface
	feedCount int
	startedAt time.Time

	requestCount atomic.Int64
	failureCount atomic.Int64
}
