package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/topicwire/topicwire/app/cfg"
	"github.com/topicwire/topicwire/app/security"
)

// Aggregator fetches and parses a bounded set of allow-listed feeds into one
// flat candidate list. A feed that fails to fetch or parse is logged and
// skipped; it never aborts the remaining feeds.
type Aggregator struct {
	fetcher  FetcherInterface
	parser   *Parser
	maxFeeds int
	workers  int
}

func NewAggregator(c *cfg.Cfg, f FetcherInterface, parser *Parser) *Aggregator {
	return &Aggregator{
		fetcher:  f,
		parser:   parser,
		maxFeeds: c.MaxFeeds,
		workers:  c.WorkerCount,
	}
}

// Run returns the concatenation of all surviving feeds' items in feed-list
// order. With more than one worker the per-feed fetches run concurrently, but
// each fetch keeps its own redirect/size state machine and writes only its own
// result slot, so the output order stays deterministic.
func (a *Aggregator) Run(ctx context.Context, feedURLs []string) []Item {
	if len(feedURLs) > a.maxFeeds {
		slog.Warn("Feed list exceeds per-call cap, truncating",
			"configured", len(feedURLs), "cap", a.maxFeeds)
		feedURLs = feedURLs[:a.maxFeeds]
	}

	results := make([][]Item, len(feedURLs))

	if a.workers <= 1 {
		for i, feedURL := range feedURLs {
			results[i] = a.processFeed(ctx, feedURL)
		}
	} else {
		indexes := make(chan int)
		var wg sync.WaitGroup

		for w := 0; w < a.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					results[i] = a.processFeed(ctx, feedURLs[i])
				}
			}()
		}

		for i := range feedURLs {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	}

	var items []Item
	for _, feedItems := range results {
		items = append(items, feedItems...)
	}
	return items
}

func (a *Aggregator) processFeed(ctx context.Context, feedURL string) []Item {
	result, err := a.fetcher.Fetch(ctx, feedURL, security.PurposeFeed, nil)
	if err != nil {
		slog.Warn("Skipping feed, fetch failed",
			"feed", security.SanitizeURL(feedURL), "error", err)
		return nil
	}

	items, err := a.parser.Run(result.Body)
	if err != nil {
		slog.Warn("Skipping feed, parse failed",
			"feed", security.SanitizeURL(feedURL), "error", err)
		return nil
	}

	for i := range items {
		items[i].FeedURL = feedURL
	}

	slog.Debug("Feed aggregated",
		"feed", security.SanitizeURL(feedURL), "items", len(items))
	return items
}
