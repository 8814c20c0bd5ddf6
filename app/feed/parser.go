package feed

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Parser turns raw RSS/Atom bytes into candidate items. gofeed detects the
// document kind and matches elements regardless of namespace prefixes, which
// covers both RSS channel/item and Atom feed/entry layouts.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) ([]Item, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		link := itemLink(item)
		if link == "" {
			// An item we cannot fetch is useless downstream.
			continue
		}
		items = append(items, Item{
			Title:     item.Title,
			Link:      link,
			Summary:   cmp.Or(item.Description, item.Content),
			Published: cmp.Or(item.Published, item.Updated),
		})
	}

	return items, nil
}

// itemLink returns the item's primary link, falling back to the first of its
// alternate links (Atom entries may carry several).
func itemLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	for _, link := range item.Links {
		if link != "" {
			return link
		}
	}
	return ""
}
