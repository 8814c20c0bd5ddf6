package feed

// Item is one candidate article reference out of an RSS or Atom document.
// All fields are plain text; Link is mandatory, the rest default to empty.
// FeedURL records which feed the item came from, for link scoping. Items are
// value objects scoped to a single acquisition call.
type Item struct {
	Title     string
	Link      string
	Summary   string
	Published string
	FeedURL   string
}

// ScoredItem is an Item with a relevance score. Scores are always positive;
// items scoring zero never leave the ranker.
type ScoredItem struct {
	Item
	Score int
}
