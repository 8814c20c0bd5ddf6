package feed

import (
	"testing"
)

func TestRankOrdersByScore(t *testing.T) {
	items := []Item{
		{Title: "unrelated piece", Link: "https://example.com/1"},
		{Title: "climate change policy", Summary: "a climate report", Link: "https://example.com/2"},
		{Title: "climate news", Link: "https://example.com/3"},
	}

	ranked := Rank(items, "climate policy", 10)

	if len(ranked) != 2 {
		t.Fatalf("Expected 2 ranked items, got: %d", len(ranked))
	}
	// Both query tokens match the second item, only one matches the third.
	if ranked[0].Link != "https://example.com/2" {
		t.Errorf("Expected the double match first, got: %s", ranked[0].Link)
	}
	if ranked[1].Link != "https://example.com/3" {
		t.Errorf("Expected the single match second, got: %s", ranked[1].Link)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("Expected strictly higher score first, got %d then %d", ranked[0].Score, ranked[1].Score)
	}
}

func TestRankExcludesZeroScores(t *testing.T) {
	items := []Item{
		{Title: "gardening tips", Link: "https://example.com/1"},
	}

	if ranked := Rank(items, "quantum computing", 10); len(ranked) != 0 {
		t.Errorf("Expected no results for a non-matching query, got: %v", ranked)
	}
}

func TestRankTiesKeepEncounterOrder(t *testing.T) {
	items := []Item{
		{Title: "solar power first", Link: "https://example.com/1"},
		{Title: "solar power second", Link: "https://example.com/2"},
		{Title: "solar power third", Link: "https://example.com/3"},
	}

	ranked := Rank(items, "solar", 10)
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 ranked items, got: %d", len(ranked))
	}
	for i, want := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
		if ranked[i].Link != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, ranked[i].Link)
		}
	}
}

func TestRankRespectsLimit(t *testing.T) {
	items := []Item{
		{Title: "news one", Link: "https://example.com/1"},
		{Title: "news two", Link: "https://example.com/2"},
		{Title: "news three", Link: "https://example.com/3"},
	}

	if ranked := Rank(items, "news", 2); len(ranked) != 2 {
		t.Errorf("Expected limit to apply, got %d items", len(ranked))
	}
}

func TestRankCaseInsensitive(t *testing.T) {
	items := []Item{
		{Title: "Breaking: CLIMATE Report", Link: "https://example.com/1"},
	}

	if ranked := Rank(items, "Climate", 10); len(ranked) != 1 {
		t.Errorf("Expected case-folded match, got %d items", len(ranked))
	}
}

func TestRankCJKSingleTokenUsesBigrams(t *testing.T) {
	// Neither item contains the full four-character query; matching relies on
	// the overlapping two-character substrings.
	items := []Item{
		{Title: "人工の知能研究が進む", Link: "https://example.com/ai"},
		{Title: "人工衛星の打ち上げ", Link: "https://example.com/satellite"},
		{Title: "園芸の話題", Link: "https://example.com/garden"},
	}

	ranked := Rank(items, "人工知能", 10)

	if len(ranked) != 2 {
		t.Fatalf("Expected 2 ranked items, got: %d", len(ranked))
	}
	// More bigram overlap must score strictly higher.
	if ranked[0].Link != "https://example.com/ai" {
		t.Errorf("Expected the heavier overlap first, got: %s", ranked[0].Link)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("Expected strictly higher score for more overlap, got %d and %d", ranked[0].Score, ranked[1].Score)
	}
}

func TestRankShortCJKTokenIsNotExpanded(t *testing.T) {
	items := []Item{
		{Title: "日本のニュース", Link: "https://example.com/1"},
	}

	// Three runes: below the expansion threshold, so only the exact token
	// participates and it does not occur in the title.
	if ranked := Rank(items, "日本語", 10); len(ranked) != 0 {
		t.Errorf("Expected no expansion for short tokens, got: %v", ranked)
	}
}

func TestRankMultiTokenQuerySkipsBigrams(t *testing.T) {
	items := []Item{
		{Title: "工知 appears literally", Link: "https://example.com/1"},
	}

	// Two whitespace tokens: no bigram expansion even though one is CJK.
	if ranked := Rank(items, "人工知能 news", 10); len(ranked) != 0 {
		t.Errorf("Expected no bigram expansion for multi-token queries, got: %v", ranked)
	}
}

func TestTokenWeightClamp(t *testing.T) {
	if w := tokenWeight("ai"); w != 2 {
		t.Errorf("Expected weight 2, got %d", w)
	}
	if w := tokenWeight("extraordinarily-long-token"); w != maxTokenWeight {
		t.Errorf("Expected clamp to %d, got %d", maxTokenWeight, w)
	}
	if w := tokenWeight("知能"); w != 2 {
		t.Errorf("Expected rune-based weight 2, got %d", w)
	}
}
