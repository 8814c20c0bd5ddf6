package feed

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minTokenWeight = 1
	maxTokenWeight = 6

	// Single-token CJK queries are expanded into overlapping bigrams; the
	// expansion is bounded so one very long token cannot explode the set.
	maxBigrams      = 16
	minBigramSource = 4
)

// Rank scores items against the query and returns at most limit of them,
// highest score first. Ties keep the original encounter order.
func Rank(items []Item, query string, limit int) []ScoredItem {
	tokens := tokenize(query)
	if len(tokens) == 0 || limit <= 0 {
		return nil
	}

	scored := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.Title + "\n" + item.Summary)
		score := 0
		for token := range tokens {
			if strings.Contains(haystack, token) {
				score += tokenWeight(token)
			}
		}
		if score > 0 {
			scored = append(scored, ScoredItem{Item: item, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// tokenize splits the query on whitespace and case-folds the tokens. A query
// that is a single CJK token of at least four runes is additionally expanded
// into overlapping two-rune substrings: CJK text has no word boundaries, so
// the whole token rarely appears verbatim in an item.
func tokenize(query string) map[string]bool {
	fields := strings.Fields(query)
	tokens := make(map[string]bool, len(fields))
	for _, field := range fields {
		tokens[strings.ToLower(field)] = true
	}

	if len(fields) == 1 {
		single := fields[0]
		if utf8.RuneCountInString(single) >= minBigramSource && containsCJK(single) {
			for _, bigram := range bigrams(single, maxBigrams) {
				tokens[strings.ToLower(bigram)] = true
			}
		}
	}

	return tokens
}

func bigrams(s string, limit int) []string {
	runes := []rune(s)
	out := make([]string, 0, min(len(runes)-1, limit))
	for i := 0; i+1 < len(runes) && len(out) < limit; i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}

func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
			return true
		}
		// CJK symbols and punctuation block.
		if r >= 0x3000 && r <= 0x303f {
			return true
		}
	}
	return false
}

// tokenWeight is the token's rune length clamped to [1, 6]: longer exact
// matches count more, but one very long token must not dominate outright.
func tokenWeight(token string) int {
	weight := utf8.RuneCountInString(token)
	if weight < minTokenWeight {
		return minTokenWeight
	}
	if weight > maxTokenWeight {
		return maxTokenWeight
	}
	return weight
}
