package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/topicwire/topicwire/app/cfg"
)

// sourceEntry is one feed in the YAML form of the allowlist.
type sourceEntry struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// LoadSources returns the allow-listed feed URLs. The inline value (FEED_URLS)
// wins over the file; the file may be plain text (one URL per line, blank and
// #-prefixed lines ignored) or a YAML list of {url, name} entries. Duplicates
// are dropped, first occurrence wins.
func LoadSources(c *cfg.Cfg) ([]string, error) {
	if strings.TrimSpace(c.FeedURLs) != "" {
		return dedupe(cfg.SplitList(c.FeedURLs)), nil
	}

	if c.FeedsFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.FeedsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	switch filepath.Ext(c.FeedsFile) {
	case ".yml", ".yaml":
		return parseYAMLSources(data)
	default:
		return parseTextSources(data), nil
	}
}

func parseTextSources(data []byte) []string {
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		urls = append(urls, s)
	}
	return dedupe(urls)
}

func parseYAMLSources(data []byte) ([]string, error) {
	var entries []sourceEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse YAML feeds file: %w", err)
	}

	urls := make([]string, 0, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.URL) == "" {
			return nil, fmt.Errorf("feeds file entry %d has no url", i)
		}
		urls = append(urls, strings.TrimSpace(entry.URL))
	}
	return dedupe(urls), nil
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
