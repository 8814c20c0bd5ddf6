package feed

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/topicwire/topicwire/app/cfg"
)

func TestLoadSourcesInlineValueWins(t *testing.T) {
	c := &cfg.Cfg{
		FeedURLs:  "https://a.example/rss, https://b.example/rss https://a.example/rss",
		FeedsFile: "does-not-matter.txt",
	}

	urls, err := LoadSources(c)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"https://a.example/rss", "https://b.example/rss"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("Expected %v, got %v", want, urls)
	}
}

func TestLoadSourcesTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.txt")
	content := `# national news
https://a.example/rss

https://b.example/atom
# duplicate below
https://a.example/rss
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadSources(&cfg.Cfg{FeedsFile: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"https://a.example/rss", "https://b.example/atom"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("Expected %v, got %v", want, urls)
	}
}

func TestLoadSourcesYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yml")
	content := `- url: https://a.example/rss
  name: A
- url: https://b.example/atom
  name: B
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadSources(&cfg.Cfg{FeedsFile: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"https://a.example/rss", "https://b.example/atom"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("Expected %v, got %v", want, urls)
	}
}

func TestLoadSourcesYAMLEntryWithoutURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yml")
	if err := os.WriteFile(path, []byte("- name: missing-url\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSources(&cfg.Cfg{FeedsFile: path}); err == nil {
		t.Error("Expected an error for a YAML entry without a url")
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	urls, err := LoadSources(&cfg.Cfg{FeedsFile: filepath.Join(t.TempDir(), "absent.txt")})
	if err != nil {
		t.Fatalf("Expected no error for a missing file, got: %v", err)
	}
	if len(urls) != 0 {
		t.Errorf("Expected no URLs, got %v", urls)
	}
}
