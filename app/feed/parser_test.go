package feed

import (
	"testing"
)

func TestParseRSS(t *testing.T) {
	rssData := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <item>
      <title>First Article</title>
      <link>https://example.com/a/1</link>
      <description>Summary one</description>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>No Link Article</title>
      <description>This one cannot be fetched</description>
    </item>
    <item>
      <title>Second Article</title>
      <link>https://example.com/a/2</link>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	items, err := parser.Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// The item without a link is dropped, its siblings are kept.
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got: %d", len(items))
	}
	if items[0].Title != "First Article" {
		t.Errorf("Expected title 'First Article', got: %s", items[0].Title)
	}
	if items[0].Link != "https://example.com/a/1" {
		t.Errorf("Expected link preserved, got: %s", items[0].Link)
	}
	if items[0].Summary != "Summary one" {
		t.Errorf("Expected summary 'Summary one', got: %s", items[0].Summary)
	}
	if items[0].Published == "" {
		t.Error("Expected published timestamp to be carried over")
	}
	if items[1].Title != "Second Article" {
		t.Errorf("Expected title 'Second Article', got: %s", items[1].Title)
	}
	if items[1].Summary != "" {
		t.Errorf("Expected empty summary, got: %s", items[1].Summary)
	}
}

func TestParseAtom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <updated>2023-07-03T12:00:00Z</updated>
  <id>urn:uuid:1234567890</id>
  <entry>
    <title>Atom Entry</title>
    <link href="https://example.com/entry1"/>
    <summary>Entry summary</summary>
    <updated>2023-07-03T11:00:00Z</updated>
    <id>urn:uuid:entry-1</id>
  </entry>
</feed>`

	parser := NewParser()
	items, err := parser.Run([]byte(atomData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}
	if items[0].Link != "https://example.com/entry1" {
		t.Errorf("Expected link from href attribute, got: %s", items[0].Link)
	}
	if items[0].Summary != "Entry summary" {
		t.Errorf("Expected summary 'Entry summary', got: %s", items[0].Summary)
	}
	if items[0].Published == "" {
		t.Error("Expected published timestamp from updated element")
	}
}

func TestParseMalformedXML(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Run([]byte("this is not xml at all")); err == nil {
		t.Error("Expected an error for malformed input")
	}
	if _, err := parser.Run([]byte("<rss><channel><item>")); err == nil {
		t.Error("Expected an error for truncated XML")
	}
}
