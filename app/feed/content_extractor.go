package feed

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Extracted is the readable portion of a fetched page.
type Extracted struct {
	Title string
	Body  string
}

type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Run strips an HTML page down to its continuous body text. The raw bytes are
// decoded to UTF-8 first when the response declared a charset.
func (e *ContentExtractor) Run(data []byte, charset, pageURL string) (*Extracted, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("page data is empty")
	}

	reader := decodeCharset(data, charset)

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil {
		base = u
	}

	article, err := readability.FromReader(reader, base)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	body := strings.TrimSpace(article.TextContent)
	if body == "" {
		return nil, fmt.Errorf("no content extracted from page")
	}

	slog.Debug("Content extracted",
		"title", article.Title,
		"content_length", len(body))

	return &Extracted{Title: article.Title, Body: body}, nil
}

// decodeCharset converts data to UTF-8 according to the declared charset.
// Absent or unknown charsets fall through to the raw bytes; readability copes
// with UTF-8 and ASCII directly.
func decodeCharset(data []byte, charset string) io.Reader {
	raw := bytes.NewReader(data)

	if charset == "" || strings.EqualFold(charset, "utf-8") {
		return raw
	}

	encoding, err := htmlindex.Get(charset)
	if err != nil {
		return raw
	}
	return transform.NewReader(raw, encoding.NewDecoder())
}
