package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/topicwire/topicwire/app/cfg"
	"github.com/topicwire/topicwire/app/security"
)

var (
	ErrConnection             = errors.New("outbound HTTP request failed")
	ErrHTTPStatus             = errors.New("unexpected HTTP status")
	ErrRedirectsDisabled      = errors.New("redirects are disabled")
	ErrRedirectLimit          = errors.New("redirect limit exceeded")
	ErrMissingLocation        = errors.New("redirect without Location header")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrTooLarge               = errors.New("response exceeds size limit")
)

const streamChunkSize = 64 * 1024

var articleContentTypes = []string{"text/html", "application/xhtml", "text/plain"}
var feedContentTypes = []string{"application/rss", "application/atom", "application/xml", "text/xml", "text/plain"}

// FetchResult is the outcome of a successful fetch: the final validated URL
// after any redirects, the complete body, and the declared content type.
// Body never exceeds the configured ceiling; an oversized response fails the
// whole fetch instead of being truncated.
type FetchResult struct {
	URL         string
	Body        []byte
	ContentType string
	Charset     string
}

// Fetcher performs outbound HTTP requests for validated URLs. Redirects are
// never followed by the HTTP client itself; each hop goes back through the
// validator before any byte of it is requested.
type Fetcher struct {
	validator      *security.Validator
	client         *http.Client
	allowRedirects bool
	maxRedirects   int
	articleMax     int64
	feedMax        int64
	hopTimeout     time.Duration
	userAgent      string
}

func NewFetcher(c *cfg.Cfg, validator *security.Validator) *Fetcher {
	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: c.ConnectTimeout}).DialContext,
		TLSHandshakeTimeout:   c.ConnectTimeout,
		ResponseHeaderTimeout: c.ReadTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}

	return &Fetcher{
		validator: validator,
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		allowRedirects: c.AllowRedirects,
		maxRedirects:   c.MaxRedirects,
		articleMax:     c.ArticleMaxBytes,
		feedMax:        c.FeedMaxBytes,
		hopTimeout:     c.ConnectTimeout + c.ReadTimeout,
		userAgent:      c.UserAgent,
	}
}

// Fetch validates and retrieves rawURL. The redirect chain is an explicit
// state machine: current URL plus hop counter, bounded by the configured
// maximum, with full re-validation on every hop.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, purpose security.Purpose, extraHeaders map[string]string) (*FetchResult, error) {
	maxBytes := f.articleMax
	allowedTypes := articleContentTypes
	if purpose == security.PurposeFeed {
		maxBytes = f.feedMax
		allowedTypes = feedContentTypes
	}

	current := rawURL
	hops := 0

	for {
		validated, err := f.validator.Validate(ctx, current, purpose)
		if err != nil {
			return nil, err
		}
		current = validated

		resp, err := f.get(ctx, current, extraHeaders)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}

		if isRedirect(resp.StatusCode) {
			resp.Body.Close()

			if !f.allowRedirects {
				return nil, fmt.Errorf("%w: got %d", ErrRedirectsDisabled, resp.StatusCode)
			}

			location := resp.Header.Get("Location")
			if location == "" {
				return nil, ErrMissingLocation
			}

			next, err := resolveLocation(current, location)
			if err != nil {
				return nil, fmt.Errorf("%w: bad Location %q: %v", ErrMissingLocation, location, err)
			}

			hops++
			if hops > f.maxRedirects {
				return nil, fmt.Errorf("%w: more than %d hops", ErrRedirectLimit, f.maxRedirects)
			}

			slog.Debug("Following redirect",
				"from", security.SanitizeURL(current),
				"to", security.SanitizeURL(next),
				"hop", hops)

			current = next
			continue
		}

		return f.readBody(resp, current, maxBytes, allowedTypes)
	}
}

func (f *Fetcher) get(ctx context.Context, url string, extraHeaders map[string]string) (*http.Response, error) {
	hopCtx, cancel := context.WithTimeout(ctx, f.hopTimeout)

	req, err := http.NewRequestWithContext(hopCtx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}

	req.Header.Set("User-Agent", f.userAgent)
	for name, value := range extraHeaders {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}

	// The body must stay readable after this function returns; tie the
	// context cancellation to body close instead.
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (f *Fetcher) readBody(resp *http.Response, finalURL string, maxBytes int64, allowedTypes []string) (*FetchResult, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d %s", ErrHTTPStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	contentType, charset := splitContentType(resp.Header.Get("Content-Type"))
	if contentType != "" && !typeAllowed(contentType, allowedTypes) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}

	// Declared length over the ceiling fails before a single body byte is read.
	if declared := resp.Header.Get("Content-Length"); declared != "" {
		if length, err := strconv.ParseInt(declared, 10, 64); err == nil && length > maxBytes {
			return nil, fmt.Errorf("%w: declared %d bytes, limit %d", ErrTooLarge, length, maxBytes)
		}
	}

	body := make([]byte, 0, streamChunkSize)
	chunk := make([]byte, streamChunkSize)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			body = append(body, chunk[:n]...)
			if int64(len(body)) > maxBytes {
				return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrTooLarge, maxBytes)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading body: %v", ErrConnection, err)
		}
	}

	return &FetchResult{URL: finalURL, Body: body, ContentType: contentType, Charset: charset}, nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// resolveLocation resolves a Location header value relative to the current URL.
func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// splitContentType separates the declared media type from its charset
// parameter. Only the media type takes part in the allowlist check; the
// charset travels along for later decoding.
func splitContentType(header string) (mediaType, charset string) {
	parsed, params, err := mime.ParseMediaType(header)
	if err != nil {
		before, _, _ := strings.Cut(header, ";")
		return strings.ToLower(strings.TrimSpace(before)), ""
	}
	return strings.ToLower(parsed), params["charset"]
}

func typeAllowed(contentType string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	c.cancel()
	return c.ReadCloser.Close()
}
