package cfg

import (
	"cmp"
	"fmt"
	"regexp"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Outbound URL policy
	AllowedSchemes  string `long:"allowed-schemes" env:"URL_ALLOWED_SCHEMES" default:"https" description:"Allowed URL schemes for outbound requests (comma or space separated)"`
	AllowedDomains  string `long:"allowed-domains" env:"URL_ALLOWLIST_DOMAINS" description:"Domain allowlist for outbound requests; empty disables the check"`
	BlockPrivateIPs bool   `long:"block-private-ips" env:"URL_BLOCK_PRIVATE_IPS" default:"true" description:"Reject URLs resolving to private/reserved addresses"`
	AllowRedirects  bool   `long:"allow-redirects" env:"URL_ALLOW_REDIRECTS" description:"Follow HTTP redirects (each hop is re-validated)"`
	MaxRedirects    int    `long:"max-redirects" env:"URL_MAX_REDIRECTS" default:"2" description:"Maximum number of redirect hops"`

	// Response ceilings
	ArticleMaxBytes int64 `long:"article-max-bytes" env:"HTTP_MAX_BYTES" default:"5000000" description:"Maximum response size for article fetches in bytes"`
	FeedMaxBytes    int64 `long:"feed-max-bytes" env:"FEED_MAX_BYTES" default:"2000000" description:"Maximum response size for feed fetches in bytes"`

	// Request timeouts
	ConnectTimeout int `long:"connect-timeout" env:"HTTP_CONNECT_TIMEOUT_SEC" default:"3" description:"Connect timeout in seconds"`
	ReadTimeout    int `long:"read-timeout" env:"HTTP_READ_TIMEOUT_SEC" default:"7" description:"Read timeout in seconds"`

	// Feed search
	FeedURLs    string `long:"feed-urls" env:"FEED_URLS" description:"Feed allowlist as a single value (comma or whitespace separated); takes precedence over the feeds file"`
	FeedsFile   string `long:"feeds-file" env:"FEEDS_FILE" default:"config/feeds.txt" description:"File containing the feed allowlist (.txt one URL per line, or .yml)"`
	MaxFeeds    int    `long:"max-feeds" env:"MAX_FEEDS" default:"10" description:"Maximum number of feeds processed per search"`
	MaxArticles int    `long:"max-articles" env:"MAX_ARTICLES" default:"3" description:"Maximum articles fetched per search (clamped to 1..3)"`
	LinkPolicy  string `long:"link-policy" env:"ITEM_LINK_POLICY" default:"A" choice:"A" choice:"B" description:"Feed item link scoping policy: A (same-domain) or B (permissive)"`
	RankLimit   int    `long:"rank-limit" env:"RANK_LIMIT" default:"10" description:"Maximum ranked candidates considered per search"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of concurrent feed fetch workers (1 = sequential)"`

	// HTTP server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"topicwire/1.0" description:"User agent string for outbound HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

var listSeparator = regexp.MustCompile(`[\s,]+`)

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		AllowedSchemes:  SplitList(raw.AllowedSchemes),
		AllowedDomains:  SplitList(raw.AllowedDomains),
		BlockPrivateIPs: raw.BlockPrivateIPs,
		AllowRedirects:  raw.AllowRedirects,
		MaxRedirects:    max(0, raw.MaxRedirects),
		ArticleMaxBytes: raw.ArticleMaxBytes,
		FeedMaxBytes:    raw.FeedMaxBytes,
		ConnectTimeout:  time.Duration(raw.ConnectTimeout) * time.Second,
		ReadTimeout:     time.Duration(raw.ReadTimeout) * time.Second,
		FeedURLs:        raw.FeedURLs,
		FeedsFile:       raw.FeedsFile,
		MaxFeeds:        max(1, raw.MaxFeeds),
		MaxArticles:     clamp(raw.MaxArticles, 1, 3),
		LinkPolicy:      raw.LinkPolicy,
		RankLimit:       max(1, raw.RankLimit),
		WorkerCount:     max(1, raw.WorkerCount),
		Port:            raw.Port,
		APIAccessKey:    raw.APIAccessKey,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set installs a configuration directly, bypassing flag parsing. Used by tests.
func Set(cfg *Cfg) {
	globalCfg = cfg
}

// SplitList splits a comma or whitespace separated value into its non-empty parts.
func SplitList(value string) []string {
	parts := listSeparator.Split(value, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
