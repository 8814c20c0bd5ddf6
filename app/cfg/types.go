package cfg

import "time"

type Cfg struct {
	// Outbound URL policy
	AllowedSchemes  []string
	AllowedDomains  []string
	BlockPrivateIPs bool
	AllowRedirects  bool
	MaxRedirects    int

	// Response ceilings in bytes, per fetch purpose
	ArticleMaxBytes int64
	FeedMaxBytes    int64

	// Request timeouts
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// Feed search
	FeedURLs    string
	FeedsFile   string
	MaxFeeds    int
	MaxArticles int
	LinkPolicy  string
	RankLimit   int
	WorkerCount int

	// HTTP server
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
