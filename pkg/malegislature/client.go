// Package malegislature retrieves bill and law text from the
// Massachusetts legislature's website. It supplies the text fragments and
// law section texts the markup pipeline consumes; the pipeline itself
// never touches the network.
package malegislature

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/ralatsdc/springbok-mgl/internal/logging"
	"go.uber.org/zap"
)

// DefaultUserAgent is the User-Agent header sent with requests.
const DefaultUserAgent = "springbok-mgl/1.0"

// DefaultRateLimit is the default minimum interval between HTTP requests.
const DefaultRateLimit = 500 * time.Millisecond

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultCacheTTL is the default time-to-live for cached law texts.
const DefaultCacheTTL = 24 * time.Hour

// ClientConfig holds configuration for a Client.
type ClientConfig struct {
	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// RateLimit is the minimum interval between HTTP requests.
	RateLimit time.Duration

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts for transient errors.
	MaxRetries int

	// CacheDir is the directory for persistent law text caching.
	// Empty disables caching.
	CacheDir string

	// CacheTTL is the time-to-live for cached law texts.
	CacheTTL time.Duration
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		UserAgent:  DefaultUserAgent,
		RateLimit:  DefaultRateLimit,
		Timeout:    DefaultTimeout,
		MaxRetries: 3,
		CacheTTL:   DefaultCacheTTL,
	}
}

// Client fetches pages from malegislature.gov with retry on transient
// errors and a minimum interval between requests.
type Client struct {
	httpClient *http.Client
	config     ClientConfig
	cache      *DiskCache
	logger     *logging.Logger

	requestMu       sync.Mutex
	lastRequestTime time.Time
}

// NewClient creates a Client. A nil logger is replaced with a no-op
// logger; an empty CacheDir disables the disk cache.
func NewClient(config ClientConfig, logger *logging.Logger) (*Client, error) {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = config.MaxRetries
	retryClient.HTTPClient.Timeout = config.Timeout
	retryClient.Logger = nil

	client := &Client{
		httpClient: retryClient.StandardClient(),
		config:     config,
		logger:     logging.OrNop(logger),
	}

	if config.CacheDir != "" {
		cache, err := NewDiskCache(config.CacheDir, config.CacheTTL)
		if err != nil {
			return nil, err
		}
		client.cache = cache
	}

	return client, nil
}

// getDocument fetches a URL and parses the response as an HTML document.
func (client *Client) getDocument(pageURL string) (*goquery.Document, error) {
	client.waitForRateLimit()

	request, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", pageURL, err)
	}
	request.Header.Set("User-Agent", client.config.UserAgent)

	client.logger.Debug("fetching page", zap.String("url", pageURL))

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d for %s", response.StatusCode, pageURL)
	}

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}
	return document, nil
}

// waitForRateLimit enforces the minimum interval between requests.
func (client *Client) waitForRateLimit() {
	client.requestMu.Lock()

	if !client.lastRequestTime.IsZero() {
		elapsed := time.Since(client.lastRequestTime)
		if elapsed < client.config.RateLimit {
			waitDuration := client.config.RateLimit - elapsed
			client.requestMu.Unlock()
			time.Sleep(waitDuration)
			client.requestMu.Lock()
		}
	}

	client.lastRequestTime = time.Now()
	client.requestMu.Unlock()
}
