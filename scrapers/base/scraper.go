package base

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Validator reports whether a fetched page carries the data a scraper needs
type Validator func(*goquery.Document) bool

// BaseScraper handles common scraping logic
type BaseScraper struct {
	Client *http.Client
	// BrowserFallback enables a headless Chrome attempt when plain HTTP fails validation
	BrowserFallback bool
	logger          zerolog.Logger
}

// NewBaseScraper creates a new BaseScraper instance
func NewBaseScraper(browserFallback bool, logger zerolog.Logger) *BaseScraper {
	return &BaseScraper{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		BrowserFallback: browserFallback,
		logger:          logger.With().Str("component", "scraper").Logger(),
	}
}

// FetchDocument fetches the URL over HTTP and, if enabled, retries in a headless browser
func (b *BaseScraper) FetchDocument(ctx context.Context, url string, validator Validator) (*goquery.Document, error) {
	doc, err := b.FetchDocumentHTTP(ctx, url)
	if err == nil {
		if validator(doc) {
			b.logger.Debug().Str("url", url).Msg("http fetch succeeded")
			return doc, nil
		}
		b.logger.Info().Str("url", url).Msg("http fetch yielded invalid content")
	} else {
		b.logger.Info().Err(err).Str("url", url).Msg("http fetch failed")
	}

	if !b.BrowserFallback {
		if err == nil {
			err = fmt.Errorf("page has no product data")
		}
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	b.logger.Info().Str("url", url).Msg("trying chromedp")
	doc, err = b.FetchDocumentChromeDP(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if !validator(doc) {
		return nil, fmt.Errorf("fetch %s: page has no product data", url)
	}
	return doc, nil
}

// IsBlocked detects captcha and robot-check pages
func IsBlocked(doc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	return strings.Contains(title, "robot check") ||
		strings.Contains(title, "captcha") ||
		strings.Contains(title, "access denied")
}

// FetchDocumentHTTP fetches the URL and returns a GoQuery document via standard HTTP
func (b *BaseScraper) FetchDocumentHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "cross-site")

	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	return goquery.NewDocumentFromReader(res.Body)
}
