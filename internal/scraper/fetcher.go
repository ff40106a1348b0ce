package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"PriceScout/internal/model"
)

const (
	defaultTimeout        = 12 * time.Second
	defaultUserAgent      = "Mozilla/5.0"
	defaultAcceptLanguage = "he-IL,he;q=0.9,en-US;q=0.8,en;q=0.7"
)

// FetcherOptions configures the HTTP side of page retrieval. Zero values
// fall back to the defaults above.
type FetcherOptions struct {
	Timeout        time.Duration
	UserAgent      string
	AcceptLanguage string
	Proxy          string
}

// Fetcher performs the HTTP GET for one source URL and reduces the response
// to visible text. Source pages localize on Accept-Language, so the header
// favors Hebrew and then English.
type Fetcher struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
}

// NewFetcher builds a fetcher with optional proxy support.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.AcceptLanguage == "" {
		opts.AcceptLanguage = defaultAcceptLanguage
	}
	transport := &http.Transport{}
	if opts.Proxy != "" {
		if u, err := url.Parse(opts.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		userAgent:      opts.UserAgent,
		acceptLanguage: opts.AcceptLanguage,
	}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Fetch GETs one URL and returns the page reduced to visible text, with the
// raw markup kept alongside for the script/attribute retry. Pages are never
// cached; content is fetched per request.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (model.PageContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return model.PageContent{}, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", f.acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return model.PageContent{}, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.PageContent{}, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PageContent{}, fmt.Errorf("read page: %w", err)
	}

	html := string(body)
	return model.PageContent{Text: reduceToText(html), HTML: html}, nil
}

// reduceToText strips markup and collapses whitespace so label/number pairs
// that span elements end up adjacent in the scanned text.
func reduceToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(doc.Text(), " "))
}
