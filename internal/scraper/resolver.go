package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"PriceScout/internal/extractor"
	"PriceScout/internal/model"
)

// Attempt records what one source did for one code, for aggregate diagnostics.
type Attempt struct {
	Source string
	URL    string
	Reason string // "ok", transport error text, or "pattern not found"
}

// Resolution is the outcome of one code's walk down the source chain.
// Result is nil when every source failed or missed; that is a legitimate
// terminal outcome (the instrument may have no discoverable quote), not an
// error.
type Resolution struct {
	Code     model.SecurityCode
	Result   *model.ExtractionResult
	Attempts []Attempt
}

// FailureSummary aggregates per-source failure reasons for diagnostics.
func (r *Resolution) FailureSummary() string {
	if len(r.Attempts) == 0 {
		return "no sources attempted"
	}
	parts := make([]string, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Source, a.Reason))
	}
	return strings.Join(parts, "; ")
}

// Resolver walks the source registry in strict priority order and returns
// the first extracted price. Order is a static policy: once a source yields
// a value, later sources are never consulted.
type Resolver struct {
	Sources   []model.Source
	Fetcher   *Fetcher
	Extractor *extractor.Extractor

	// limiter paces requests across all sources and codes so the remote
	// hosts are not hammered. Courtesy, not correctness.
	limiter *rate.Limiter
}

// NewResolver creates a resolver. pace is the minimum interval between
// requests; zero disables pacing.
func NewResolver(sources []model.Source, f *Fetcher, e *extractor.Extractor, pace time.Duration) *Resolver {
	r := &Resolver{Sources: sources, Fetcher: f, Extractor: e}
	if pace > 0 {
		r.limiter = rate.NewLimiter(rate.Every(pace), 1)
	}
	return r
}

// Resolve tries each source in order and stops at the first one that yields
// a price. Per-source failures are soft: recorded in Attempts and never
// returned as errors. The error return is reserved for structurally invalid
// input and context cancellation.
func (r *Resolver) Resolve(ctx context.Context, code model.SecurityCode) (*Resolution, error) {
	if code <= 0 {
		return nil, fmt.Errorf("invalid security code %d", code)
	}

	res := &Resolution{Code: code}
	for _, src := range r.Sources {
		pageURL := BuildURL(src, code)

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return res, err
			}
		}

		page, err := r.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			res.Attempts = append(res.Attempts, Attempt{Source: src.Name, URL: pageURL, Reason: err.Error()})
			continue
		}

		price, ev, ok := r.Extractor.Extract(page)
		if !ok {
			res.Attempts = append(res.Attempts, Attempt{Source: src.Name, URL: pageURL, Reason: "pattern not found"})
			continue
		}

		res.Result = &model.ExtractionResult{
			Code:     code,
			Price:    price,
			Evidence: ev,
			Source:   src.Name,
			URL:      pageURL,
		}
		res.Attempts = append(res.Attempts, Attempt{Source: src.Name, URL: pageURL, Reason: "ok"})
		return res, nil
	}
	return res, nil
}

// ResolveMany resolves a batch of codes with at most workers in flight.
// Codes are independent, so they run concurrently; sources stay strictly
// ordered within each code, and the shared limiter paces the whole batch.
func (r *Resolver) ResolveMany(ctx context.Context, codes []model.SecurityCode, workers int) []*Resolution {
	if workers <= 0 {
		workers = 1
	}

	out := make([]*Resolution, len(codes))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, code := range codes {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, code model.SecurityCode) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := r.Resolve(ctx, code)
			if err != nil {
				log.Printf("[WARN] resolve %d: %v", code, err)
			}
			if res == nil {
				res = &Resolution{Code: code, Attempts: []Attempt{{Reason: err.Error()}}}
			}
			out[i] = res
		}(i, code)
	}

	wg.Wait()
	return out
}
