// Package extractor locates a unit price in loosely structured, bilingual
// page text: an ordered pattern scan picks a numeric candidate, then a
// layered evidence cascade decides whether the value is quoted in agorot
// and rescales it to NIS.
package extractor

import (
	"github.com/shopspring/decimal"

	"PriceScout/internal/model"
)

// Extractor produces at most one price per page. It performs no I/O.
type Extractor struct {
	units *UnitResolver
}

func New(cfg ResolverConfig) *Extractor {
	return &Extractor{units: NewUnitResolver(cfg)}
}

// Extract scans the visible text first and retries on the raw markup if no
// pattern matched (unit hints sometimes live only in scripts and
// attributes). The first pattern that yields a parsable number is terminal
// for the page; the unit cascade then runs exactly once on that candidate.
// The last return value is false when no pattern produced a candidate.
func (e *Extractor) Extract(page model.PageContent) (decimal.Decimal, model.UnitEvidence, bool) {
	for _, body := range []string{page.Text, page.HTML} {
		if body == "" {
			continue
		}
		cand, ok := FindCandidate(body)
		if !ok {
			continue
		}
		price, ev := e.units.Resolve(cand, body)
		return price, ev, true
	}
	return decimal.Decimal{}, model.EvidenceNone, false
}
