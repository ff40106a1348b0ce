package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"PriceScout/internal/model"
)

// minorUnitMarkers are the substrings that mark a value as quoted in agorot:
// the "0.01 NIS" form, the Latin transliteration, and the Hebrew
// abbreviation / full word.
var minorUnitMarkers = []string{"0.01", "agorot", "אג'", "אגורות", "אג"}

// globalMarkerRe is the stricter form used for whole-page scans, where a
// bare "0.01" would be far too common to mean anything.
var globalMarkerRe = regexp.MustCompile(`(?i)0\.01\s*NIS|Agorot|אג(?:'|ורות)?`)

func hasMinorUnitMarker(s string) bool {
	if s == "" {
		return false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range minorUnitMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// ResolverConfig controls the evidence cascade.
type ResolverConfig struct {
	Window    int             // bytes scanned around the match for nearby markers
	Threshold decimal.Decimal // raw values at or above this are assumed agorot
}

func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{Window: 250, Threshold: decimal.NewFromInt(10000)}
}

// evidenceCheck inspects one layer of evidence and reports whether that
// layer says "agorot". Checks are independent so the cascade order stays
// explicit and each rule is testable on its own.
type evidenceCheck func(cand model.PriceCandidate, page string) (model.UnitEvidence, bool)

// UnitResolver decides whether a candidate is quoted in agorot and must be
// divided by 100. Evidence layers run in fixed order, strongest first;
// the first positive hit wins.
type UnitResolver struct {
	cfg    ResolverConfig
	checks []evidenceCheck
}

func NewUnitResolver(cfg ResolverConfig) *UnitResolver {
	if cfg.Window < 0 {
		cfg.Window = 0
	}
	if cfg.Threshold.IsZero() {
		cfg.Threshold = DefaultResolverConfig().Threshold
	}
	r := &UnitResolver{cfg: cfg}
	r.checks = []evidenceCheck{
		r.explicitAdjacent,
		r.nearbyWindow,
		r.globalPage,
		r.magnitude,
	}
	return r
}

var minorScale = decimal.New(1, -2) // 1 agora = 0.01 NIS

// Resolve runs the cascade and returns the candidate value rescaled to NIS
// with the evidence tag. Precision is fixed at 6 fractional digits;
// downstream comparisons rely on it.
func (r *UnitResolver) Resolve(cand model.PriceCandidate, page string) (decimal.Decimal, model.UnitEvidence) {
	for _, check := range r.checks {
		if ev, hit := check(cand, page); hit {
			return cand.Value.Mul(minorScale).Round(6), ev
		}
	}
	return cand.Value.Round(6), model.EvidenceNone
}

func (r *UnitResolver) explicitAdjacent(cand model.PriceCandidate, _ string) (model.UnitEvidence, bool) {
	return model.EvidenceExplicit, hasMinorUnitMarker(cand.UnitText)
}

func (r *UnitResolver) nearbyWindow(cand model.PriceCandidate, page string) (model.UnitEvidence, bool) {
	start := cand.Start - r.cfg.Window
	if start < 0 {
		start = 0
	}
	end := cand.End + r.cfg.Window
	if end > len(page) {
		end = len(page)
	}
	if start >= end {
		return model.EvidenceNearby, false
	}
	return model.EvidenceNearby, hasMinorUnitMarker(page[start:end])
}

func (r *UnitResolver) globalPage(_ model.PriceCandidate, page string) (model.UnitEvidence, bool) {
	return model.EvidenceGlobal, globalMarkerRe.MatchString(page)
}

// magnitude: unit prices in scope rarely exceed a few hundred NIS, so a
// 5+ digit raw value without any marker is almost always an un-annotated
// agorot quote.
func (r *UnitResolver) magnitude(cand model.PriceCandidate, _ string) (model.UnitEvidence, bool) {
	return model.EvidenceMagnitude, cand.Value.GreaterThanOrEqual(r.cfg.Threshold)
}
