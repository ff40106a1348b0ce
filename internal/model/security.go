package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// SecurityCode is the exchange-assigned numeric identifier of a traded instrument.
type SecurityCode int

func (c SecurityCode) String() string { return strconv.Itoa(int(c)) }

// Code8 returns the zero-padded 8-digit form required by sources that use
// fixed-width codes. It is always derived from the code, never stored.
func (c SecurityCode) Code8() string { return fmt.Sprintf("%08d", int(c)) }

// Source is one external page a price may be scraped from. URL templates
// carry {code} and {code8} placeholders. Registry order encodes trust:
// the first source to yield a price wins.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// PageContent is the fetched page for one Source x SecurityCode pair: the
// visible text plus the raw markup. Some unit annotations only appear in
// scripts and attributes, so the markup is kept for a second pass.
type PageContent struct {
	Text string
	HTML string
}

// UnitEvidence records which rule decided the minor-unit scale factor.
type UnitEvidence string

const (
	EvidenceExplicit  UnitEvidence = "explicit-adjacent"
	EvidenceNearby    UnitEvidence = "nearby-window"
	EvidenceGlobal    UnitEvidence = "global-page"
	EvidenceMagnitude UnitEvidence = "magnitude-heuristic"
	EvidenceNone      UnitEvidence = "none"
)

// PriceCandidate is a numeric value captured by a pattern, with whatever
// unit text the pattern captured next to it. Start/End are byte offsets of
// the full match in the scanned text.
type PriceCandidate struct {
	Value    decimal.Decimal
	UnitText string
	Start    int
	End      int
}

// ExtractionResult is the outcome of one successful Source x SecurityCode
// attempt. Price is always in NIS, rounded to 6 fractional digits,
// regardless of which evidence path triggered rescaling.
type ExtractionResult struct {
	Code     SecurityCode
	Price    decimal.Decimal
	Evidence UnitEvidence
	Source   string
	URL      string
}

// Provenance returns the "{source} ({evidence}) {url}" diagnostic string.
func (r *ExtractionResult) Provenance() string {
	return fmt.Sprintf("%s (%s) %s", r.Source, r.Evidence, r.URL)
}

// Security is a catalogued instrument tracked by the price store.
type Security struct {
	Code      SecurityCode
	Name      string
	Kind      string // e.g. "ETF", "fund"
	Index     string // tracked index, free text
	UnitValue decimal.Decimal
	UpdatedAt time.Time
}
