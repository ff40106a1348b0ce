// Package scraper resolves a security code to a unit price by walking an
// ordered registry of web sources: fetch a page, reduce it to text, hand it
// to the extractor, and stop at the first source that yields a price.
package scraper

import (
	"strings"

	"PriceScout/internal/model"
)

// DefaultSources is the built-in registry, in trust order: the exchange
// pages first, then financial portals as fallbacks. The Hebrew TASE page
// requires the 8-digit zero-padded code.
func DefaultSources() []model.Source {
	return []model.Source{
		{Name: "TASE EN major", URL: "https://market.tase.co.il/en/market_data/security/{code}"},
		{Name: "TASE HE major", URL: "https://market.tase.co.il/he/market_data/security/{code8}/major_data"},
		{Name: "TASE EN graph", URL: "https://market.tase.co.il/en/market_data/security/{code}/graph"},
		{Name: "TheMarker", URL: "https://finance.themarker.com/etf/{code}"},
		{Name: "Funder ETF", URL: "https://www.funder.co.il/etf/{code}"},
		{Name: "Bizportal ETF", URL: "https://www.bizportal.co.il/tradedfund/quote/generalview/{code}"},
	}
}

// BuildURL expands the {code} and {code8} placeholders of a source template.
func BuildURL(src model.Source, code model.SecurityCode) string {
	u := strings.ReplaceAll(src.URL, "{code}", code.String())
	return strings.ReplaceAll(u, "{code8}", code.Code8())
}
