package extractor

import (
	"regexp"

	"PriceScout/internal/model"
	"PriceScout/internal/numeric"
)

// groupRole declares which capture group carries the number and which the
// unit fragment, instead of guessing positionally.
type groupRole int

const (
	numberOnly     groupRole = iota // single capture: the number
	unitThenNumber                  // group 1 unit, group 2 number
	numberThenUnit                  // group 1 number, group 2 unit
)

// pricePattern is one label/number pattern. Position in the pattern list
// encodes specificity; the most specific label forms come first.
type pricePattern struct {
	re   *regexp.Regexp
	role groupRole
}

// patterns mirrors the label forms seen on the source pages: "Last Rate"
// with a parenthesized unit before or after the number, the same three
// shapes for the Hebrew "שער אחרון", a short generic "שער" lookahead, and
// a bare number followed by an agorot suffix as the weakest form.
var patterns = []pricePattern{
	{regexp.MustCompile(`(?is)Last\s*Rate\s*\((.*?)\)\s*([0-9.,]+)`), unitThenNumber},
	{regexp.MustCompile(`(?is)Last\s*Rate[^0-9]*([0-9.,]+)\s*\((.*?)\)`), numberThenUnit},
	{regexp.MustCompile(`(?is)Last\s*Rate.*?([0-9.,]+)`), numberOnly},

	{regexp.MustCompile(`(?is)שער\s*אחרון\s*\((.*?)\)\s*([0-9.,]+)`), unitThenNumber},
	{regexp.MustCompile(`(?is)שער\s*אחרון[^0-9]*([0-9.,]+)\s*\((.*?)\)`), numberThenUnit},
	{regexp.MustCompile(`(?is)שער\s*אחרון[^0-9]*([0-9.,]+)`), numberOnly},

	{regexp.MustCompile(`(?is)שער[^0-9]{0,12}([0-9.,]+)`), numberOnly},
	{regexp.MustCompile(`(?is)([0-9.,]+)\s*(?:אג(?:'|ורות)?|Agorot|0\.01\s*NIS)`), numberOnly},
}

// FindCandidate applies the pattern list in order and returns the first
// match whose numeric group normalizes. A pattern that matches structurally
// but yields no parsable number ends the scan for that pattern and falls
// through to the next one.
func FindCandidate(text string) (model.PriceCandidate, bool) {
	for _, p := range patterns {
		loc := p.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if cand, ok := p.pick(text, loc); ok {
			return cand, true
		}
	}
	return model.PriceCandidate{}, false
}

func (p pricePattern) pick(text string, loc []int) (model.PriceCandidate, bool) {
	group := func(i int) string {
		if 2*i+1 >= len(loc) || loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}

	var numTok, unitTok string
	switch p.role {
	case unitThenNumber:
		unitTok, numTok = group(1), group(2)
	case numberThenUnit:
		numTok, unitTok = group(1), group(2)
	default:
		numTok = group(1)
	}

	v, ok := numeric.Normalize(numTok)
	if !ok && unitTok != "" {
		// The declared numeric group did not parse; some pages swap the
		// unit around the number, so probe the other group before giving up.
		if w, swapped := numeric.Normalize(unitTok); swapped {
			v, unitTok, ok = w, numTok, true
		}
	}
	if !ok {
		return model.PriceCandidate{}, false
	}
	return model.PriceCandidate{Value: v, UnitText: unitTok, Start: loc[0], End: loc[1]}, true
}
