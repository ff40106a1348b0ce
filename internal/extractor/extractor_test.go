package extractor

import (
	"testing"

	"PriceScout/internal/model"
)

func TestExtract_ExplicitUnit(t *testing.T) {
	e := New(DefaultResolverConfig())
	page := model.PageContent{Text: "Last Rate (0.01 NIS) 436.20"}

	price, ev, ok := e.Extract(page)
	if !ok {
		t.Fatal("expected a price")
	}
	if ev != model.EvidenceExplicit {
		t.Errorf("evidence = %s, want %s", ev, model.EvidenceExplicit)
	}
	if !price.Equal(dec("4.3620")) {
		t.Errorf("price = %s, want 4.3620", price)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := New(DefaultResolverConfig())
	page := model.PageContent{Text: "שער אחרון 43,620 ובהמשך העמוד אגורות"}

	p1, e1, ok1 := e.Extract(page)
	p2, e2, ok2 := e.Extract(page)
	if !ok1 || !ok2 {
		t.Fatal("expected a price on both passes")
	}
	if !p1.Equal(p2) || e1 != e2 {
		t.Errorf("extraction not idempotent: (%s, %s) vs (%s, %s)", p1, e1, p2, e2)
	}
}

func TestExtract_RawMarkupFallback(t *testing.T) {
	e := New(DefaultResolverConfig())
	page := model.PageContent{
		Text: "no visible price on this page",
		HTML: `<script>var quote = {"label": "Last Rate (Agorot) 436.20"};</script>`,
	}

	price, ev, ok := e.Extract(page)
	if !ok {
		t.Fatal("expected a price from the raw markup pass")
	}
	if ev != model.EvidenceExplicit {
		t.Errorf("evidence = %s, want %s", ev, model.EvidenceExplicit)
	}
	if !price.Equal(dec("4.362")) {
		t.Errorf("price = %s, want 4.362", price)
	}
}

func TestExtract_NoCandidateAnywhere(t *testing.T) {
	e := New(DefaultResolverConfig())
	page := model.PageContent{Text: "nothing here", HTML: "<p>nothing here either</p>"}

	if _, _, ok := e.Extract(page); ok {
		t.Error("expected no price")
	}
}
