package scraper

import (
	"testing"

	"PriceScout/internal/model"
)

func TestCode8(t *testing.T) {
	tests := []struct {
		code model.SecurityCode
		want string
	}{
		{1183441, "01183441"},
		{5137641, "05137641"},
		{7, "00000007"},
		{12345678, "12345678"},
	}
	for _, tt := range tests {
		if got := tt.code.Code8(); got != tt.want {
			t.Errorf("Code8(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	src := model.Source{Name: "test", URL: "https://example.com/{code}/x/{code8}"}
	got := BuildURL(src, 1183441)
	want := "https://example.com/1183441/x/01183441"
	if got != want {
		t.Errorf("BuildURL = %q, want %q", got, want)
	}
}

func TestDefaultSources_Order(t *testing.T) {
	wantNames := []string{
		"TASE EN major",
		"TASE HE major",
		"TASE EN graph",
		"TheMarker",
		"Funder ETF",
		"Bizportal ETF",
	}
	srcs := DefaultSources()
	if len(srcs) != len(wantNames) {
		t.Fatalf("got %d sources, want %d", len(srcs), len(wantNames))
	}
	for i, name := range wantNames {
		if srcs[i].Name != name {
			t.Errorf("source %d = %q, want %q", i, srcs[i].Name, name)
		}
	}
	// The Hebrew TASE page is the only default that needs the padded code.
	if got := BuildURL(srcs[1], 1183441); got != "https://market.tase.co.il/he/market_data/security/01183441/major_data" {
		t.Errorf("unexpected HE url: %s", got)
	}
}
