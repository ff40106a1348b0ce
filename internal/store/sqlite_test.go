package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"PriceScout/internal/model"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	if err := s.UpsertSecurity(&model.Security{Code: 1183441, Name: "iShares S&P 500", Kind: "ETF", Index: "S&P 500"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertSecurity(&model.Security{Code: 5137641, Name: "Harel Bond Fund", Kind: "fund"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Re-upsert updates catalogue fields without duplicating the row.
	if err := s.UpsertSecurity(&model.Security{Code: 5137641, Name: "Harel Bond", Kind: "fund"}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	price := decimal.RequireFromString("4.362")
	err = s.RecordPrice(&model.ExtractionResult{
		Code:     1183441,
		Price:    price,
		Evidence: model.EvidenceExplicit,
		Source:   "TASE EN major",
		URL:      "https://market.tase.co.il/en/market_data/security/1183441",
	})
	if err != nil {
		t.Fatalf("record price: %v", err)
	}

	secs, err := s.ListSecurities()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(secs) != 2 {
		t.Fatalf("got %d securities, want 2", len(secs))
	}
	if secs[0].Code != 1183441 || !secs[0].UnitValue.Equal(price) {
		t.Errorf("security 0 = %+v, want code 1183441 with unit value %s", secs[0], price)
	}
	if secs[0].UpdatedAt.IsZero() {
		t.Error("expected updated_at to be set after a recorded price")
	}
	if secs[1].Name != "Harel Bond" {
		t.Errorf("security 1 name = %q, want %q", secs[1].Name, "Harel Bond")
	}
	if !secs[1].UnitValue.IsZero() {
		t.Errorf("security 1 unit value = %s, want zero", secs[1].UnitValue)
	}
}
